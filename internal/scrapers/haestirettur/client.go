package haestirettur

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"courtlinks/internal/components/assert"
	"courtlinks/internal/components/telemetry"
	"courtlinks/lib/restyutil"
	libtelemetry "courtlinks/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	report_client_fetch          = "client.fetch"
	report_client_discover       = "client.discover"
	report_client_assemble       = "client.assemble"
	report_client_appeals_number = "client.appeals-number"
)

const (
	DefaultBaseUrl       = "https://www.haestirettur.is"
	DefaultPartnerDomain = "landsrettur.is"
	DefaultUserAgent     = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"
)

// transientStatuses are the response codes that are worth asking for again.
var transientStatuses = []int{
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// ErrUnexpectedStatus is returned by Fetch when the server did not answer
// with a 2xx status, after retries.
var ErrUnexpectedStatus = errors.New("unexpected status")

type Options struct {
	BaseUrl string
	// PartnerDomain is the appeals court domain, cross references to any
	// other host are discarded.
	PartnerDomain string
	UserAgent     string
	Timeout       time.Duration
	RetryCount    int
	RetryWait     time.Duration
	RetryMaxWait  time.Duration
	// RequestsPerSecond throttles fetches, 0 disables throttling.
	RequestsPerSecond float64
	// Dump receives every raw exchange with the court websites when set.
	Dump restyutil.Output
}

func DefaultOptions() Options {
	return Options{
		BaseUrl:       DefaultBaseUrl,
		PartnerDomain: DefaultPartnerDomain,
		UserAgent:     DefaultUserAgent,
		Timeout:       30 * time.Second,
		RetryCount:    3,
		RetryWait:     500 * time.Millisecond,
		RetryMaxWait:  8 * time.Second,
	}
}

// Client fetches and reads pages of the supreme court website.
type Client struct {
	baseUrl       *url.URL
	appealsLinks  AppealsLinks
	http          *resty.Client
	tracer        trace.Tracer
	tel           telemetry.API
}

func NewClient(opts Options, tel telemetry.API) (Client, error) {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("haestirettur", tel)

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return Client{}, fmt.Errorf("parse base url: %w", err)
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return Client{}, fmt.Errorf("base url must be absolute: %q", opts.BaseUrl)
	}

	partnerDomain := opts.PartnerDomain
	if strings.Trim(partnerDomain, ". ") == "" {
		partnerDomain = DefaultPartnerDomain
	}

	httpClient := resty.New()
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetTimeout(opts.Timeout)
	httpClient.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	httpClient.SetRetryCount(opts.RetryCount)
	httpClient.SetRetryWaitTime(opts.RetryWait)
	httpClient.SetRetryMaxWaitTime(opts.RetryMaxWait)
	httpClient.AddRetryCondition(isTransient)

	if opts.RequestsPerSecond > 0 {
		// max burst of 1 keeps requests evenly spaced
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel)
	if opts.Dump != nil {
		restyutil.DumpExchanges(httpClient, opts.Dump)
	}

	return Client{
		baseUrl:       baseUrl,
		appealsLinks:  NewAppealsLinks(partnerDomain),
		http:          httpClient,
		tracer:        libtelemetry.Tracer("courtlinks/haestirettur"),
		tel:           tel,
	}, nil
}

func isTransient(res *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	return res != nil && slices.Contains(transientStatuses, res.StatusCode())
}

// Fetch returns the body of the page at link. Transient failures are retried
// with exponential backoff, every other failure is reported and returned so
// that the caller can skip the page.
func (c Client) Fetch(ctx context.Context, link string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "haestirettur.fetch", trace.WithAttributes(
		attribute.String("url.full", link),
	))
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		c.tel.ReportBroken(report_client_fetch, fmt.Errorf("request: %w", err), link)
		return "", err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode()))
	if !res.IsSuccess() {
		err := fmt.Errorf("%w: %s", ErrUnexpectedStatus, res.Status())
		span.SetStatus(codes.Error, err.Error())
		c.tel.ReportBroken(report_client_fetch, err, link)
		return "", err
	}

	return res.String(), nil
}
