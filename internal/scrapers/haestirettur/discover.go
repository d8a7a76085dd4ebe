package haestirettur

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"courtlinks/internal/dataset"
	"courtlinks/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	verdictPrefix  = "/domar/_domur/"
	decisionPrefix = "/akvardanir/"
)

// Listing is an index page of one family of court pages.
type Listing struct {
	Path       string
	SourceType dataset.SourceType
}

// Listings are the two families of pages harvested from the site, verdicts first.
var Listings = []Listing{
	{Path: "/domar/", SourceType: dataset.SourceVerdict},
	{Path: "/akvardanir/", SourceType: dataset.SourceDecision},
}

// isDetailHref keeps links to a single verdict or decision, the decision
// listing links to itself.
func isDetailHref(href string) bool {
	if strings.HasPrefix(href, verdictPrefix) {
		return true
	}
	return strings.HasPrefix(href, decisionPrefix) && href != decisionPrefix
}

// SourceTypeOf tags a detail link by the section of the site it lives in,
// links outside both sections keep fallback.
func SourceTypeOf(link string, fallback dataset.SourceType) dataset.SourceType {
	parsed, err := url.Parse(link)
	if err != nil {
		return fallback
	}
	switch {
	case strings.HasPrefix(parsed.Path, verdictPrefix):
		return dataset.SourceVerdict
	case strings.HasPrefix(parsed.Path, decisionPrefix) && parsed.Path != decisionPrefix:
		return dataset.SourceDecision
	}
	return fallback
}

// Discover returns the absolute links of every detail page listed at
// listingPath, deduplicated and sorted.
func (c Client) Discover(ctx context.Context, listingPath string) ([]string, error) {
	ref, err := url.Parse(listingPath)
	if err != nil {
		c.tel.ReportBroken(report_client_discover, fmt.Errorf("parse listing path: %w", err), listingPath)
		return nil, err
	}
	endpoint := c.baseUrl.ResolveReference(ref).String()
	c.tel.ReportDebug(report_client_discover, endpoint)

	body, err := c.Fetch(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch listing %s: %w", endpoint, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		c.tel.ReportBroken(report_client_discover, fmt.Errorf("parse: %w", err), endpoint)
		return nil, err
	}

	seen := map[string]struct{}{}
	var links []string
	for _, anchor := range htmlutil.GetAnchors(c.baseUrl, doc.Find("a[href]")) {
		if !isDetailHref(anchor.Href) {
			continue
		}
		link := anchor.Url.String()
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	sort.Strings(links)

	c.tel.ReportCount(report_client_discover, int64(len(links)))
	return links, nil
}
