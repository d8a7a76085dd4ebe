package harvest

import (
	"context"
	"fmt"

	"courtlinks/internal/components/assert"
	"courtlinks/internal/components/chrono"
	"courtlinks/internal/components/telemetry"
	"courtlinks/internal/dataset"
	"courtlinks/internal/index"
	"courtlinks/internal/lastupdated"
	"courtlinks/internal/scrapers/haestirettur"
	libtelemetry "courtlinks/lib/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

const (
	report_harvester_discover = "harvester.discover"
	report_harvester_assemble = "harvester.assemble"
	report_harvester_merge    = "harvester.merge"
	report_harvester_index    = "harvester.index"
	report_harvester_mirror   = "harvester.mirror"
)

var tracer = libtelemetry.Tracer("courtlinks/harvest")

// Scraper is the part of haestirettur.Client a harvest needs.
type Scraper interface {
	Discover(ctx context.Context, listingPath string) ([]string, error)
	Assemble(ctx context.Context, link string, source dataset.SourceType) (dataset.CaseRecord, bool)
}

// Mirror receives the merged dataset after every run.
type Mirror interface {
	Replace(ctx context.Context, records []dataset.CaseRecord) error
}

type Paths struct {
	Dataset     string
	Index       string
	LastUpdated string
}

type Config struct {
	Paths Paths
	// Listings defaults to haestirettur.Listings.
	Listings []haestirettur.Listing
	// Mirror is optional.
	Mirror Mirror
}

// Harvester runs the whole pipeline: discover, assemble, merge, rebuild the
// index and stamp the refresh time. It is not safe to run two harvests
// against the same files at once.
type Harvester struct {
	scraper Scraper
	clock   chrono.API
	tel     telemetry.API
	config  Config
}

func NewHarvester(scraper Scraper, clock chrono.API, tel telemetry.API, config Config) Harvester {
	assert.NotNil(scraper)
	assert.NotNil(clock)
	assert.NotNil(tel)
	assert.NotEmptyStr(config.Paths.Dataset)
	assert.NotEmptyStr(config.Paths.Index)
	assert.NotEmptyStr(config.Paths.LastUpdated)

	if config.Listings == nil {
		config.Listings = haestirettur.Listings
	}
	return Harvester{
		scraper: scraper,
		clock:   clock,
		tel:     telemetry.NewScopedAPI("harvest", tel),
		config:  config,
	}
}

type Result struct {
	// Discovered is the number of distinct detail links found across listings.
	Discovered int
	// Assembled is the number of pages that yielded a record.
	Assembled int
	// Skipped is the number of pages that failed to fetch or had no case number.
	Skipped int
	Merge   dataset.MergeStats
	// Saved is false when nothing new was added and the dataset was left alone.
	Saved bool
	// IndexKeys is the number of appeals cases in the rebuilt index.
	IndexKeys int
	// IndexLinks is the number of records in the rebuilt index.
	IndexLinks int
}

// collect discovers and assembles every listing, failures are reported and skipped.
func (h Harvester) collect(ctx context.Context, result *Result) ([]dataset.CaseRecord, error) {
	var records []dataset.CaseRecord
	seen := map[string]struct{}{}

	for _, listing := range h.config.Listings {
		links, err := h.scraper.Discover(ctx, listing.Path)
		if err != nil {
			h.tel.ReportBroken(report_harvester_discover, err, listing.Path)
			continue
		}
		h.tel.ReportCount(report_harvester_discover, int64(len(links)))

		for _, link := range links {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if _, ok := seen[link]; ok {
				continue
			}
			seen[link] = struct{}{}
			result.Discovered++

			source := haestirettur.SourceTypeOf(link, listing.SourceType)
			record, ok := h.scraper.Assemble(ctx, link, source)
			if !ok {
				result.Skipped++
				h.tel.ReportDebug(report_harvester_assemble, "skipped", link)
				continue
			}
			result.Assembled++
			records = append(records, record)
		}
	}

	return records, nil
}

// Run performs one harvest. Per page failures never stop a run, only
// failing to read or write the output files does.
func (h Harvester) Run(ctx context.Context) (Result, error) {
	ctx, span := tracer.Start(ctx, "harvest.run")
	defer span.End()

	var result Result
	incoming, err := h.collect(ctx, &result)
	if err != nil {
		return result, err
	}
	span.SetAttributes(
		attribute.Int("harvest.discovered", result.Discovered),
		attribute.Int("harvest.assembled", result.Assembled),
	)

	existing, err := dataset.Load(h.config.Paths.Dataset)
	if err != nil {
		return result, fmt.Errorf("load dataset: %w", err)
	}
	merged, stats := dataset.Merge(existing, incoming)
	result.Merge = stats
	h.tel.ReportCount(report_harvester_merge, int64(stats.Total))

	if stats.Added > 0 {
		if err := dataset.Save(h.config.Paths.Dataset, merged); err != nil {
			return result, fmt.Errorf("save dataset: %w", err)
		}
		result.Saved = true
	} else {
		h.tel.ReportDebug(report_harvester_merge, "no new rows to save")
	}

	idx := index.Build(merged)
	if err := index.Write(h.config.Paths.Index, idx); err != nil {
		return result, fmt.Errorf("write index: %w", err)
	}
	result.IndexKeys = len(idx)
	result.IndexLinks = idx.LinkCount()
	h.tel.ReportCount(report_harvester_index, int64(result.IndexLinks))

	if err := lastupdated.Write(h.config.Paths.LastUpdated, h.clock); err != nil {
		return result, err
	}

	if h.config.Mirror != nil {
		if err := h.config.Mirror.Replace(ctx, merged); err != nil {
			h.tel.ReportBroken(report_harvester_mirror, err)
		}
	}

	return result, nil
}
