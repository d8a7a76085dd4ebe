package haestirettur

import (
	"context"
	"fmt"
	"strings"

	"courtlinks/internal/dataset"
	"courtlinks/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Assemble fetches a detail page and reads a record out of it. ok is false
// when the page could not be fetched or parsed, or when it carries no case
// number, such pages are skipped.
func (c Client) Assemble(ctx context.Context, link string, source dataset.SourceType) (record dataset.CaseRecord, ok bool) {
	markup, err := c.Fetch(ctx, link)
	if err != nil {
		return dataset.CaseRecord{}, false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		c.tel.ReportBroken(report_client_assemble, fmt.Errorf("parse: %w", err), link)
		return dataset.CaseRecord{}, false
	}
	pageText := htmlutil.SelectionText(doc.Selection)

	record = dataset.CaseRecord{
		SupremeCaseNumber: CaseNumber(link, markup),
		SupremeCaseLink:   link,
		SourceType:        source,
		VerdictDate:       VerdictDate(pageText),
	}
	if !record.Valid() {
		c.tel.ReportWarning(report_client_assemble, "no case number", link)
		return dataset.CaseRecord{}, false
	}

	if source == dataset.SourceDecision {
		record.DecisionStatus = DecideStatus(Keywords(doc), pageText)
	}

	record.AppealsCaseLink = c.appealsLinks.Find(markup)
	if record.AppealsCaseLink != "" {
		record.AppealsCaseNumber = c.appealsCaseNumber(ctx, record.AppealsCaseLink)
	}

	return record, true
}

func (c Client) appealsCaseNumber(ctx context.Context, link string) string {
	c.tel.ReportDebug(report_client_appeals_number, link)

	text, err := c.Fetch(ctx, link)
	if err != nil {
		return ""
	}
	number := AppealsCaseNumber(text)
	if number == "" {
		c.tel.ReportWarning(report_client_appeals_number, "no appeals case number", link)
	}
	return number
}
