package haestirettur

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"courtlinks/internal/components/chrono"
	"courtlinks/internal/dataset"
	"courtlinks/lib/htmlutil"
	"courtlinks/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	keywordsMarker = "lykilorð"
	approvedMarker = "samþykkt"
	rejectedMarker = "hafnað"

	// appeals case numbers before the appeals court existed are references
	// to other courts
	appealsYearCutoff = 2018

	appealsPath = "/domar-og-urskurdir/domur-urskurdur/"
)

var (
	decisionNumberPattern = regexp.MustCompile(`Nr\.\s*(\d{4}-\d+)`)
	verdictNumberPattern  = regexp.MustCompile(`Mál nr\.\s*(\d+)/(20\d{2})`)
	datePattern           = regexp.MustCompile(
		`(?i)\b(\d{1,2}\.\s+(?:` + strings.Join(chrono.IcelandicMonths(), "|") + `)\s+20\d{2})\b`,
	)
	appealsNumberPattern = regexp.MustCompile(`\b(\d+)/(20\d{2})\b`)
)

var (
	isSectionHeading = htmlutil.IsElement("h2", "h3", "h4")
	isList           = htmlutil.IsElement("ul", "ol")
)

// IsVerdictLink reports whether link points into the verdict section of the site.
func IsVerdictLink(link string) bool {
	return strings.Contains(link, "/domar/")
}

// CaseNumber reads the supreme court case number out of a page's markup, the
// pattern is picked by the shape of the page's link.
// ex. "Mál nr. 5/2025" -> "5/2025" and "Nr. 2025-106" -> "2025-106"
func CaseNumber(link, markup string) string {
	if IsVerdictLink(link) {
		m := verdictNumberPattern.FindStringSubmatch(markup)
		if m == nil {
			return ""
		}
		return m[1] + "/" + m[2]
	}
	m := decisionNumberPattern.FindStringSubmatch(markup)
	if m == nil {
		return ""
	}
	return m[1]
}

// VerdictDate returns the first date written out in Icelandic, ex. "15. maí 2025".
func VerdictDate(text string) string {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

func listItems(sel *goquery.Selection) []string {
	var items []string
	for _, li := range sel.Find("li").Nodes {
		items = append(items, htmlutil.CollapsedText(li))
	}
	return items
}

const labelSelector = "h2, h3, h4, strong, b, dt"

func findLabel(doc *goquery.Document) *html.Node {
	for _, n := range doc.Find(labelSelector).Nodes {
		text := htmlutil.CollapsedText(n)
		if text != "" && textutil.FoldContains(text, keywordsMarker) {
			return n
		}
	}
	return nil
}

// Keywords returns the entries of the keyword list ("Lykilorð") of a decision
// page. When the list can't be told apart from the rest of the page every list
// item of the main content is returned instead.
func Keywords(doc *goquery.Document) []string {
	label := findLabel(doc)
	if label != nil {
		list := htmlutil.ScanSiblings(label, isList, isSectionHeading)
		if list == nil && label.Parent != nil {
			list = htmlutil.FindFollowing(label.Parent, isList)
		}
		if list != nil {
			items := listItems(goquery.NewDocumentFromNode(list).Selection)
			if len(items) > 0 {
				return items
			}
		}
	}

	scope := doc.Find("main").First()
	if scope.Length() == 0 {
		scope = doc.Selection
	}
	return listItems(scope)
}

// DecideStatus classifies a decision as approved or rejected. The keyword
// list is consulted first, where approval takes priority, then whichever
// marker appears first in the page text wins.
func DecideStatus(keywords []string, pageText string) dataset.DecisionStatus {
	folded := textutil.FoldAll(keywords)
	for _, k := range folded {
		if strings.Contains(k, approvedMarker) {
			return dataset.StatusApproved
		}
	}
	for _, k := range folded {
		if strings.Contains(k, rejectedMarker) {
			return dataset.StatusRejected
		}
	}

	text := textutil.Fold(pageText)
	approvedAt := strings.Index(text, approvedMarker)
	rejectedAt := strings.Index(text, rejectedMarker)
	if approvedAt >= 0 && (rejectedAt < 0 || approvedAt < rejectedAt) {
		return dataset.StatusApproved
	}
	if rejectedAt >= 0 {
		return dataset.StatusRejected
	}
	return dataset.StatusNone
}

// AppealsLinks finds cross references to appeals court cases hosted on one
// partner domain or its subdomains.
type AppealsLinks struct {
	domain  string
	pattern *regexp.Regexp
}

func NewAppealsLinks(partnerDomain string) AppealsLinks {
	domain := strings.ToLower(strings.Trim(partnerDomain, ". "))
	return AppealsLinks{
		domain: domain,
		pattern: regexp.MustCompile(
			`https?://(?:[A-Za-z0-9-]+\.)*` + regexp.QuoteMeta(domain) +
				regexp.QuoteMeta(appealsPath) + `[^\s"'<>]+`,
		),
	}
}

// Find returns the first link to an appeals court case in markup, or an
// empty string when its host does not check out.
func (a AppealsLinks) Find(markup string) string {
	link := a.pattern.FindString(markup)
	if link == "" || !IsPartnerHost(link, a.domain) {
		return ""
	}
	return link
}

// IsPartnerHost reports whether link's host is exactly domain or a subdomain of it.
func IsPartnerHost(link, domain string) bool {
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	domain = strings.ToLower(domain)
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// AppealsCaseNumber returns the first "N/YYYY" in the text of an appeals
// court page whose year is recent enough to be an appeals court case.
func AppealsCaseNumber(text string) string {
	for _, m := range appealsNumberPattern.FindAllStringSubmatch(text, -1) {
		year, err := strconv.Atoi(m[2])
		if err != nil || year < appealsYearCutoff {
			continue
		}
		return m[1] + "/" + m[2]
	}
	return ""
}
