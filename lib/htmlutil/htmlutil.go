package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText returns the raw concatenation of every text node under node.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	end := after(node)
	for n := node; n != nil && n != end; n = Following(n) {
		if n.Type == html.TextNode {
			buffer.WriteString(n.Data)
		}
	}
	return buffer.String()
}

// CollapsedText returns every visible text node under node, trimmed, with empty
// pieces dropped and the rest joined by a single space. Script and style contents
// are not considered text.
func CollapsedText(node *html.Node) string {
	var parts []string
	end := after(node)
	for n := node; n != nil && n != end; n = Following(n) {
		if n.Type != html.TextNode || isRawTextParent(n.Parent) {
			continue
		}
		piece := strings.TrimSpace(n.Data)
		if piece != "" {
			parts = append(parts, piece)
		}
	}
	return strings.Join(parts, " ")
}

// SelectionText is CollapsedText over every node of a selection.
func SelectionText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		text := CollapsedText(n)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func isRawTextParent(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style")
}

// Following returns the node after n in document order, descending into n's
// children before moving on to its siblings and then its ancestors' siblings.
func Following(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	return after(n)
}

// after returns the first node in document order that is not inside n.
func after(n *html.Node) *html.Node {
	for current := n; current != nil; current = current.Parent {
		if current.NextSibling != nil {
			return current.NextSibling
		}
	}
	return nil
}

// FindFollowing walks the document forward from start (start's own descendants
// come first) and returns the first node accepted by match.
func FindFollowing(start *html.Node, match func(*html.Node) bool) *html.Node {
	for n := Following(start); n != nil; n = Following(n) {
		if match(n) {
			return n
		}
	}
	return nil
}

// ScanSiblings walks the element siblings after n in order. It returns the first
// sibling accepted by match, or nil once a sibling accepted by stop is reached or
// the siblings run out. stop is checked before match.
func ScanSiblings(n *html.Node, match, stop func(*html.Node) bool) *html.Node {
	for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type != html.ElementNode {
			continue
		}
		if stop(sib) {
			return nil
		}
		if match(sib) {
			return sib
		}
	}
	return nil
}

// IsElement returns a predicate that accepts element nodes with one of the given tag names.
func IsElement(names ...string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n == nil || n.Type != html.ElementNode {
			return false
		}
		for _, name := range names {
			if n.Data == name {
				return true
			}
		}
		return false
	}
}

type Anchor struct {
	Name string
	// Href is the attribute value as written in the markup.
	Href string
	// Url is Href resolved against the page it was found on.
	Url *url.URL
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// GetAnchors reads every node in sel that carries an href, anchors with
// unparsable hrefs are skipped.
func GetAnchors(base *url.URL, sel *goquery.Selection) []Anchor {
	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		hasHref := false
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				hasHref = true
				break
			}
		}
		if !hasHref {
			continue
		}

		link, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			continue
		}
		if base != nil {
			link = base.ResolveReference(link)
		}

		name := GetText(n)
		name = removeNonPrintable(name)
		name = strings.Trim(name, " \t\n")
		name = innerWhitespace.ReplaceAllString(name, " ")

		anchors = append(anchors, Anchor{
			Name: name,
			Href: href,
			Url:  link,
		})
	}

	return anchors
}
