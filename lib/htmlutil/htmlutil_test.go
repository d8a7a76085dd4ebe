package htmlutil

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t testing.TB, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestCollapsedText(t *testing.T) {
	doc := parse(t, `<div>
		<p>  Mál   nr. </p>
		<script>var x = "hidden";</script>
		<span>5/2025</span><style>.a{}</style>
	</div>`)

	require.Equal(t, "Mál   nr. 5/2025", CollapsedText(doc.Find("div").Nodes[0]))
}

func TestFindFollowingStartsInsideStart(t *testing.T) {
	doc := parse(t, `<section><p><strong>x</strong></p><ul id="inner"></ul></section><ul id="outer"></ul>`)

	section := doc.Find("section").Nodes[0]
	found := FindFollowing(section, IsElement("ul", "ol"))
	require.NotNil(t, found)
	require.Equal(t, "inner", attr(found, "id"))

	inner := doc.Find("#inner").Nodes[0]
	found = FindFollowing(inner, IsElement("ul", "ol"))
	require.NotNil(t, found)
	require.Equal(t, "outer", attr(found, "id"))
}

func TestScanSiblingsStopsAtBoundary(t *testing.T) {
	doc := parse(t, `<body>
		<h2 id="label">Lykilorð</h2>
		<p>text</p>
		<h3>Next section</h3>
		<ul><li>too late</li></ul>
	</body>`)

	label := doc.Find("#label").Nodes[0]
	found := ScanSiblings(label, IsElement("ul", "ol"), IsElement("h2", "h3", "h4"))
	require.Nil(t, found)

	doc = parse(t, `<body><h2 id="label">Lykilorð</h2>text<p>x</p><ol><li>a</li></ol></body>`)
	label = doc.Find("#label").Nodes[0]
	found = ScanSiblings(label, IsElement("ul", "ol"), IsElement("h2", "h3", "h4"))
	require.NotNil(t, found)
	require.Equal(t, "ol", found.Data)
}

func TestGetAnchorsResolvesAgainstBase(t *testing.T) {
	doc := parse(t, `<a href="/domar/_domur/?id=1"> Dómur  
		1 </a><a>no href</a><a href="https://example.com/x">x</a>`)
	base, err := url.Parse("https://www.haestirettur.is/domar/")
	require.NoError(t, err)

	anchors := GetAnchors(base, doc.Find("a"))
	require.Len(t, anchors, 2)
	require.Equal(t, "/domar/_domur/?id=1", anchors[0].Href)
	require.Equal(t, "https://www.haestirettur.is/domar/_domur/?id=1", anchors[0].Url.String())
	require.Equal(t, "Dómur 1", anchors[0].Name)
	require.Equal(t, "https://example.com/x", anchors[1].Url.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
