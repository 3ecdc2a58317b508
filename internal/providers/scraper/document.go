package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is the parsed tree of one fetched page. It is owned by a single
// request and is not safe for concurrent mutation.
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document using HTML5 tree construction rules. Malformed
// markup (unclosed tags, stray text, missing doctype) is repaired the way a
// browser would, so parsing never fails.
func Parse(htmlStr string) *Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		// Reading from a strings.Reader cannot fail; keep the contract anyway
		return &Document{doc: goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})}
	}
	return &Document{doc: doc}
}

// Root returns the document node at the top of the tree
func (d *Document) Root() *html.Node {
	return d.doc.Nodes[0]
}

// Body returns the <body> element, or nil for documents without one
// (frameset pages).
func (d *Document) Body() *html.Node {
	body := d.doc.Find("body")
	if body.Length() == 0 {
		return nil
	}
	return body.Get(0)
}

// HTML renders the full document, including doctype and comments. Text is
// escaped the same way everywhere in the output.
func (d *Document) HTML() string {
	var b strings.Builder
	for c := d.Root().FirstChild; c != nil; c = c.NextSibling {
		// Render only fails on trees the parser cannot produce
		// (e.g. void elements with children); keep what was written.
		if err := html.Render(&b, c); err != nil {
			break
		}
	}
	return b.String()
}
