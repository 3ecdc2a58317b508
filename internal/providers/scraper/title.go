package scraper

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// titleXPath selects the document title. Titles inside <body> (inline SVG)
// are body text and already handled by RewriteText.
const titleXPath = "//title[not(ancestor::body)]"

// RewriteTitle replaces the title's text with its rewritten form and returns
// the new title. Documents without a title are left untouched and report
// false.
func RewriteTitle(doc *Document, r TextReplacer) (string, bool) {
	node := findTitle(doc)
	if node == nil {
		return "", false
	}

	title, _ := r.ReplaceCount(textContent(node))
	setText(node, title)
	return title, true
}

func findTitle(doc *Document) *html.Node {
	node, err := htmlquery.Query(doc.Root(), titleXPath)
	if err != nil {
		return nil
	}
	return node
}

// textContent concatenates all descendant text, like DOM textContent
func textContent(n *html.Node) string {
	var b strings.Builder
	stack := []*html.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
			continue
		}
		for c := cur.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return b.String()
}

// setText replaces all children of n with a single text node
func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	if text == "" {
		return
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
