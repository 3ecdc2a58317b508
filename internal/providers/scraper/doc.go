// Package scraper builds, walks, rewrites and renders HTML documents.
//
// This package is organized into small pieces that the rewrite pipeline
// calls in order:
//   - document: tolerant parsing into a Document and rendering back to HTML
//   - walker: ordered traversal of the text nodes under <body>
//   - text: in-place substitution of body text through a TextReplacer
//   - title: rewriting of the <title> element outside the body
//
// Built on specialized libraries:
//   - goquery: document wrapper and selectors over golang.org/x/net/html
//   - htmlquery: XPath lookup of the title element
//
// Only text node content is ever changed. Element names, attributes,
// comments, the doctype and the shape of the tree are rendered exactly as
// parsed.
//
// Example Usage:
//
//	doc := scraper.Parse(page)
//	n := scraper.RewriteText(doc, replacer)
//	title, ok := scraper.RewriteTitle(doc, replacer)
//	out := doc.HTML()
package scraper
