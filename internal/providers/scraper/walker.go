package scraper

import (
	"iter"

	"golang.org/x/net/html"
)

// TextNodes yields every text node below <body> in document order: children
// left to right, descending into an element before moving to its next
// sibling. Text in <head> is never yielded. The sequence may be ranged over
// any number of times; each pass walks the tree afresh.
//
// Traversal uses an explicit stack, so deeply nested markup cannot exhaust
// the goroutine stack.
func (d *Document) TextNodes() iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		body := d.Body()
		if body == nil {
			return
		}

		stack := []*html.Node{body}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			switch n.Type {
			case html.TextNode:
				if !yield(n) {
					return
				}
				continue
			case html.ElementNode, html.DocumentNode:
				// descend below
			case html.CommentNode, html.DoctypeNode, html.RawNode, html.ErrorNode:
				continue
			default:
				continue
			}

			// Push in reverse so the first child is popped first
			for c := n.LastChild; c != nil; c = c.PrevSibling {
				stack = append(stack, c)
			}
		}
	}
}

// TextNodes collects the body text nodes of doc into a slice
func TextNodes(doc *Document) []*html.Node {
	var nodes []*html.Node
	for n := range doc.TextNodes() {
		nodes = append(nodes, n)
	}
	return nodes
}
