package scraper

// TextReplacer rewrites a string and reports how many substitutions it made
type TextReplacer interface {
	ReplaceCount(s string) (string, int)
}

// RewriteText runs every body text node through r and stores the result in
// place. Attributes are never passed to r. It returns the number of
// substitutions made.
func RewriteText(doc *Document, r TextReplacer) int {
	total := 0
	for n := range doc.TextNodes() {
		out, count := r.ReplaceCount(n.Data)
		if count == 0 {
			continue
		}
		n.Data = out
		total += count
	}
	return total
}
