// Package proxy runs the fetch, parse, rewrite, serialize pipeline behind
// POST /fetch and the rewrite CLI command.
//
// A Service is built once and shared: its fetcher and replacer are safe for
// concurrent use, and every call parses into its own document, so nothing
// mutable is shared between requests.
//
// Stages run strictly in order:
//
//	Fetching -> Parsing -> Rewriting -> Serializing -> Done
//
// Only Fetching can fail. Parsing tolerates any input, and rewriting and
// serializing operate on a tree the parser produced.
package proxy
