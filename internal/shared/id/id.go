// Package id generates sortable identifiers for requests and trace spans.
//
// IDs are ULIDs with a short type prefix (req_*, trc_*, spn_*) so that log
// lines from the proxy can be correlated and ordered by creation time.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestID identifies one inbound rewrite request
type RequestID string

// TraceID identifies a trace spanning all pipeline stages of a request
type TraceID string

// SpanID identifies a single stage within a trace
type SpanID string

const (
	RequestPrefix = "req"
	TracePrefix   = "trc"
	SpanPrefix    = "spn"

	// maxLen fits the longest prefix, the separator and a ULID
	maxLen = 3 + 1 + ulid.EncodedSize
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewTraceID generates a new trace ID
func NewTraceID() TraceID {
	return TraceID(Default().GenerateWithPrefix(TracePrefix))
}

// NewSpanID generates a new span ID
func NewSpanID() SpanID {
	return SpanID(Default().GenerateWithPrefix(SpanPrefix))
}

func (id RequestID) String() string { return string(id) }
func (id TraceID) String() string   { return string(id) }
func (id SpanID) String() string    { return string(id) }

// IsValid reports whether id is a bare ULID or a ULID behind one of the
// known type prefixes. Anything longer is rejected before parsing.
func IsValid(id string) bool {
	if len(id) > maxLen {
		return false
	}
	if prefix, rest, ok := strings.Cut(id, "_"); ok {
		if !knownPrefix(prefix) {
			return false
		}
		id = rest
	}
	_, err := ulid.ParseStrict(id)
	return err == nil
}

func knownPrefix(prefix string) bool {
	switch prefix {
	case RequestPrefix, TracePrefix, SpanPrefix:
		return true
	}
	return false
}
