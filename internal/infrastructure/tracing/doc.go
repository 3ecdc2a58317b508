/*
Package tracing provides lightweight request tracing for the proxy.

# Overview

Each HTTP request gets a server span, and the rewrite pipeline opens a
child span per stage (fetching, parsing, rewriting, serializing). Finished
spans go through a buffered channel to a collector goroutine that logs them
with zap. Nothing is exported off-process.

# Usage

	tracer := tracing.New("faleproxy", logger.Logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "fetching")
	span.SetTag("url", url)
	// ...
	span.Finish()
	tracer.Submit(span)

A nil *Tracer is usable: spans are created but never logged.

# Propagation

	X-Trace-ID: identifies the whole request flow (trc_ prefixed ULID)
	X-Span-ID:  identifies the current operation (spn_ prefixed ULID)

Incoming headers continue a caller's trace; the server span's IDs are set
on the response.
*/
package tracing
