// Package fetch retrieves remote pages for the rewrite pipeline.
//
// Built on go-resty/resty for the request layer, with the pooled transport
// from hashicorp/go-retryablehttp (retries disabled), a golang.org/x/time/rate
// limiter and an optional circuit breaker from the resilience package.
//
// Behaviour:
//   - A single GET per call, never retried
//   - The body is returned for every HTTP status; only transport failures
//     (DNS, refused connection, timeout, protocol errors) are errors
//   - A fixed User-Agent is sent with every request
//   - Bodies are decoded to UTF-8 (Content-Type, BOM, <meta charset>,
//     then chardet as a last resort)
//
// Example Usage:
//
//	client := fetch.NewClient(fetch.DefaultConfig())
//	page, err := client.Fetch(ctx, "https://example.com/")
package fetch
