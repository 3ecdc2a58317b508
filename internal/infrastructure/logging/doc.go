// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability (LOG_DEV)
//
// Pipeline code logs with structured fields rather than formatted strings:
// the target URL, the upstream status, the number of replacements and the
// stage durations.
//
// Tests assert on output through loggingtest.NewObserved.
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	logger.ForURL(url).Info("Rewrote page", zap.Int("replacements", n))
//	logger.Error("Fetch failed", zap.Error(err))
package logging
