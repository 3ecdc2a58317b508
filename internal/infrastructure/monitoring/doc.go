/*
Package monitoring provides Prometheus metrics for the proxy.

# Overview

Each Metrics value owns a private registry, exposed through Handler at
/metrics. It tracks HTTP traffic by route template and the rewrite
pipeline: stage durations, replacement counts, upstream status classes and
failures by kind.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "parsing")
	doc := scraper.Parse(body)
	timer.Stop()

	metrics.RecordRewrite(replacements)
	metrics.RecordRewriteError("fetch")
*/
package monitoring
