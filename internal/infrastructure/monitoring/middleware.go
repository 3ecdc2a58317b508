package monitoring

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Route template keeps label cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		size := int64(c.Writer.Size())
		if size < 0 {
			size = 0
		}

		metrics.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start), size)
	}
}

// StageObserver receives stage durations. *Metrics implements it.
type StageObserver interface {
	ObserveStage(stage string, duration time.Duration)
}

// Timer measures a pipeline stage
type Timer struct {
	start    time.Time
	observer StageObserver
	stage    string
}

// NewTimer starts timing stage
func NewTimer(observer StageObserver, stage string) *Timer {
	return &Timer{
		start:    time.Now(),
		observer: observer,
		stage:    stage,
	}
}

// Stop records the elapsed time and returns it
func (t *Timer) Stop() time.Duration {
	d := time.Since(t.start)
	t.observer.ObserveStage(t.stage, d)
	return d
}
