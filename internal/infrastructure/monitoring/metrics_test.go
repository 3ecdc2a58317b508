package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsInstancesAreIndependent(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordRewriteError("fetch")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.RewriteErrors.WithLabelValues("fetch")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RewriteErrors.WithLabelValues("fetch")))
}

func TestRecordRewrite(t *testing.T) {
	m := NewMetrics()

	m.RecordRewrite(3)
	m.RecordRewrite(4)
	m.RecordRewriteError("validation")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RewritesTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RewritesTotal.WithLabelValues("failure")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.Replacements))

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.TotalRewrites)
	assert.Equal(t, int64(1), snap.FailedRewrites)
	assert.Equal(t, int64(7), snap.TotalReplacements)
}

func TestRecordUpstream(t *testing.T) {
	m := NewMetrics()

	m.RecordUpstream(200, 1024)
	m.RecordUpstream(404, 10)
	m.RecordUpstream(503, 10)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamStatus.WithLabelValues("2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamStatus.WithLabelValues("4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamStatus.WithLabelValues("5xx")))
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{
		200: "2xx",
		301: "3xx",
		404: "4xx",
		500: "5xx",
		42:  "other",
		700: "other",
	}
	for status, want := range tests {
		assert.Equal(t, want, StatusClass(status), status)
	}
}

func TestTimer(t *testing.T) {
	m := NewMetrics()

	timer := NewTimer(m, "parsing")
	time.Sleep(time.Millisecond)
	d := timer.Stop()

	assert.GreaterOrEqual(t, d, time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(m.StageDuration))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/items/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/items/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordRewriteError("fetch")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `faleproxy_rewrite_errors_total{kind="fetch"} 1`)
	assert.Contains(t, body, "faleproxy_uptime_seconds")
	assert.Contains(t, body, "go_goroutines")
}
