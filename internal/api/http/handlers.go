package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/GriffinCanCode/faleproxy/internal/domain/proxy"
	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/logging"
	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/resilience"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxRequestBody bounds the POST /fetch body; it only carries a URL
const maxRequestBody = 1 << 20

// BreakerReporter exposes the fetch circuit breaker state
type BreakerReporter interface {
	BreakerState() resilience.State
}

// Handlers contains all HTTP handlers
type Handlers struct {
	proxy     *proxy.Service
	logger    *logging.Logger
	metrics   *monitoring.Metrics
	breaker   BreakerReporter
	publicDir string
	startTime time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(service *proxy.Service, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		proxy:     service,
		logger:    logger.Named("api"),
		publicDir: "public",
		startTime: time.Now(),
	}
}

// WithMetrics enables the /stats totals
func (h *Handlers) WithMetrics(metrics *monitoring.Metrics) *Handlers {
	h.metrics = metrics
	return h
}

// WithBreaker reports breaker state in /health
func (h *Handlers) WithBreaker(breaker BreakerReporter) *Handlers {
	h.breaker = breaker
	return h
}

// WithPublicDir sets where index.html is served from
func (h *Handlers) WithPublicDir(dir string) *Handlers {
	h.publicDir = dir
	return h
}

// Fetch rewrites the page named by the url field
func (h *Handlers) Fetch(c *gin.Context) {
	url := requestURL(c)

	result, err := h.proxy.Rewrite(c.Request.Context(), url)
	if err != nil {
		h.fail(c, url, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// fail maps pipeline errors onto status codes and logs them
func (h *Handlers) fail(c *gin.Context, url string, err error) {
	_ = c.Error(err)

	kind := proxy.Kind(err)
	log := h.logger.With(zap.String("kind", kind))
	if url != "" {
		log = log.ForURL(url)
	}

	status := http.StatusInternalServerError
	switch kind {
	case proxy.KindValidation:
		status = http.StatusBadRequest
		log.Warn("Rejected fetch request", zap.Error(err))
	default:
		log.Error("Error fetching URL", zap.Error(err))
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

// requestURL reads the url field from a JSON or form body. Anything other
// than a string yields "", which the pipeline rejects.
func requestURL(c *gin.Context) string {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody)

	contentType := c.ContentType()
	switch {
	case contentType == gin.MIMEJSON || strings.HasSuffix(contentType, "+json"):
		data, err := io.ReadAll(c.Request.Body)
		if err != nil || len(data) == 0 {
			return ""
		}
		var body map[string]interface{}
		if err := sonic.Unmarshal(data, &body); err != nil {
			return ""
		}
		url, _ := body["url"].(string)
		return url
	case contentType == gin.MIMEPOSTForm || contentType == gin.MIMEMultipartPOSTForm:
		return c.PostForm("url")
	default:
		return ""
	}
}

// Index serves the UI
func (h *Handlers) Index(c *gin.Context) {
	c.File(filepath.Join(h.publicDir, "index.html"))
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	rules := h.proxy.Replacer().Rules()
	tokens := make([]string, 0, len(rules))
	for _, r := range rules {
		tokens = append(tokens, r.Token)
	}

	body := gin.H{
		"status":         "healthy",
		"service":        "faleproxy",
		"uptime_seconds": time.Since(h.startTime).Seconds(),
		"rules":          tokens,
	}
	if h.breaker != nil {
		body["fetch_breaker"] = h.breaker.BreakerState().String()
	}

	c.JSON(http.StatusOK, body)
}

// Summary is the /stats payload
type Summary struct {
	Timestamp         time.Time `json:"timestamp"`
	TotalRequests     int64     `json:"total_requests"`
	AverageLatencyMs  float64   `json:"average_latency_ms"`
	ErrorRate         float64   `json:"error_rate"`
	TotalRewrites     int64     `json:"total_rewrites"`
	FailedRewrites    int64     `json:"failed_rewrites"`
	TotalReplacements int64     `json:"total_replacements"`
	UptimeSeconds     float64   `json:"uptime_seconds"`
}

// Stats returns running totals from the metrics collector
func (h *Handlers) Stats(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "metrics disabled"})
		return
	}

	snap := h.metrics.Snapshot()
	summary := Summary{
		Timestamp:         time.Now(),
		TotalRequests:     snap.TotalRequests,
		TotalRewrites:     snap.TotalRewrites,
		FailedRewrites:    snap.FailedRewrites,
		TotalReplacements: snap.TotalReplacements,
		UptimeSeconds:     h.metrics.Uptime().Seconds(),
	}
	if snap.TotalRequests > 0 {
		summary.AverageLatencyMs = snap.TotalDuration / float64(snap.TotalRequests) * 1000
		summary.ErrorRate = float64(snap.TotalErrors) / float64(snap.TotalRequests)
	}

	c.JSON(http.StatusOK, summary)
}
