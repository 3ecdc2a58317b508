package proxy

import (
	"context"
	"time"

	"github.com/GriffinCanCode/faleproxy/internal/domain/rewrite"
	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/logging"
	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/faleproxy/internal/providers/fetch"
	"github.com/GriffinCanCode/faleproxy/internal/providers/scraper"
	"go.uber.org/zap"
)

// Fetcher retrieves a page body whatever its HTTP status
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Page, error)
}

// Recorder receives pipeline measurements
type Recorder interface {
	monitoring.StageObserver
	RecordRewrite(replacements int)
	RecordRewriteError(kind string)
	RecordUpstream(status int, size int)
}

// Result is the outcome of a successful rewrite. Title is nil when the page
// has no title element.
type Result struct {
	Success     bool    `json:"success"`
	OriginalURL string  `json:"originalUrl"`
	Content     string  `json:"content"`
	Title       *string `json:"title,omitempty"`

	Replacements   int           `json:"-"`
	UpstreamStatus int           `json:"-"`
	Duration       time.Duration `json:"-"`
}

// Service runs the rewrite pipeline
type Service struct {
	fetcher  Fetcher
	replacer *rewrite.Replacer
	logger   *logging.Logger
	metrics  Recorder
	tracer   *tracing.Tracer
}

// NewService creates a pipeline. A nil replacer means the default Yale to
// Fale rule; a nil logger discards output.
func NewService(fetcher Fetcher, replacer *rewrite.Replacer, logger *logging.Logger) *Service {
	if replacer == nil {
		replacer = rewrite.NewDefaultReplacer()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		fetcher:  fetcher,
		replacer: replacer,
		logger:   logger.Named("proxy"),
		metrics:  nopRecorder{},
	}
}

// WithMetrics adds metrics tracking to the service
func (s *Service) WithMetrics(metrics Recorder) *Service {
	if metrics != nil {
		s.metrics = metrics
	}
	return s
}

// WithTracer records a span per pipeline stage
func (s *Service) WithTracer(tracer *tracing.Tracer) *Service {
	s.tracer = tracer
	return s
}

// Replacer returns the rules in use
func (s *Service) Replacer() *rewrite.Replacer {
	return s.replacer
}

// Rewrite fetches url and returns the page with every token occurrence in
// its body text and title replaced. Errors are *ValidationError or
// *FetchError.
func (s *Service) Rewrite(ctx context.Context, url string) (*Result, error) {
	if url == "" {
		err := NewURLRequired()
		s.metrics.RecordRewriteError(KindValidation)
		return nil, err
	}

	start := time.Now()

	var page *fetch.Page
	err := s.run(ctx, StageFetching, func(ctx context.Context) error {
		var err error
		page, err = s.fetcher.Fetch(ctx, url)
		return err
	})
	if err != nil {
		s.metrics.RecordRewriteError(KindFetch)
		return nil, &FetchError{URL: url, Err: err}
	}
	s.metrics.RecordUpstream(page.StatusCode, page.Size)

	var doc *scraper.Document
	s.run(ctx, StageParsing, func(context.Context) error {
		doc = scraper.Parse(page.Body)
		return nil
	})

	var replacements int
	var title *string
	s.run(ctx, StageRewriting, func(context.Context) error {
		replacements, title = rewriteDocument(doc, s.replacer)
		return nil
	})

	var content string
	s.run(ctx, StageSerializing, func(context.Context) error {
		content = doc.HTML()
		return nil
	})

	result := &Result{
		Success:        true,
		OriginalURL:    url,
		Content:        content,
		Title:          title,
		Replacements:   replacements,
		UpstreamStatus: page.StatusCode,
		Duration:       time.Since(start),
	}

	s.metrics.RecordRewrite(replacements)
	s.logger.ForURL(url).Info("Rewrote page",
		zap.Int("status", page.StatusCode),
		zap.Int("bytes", page.Size),
		zap.String("charset", page.Charset),
		zap.Int("replacements", replacements),
		zap.Duration("duration", result.Duration),
	)

	return result, nil
}

// run executes one stage inside a span and records its duration
func (s *Service) run(ctx context.Context, stage Stage, fn func(context.Context) error) error {
	span, ctx := s.tracer.StartSpan(ctx, stage.String())
	timer := monitoring.NewTimer(s.metrics, stage.String())

	err := fn(ctx)

	timer.Stop()
	if err != nil {
		span.SetError(err)
	}
	span.Finish()
	s.tracer.Submit(span)
	return err
}

// RewriteHTML runs the parse, rewrite and serialize stages on an HTML
// string. title is nil when the document has no title element.
func RewriteHTML(body string, r *rewrite.Replacer) (content string, title *string, replacements int) {
	doc := scraper.Parse(body)
	replacements, title = rewriteDocument(doc, r)
	return doc.HTML(), title, replacements
}

func rewriteDocument(doc *scraper.Document, r *rewrite.Replacer) (int, *string) {
	n := scraper.RewriteText(doc, r)

	t, ok := scraper.RewriteTitle(doc, r)
	if !ok {
		return n, nil
	}
	return n, &t
}

type nopRecorder struct{}

func (nopRecorder) ObserveStage(string, time.Duration) {}
func (nopRecorder) RecordRewrite(int)                  {}
func (nopRecorder) RecordRewriteError(string)          {}
func (nopRecorder) RecordUpstream(int, int)            {}
