package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/resilience"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const (
	// DefaultUserAgent identifies the proxy to upstream servers
	DefaultUserAgent = "Mozilla/5.0 (Faleproxy)"

	// DefaultTimeout bounds a single fetch, including reading the body
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodyBytes limits page size to 10MB to prevent memory exhaustion
	DefaultMaxBodyBytes = 10 * 1024 * 1024
)

// Config defines fetch client behaviour
type Config struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
	// RateLimit caps outbound requests per second. Zero means unlimited.
	RateLimit float64
	// BreakerEnabled wraps fetches in a circuit breaker
	BreakerEnabled bool
}

// DefaultConfig returns the production fetch configuration
func DefaultConfig() Config {
	return Config{
		UserAgent:    DefaultUserAgent,
		Timeout:      DefaultTimeout,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// Page is a fetched response body decoded to text
type Page struct {
	URL         string
	FinalURL    string
	StatusCode  int
	ContentType string
	Charset     string
	Body        string
	Size        int
	Duration    time.Duration
}

// Client fetches pages. It is safe for concurrent use.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	cfg     Config
}

// NewClient creates a fetch client from cfg, filling zero values with defaults
func NewClient(cfg Config) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	// Pooled transport only; the pipeline never retries
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	restyClient := resty.New()
	restyClient.
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetDoNotParseResponse(true).
		SetHeader("User-Agent", cfg.UserAgent).
		SetTransport(retryClient.HTTPClient.Transport)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	c := &Client{
		resty:   restyClient,
		limiter: limiter,
		cfg:     cfg,
	}

	if cfg.BreakerEnabled {
		c.breaker = resilience.New("fetch-upstream", resilience.Settings{
			MaxRequests: 5,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts resilience.Counts) bool {
				// Upstream pages vary in reliability; trip on sustained failure only
				return counts.ConsecutiveFailures >= 10 ||
					(counts.Requests >= 20 && float64(counts.TotalFailures)/float64(counts.Requests) > 0.7)
			},
			// A caller hanging up says nothing about the origin
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
		})
	}

	return c
}

// Config returns the effective configuration
func (c *Client) Config() Config {
	return c.cfg
}

// BreakerState returns the circuit breaker state, or closed when disabled
func (c *Client) BreakerState() resilience.State {
	if c.breaker == nil {
		return resilience.StateClosed
	}
	return c.breaker.State()
}

// Fetch issues a GET for rawURL and returns the body whatever the HTTP
// status. Every failure is returned as *Error.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if rawURL == "" {
		return nil, newError(rawURL, ErrEmptyURL)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, newError(rawURL, fmt.Errorf("rate limit: %w", err))
	}

	if c.breaker == nil {
		return c.get(ctx, rawURL)
	}

	page, err := resilience.Do(c.breaker, func() (*Page, error) {
		return c.get(ctx, rawURL)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
		return nil, newError(rawURL, fmt.Errorf("upstream unavailable (%s): %w", c.breaker.Name(), err))
	}
	return page, err
}

func (c *Client) get(ctx context.Context, rawURL string) (*Page, error) {
	start := time.Now()

	resp, err := c.resty.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, newError(rawURL, err)
	}

	body := resp.RawBody()
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, c.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, newError(rawURL, fmt.Errorf("read body: %w", err))
	}
	if int64(len(data)) > c.cfg.MaxBodyBytes {
		return nil, newError(rawURL, fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, c.cfg.MaxBodyBytes))
	}

	header := resp.Header().Get("Content-Type")
	text, charsetName := Decode(data, header)

	contentType := header
	if contentType == "" && len(data) > 0 {
		contentType = mimetype.Detect(data).String()
	}

	finalURL := rawURL
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		finalURL = raw.Request.URL.String()
	}

	return &Page{
		URL:         rawURL,
		FinalURL:    finalURL,
		StatusCode:  resp.StatusCode(),
		ContentType: contentType,
		Charset:     charsetName,
		Body:        text,
		Size:        len(data),
		Duration:    time.Since(start),
	}, nil
}
