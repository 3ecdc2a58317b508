package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/faleproxy/internal/api/http"
	"github.com/GriffinCanCode/faleproxy/internal/api/middleware"
	"github.com/GriffinCanCode/faleproxy/internal/domain/proxy"
	"github.com/GriffinCanCode/faleproxy/internal/domain/rewrite"
	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/config"
	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/logging"
	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/faleproxy/internal/providers/fetch"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	handler http.Handler
	proxy   *proxy.Service
	fetcher *fetch.Client
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
}

// NewLogger builds the logger described by cfg
func NewLogger(cfg config.LogConfig) (*logging.Logger, error) {
	if cfg.Development {
		return logging.New(logging.DevelopmentConfig())
	}
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Level
	return logging.New(logCfg)
}

// NewFetchClient maps fetch configuration onto a client
func NewFetchClient(cfg config.FetchConfig) *fetch.Client {
	return fetch.NewClient(fetch.Config{
		UserAgent:      cfg.UserAgent,
		Timeout:        cfg.Timeout,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RateLimit:      cfg.RateLimit,
		BreakerEnabled: cfg.BreakerEnabled,
	})
}

// NewProxyService builds the rewrite pipeline from configuration
func NewProxyService(cfg *config.Config, logger *logging.Logger) (*proxy.Service, *fetch.Client, error) {
	replacer, err := rewrite.LoadReplacer(cfg.Rewrite.RulesFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rewrite rules: %w", err)
	}

	client := NewFetchClient(cfg.Fetch)
	return proxy.NewService(client, replacer, logger), client, nil
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing Faleproxy Server",
		zap.String("addr", cfg.Server.Addr()),
		zap.Duration("fetch_timeout", cfg.Fetch.Timeout),
		zap.String("rules_file", cfg.Rewrite.RulesFile),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("faleproxy", logger.Logger)

	service, client, err := NewProxyService(cfg, logger)
	if err != nil {
		tracer.Close()
		return nil, err
	}
	service.WithMetrics(metrics).WithTracer(tracer)

	for _, rule := range service.Replacer().Rules() {
		logger.Info("Loaded rewrite rule",
			zap.String("token", rule.Token),
			zap.String("upper", rule.Upper),
			zap.String("capitalized", rule.Capitalized),
			zap.String("lower", rule.Lower),
		)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(service, logger).
		WithMetrics(metrics).
		WithBreaker(client).
		WithPublicDir(cfg.Server.PublicDir)

	registerRoutes(router, handlers, metrics, cfg.Server.PublicDir)

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		handler: gzhttp.GzipHandler(router),
		proxy:   service,
		fetcher: client,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		tracer:  tracer,
	}, nil
}

func registerRoutes(router *gin.Engine, handlers *apihttp.Handlers, metrics *monitoring.Metrics, publicDir string) {
	// UI
	router.GET("/", handlers.Index)
	router.Static("/static", publicDir)

	// Pipeline
	router.POST("/fetch", handlers.Fetch)

	// Operations
	router.GET("/health", handlers.Health)
	router.GET("/stats", handlers.Stats)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// Handler returns the compressed root handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Proxy returns the rewrite pipeline
func (s *Server) Proxy() *proxy.Service {
	return s.proxy
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Faleproxy server running", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// Close flushes spans and logs
func (s *Server) Close() error {
	s.tracer.Close()
	_ = s.logger.Sync()
	return nil
}
