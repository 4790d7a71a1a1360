// Package http exposes the calculator registry as a JSON API.
package http

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"tradecalc/core/calculator"
	"tradecalc/core/output"
	"tradecalc/internal/config"
	"tradecalc/internal/logging"
)

// Config holds HTTP adapter configuration
type Config struct {
	// Address to listen on
	Address string

	// ReadTimeout for requests
	ReadTimeout time.Duration

	// WriteTimeout for responses
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration

	// MaxBodySize limits request body size
	MaxBodySize int64

	// AllowedOrigins for CORS; "*" allows any origin, empty disables CORS
	AllowedOrigins []string

	// RateLimit per IP (requests per second); 0 disables limiting
	RateLimit float64

	// RateBurst is the burst size per IP
	RateBurst int

	// Report tunes rendered reports
	Report output.Options

	// Version is reported by /health
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return FromSettings(config.Default(), "dev")
}

// FromSettings builds an adapter config from the application configuration
func FromSettings(cfg *config.Config, version string) *Config {
	return &Config{
		Address:         cfg.Server.Address,
		ReadTimeout:     cfg.Server.ReadTimeout.Duration,
		WriteTimeout:    cfg.Server.WriteTimeout.Duration,
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
		MaxBodySize:     cfg.Server.MaxBodySize,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		RateLimit:       cfg.Server.RateLimit,
		RateBurst:       cfg.Server.RateBurst,
		Report: output.Options{
			Title:     cfg.Output.ReportTitle,
			ShowNotes: cfg.Output.ShowNotes,
		},
		Version: version,
	}
}

// Adapter is the HTTP adapter
type Adapter struct {
	registry *calculator.Registry
	config   *Config
	logger   *zap.Logger
	limiter  *IPRateLimiter
	server   *http.Server
}

// New creates a new HTTP adapter. A nil config or logger selects defaults.
func New(reg *calculator.Registry, cfg *Config, logger *zap.Logger) *Adapter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logging.Named("http")
	}

	a := &Adapter{
		registry: reg,
		config:   cfg,
		logger:   logger,
	}
	if cfg.RateLimit > 0 {
		a.limiter = NewIPRateLimiter(cfg.RateLimit, cfg.RateBurst)
	}
	return a
}

// apiPrefix is the versioned root of every API route
const apiPrefix = "/api/v1"

// Router returns the HTTP handler
func (a *Adapter) Router() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(a.handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(a.handleMethodNotAllowed)

	r.HandleFunc("/health", a.handleHealth).Methods(http.MethodGet)

	// Routes live on the root router so a wrong method answers 405, which a
	// PathPrefix subrouter reports as 404.
	r.HandleFunc(apiPrefix+"/tools", a.handleListTools).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/tools/{tool}", a.handleDescribeTool).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/tools/{tool}/calculate", a.handleCalculate).Methods(http.MethodPost)
	r.HandleFunc(apiPrefix+"/batch", a.handleBatch).Methods(http.MethodPost)
	r.HandleFunc(apiPrefix+"/report/{format}", a.handleReport).Methods(http.MethodPost)

	var handler http.Handler = r
	if a.limiter != nil {
		handler = a.limiter.Middleware(handler)
	}
	handler = a.corsMiddleware(handler)
	handler = a.recoveryMiddleware(handler)
	handler = a.loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)

	return handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (a *Adapter) ListenAndServe(ctx context.Context) error {
	a.server = &http.Server{
		Addr:         a.config.Address,
		Handler:      a.Router(),
		ReadTimeout:  a.config.ReadTimeout,
		WriteTimeout: a.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.ListenAndServe()
	}()

	a.logger.Info("listening", zap.String("address", a.config.Address))

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down", zap.Duration("timeout", a.config.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down the server
func (a *Adapter) Shutdown(ctx context.Context) error {
	if a.server != nil {
		return a.server.Shutdown(ctx)
	}
	return nil
}
