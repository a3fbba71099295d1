// Package server exposes the fuzzy matcher over HTTP: health, corpus
// loading, BK-tree and linear search, benchmark comparison, and record
// export.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/hupe1980/bkgo"
	"github.com/hupe1980/bkgo/blobstore"
	"github.com/hupe1980/bkgo/corpus"
)

// Config holds server configuration.
type Config struct {
	// TermBlobs are the blob names loaded by POST /load.
	TermBlobs []string

	// CorpusOptions configures term extraction from the blobs.
	CorpusOptions corpus.Options

	// SearchRPS rate-limits the search endpoints per client IP.
	// Zero disables rate limiting.
	SearchRPS float64
}

// Server wires the matcher to the HTTP API.
type Server struct {
	matcher *bkgo.Matcher
	store   blobstore.Store
	cfg     Config
	logger  *slog.Logger
	echo    *echo.Echo
}

// NewServer creates a server around an existing matcher. The matcher
// may already be populated (e.g. from a prebuilt artifact); POST /load
// replaces its contents from the configured term blobs.
func NewServer(matcher *bkgo.Matcher, store blobstore.Store, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		matcher: matcher,
		store:   store,
		cfg:     cfg,
		logger:  logger,
	}
	s.echo = s.buildEcho()
	return s
}

func (s *Server) buildEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		}
		s.logger.Warn("HTTP request error", "status", code, "path", ctx.Path(), "err", err)
		if !ctx.Response().Committed {
			_ = ctx.JSON(code, map[string]string{"error": msg})
		}
	}

	search := e.Group("")
	if s.cfg.SearchRPS > 0 {
		search.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(s.cfg.SearchRPS))))
	}

	e.GET("/healthz", s.handleHealth)
	e.POST("/load", s.handleLoad)
	search.POST("/search/bktree", s.handleSearchBKTree)
	search.POST("/search/linear", s.handleSearchLinear)
	e.POST("/benchmarks/run", s.handleBenchmark)
	e.GET("/export", s.handleExport)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

// RunAPI starts the HTTP listener and blocks until shutdown.
func (s *Server) RunAPI(listen string) error {
	s.logger.Info("starting fuzzy match API", "listen", listen)
	return s.echo.Start(listen)
}

// Shutdown stops the HTTP listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
