package server

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hupe1980/bkgo"
	"github.com/hupe1980/bkgo/bktree"
)

// SearchRequest is the body accepted by the search endpoints. MaxDist
// defaults to 1 when omitted.
type SearchRequest struct {
	Query   string `json:"query"`
	MaxDist *int   `json:"maxdist"`
}

func (r *SearchRequest) maxDist() int {
	if r.MaxDist == nil {
		return 1
	}
	return *r.MaxDist
}

// SearchResponse carries matches sorted by distance, then term.
type SearchResponse struct {
	Matches []bktree.Match `json:"matches"`
}

// HealthStatus reports liveness and load state.
type HealthStatus struct {
	Status string `json:"status"`
	Loaded bool   `json:"loaded"`
	Terms  int    `json:"terms"`
}

// LoadResponse reports the outcome of a corpus load.
type LoadResponse struct {
	Status  string `json:"status"`
	Terms   int    `json:"terms"`
	Lines   int    `json:"lines"`
	Skipped int    `json:"skipped"`
}

// BenchmarkResponse compares BK-tree search against a linear scan over
// the same queries.
type BenchmarkResponse struct {
	Queries      int     `json:"queries"`
	MaxDist      int     `json:"maxdist"`
	BKTreeSec    float64 `json:"bktree_sec"`
	LinearSec    float64 `json:"linear_sec"`
	SpeedupRatio float64 `json:"ratio_linear_over_bktree"`
}

func (s *Server) handleHealth(ctx echo.Context) error {
	n := s.matcher.Len()
	return ctx.JSON(http.StatusOK, HealthStatus{
		Status: "ok",
		Loaded: n > 0,
		Terms:  n,
	})
}

func (s *Server) handleLoad(ctx echo.Context) error {
	if len(s.cfg.TermBlobs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no term blobs configured")
	}

	start := time.Now()
	stats, err := s.matcher.LoadCorpus(ctx.Request().Context(), s.store, s.cfg.TermBlobs, s.cfg.CorpusOptions)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	termsLoaded.Set(float64(s.matcher.Len()))
	s.logger.Info("corpus loaded", "terms", s.matcher.Len(), "lines", stats.Lines, "elapsed", time.Since(start))

	return ctx.JSON(http.StatusOK, LoadResponse{
		Status:  "loaded",
		Terms:   s.matcher.Len(),
		Lines:   stats.Lines,
		Skipped: stats.Skipped,
	})
}

func (s *Server) handleSearchBKTree(ctx echo.Context) error {
	return s.handleSearch(ctx, "bktree", s.matcher.Search)
}

func (s *Server) handleSearchLinear(ctx echo.Context) error {
	return s.handleSearch(ctx, "linear", s.matcher.LinearSearch)
}

type searchFunc func(ctx context.Context, query string, maxDistance int) ([]bktree.Match, error)

func (s *Server) handleSearch(ctx echo.Context, engine string, fn searchFunc) error {
	var req SearchRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	start := time.Now()
	matches, err := fn(ctx.Request().Context(), req.Query, req.maxDist())
	searchDuration.WithLabelValues(engine).Observe(time.Since(start).Seconds())
	searchRequests.WithLabelValues(engine).Inc()

	if err != nil {
		switch {
		case errors.Is(err, bkgo.ErrNotLoaded):
			return echo.NewHTTPError(http.StatusInternalServerError, "Terms not loaded")
		case errors.Is(err, bkgo.ErrInvalidMaxDistance):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if matches == nil {
		matches = []bktree.Match{}
	}

	return ctx.JSON(http.StatusOK, SearchResponse{Matches: matches})
}

const benchmarkSample = 100

func (s *Server) handleBenchmark(ctx echo.Context) error {
	terms := s.matcher.Terms()
	if len(terms) == 0 {
		return echo.NewHTTPError(http.StatusInternalServerError, "Terms not loaded")
	}

	n := benchmarkSample
	if len(terms) < n {
		n = len(terms)
	}

	queries := make([]string, n)
	for i, j := range rand.Perm(len(terms))[:n] {
		queries[i] = terms[j]
	}

	const maxDist = 1
	reqCtx := ctx.Request().Context()

	start := time.Now()
	for _, q := range queries {
		if _, err := s.matcher.Search(reqCtx, q, maxDist); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	bkElapsed := time.Since(start)

	start = time.Now()
	for _, q := range queries {
		if _, err := s.matcher.LinearSearch(reqCtx, q, maxDist); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	linElapsed := time.Since(start)

	ratio := 0.0
	if bkElapsed > 0 {
		ratio = linElapsed.Seconds() / bkElapsed.Seconds()
	}

	return ctx.JSON(http.StatusOK, BenchmarkResponse{
		Queries:      n,
		MaxDist:      maxDist,
		BKTreeSec:    bkElapsed.Seconds(),
		LinearSec:    linElapsed.Seconds(),
		SpeedupRatio: ratio,
	})
}

func (s *Server) handleExport(ctx echo.Context) error {
	data, err := s.matcher.ExportRecords()
	if err != nil {
		if errors.Is(err, bkgo.ErrNotLoaded) {
			return echo.NewHTTPError(http.StatusInternalServerError, "Terms not loaded")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}
