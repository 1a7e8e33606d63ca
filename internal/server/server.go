// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes document listing and search over HTTP as JSON.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/bibgraph/internal/catalog"
	"github.com/pdiddy/bibgraph/internal/graph"
	"github.com/pdiddy/bibgraph/internal/search"
	"github.com/pdiddy/bibgraph/pkg/types"
)

// SearchFailedMessage is the body text returned when a search fails.
const SearchFailedMessage = "An error occurred while processing your search request."

const (
	defaultAddr     = ":8080"
	defaultLimit    = 10
	shutdownTimeout = 10 * time.Second
)

// Server serves the catalog of one graph.
type Server struct {
	cfg       types.ServerConfig
	extractor *catalog.Extractor
	engine    *search.Engine
	logger    *slog.Logger
	metrics   *metrics
	router    *gin.Engine
}

// Option configures a Server.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	workers int
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWorkers sets the search engine's worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// New builds a Server over g. Zero config values take defaults.
func New(g graph.Graph, cfg types.ServerConfig, opts ...Option) *Server {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = defaultLimit
	}

	s := &Server{
		cfg:       cfg,
		extractor: catalog.NewExtractor(g, catalog.WithLogger(o.logger)),
		engine:    search.NewEngine(g, search.WithWorkers(o.workers), search.WithLogger(o.logger)),
		logger:    o.logger,
		metrics:   newMetrics(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.logger, s.metrics))

	r.GET("/", s.handleIndex)
	r.GET("/documents", s.handleDocuments)
	r.GET("/search", s.handleSearch)
	r.GET("/healthz", s.handleHealthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))
	return r
}

func (s *Server) handleIndex(c *gin.Context) {
	res := s.extract(s.cfg.DefaultLimit)
	c.JSON(http.StatusOK, gin.H{"documents": res.Documents})
}

func (s *Server) handleDocuments(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid limit %q", v)})
			return
		}
		limit = n
	}

	res := s.extract(limit)
	c.JSON(http.StatusOK, gin.H{"documents": res.Documents, "partial": res.Partial})
}

func (s *Server) extract(limit int) catalog.ExtractResult {
	res := s.extractor.Extract(limit)
	if res.Partial {
		s.metrics.partial.Inc()
	}
	if res.Documents == nil {
		res.Documents = []types.Document{}
	}
	return res
}

func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("query")
	mode := c.Query("type")

	start := time.Now()
	results, err := s.engine.Search(c.Request.Context(), query, mode)
	label := modeLabel(search.NewQuery(query, mode).Mode)
	if err != nil {
		s.metrics.searchDuration.WithLabelValues(label, "error").Observe(time.Since(start).Seconds())
		s.logger.Error("search failed",
			"request_id", c.GetString(requestIDKey), "query", query, "type", mode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": SearchFailedMessage})
		return
	}
	s.metrics.searchDuration.WithLabelValues(label, "ok").Observe(time.Since(start).Seconds())
	s.metrics.searchResults.Observe(float64(len(results)))

	if results == nil {
		results = []types.Document{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Run serves on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
