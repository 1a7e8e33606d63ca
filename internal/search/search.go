// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search matches Document records against a query string and an
// optional search mode.
//
// Rules are applied in a fixed order and the first one that matches
// admits the document:
//
//  1. mode "author": an author label equals the query.
//  2. mode "concept": a concept label equals the query.
//  3. mode "reference" and a reference label equals the query, or, for
//     any mode, the DOI equals the query.
//  4. any other mode: an author, concept or reference label equals the
//     query, or the query occurs in the title.
//
// Label and title comparisons ignore case. The DOI comparison is against
// the normalized query as-is.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/bibgraph/internal/catalog"
	"github.com/pdiddy/bibgraph/internal/graph"
	"github.com/pdiddy/bibgraph/pkg/types"
)

// ErrSearchFailed is returned when a search is abandoned. It is distinct
// from an empty result, which means nothing matched.
var ErrSearchFailed = errors.New("search failed")

// Search modes. Any other value selects the general rule.
const (
	ModeAuthor    = "author"
	ModeConcept   = "concept"
	ModeReference = "reference"
)

const defaultWorkers = 4

// Engine searches the documents of one graph.
type Engine struct {
	graph   graph.Graph
	workers int
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets how many candidate records are built concurrently.
// Values below 1 keep the default.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine returns an Engine over g.
func NewEngine(g graph.Graph, opts ...Option) *Engine {
	e := &Engine{graph: g, workers: defaultWorkers, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Query is a normalized search request.
type Query struct {
	Text string
	Mode string
}

// NewQuery trims and lowercases text and mode.
func NewQuery(text, mode string) Query {
	return Query{
		Text: strings.ToLower(strings.TrimSpace(text)),
		Mode: strings.ToLower(strings.TrimSpace(mode)),
	}
}

// IsEmpty reports whether the query has no text to match.
func (q Query) IsEmpty() bool {
	return q.Text == ""
}

// Search returns every document matching query under mode, each at most
// once, in the store's retrieval order. An empty query returns no
// documents without reading the store. Every candidate is rebuilt from
// the graph; if any candidate cannot be built the whole search fails with
// an error wrapping ErrSearchFailed.
func (e *Engine) Search(ctx context.Context, query, mode string) ([]types.Document, error) {
	q := NewQuery(query, mode)
	if q.IsEmpty() {
		e.logger.Debug("empty search query")
		return nil, nil
	}

	var ids []graph.IRI
	for id := range graph.Documents(e.graph) {
		ids = append(ids, id)
	}

	candidates := make([]types.Document, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := catalog.Build(e.graph, id)
			if err != nil {
				return err
			}
			candidates[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.logger.Error("search aborted", "query", q.Text, "mode", q.Mode, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	results := filter(candidates, q)
	e.logger.Debug("search complete", "query", q.Text, "mode", q.Mode, "candidates", len(candidates), "results", len(results))
	return results, nil
}

// filter keeps the candidates that match q, deduplicated by ID.
func filter(candidates []types.Document, q Query) []types.Document {
	seen := make(map[string]struct{})
	var results []types.Document
	for _, doc := range candidates {
		if _, ok := seen[doc.ID]; ok {
			continue
		}
		if Match(doc, q) {
			seen[doc.ID] = struct{}{}
			results = append(results, doc)
		}
	}
	return results
}

// Match reports whether doc satisfies the first applicable rule for q.
// q must already be normalized.
func Match(doc types.Document, q Query) bool {
	if q.IsEmpty() {
		return false
	}
	switch {
	case q.Mode == ModeAuthor && anyEqual(doc.Authors, q.Text):
		return true
	case q.Mode == ModeConcept && anyEqual(doc.Concepts, q.Text):
		return true
	case q.Mode == ModeReference && anyEqual(doc.References, q.Text) || doc.DOI == q.Text:
		return true
	case isScoped(q.Mode):
		return false
	}

	return anyEqual(doc.Authors, q.Text) ||
		anyEqual(doc.Concepts, q.Text) ||
		anyEqual(doc.References, q.Text) ||
		strings.Contains(strings.ToLower(doc.Title), q.Text)
}

func isScoped(mode string) bool {
	return mode == ModeAuthor || mode == ModeConcept || mode == ModeReference
}

// anyEqual reports whether any label, lowercased, equals text.
func anyEqual(labels []string, text string) bool {
	for _, l := range labels {
		if strings.ToLower(l) == text {
			return true
		}
	}
	return false
}
