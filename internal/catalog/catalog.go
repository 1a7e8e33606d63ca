// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog projects Document entities in the graph into
// denormalized Document records.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pdiddy/bibgraph/internal/graph"
	"github.com/pdiddy/bibgraph/internal/resolve"
	"github.com/pdiddy/bibgraph/pkg/types"
)

// ErrMalformedLiteral marks a fact whose value cannot be read as the type
// its predicate requires, such as a non-integer citation count.
var ErrMalformedLiteral = errors.New("malformed literal")

// Failure records a document that could not be built.
type Failure struct {
	ID  string `json:"id" yaml:"id"`
	Err string `json:"error" yaml:"error"`
}

// ExtractResult is the outcome of one extraction pass. Partial is set
// when at least one document was skipped; Documents then holds every
// record that could be built.
type ExtractResult struct {
	Documents []types.Document
	Partial   bool
	Failures  []Failure
}

// Extractor builds Document records from a graph.
type Extractor struct {
	graph  graph.Graph
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor returns an Extractor reading from g.
func NewExtractor(g graph.Graph, opts ...Option) *Extractor {
	e := &Extractor{graph: g, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns one record per distinct document, in the store's
// retrieval order, truncated to the first limit records when limit > 0.
// A document that fails to build is skipped and reported in the result;
// Extract itself never fails.
func (e *Extractor) Extract(limit int) ExtractResult {
	var res ExtractResult

	for id := range graph.Documents(e.graph) {
		if limit > 0 && len(res.Documents) >= limit {
			break
		}
		doc, err := Build(e.graph, id)
		if err != nil {
			e.logger.Warn("skipping document", "id", id, "error", err)
			res.Partial = true
			res.Failures = append(res.Failures, Failure{ID: id.String(), Err: err.Error()})
			continue
		}
		res.Documents = append(res.Documents, doc)
	}

	e.logger.Debug("documents extracted", "count", len(res.Documents), "failed", len(res.Failures))
	return res
}

// Build projects a single document's facts into a record. Authors and
// concepts go through the label resolver, references through the
// reference resolver. The only failure is a malformed citation count.
func Build(g graph.Graph, id graph.IRI) (types.Document, error) {
	doc := types.Document{
		ID:         id.String(),
		Title:      text(g, id, graph.HasTitle, types.NoTitle),
		Abstract:   text(g, id, graph.HasAbstract, types.NoAbstract),
		Year:       text(g, id, graph.HasYear, types.UnknownYear),
		DOI:        text(g, id, graph.HasDOI, ""),
		Authors:    resolve.Labels(g, id, graph.HasAuthor, resolve.Label),
		Concepts:   resolve.Labels(g, id, graph.HasConcept, resolve.Label),
		References: resolve.Labels(g, id, graph.HasReference, resolve.Reference),
	}

	count, err := citationCount(g, id, len(doc.References))
	if err != nil {
		return types.Document{}, fmt.Errorf("building %s: %w", id, err)
	}
	doc.CitationCount = count

	return doc, nil
}

// text reads a single-valued field. An empty lexical form counts as
// absent.
func text(g graph.Graph, id, predicate graph.IRI, fallback string) string {
	v, ok := graph.First(g, id, predicate)
	if !ok || v.String() == "" {
		return fallback
	}
	return v.String()
}

// citationCount renders the recorded hasCitations value, or the number
// of references when the document has none.
func citationCount(g graph.Graph, id graph.IRI, references int) (string, error) {
	v, ok := graph.First(g, id, graph.HasCitations)
	if !ok {
		return strconv.Itoa(references), nil
	}

	lit, isLit := v.(graph.Literal)
	if !isLit {
		return "", fmt.Errorf("%w: hasCitations is %s, not a literal", ErrMalformedLiteral, v)
	}
	n, err := strconv.Atoi(strings.TrimSpace(lit.Value))
	if err != nil {
		return "", fmt.Errorf("%w: hasCitations %q is not an integer", ErrMalformedLiteral, lit.Value)
	}
	return strconv.Itoa(n), nil
}
