// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bibgraph/internal/graph"
	"github.com/pdiddy/bibgraph/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- test helpers ---

func iri(local string) graph.IRI { return graph.IRI(graph.NSEx + local) }

func testGraph() *graph.Memory {
	add := func(g *graph.Memory, s, p graph.IRI, o graph.Term) {
		g.Add(graph.Triple{Subject: s, Predicate: p, Object: o})
	}
	g := graph.NewMemory()

	add(g, iri("ada_lovelace"), graph.RDFType, graph.ClassAuthor)
	add(g, iri("ada_lovelace"), graph.RDFSLabel, graph.NewString("Ada Lovelace"))
	add(g, iri("computing"), graph.RDFType, graph.ClassConcept)
	add(g, iri("computing"), graph.RDFSLabel, graph.NewString("Computing"))

	add(g, iri("notes"), graph.RDFType, graph.ClassDocument)
	add(g, iri("notes"), graph.HasTitle, graph.NewString("Notes on the Analytical Engine"))
	add(g, iri("notes"), graph.HasAuthor, iri("ada_lovelace"))
	add(g, iri("notes"), graph.HasConcept, iri("computing"))
	add(g, iri("notes"), graph.HasDOI, graph.NewString("10.1/notes"))

	add(g, iri("computable"), graph.RDFType, graph.ClassDocument)
	add(g, iri("computable"), graph.HasTitle, graph.NewString("On Computable Numbers"))
	add(g, iri("computable"), graph.HasYear, graph.NewInteger(1936))
	return g
}

func newTestServer(t *testing.T, g graph.Graph, cfg types.ServerConfig) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(g, cfg, WithLogger(logger), WithWorkers(2))
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

type documentsBody struct {
	Documents []types.Document `json:"documents"`
	Partial   bool             `json:"partial"`
}

type resultsBody struct {
	Results []types.Document `json:"results"`
	Error   string           `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// --- routes ---

func TestIndexUsesDefaultLimit(t *testing.T) {
	s := newTestServer(t, testGraph(), types.ServerConfig{DefaultLimit: 1})

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[documentsBody](t, rec)
	require.Len(t, body.Documents, 1)
	assert.Equal(t, "Notes on the Analytical Engine", body.Documents[0].Title)
}

func TestDocuments(t *testing.T) {
	s := newTestServer(t, testGraph(), types.ServerConfig{})

	tests := []struct {
		name   string
		target string
		status int
		count  int
	}{
		{"all", "/documents", http.StatusOK, 2},
		{"limited", "/documents?limit=1", http.StatusOK, 1},
		{"zero means all", "/documents?limit=0", http.StatusOK, 2},
		{"not a number", "/documents?limit=ten", http.StatusBadRequest, 0},
		{"negative", "/documents?limit=-1", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			require.Equal(t, tt.status, rec.Code)
			if tt.status != http.StatusOK {
				return
			}
			body := decode[documentsBody](t, rec)
			assert.Len(t, body.Documents, tt.count)
			assert.False(t, body.Partial)
		})
	}
}

func TestDocumentsPartial(t *testing.T) {
	g := testGraph()
	g.Add(graph.Triple{Subject: iri("computable"), Predicate: graph.HasCitations, Object: graph.NewString("many")})
	s := newTestServer(t, g, types.ServerConfig{})

	rec := get(t, s, "/documents")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[documentsBody](t, rec)
	assert.True(t, body.Partial)
	require.Len(t, body.Documents, 1)
	assert.Equal(t, iri("notes").String(), body.Documents[0].ID)
}

func TestSearch(t *testing.T) {
	s := newTestServer(t, testGraph(), types.ServerConfig{})

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"author mode", "/search?query=Ada+Lovelace&type=author", []string{"Notes on the Analytical Engine"}},
		{"author in concept mode", "/search?query=ada+lovelace&type=concept", []string{}},
		{"title substring", "/search?query=computable", []string{"On Computable Numbers"}},
		{"doi in any mode", "/search?query=10.1/notes&type=author", []string{"Notes on the Analytical Engine"}},
		{"empty query", "/search?query=++", []string{}},
		{"no query", "/search", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)

			body := decode[resultsBody](t, rec)
			require.NotNil(t, body.Results, "results must encode as a list")
			titles := []string{}
			for _, d := range body.Results {
				titles = append(titles, d.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestSearchFailure(t *testing.T) {
	g := testGraph()
	g.Add(graph.Triple{Subject: iri("computable"), Predicate: graph.HasCitations, Object: iri("not_a_number")})
	s := newTestServer(t, g, types.ServerConfig{})

	rec := get(t, s, "/search?query=notes")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decode[resultsBody](t, rec)
	assert.Equal(t, SearchFailedMessage, body.Error)
	assert.Nil(t, body.Results)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, graph.NewMemory(), types.ServerConfig{})
	rec := get(t, s, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok": true}`, rec.Body.String())
}

func TestEmptyGraphListsNothing(t *testing.T) {
	s := newTestServer(t, graph.NewMemory(), types.ServerConfig{})
	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"documents": []}`, rec.Body.String())
}

// --- middleware ---

func TestRequestID(t *testing.T) {
	s := newTestServer(t, graph.NewMemory(), types.ServerConfig{})

	rec := get(t, s, "/healthz")
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err, "generated request ID is a UUID")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, testGraph(), types.ServerConfig{})
	get(t, s, "/search?query=ada+lovelace&type=author")
	get(t, s, "/missing")

	rec := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, `bibgraph_http_requests_total{method="GET",route="/search",status="200"} 1`)
	assert.Contains(t, out, `bibgraph_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, out, `bibgraph_search_duration_seconds_count{mode="author",outcome="ok"} 1`)
}

func TestModeLabel(t *testing.T) {
	assert.Equal(t, "author", modeLabel("author"))
	assert.Equal(t, "none", modeLabel(""))
	assert.Equal(t, "other", modeLabel("title"))
}
