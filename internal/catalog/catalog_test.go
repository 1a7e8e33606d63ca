// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bibgraph/internal/graph"
	"github.com/pdiddy/bibgraph/pkg/types"
)

// --- test helpers ---

func iri(local string) graph.IRI { return graph.IRI(graph.NSEx + local) }

func typed(id, class graph.IRI) graph.Triple {
	return graph.Triple{Subject: id, Predicate: graph.RDFType, Object: class}
}

func fact(s, p graph.IRI, o graph.Term) graph.Triple {
	return graph.Triple{Subject: s, Predicate: p, Object: o}
}

func lit(s string) graph.Literal { return graph.NewString(s) }

// sampleGraph holds one fully described paper citing one titled document
// and one bare reference.
func sampleGraph() *graph.Memory {
	paper := iri("paper-1")
	cited := iri("paper-2")
	bare := iri("10.9_unknown")
	ada := iri("ada_lovelace")
	ml := iri("machine_learning")

	return graph.FromTriples([]graph.Triple{
		typed(paper, graph.ClassDocument),
		fact(paper, graph.HasTitle, lit("Notes on the Analytical Engine")),
		fact(paper, graph.HasAbstract, lit("A translation with notes.")),
		fact(paper, graph.HasYear, graph.NewInteger(1843)),
		fact(paper, graph.HasDOI, lit("10.1/xyz")),
		fact(paper, graph.HasAuthor, ada),
		fact(paper, graph.HasConcept, ml),
		fact(paper, graph.HasReference, cited),
		fact(paper, graph.HasReference, bare),
		typed(ada, graph.ClassAuthor),
		fact(ada, graph.RDFSLabel, lit("Ada Lovelace")),
		typed(ml, graph.ClassConcept),
		fact(ml, graph.RDFSLabel, lit("Machine Learning")),
		typed(cited, graph.ClassDocument),
		fact(cited, graph.HasTitle, lit("Sketch of the Analytical Engine")),
		fact(cited, graph.HasCitations, graph.NewInteger(12)),
		typed(bare, graph.ClassDocument),
	})
}

// --- Build ---

func TestBuildFullRecord(t *testing.T) {
	doc, err := Build(sampleGraph(), iri("paper-1"))
	require.NoError(t, err)

	assert.Equal(t, types.Document{
		ID:            string(iri("paper-1")),
		Title:         "Notes on the Analytical Engine",
		Abstract:      "A translation with notes.",
		Year:          "1843",
		DOI:           "10.1/xyz",
		CitationCount: "2",
		Authors:       []string{"Ada Lovelace"},
		Concepts:      []string{"Machine Learning"},
		References:    []string{"Sketch of the Analytical Engine", string(iri("10.9_unknown"))},
	}, doc)
}

func TestBuildDefaults(t *testing.T) {
	id := iri("empty")
	g := graph.FromTriples([]graph.Triple{
		typed(id, graph.ClassDocument),
		fact(id, graph.HasAbstract, lit("")),
	})

	doc, err := Build(g, id)
	require.NoError(t, err)

	assert.Equal(t, types.NoTitle, doc.Title)
	assert.Equal(t, types.NoAbstract, doc.Abstract, "empty literal counts as absent")
	assert.Equal(t, types.UnknownYear, doc.Year)
	assert.Empty(t, doc.DOI)
	assert.Equal(t, "0", doc.CitationCount)
	assert.Empty(t, doc.Authors)
	assert.Empty(t, doc.Concepts)
	assert.Empty(t, doc.References)
}

func TestBuildCitationCount(t *testing.T) {
	id := iri("p")
	refs := []graph.Triple{
		fact(id, graph.HasReference, iri("r1")),
		fact(id, graph.HasReference, iri("r2")),
	}

	tests := []struct {
		name    string
		facts   []graph.Triple
		want    string
		wantErr bool
	}{
		{
			name:  "recorded count wins over reference count",
			facts: append([]graph.Triple{fact(id, graph.HasCitations, graph.NewInteger(40))}, refs...),
			want:  "40",
		},
		{
			name:  "untyped numeric literal is accepted",
			facts: []graph.Triple{fact(id, graph.HasCitations, lit(" 7 "))},
			want:  "7",
		},
		{
			name:  "zero is a recorded count",
			facts: append([]graph.Triple{fact(id, graph.HasCitations, graph.NewInteger(0))}, refs...),
			want:  "0",
		},
		{
			name:  "falls back to the number of references",
			facts: refs,
			want:  "2",
		},
		{
			name:    "non-integer literal is malformed",
			facts:   []graph.Triple{fact(id, graph.HasCitations, lit("many"))},
			wantErr: true,
		},
		{
			name:    "identifier object is malformed",
			facts:   []graph.Triple{fact(id, graph.HasCitations, iri("count"))},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.FromTriples(append([]graph.Triple{typed(id, graph.ClassDocument)}, tt.facts...))
			doc, err := Build(g, id)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedLiteral)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.CitationCount)
		})
	}
}

func TestBuildAuthorWithoutLabelUsesIdentifier(t *testing.T) {
	id := iri("p")
	g := graph.FromTriples([]graph.Triple{
		typed(id, graph.ClassDocument),
		fact(id, graph.HasAuthor, iri("anonymous")),
	})

	doc, err := Build(g, id)
	require.NoError(t, err)
	assert.Equal(t, []string{string(iri("anonymous"))}, doc.Authors)
}

// --- Extract ---

func TestExtractOneRecordPerDocument(t *testing.T) {
	res := NewExtractor(sampleGraph()).Extract(0)

	require.False(t, res.Partial)
	require.Len(t, res.Documents, 3)

	seen := make(map[string]bool)
	for _, d := range res.Documents {
		assert.False(t, seen[d.ID], "duplicate record for %s", d.ID)
		seen[d.ID] = true
	}
}

func TestExtractCitationFallback(t *testing.T) {
	res := NewExtractor(sampleGraph()).Extract(0)

	byID := make(map[string]types.Document)
	for _, d := range res.Documents {
		byID[d.ID] = d
	}
	assert.Equal(t, "2", byID[string(iri("paper-1"))].CitationCount)
	assert.Equal(t, "12", byID[string(iri("paper-2"))].CitationCount)
	assert.Equal(t, "0", byID[string(iri("10.9_unknown"))].CitationCount)
}

func TestExtractLimitIsPrefix(t *testing.T) {
	var facts []graph.Triple
	for i := 0; i < 7; i++ {
		id := iri(fmt.Sprintf("doc-%d", i))
		facts = append(facts, typed(id, graph.ClassDocument), fact(id, graph.HasTitle, lit(fmt.Sprintf("Title %d", i))))
	}
	ex := NewExtractor(graph.FromTriples(facts))
	all := ex.Extract(0).Documents
	require.Len(t, all, 7)

	for _, k := range []int{1, 3, 7, 20} {
		t.Run(fmt.Sprintf("limit=%d", k), func(t *testing.T) {
			got := ex.Extract(k).Documents
			assert.Equal(t, all[:min(k, len(all))], got)
		})
	}
}

// duplicatingGraph yields every subject and object twice.
type duplicatingGraph struct{ *graph.Memory }

func (d duplicatingGraph) Subjects(p graph.IRI, o graph.Term) iter.Seq[graph.IRI] {
	return func(yield func(graph.IRI) bool) {
		for s := range d.Memory.Subjects(p, o) {
			if !yield(s) || !yield(s) {
				return
			}
		}
	}
}

func TestExtractToleratesDuplicateTypeFacts(t *testing.T) {
	res := NewExtractor(duplicatingGraph{sampleGraph()}).Extract(0)
	assert.Len(t, res.Documents, 3)
}

func TestExtractSkipsMalformedDocument(t *testing.T) {
	good1, bad, good2 := iri("good-1"), iri("bad"), iri("good-2")
	g := graph.FromTriples([]graph.Triple{
		typed(good1, graph.ClassDocument),
		typed(bad, graph.ClassDocument),
		fact(bad, graph.HasCitations, lit("n/a")),
		typed(good2, graph.ClassDocument),
	})

	res := NewExtractor(g).Extract(0)

	assert.True(t, res.Partial)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, string(bad), res.Failures[0].ID)
	require.Len(t, res.Documents, 2)
	assert.Equal(t, string(good1), res.Documents[0].ID)
	assert.Equal(t, string(good2), res.Documents[1].ID)
}

func TestExtractEmptyGraph(t *testing.T) {
	res := NewExtractor(graph.NewMemory()).Extract(10)
	assert.Empty(t, res.Documents)
	assert.False(t, res.Partial)
}
