// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/bibgraph/internal/graph"
)

const (
	ada     graph.IRI = graph.NSEx + "ada_lovelace"
	paper   graph.IRI = graph.NSEx + "paper-1"
	cited   graph.IRI = graph.NSEx + "10.1_xyz"
	unknown graph.IRI = graph.NSEx + "nobody"
)

func TestLabel(t *testing.T) {
	g := graph.FromTriples([]graph.Triple{
		{Subject: ada, Predicate: graph.RDFSLabel, Object: graph.NewString("Ada Lovelace")},
	})

	tests := []struct {
		name string
		id   graph.IRI
		want string
	}{
		{"labelled identifier", ada, "Ada Lovelace"},
		{"unlabelled identifier falls back to its text", unknown, string(unknown)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(g, tt.id))
		})
	}
}

func TestLabelRoundTrip(t *testing.T) {
	labelFact := graph.Triple{Subject: ada, Predicate: graph.RDFSLabel, Object: graph.NewString("Ada Lovelace")}

	with := graph.FromTriples([]graph.Triple{labelFact})
	assert.Equal(t, "Ada Lovelace", Label(with, ada))
	assert.Equal(t, Label(with, ada), Label(with, ada), "repeated calls agree")

	without := graph.NewMemory()
	assert.Equal(t, string(ada), Label(without, ada))
}

func TestReference(t *testing.T) {
	tests := []struct {
		name  string
		facts []graph.Triple
		id    graph.IRI
		want  string
	}{
		{
			name: "titled document prefers its title",
			facts: []graph.Triple{
				{Subject: paper, Predicate: graph.RDFType, Object: graph.ClassDocument},
				{Subject: paper, Predicate: graph.HasTitle, Object: graph.NewString("On Computable Numbers")},
				{Subject: paper, Predicate: graph.RDFSLabel, Object: graph.NewString("turing36")},
			},
			id:   paper,
			want: "On Computable Numbers",
		},
		{
			name: "untitled document falls back to label",
			facts: []graph.Triple{
				{Subject: cited, Predicate: graph.RDFType, Object: graph.ClassDocument},
				{Subject: cited, Predicate: graph.RDFSLabel, Object: graph.NewString("xyz")},
			},
			id:   cited,
			want: "xyz",
		},
		{
			name: "title without Document type is ignored",
			facts: []graph.Triple{
				{Subject: paper, Predicate: graph.HasTitle, Object: graph.NewString("Stray Title")},
			},
			id:   paper,
			want: string(paper),
		},
		{
			name: "unknown identifier falls back to its text",
			id:   unknown,
			want: string(unknown),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.FromTriples(tt.facts)
			assert.Equal(t, tt.want, Reference(g, tt.id))
		})
	}
}

func TestLabelsKeepsDistinctIdentifiersWithSameLabel(t *testing.T) {
	other := graph.IRI(graph.NSEx + "ada_lovelace_2")
	g := graph.FromTriples([]graph.Triple{
		{Subject: paper, Predicate: graph.HasAuthor, Object: ada},
		{Subject: paper, Predicate: graph.HasAuthor, Object: other},
		{Subject: ada, Predicate: graph.RDFSLabel, Object: graph.NewString("Ada Lovelace")},
		{Subject: other, Predicate: graph.RDFSLabel, Object: graph.NewString("Ada Lovelace")},
	})

	assert.Equal(t, []string{"Ada Lovelace", "Ada Lovelace"}, Labels(g, paper, graph.HasAuthor, Label))
}
