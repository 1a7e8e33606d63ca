// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns graph identifiers into display text. Resolution
// never fails: an identifier with no label doubles as its own label.
package resolve

import "github.com/pdiddy/bibgraph/internal/graph"

// Label returns the rdfs:label of id, or the text of id itself when the
// store has no label for it.
func Label(g graph.Graph, id graph.IRI) string {
	if label, ok := graph.First(g, id, graph.RDFSLabel); ok {
		return label.String()
	}
	return id.String()
}

// Reference returns the title of id when id is a Document with a title,
// and Label(g, id) otherwise. References may point at a full record
// elsewhere in the graph or at an entity the catalog knows nothing about.
func Reference(g graph.Graph, id graph.IRI) string {
	if graph.IsDocument(g, id) {
		if title, ok := graph.First(g, id, graph.HasTitle); ok {
			return title.String()
		}
	}
	return Label(g, id)
}

// Labels maps every object of (subject, predicate, ?) through fn in
// retrieval order. Literal objects are used as-is. The result is never
// nil, so records encode an empty list rather than null.
func Labels(g graph.Graph, subject, predicate graph.IRI, fn func(graph.Graph, graph.IRI) string) []string {
	out := []string{}
	for o := range g.Objects(subject, predicate) {
		switch v := o.(type) {
		case graph.IRI:
			out = append(out, fn(g, v))
		default:
			out = append(out, v.String())
		}
	}
	return out
}
