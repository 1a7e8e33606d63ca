// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"iter"
	"strings"
)

// First returns one object of (subject, predicate, ?) for predicates that
// are meant to be single-valued. When the store holds several, the winner
// does not depend on retrieval order: literals sort before IRIs, then by
// lexical value, then by datatype.
func First(g Graph, subject, predicate IRI) (Term, bool) {
	var (
		best  Term
		found bool
	)
	for o := range g.Objects(subject, predicate) {
		if !found || termLess(o, best) {
			best = o
			found = true
		}
	}
	return best, found
}

func termLess(a, b Term) bool {
	al, aLit := a.(Literal)
	bl, bLit := b.(Literal)
	if aLit != bLit {
		return aLit
	}
	if c := strings.Compare(a.String(), b.String()); c != 0 {
		return c < 0
	}
	if aLit {
		return al.Datatype < bl.Datatype
	}
	return false
}

// IsA reports whether (id, rdf:type, class) holds.
func IsA(g Graph, id, class IRI) bool {
	return g.Contains(Triple{Subject: id, Predicate: RDFType, Object: class})
}

// IsDocument reports whether id has at least one rdf:type Document fact.
func IsDocument(g Graph, id IRI) bool {
	return IsA(g, id, ClassDocument)
}

// Documents yields every subject typed Document, each at most once, in
// the store's retrieval order. Stores that repeat a subject are tolerated.
func Documents(g Graph) iter.Seq[IRI] {
	return func(yield func(IRI) bool) {
		seen := make(map[IRI]struct{})
		for doc := range g.Subjects(RDFType, ClassDocument) {
			if _, ok := seen[doc]; ok {
				continue
			}
			seen[doc] = struct{}{}
			if !yield(doc) {
				return
			}
		}
	}
}
