// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph holds the in-memory triple store that every query runs
// against, the RDF vocabulary the catalog understands, and the lookup
// helpers shared by resolution, extraction and search.
package graph

import "fmt"

// Term is the object position of a triple: either an IRI or a Literal.
// Both implementations are comparable, so a Term can key a map.
type Term interface {
	// String returns the lexical form of the term.
	String() string

	isTerm()
}

// IRI identifies an entity. Two IRIs are equal iff their text is equal.
type IRI string

func (i IRI) String() string { return string(i) }

func (IRI) isTerm() {}

// Literal is a scalar value. Datatype is empty for untyped text.
type Literal struct {
	Value    string
	Datatype IRI
}

func (l Literal) String() string { return l.Value }

func (Literal) isTerm() {}

// NewString returns an untyped text literal.
func NewString(s string) Literal {
	return Literal{Value: s}
}

// NewInteger returns an xsd:integer literal.
func NewInteger(n int) Literal {
	return Literal{Value: fmt.Sprintf("%d", n), Datatype: XSDInteger}
}

// Triple is a single subject–predicate–object fact.
type Triple struct {
	Subject   IRI
	Predicate IRI
	Object    Term
}

func (t Triple) String() string {
	switch o := t.Object.(type) {
	case Literal:
		if o.Datatype != "" {
			return fmt.Sprintf("<%s> <%s> %q^^<%s>", t.Subject, t.Predicate, o.Value, o.Datatype)
		}
		return fmt.Sprintf("<%s> <%s> %q", t.Subject, t.Predicate, o.Value)
	default:
		return fmt.Sprintf("<%s> <%s> <%s>", t.Subject, t.Predicate, t.Object)
	}
}

// IsLiteral reports whether t is a Literal.
func IsLiteral(t Term) bool {
	_, ok := t.(Literal)
	return ok
}
