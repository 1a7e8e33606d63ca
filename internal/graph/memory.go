// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"iter"
	"slices"
	"sync"
)

// Graph is the read side of a triple store. Sequences are lazy and carry
// no ordering promise across implementations; a pattern that matches
// nothing yields an empty sequence.
type Graph interface {
	// Subjects yields every s with (s, predicate, object) in the store.
	Subjects(predicate IRI, object Term) iter.Seq[IRI]

	// Objects yields every o with (subject, predicate, o) in the store.
	Objects(subject, predicate IRI) iter.Seq[Term]

	// Contains reports whether the exact fact is in the store.
	Contains(t Triple) bool
}

type poKey struct {
	predicate IRI
	object    Term
}

type spKey struct {
	subject   IRI
	predicate IRI
}

// Memory is an in-memory Graph. It is a set: adding a fact twice stores
// it once. Index buckets keep insertion order, so retrieval order is
// stable for the lifetime of the store.
//
// Memory is safe for concurrent readers. Writers are serialized by the
// lock and a reader sees a bucket either before or after an Add.
type Memory struct {
	mu    sync.RWMutex
	facts map[Triple]struct{}
	order []Triple
	sp    map[spKey][]Term
	po    map[poKey][]IRI
}

var _ Graph = (*Memory)(nil)

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		facts: make(map[Triple]struct{}),
		sp:    make(map[spKey][]Term),
		po:    make(map[poKey][]IRI),
	}
}

// FromTriples builds a store from ts, dropping duplicates.
func FromTriples(ts []Triple) *Memory {
	m := NewMemory()
	for _, t := range ts {
		m.Add(t)
	}
	return m
}

// Add inserts t and reports whether it was new. Adding an existing fact
// is a no-op.
func (m *Memory) Add(t Triple) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.facts[t]; ok {
		return false
	}
	m.facts[t] = struct{}{}
	m.order = append(m.order, t)

	sk := spKey{t.Subject, t.Predicate}
	m.sp[sk] = append(m.sp[sk], t.Object)

	pk := poKey{t.Predicate, t.Object}
	m.po[pk] = append(m.po[pk], t.Subject)
	return true
}

// Len returns the number of distinct facts.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// Subjects implements Graph. The bucket is copied under the read lock and
// the lock is released before yielding, so the caller may query the store
// from inside the loop.
func (m *Memory) Subjects(predicate IRI, object Term) iter.Seq[IRI] {
	return func(yield func(IRI) bool) {
		m.mu.RLock()
		subjects := slices.Clone(m.po[poKey{predicate, object}])
		m.mu.RUnlock()

		for _, s := range subjects {
			if !yield(s) {
				return
			}
		}
	}
}

// Objects implements Graph.
func (m *Memory) Objects(subject, predicate IRI) iter.Seq[Term] {
	return func(yield func(Term) bool) {
		m.mu.RLock()
		objects := slices.Clone(m.sp[spKey{subject, predicate}])
		m.mu.RUnlock()

		for _, o := range objects {
			if !yield(o) {
				return
			}
		}
	}
}

// Contains implements Graph.
func (m *Memory) Contains(t Triple) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.facts[t]
	return ok
}

// Triples yields every fact in insertion order.
func (m *Memory) Triples() iter.Seq[Triple] {
	return func(yield func(Triple) bool) {
		m.mu.RLock()
		all := slices.Clone(m.order)
		m.mu.RUnlock()

		for _, t := range all {
			if !yield(t) {
				return
			}
		}
	}
}
