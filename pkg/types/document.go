// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the bibgraph
// packages: the denormalized Document record and configuration.
package types

// Default field values for documents whose facts are missing.
const (
	NoTitle     = "No Title"
	NoAbstract  = "No Abstract"
	UnknownYear = "Unknown"
)

// Document is the structured projection of one Document entity's facts,
// used for listing, search and export. Records are rebuilt from the graph
// on every request.
type Document struct {
	// ID is the document identifier. Records are deduplicated on it.
	ID string `json:"id" yaml:"id"`

	// Title defaults to NoTitle.
	Title string `json:"title" yaml:"title"`

	// Abstract defaults to NoAbstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Year is the publication year as text; defaults to UnknownYear.
	Year string `json:"year" yaml:"year"`

	// DOI is empty when the graph has none.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// CitationCount is the recorded citation count, or the number of
	// references when no count is recorded.
	CitationCount string `json:"citation_count" yaml:"citation_count"`

	// Authors lists resolved author labels in retrieval order.
	Authors []string `json:"authors" yaml:"authors"`

	// Concepts lists resolved concept labels in retrieval order.
	Concepts []string `json:"concepts" yaml:"concepts"`

	// References lists resolved reference text (cited title or label).
	References []string `json:"references" yaml:"references"`
}
