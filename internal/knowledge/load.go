// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/bibgraph/internal/graph"
	"github.com/pdiddy/bibgraph/internal/rdfxml"
)

// ErrUnsupportedFormat is returned for a graph path whose extension is
// neither a SQLite snapshot nor RDF/XML.
var ErrUnsupportedFormat = errors.New("unsupported graph format")

// Format names a graph file format, derived from the file extension.
type Format string

const (
	FormatSQLite Format = "sqlite"
	FormatRDFXML Format = "rdfxml"
)

// FormatOf returns the format of a graph file by extension: .db, .sqlite
// and .sqlite3 are snapshots; .xml, .rdf and .owl are RDF/XML.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	case ".xml", ".rdf", ".owl":
		return FormatRDFXML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// LoadGraph reads the graph at path into memory. The file must exist; a
// missing snapshot is an error rather than an empty graph.
func LoadGraph(ctx context.Context, path string) (*graph.Memory, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}

	switch format {
	case FormatSQLite:
		store, err := NewStore(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadGraph(ctx)
	default:
		return ReadRDFXML(path)
	}
}

// ReadRDFXML decodes an RDF/XML file into a graph. Repeated facts collapse.
func ReadRDFXML(path string) (*graph.Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	triples, err := rdfxml.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return graph.FromTriples(triples), nil
}

// WriteRDFXML writes g to path as RDF/XML, creating the parent directory.
func WriteRDFXML(path string, g *graph.Memory) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := rdfxml.Encode(f, g.Triples()); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
