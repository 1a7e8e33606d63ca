// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibgraph/internal/catalog"
	"github.com/pdiddy/bibgraph/pkg/types"
)

// Export is the file layout written by ExportYAML and ExportJSON.
type Export struct {
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Count       int               `json:"count" yaml:"count"`
	Partial     bool              `json:"partial,omitempty" yaml:"partial,omitempty"`
	Documents   []types.Document  `json:"documents" yaml:"documents"`
	Failures    []catalog.Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

func newExport(res catalog.ExtractResult) Export {
	docs := res.Documents
	if docs == nil {
		docs = []types.Document{}
	}
	return Export{
		GeneratedAt: time.Now().UTC(),
		Count:       len(docs),
		Partial:     res.Partial,
		Documents:   docs,
		Failures:    res.Failures,
	}
}

// ExportYAML writes the extracted documents to dir/export.yaml and
// returns the file path.
func ExportYAML(dir string, res catalog.ExtractResult) (string, error) {
	data, err := yaml.Marshal(newExport(res))
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeExport(dir, "export.yaml", data)
}

// ExportJSON writes the extracted documents to dir/export.json and
// returns the file path.
func ExportJSON(dir string, res catalog.ExtractResult) (string, error) {
	data, err := json.MarshalIndent(newExport(res), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeExport(dir, "export.json", data)
}

func writeExport(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
