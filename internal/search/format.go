// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/bibgraph/pkg/types"
)

// FormatTable writes documents as a human-readable table to w.
func FormatTable(w io.Writer, docs []types.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-7s  %-9s  %s\n",
		"#", "Title", "Authors", "Year", "Citations", "DOI")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, d := range docs {
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-7s  %-9s  %s\n",
			i+1, truncate(d.Title, 60), formatAuthors(d.Authors), d.Year, d.CitationCount, d.DOI)
	}

	fmt.Fprintf(w, "\n%d results\n", len(docs))
}

// FormatJSON writes documents as indented JSON to w.
func FormatJSON(w io.Writer, docs []types.Document) error {
	if docs == nil {
		docs = []types.Document{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
