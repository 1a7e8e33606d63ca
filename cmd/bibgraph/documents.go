// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibgraph/internal/catalog"
	"github.com/pdiddy/bibgraph/internal/graph"
	"github.com/pdiddy/bibgraph/internal/knowledge"
	"github.com/pdiddy/bibgraph/internal/search"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List document records from the graph",
	Long: `Documents loads the graph and prints one record per distinct document,
in the order the graph stores them. Documents with malformed facts are
skipped and reported on stderr.`,
	RunE: runDocuments,
}

func runDocuments(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	g, err := loadGraph(cmd.Context())
	if err != nil {
		return err
	}

	res := catalog.NewExtractor(g).Extract(limit)
	if res.Partial {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d document(s) skipped\n", len(res.Failures))
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return search.FormatJSON(out, res.Documents)
	}
	search.FormatTable(out, res.Documents)
	return nil
}

// loadGraph loads the configured graph. Query commands cannot run
// without one, so any failure is returned to the caller.
func loadGraph(ctx context.Context) (*graph.Memory, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	path := loadConfig().Graph.Path
	g, err := knowledge.LoadGraph(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading graph %s: %w", path, err)
	}
	slog.Debug("graph loaded", "path", path, "facts", g.Len())
	return g, nil
}

func init() {
	documentsCmd.Flags().Int("limit", 0, "maximum documents to list (0 = all)")
	documentsCmd.Flags().Bool("json", false, "output records as JSON")

	rootCmd.AddCommand(documentsCmd)
}
