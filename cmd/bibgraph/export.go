// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibgraph/internal/catalog"
	"github.com/pdiddy/bibgraph/internal/knowledge"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export document records to YAML or JSON",
	Long: `Export writes every document record in the graph to export.yaml or
export.json in the output directory. Documents that cannot be built are
listed under failures.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	dir, _ := cmd.Flags().GetString("dir")

	g, err := loadGraph(cmd.Context())
	if err != nil {
		return err
	}
	res := catalog.NewExtractor(g).Extract(0)

	var path string
	switch format {
	case "yaml", "":
		path, err = knowledge.ExportYAML(dir, res)
	case "json":
		path, err = knowledge.ExportJSON(dir, res)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d documents to %s\n", len(res.Documents), path)
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("dir", "knowledge/index", "output directory")

	rootCmd.AddCommand(exportCmd)
}
