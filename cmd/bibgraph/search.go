// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibgraph/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search documents by author, concept, reference, DOI or title",
	Long: `Search matches documents against a query. With --type author, concept or
reference the query must equal a label of that kind. Without --type it may
equal any author, concept or reference label, or occur in the title. A query
equal to a document's DOI matches in every mode. Matching ignores case.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	mode, _ := cmd.Flags().GetString("type")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	query := strings.Join(args, " ")

	g, err := loadGraph(cmd.Context())
	if err != nil {
		return err
	}

	engine := search.NewEngine(g, search.WithWorkers(loadConfig().Search.Workers))
	results, err := engine.Search(cmd.Context(), query, mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return search.FormatJSON(out, results)
	}
	search.FormatTable(out, results)
	return nil
}

func init() {
	searchCmd.Flags().String("type", "", "search mode: author, concept or reference")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
