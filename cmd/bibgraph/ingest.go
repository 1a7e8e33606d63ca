// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibgraph/internal/knowledge"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest articles JSON into the graph snapshot",
	Long: `Ingest reads an articles JSON file or URL (an object keyed by DOI) and
merges its documents, authors, concepts and references into the SQLite graph
snapshot. Facts already in the snapshot are left as they are. A source whose
content has not changed since the last run is skipped unless --force is set.

Use --rdfxml to also write the merged graph as an RDF/XML ontology.`,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	force, _ := cmd.Flags().GetBool("force")
	rdfOut, _ := cmd.Flags().GetString("rdfxml")

	format, err := knowledge.FormatOf(cfg.Graph.Path)
	if err != nil {
		return err
	}
	if format != knowledge.FormatSQLite {
		return fmt.Errorf("ingest writes a SQLite snapshot; --graph %s is not one", cfg.Graph.Path)
	}

	ctx := context.Background()
	data, err := knowledge.ReadSource(ctx, cfg.Ingest.Source, cfg.Ingest)
	if err != nil {
		return err
	}

	store, err := knowledge.NewStore(cfg.Graph.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := knowledge.IngestOptions{
		Source: cfg.Ingest.Source,
		Minter: knowledge.Minter{Base: cfg.Ingest.BaseIRI},
		Force:  force,
	}
	out := cmd.OutOrStdout()
	g, summary, err := store.Ingest(ctx, data, opts, out)
	if err != nil {
		return err
	}

	if rdfOut != "" {
		if err := knowledge.WriteRDFXML(rdfOut, g); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d facts to %s\n", g.Len(), rdfOut)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d article(s) failed ingestion", summary.Failed)
	}
	return nil
}

func init() {
	ingestCmd.Flags().String("source", "", "articles JSON file or http(s) URL (default data/articles.json)")
	ingestCmd.Flags().Bool("force", false, "re-ingest even if the source is unchanged")
	ingestCmd.Flags().String("rdfxml", "", "also write the merged graph to this RDF/XML file")
	viper.BindPFlag("ingest.source", ingestCmd.Flags().Lookup("source"))

	rootCmd.AddCommand(ingestCmd)
}
