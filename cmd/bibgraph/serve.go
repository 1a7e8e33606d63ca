// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibgraph/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve document listing and search over HTTP",
	Long: `Serve loads the graph once and answers JSON requests on:

  GET /                  first documents (server.default_limit)
  GET /documents?limit=N document records
  GET /search?query=Q&type=T
  GET /healthz
  GET /metrics           Prometheus metrics

The graph is read-only while serving. Stop with Ctrl-C.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	g, err := loadGraph(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(g, cfg.Server, server.WithWorkers(cfg.Search.Workers))
	return srv.Run(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
