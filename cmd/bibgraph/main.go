// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bibgraph CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibgraph/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bibgraph CLI.
var rootCmd = &cobra.Command{
	Use:   "bibgraph",
	Short: "Query a bibliographic knowledge graph",
	Long: `bibgraph answers listing and search queries over a small bibliographic
knowledge graph of documents, authors and concepts.

Ingest articles JSON into a SQLite snapshot, then list, search or export the
documents it holds, or serve them over HTTP. The graph may also be read from
an RDF/XML ontology file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(viper.GetString("log.level"), viper.GetString("log.format"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bibgraph.yaml or ~/.config/bibgraph/bibgraph.yaml)")
	rootCmd.PersistentFlags().String("graph", "", "graph to load: .db snapshot or .xml/.rdf RDF/XML (default knowledge/index/graph.db)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	viper.BindPFlag("graph.path", rootCmd.PersistentFlags().Lookup("graph"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetDefault("graph.path", filepath.Join("knowledge", "index", "graph.db"))
	viper.SetDefault("ingest.source", filepath.Join("data", "articles.json"))
	viper.SetDefault("ingest.base_iri", "http://example.org/")
	viper.SetDefault("ingest.timeout", 30*time.Second)
	viper.SetDefault("ingest.user_agent", "bibgraph/"+version)
	viper.SetDefault("ingest.max_retries", 5)
	viper.SetDefault("search.workers", 4)
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.default_limit", 10)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load(".env")

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bibgraph")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bibgraph"))
		}
	}

	viper.SetEnvPrefix("BIBGRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the effective configuration from defaults, the
// config file, BIBGRAPH_* environment variables and bound flags.
func loadConfig() types.Config {
	return types.Config{
		Graph: types.GraphConfig{
			Path: viper.GetString("graph.path"),
		},
		Ingest: types.IngestConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("ingest.timeout"),
				UserAgent: viper.GetString("ingest.user_agent"),
			},
			Source:     viper.GetString("ingest.source"),
			BaseIRI:    viper.GetString("ingest.base_iri"),
			MaxRetries: viper.GetInt("ingest.max_retries"),
		},
		Search: types.SearchConfig{
			Workers: viper.GetInt("search.workers"),
		},
		Server: types.ServerConfig{
			Addr:         viper.GetString("server.addr"),
			DefaultLimit: viper.GetInt("server.default_limit"),
		},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
	}
}

// setupLogging installs the default slog logger. Logs go to stderr so
// command output on stdout stays parseable.
func setupLogging(level, format string) error {
	if level == "" {
		level = "info"
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text", "":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("unsupported log format %q: use text or json", format)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
