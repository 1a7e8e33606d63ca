package types

import "time"

// HTTPConfig holds shared HTTP settings used when fetching remote sources.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "bibgraph/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// GraphConfig locates the graph the query commands load at startup.
type GraphConfig struct {
	// Path is a SQLite snapshot (.db) or an RDF/XML file (.xml, .rdf).
	Path string `json:"path" yaml:"path"`
}

// IngestConfig holds settings for the ingestion stage.
type IngestConfig struct {
	HTTPConfig `yaml:",inline"`

	// Source is an articles JSON file path or an http(s) URL.
	Source string `json:"source" yaml:"source"`

	// BaseIRI is the namespace for minted identifiers (default http://example.org/).
	BaseIRI string `json:"base_iri" yaml:"base_iri"`

	// MaxRetries bounds retries on HTTP 429 for remote sources (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// SearchConfig holds settings for the search engine.
type SearchConfig struct {
	// Workers is the number of candidates built concurrently (default 4).
	Workers int `json:"workers" yaml:"workers"`
}

// ServerConfig holds settings for the HTTP service.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// DefaultLimit is the number of documents on the index route (default 10).
	DefaultLimit int `json:"default_limit" yaml:"default_limit"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is text or json.
	Format string `json:"format" yaml:"format"`
}

// Config groups every section of bibgraph.yaml.
type Config struct {
	Graph  GraphConfig  `json:"graph" yaml:"graph"`
	Ingest IngestConfig `json:"ingest" yaml:"ingest"`
	Search SearchConfig `json:"search" yaml:"search"`
	Server ServerConfig `json:"server" yaml:"server"`
	Log    LogConfig    `json:"log" yaml:"log"`
}
