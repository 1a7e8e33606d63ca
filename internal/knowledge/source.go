// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/bibgraph/internal/httputil"
	"github.com/pdiddy/bibgraph/pkg/types"
)

// IsRemote reports whether source is an http(s) URL.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ReadSource returns the raw bytes of an articles source, fetching URLs
// with retry and reading anything else from disk.
func ReadSource(ctx context.Context, source string, cfg types.IngestConfig) ([]byte, error) {
	if source == "" {
		return nil, fmt.Errorf("reading source: %w", ErrEmptySource)
	}
	if IsRemote(source) {
		return httputil.Fetch(ctx, source, cfg.HTTPConfig, cfg.MaxRetries)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return data, nil
}
