package graph

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	kberr "flexkb/internal/errors"
)

// Step is one hop of a navigation path.
type Step struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Via  string   `json:"via"`
	Type EdgeType `json:"type"`
}

// CachedPath is one precomputed entry of the navigation document.
type CachedPath struct {
	Steps       []Step `json:"steps"`
	CodePattern string `json:"code_pattern"`
}

// PathCache maps "IFrom -> ITo" keys to precomputed paths. Entries are
// returned verbatim before any BFS runs; staleness against the live
// graph is accepted.
type PathCache map[string]CachedPath

// PathKey formats the cache key for a normalized pair.
func PathKey(from, to string) string {
	return fmt.Sprintf("%s -> %s", from, to)
}

// Document is the precomputed navigation document produced offline by
// the refresh pipeline.
type Document struct {
	Schema      string    `json:"_schema"`
	GeneratedAt string    `json:"_generated_at"`
	CommonPaths PathCache `json:"common_paths"`
	Statistics  struct {
		CommonPathsComputed int `json:"common_paths_computed"`
	} `json:"statistics"`
}

// LoadDocument reads the navigation document. A missing file is
// reported as IndexMissing so callers can run without a path cache.
func LoadDocument(path string, logger *slog.Logger) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kberr.Wrap(kberr.IndexMissing, fmt.Sprintf("navigation document not found at %s", path), err)
		}
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, kberr.Wrap(kberr.MalformedInput, "navigation document failed to parse", err)
	}

	logger.Info("Navigation document loaded",
		"schema", doc.Schema, "common_paths", len(doc.CommonPaths))
	return &doc, nil
}
