// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"
)

// ExportEntry is one clip in an export file.
type ExportEntry struct {
	URL       string `json:"url" yaml:"url"`
	Name      string `json:"name" yaml:"name"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Path      string `json:"path" yaml:"path"`
	Status    string `json:"status" yaml:"status"`
	ClippedAt string `json:"clipped_at" yaml:"clipped_at"`
}

const exportLimit = 100000

// ExportYAML writes the index as a YAML list. It supports the same filters
// as Search.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes the index as an indented JSON array. It supports the
// same filters as Search.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	results, err := s.Search(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(results))
	for i, r := range results {
		entries[i] = ExportEntry{
			URL:       r.URL,
			Name:      r.Name,
			Title:     r.Title,
			Path:      r.Path,
			Status:    string(r.Status),
			ClippedAt: r.ClippedAt.UTC().Format(time.RFC3339),
		}
	}
	return entries, nil
}
