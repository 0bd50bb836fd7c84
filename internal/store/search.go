// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/html2md/pkg/types"
)

// QueryOptions holds parameters for clip searches.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over title and Markdown.
	Query string

	// Status filters by clip status.
	Status types.ClipStatus

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Result is a stored clip with a highlighted excerpt for full-text hits.
type Result struct {
	types.Clip
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`
}

// Search queries the index. Clips come back newest first; full-text hits
// clipped at the same instant are ordered by relevance.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Result, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)
	if useFTS {
		qb.WriteString(
			`SELECT c.url, c.name, c.title, c.path, c.status, c.clipped_at,
				snippet(clips_fts, 1, '[', ']', '...', 12)
			FROM clips_fts
			JOIN clips c ON c.rowid = clips_fts.rowid
			WHERE clips_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT c.url, c.name, c.title, c.path, c.status, c.clipped_at, ''
			FROM clips c
			WHERE 1=1`)
	}

	if opts.Status != "" {
		qb.WriteString(` AND c.status = ?`)
		args = append(args, string(opts.Status))
	}

	if useFTS {
		qb.WriteString(` ORDER BY c.clipped_at DESC, clips_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY c.clipped_at DESC`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying clip index: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var snippet string
		c, err := scanClip(rows.Scan, false, &snippet)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, Result{Clip: *c, Snippet: snippet})
	}
	return results, rows.Err()
}

// Section returns the body of the named heading in the stored Markdown for
// url, up to the next heading of the same or higher level.
func (s *Store) Section(ctx context.Context, url, heading string) (string, error) {
	c, err := s.Get(ctx, url)
	if err != nil {
		return "", err
	}
	body, ok := extractSection(c.Markdown, heading)
	if !ok {
		return "", fmt.Errorf("section %q not found in %s", heading, url)
	}
	return body, nil
}

// extractSection ignores heading-like lines inside fenced code blocks.
func extractSection(content, target string) (string, bool) {
	var (
		capturing bool
		level     int
		fence     string
		result    []string
	)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case fence != "":
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
		case strings.HasPrefix(trimmed, "```"):
			fence = "```"
		case strings.HasPrefix(trimmed, "~~~"):
			fence = "~~~"
		}
		if l := headingLevel(trimmed); l > 0 && fence == "" {
			title := strings.TrimSpace(trimmed[l:])
			if capturing && l <= level {
				break
			}
			if !capturing && title == target {
				capturing, level = true, l
				continue
			}
		}
		if capturing {
			result = append(result, line)
		}
	}
	if !capturing {
		return "", false
	}
	return strings.TrimSpace(strings.Join(result, "\n")), true
}

func headingLevel(line string) int {
	n := 0
	for n < len(line) && n < 6 && line[n] == '#' {
		n++
	}
	if n == 0 || n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}
