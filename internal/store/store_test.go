// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/html2md/pkg/types"
)

// openStore opens a store in a temp dir. SQLite builds without FTS5 (the
// sqlite_fts5 build tag) skip the test.
func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index", "clips.db"), 0)
	if err != nil && strings.Contains(err.Error(), "fts5") {
		t.Skipf("sqlite built without FTS5: %v", err)
	}
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func clipAt(url, title, md string, at time.Time) types.Clip {
	return types.Clip{
		URL:       url,
		Name:      at.Format("20060102_150405"),
		Title:     title,
		Path:      "clips/" + at.Format("20060102_150405") + ".md",
		ClippedAt: at,
		Status:    types.ClipDone,
		Markdown:  md,
	}
}

func TestPutGetHas(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	at := time.Date(2025, 5, 24, 13, 51, 41, 0, time.UTC)

	has, err := s.Has(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, s.Put(ctx, clipAt("https://example.com/a", "A", "# A\n\nalpha text\n", at)))

	has, err = s.Has(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.True(t, has)

	got, err := s.Get(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "# A\n\nalpha text\n", got.Markdown)
	assert.True(t, at.Equal(got.ClippedAt))
	assert.Equal(t, types.ClipDone, got.Status)

	_, err = s.Get(ctx, "https://example.com/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHas_IgnoresFailedClips(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	c := clipAt("https://example.com/f", "", "", time.Now())
	c.Status = types.ClipFailed
	require.NoError(t, s.Put(ctx, c))

	has, err := s.Has(ctx, c.URL)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestPut_Upserts(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	at := time.Now().UTC()

	require.NoError(t, s.Put(ctx, clipAt("https://example.com/a", "Old", "old words", at)))
	require.NoError(t, s.Put(ctx, clipAt("https://example.com/a", "New", "fresh words", at)))

	results, err := s.Search(ctx, QueryOptions{Query: "fresh"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "New", results[0].Title)

	results, err = s.Search(ctx, QueryOptions{Query: "old"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Put(ctx, clipAt("https://a.com", "Rust ownership", "Borrowing rules in rust.", base)))
	require.NoError(t, s.Put(ctx, clipAt("https://b.com", "Go channels", "Channels and goroutines.", base.Add(time.Hour))))
	require.NoError(t, s.Put(ctx, clipAt("https://c.com", "Cooking", "Boil water.", base.Add(2*time.Hour))))

	results, err := s.Search(ctx, QueryOptions{Query: "goroutines"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://b.com", results[0].URL)
	assert.Contains(t, results[0].Snippet, "[goroutines]")

	results, err = s.Search(ctx, QueryOptions{Query: "rust"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://a.com", results[0].URL)

	results, err = s.Search(ctx, QueryOptions{MaxResults: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "https://c.com", results[0].URL)
	assert.Equal(t, "https://b.com", results[1].URL)

	results, err = s.Search(ctx, QueryOptions{Status: types.ClipFailed})
	require.NoError(t, err)
	assert.Empty(t, results)

	require.NoError(t, s.Delete(ctx, "https://c.com"))
	results, err = s.Search(ctx, QueryOptions{Query: "water"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_FullTextNewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// The older clip is the stronger match.
	require.NoError(t, s.Put(ctx, clipAt("https://old.com", "Kafka Kafka", "kafka kafka kafka consumers.", base)))
	require.NoError(t, s.Put(ctx, clipAt("https://new.com", "Queues", "A note on kafka.", base.Add(24*time.Hour))))

	results, err := s.Search(ctx, QueryOptions{Query: "kafka"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "https://new.com", results[0].URL)
	assert.Equal(t, "https://old.com", results[1].URL)

	results, err = s.Search(ctx, QueryOptions{Query: "kafka", MaxResults: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://new.com", results[0].URL)
}

func TestSection(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	md := "# Guide\n\nIntro.\n\n## Install\n\nRun make.\n\n### Linux\n\napt.\n\n## Usage\n\nCall it.\n"
	require.NoError(t, s.Put(ctx, clipAt("https://g.com", "Guide", md, time.Now())))

	got, err := s.Section(ctx, "https://g.com", "Install")
	require.NoError(t, err)
	assert.Equal(t, "Run make.\n\n### Linux\n\napt.", got)

	_, err = s.Section(ctx, "https://g.com", "Missing")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	at := time.Date(2025, 5, 24, 13, 51, 41, 0, time.UTC)
	require.NoError(t, s.Put(ctx, clipAt("https://a.com", "A", "text", at)))

	var yb bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, &yb, QueryOptions{}))
	var fromYAML []ExportEntry
	require.NoError(t, yaml.Unmarshal(yb.Bytes(), &fromYAML))
	require.Len(t, fromYAML, 1)
	assert.Equal(t, "https://a.com", fromYAML[0].URL)
	assert.Equal(t, "2025-05-24T13:51:41Z", fromYAML[0].ClippedAt)

	var jb bytes.Buffer
	require.NoError(t, s.ExportJSON(ctx, &jb, QueryOptions{}))
	var fromJSON []ExportEntry
	require.NoError(t, json.Unmarshal(jb.Bytes(), &fromJSON))
	assert.Equal(t, fromYAML, fromJSON)
}

func TestExtractSection(t *testing.T) {
	body, ok := extractSection("## A\n\nx\n## B\ny", "A")
	assert.True(t, ok)
	assert.Equal(t, "x", body)

	_, ok = extractSection("#NoSpace\n", "NoSpace")
	assert.False(t, ok)
}

func TestExtractSection_FencedHeadingLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "backtick fence",
			content: "## Install\n\n```sh\n# comment\nmake\n```\n\nDone.\n## Usage\nu",
			want:    "```sh\n# comment\nmake\n```\n\nDone.",
		},
		{
			name:    "tilde fence",
			content: "## Install\n~~~\n## not a heading\n~~~\nafter\n# Next",
			want:    "~~~\n## not a heading\n~~~\nafter",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ok := extractSection(tt.content, "Install")
			require.True(t, ok)
			assert.Equal(t, tt.want, body)
		})
	}

	_, ok := extractSection("```\n## Hidden\n```\n", "Hidden")
	assert.False(t, ok)
}
