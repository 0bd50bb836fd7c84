// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clip fetches web pages, converts them to Markdown notes in a vault
// directory, and records each clip in the index.
package clip

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pdiddy/html2md/internal/convert"
	"github.com/pdiddy/html2md/internal/fetch"
	"github.com/pdiddy/html2md/internal/frontmatter"
	"github.com/pdiddy/html2md/internal/parse"
	"github.com/pdiddy/html2md/pkg/types"
)

// Index records clips. *store.Store satisfies it.
type Index interface {
	Has(ctx context.Context, url string) (bool, error)
	Put(ctx context.Context, c types.Clip) error
}

// BatchResult holds the outcome of a batch clip run.
type BatchResult struct {
	Clipped int
	Skipped int
	Failed  int
	Clips   []*types.Clip
}

// Total returns the total number of URLs processed.
func (r BatchResult) Total() int {
	return r.Clipped + r.Skipped + r.Failed
}

// HasFailures reports whether any URL failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Clipper turns URLs into vault notes.
type Clipper struct {
	Fetcher fetch.Fetcher
	// Index may be nil, in which case nothing is skipped or recorded.
	Index       Index
	Config      types.ClipConfig
	FrontMatter []string
	// Now defaults to time.Now.
	Now func() time.Time
}

func (c *Clipper) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// location falls back to UTC when the configured offset is malformed; the
// CLI validates it up front.
func (c *Clipper) location() *time.Location {
	loc, err := ParseOffset(c.Config.TimezoneOffset)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Clipper) frontMatter() []string {
	if c.FrontMatter == nil {
		return convert.DefaultFrontMatter
	}
	return c.FrontMatter
}

// Fetch downloads url and converts it, returning the Markdown and the page
// title. Links resolve against the post-redirect URL.
func (c *Clipper) Fetch(ctx context.Context, url string) (md, title string, err error) {
	if err := ValidateURL(url); err != nil {
		return "", "", err
	}
	page, err := c.Fetcher.Fetch(ctx, url)
	if err != nil {
		return "", "", fmt.Errorf("fetching %s: %w", url, err)
	}

	d, err := parse.HTML(page.HTML)
	if err != nil {
		return "", "", fmt.Errorf("parsing %s: %w", url, err)
	}
	if e, ok := frontmatter.Lookup("title"); ok {
		title, _ = e.Extract(page.FinalURL, d)
	}
	md, err = convert.ConvertDom(page.FinalURL, d, c.frontMatter())
	if err != nil {
		return "", "", fmt.Errorf("converting %s: %w", url, err)
	}
	return md, title, nil
}

// Clip fetches one URL and writes it to <vault>/<name>.md, where name is the
// clip time in the configured offset. URLs already in the index are
// skipped. The skipped return value indicates whether that happened.
func (c *Clipper) Clip(ctx context.Context, url string, w io.Writer) (clip *types.Clip, skipped bool, err error) {
	if err := ValidateURL(url); err != nil {
		return nil, false, err
	}
	if c.Index != nil {
		has, err := c.Index.Has(ctx, url)
		if err != nil {
			return nil, false, fmt.Errorf("checking index: %w", err)
		}
		if has {
			fmt.Fprintf(w, "skipped: %s (already clipped)\n", url)
			return nil, true, nil
		}
	}

	fmt.Fprintf(w, "fetching: %s\n", url)
	md, title, err := c.Fetch(ctx, url)
	if err != nil {
		c.record(ctx, types.Clip{URL: url, ClippedAt: c.now(), Status: types.ClipFailed}, w)
		return nil, false, err
	}

	at := c.now()
	name := at.In(c.location()).Format(nameLayout)
	path, name, err := WriteNote(c.Config.VaultDir, name, md)
	if err != nil {
		return nil, false, fmt.Errorf("writing note for %s: %w", url, err)
	}

	cl := &types.Clip{
		URL:       url,
		Name:      name,
		Title:     title,
		Path:      path,
		ClippedAt: at,
		Status:    types.ClipDone,
		Markdown:  md,
	}
	if c.Index != nil {
		if err := c.Index.Put(ctx, *cl); err != nil {
			return nil, false, fmt.Errorf("indexing %s: %w", url, err)
		}
	}
	return cl, false, nil
}

// record stores a failed attempt so search can surface it. Index errors here
// are reported but do not mask the original failure.
func (c *Clipper) record(ctx context.Context, cl types.Clip, w io.Writer) {
	if c.Index == nil {
		return
	}
	if err := c.Index.Put(ctx, cl); err != nil {
		fmt.Fprintf(w, "  warning: indexing %s failed: %v\n", cl.URL, err)
	}
}

// ClipBatch clips each URL in turn, printing per-item status and returning a
// summary. It continues after individual failures and waits FetchDelay
// between consecutive fetches.
func (c *Clipper) ClipBatch(ctx context.Context, urls []string, w io.Writer) BatchResult {
	var result BatchResult
	for i, u := range urls {
		if i > 0 && c.Config.FetchDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(c.Config.FetchDelay):
			}
		}
		if ctx.Err() != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", u, ctx.Err())
			result.Failed++
			continue
		}

		cl, wasSkipped, err := c.Clip(ctx, u, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", u, err)
			result.Failed++
		case wasSkipped:
			result.Skipped++
		default:
			fmt.Fprintf(w, "clipped: %s -> %s\n", u, cl.Path)
			result.Clipped++
			result.Clips = append(result.Clips, cl)
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d clipped, %d skipped, %d failed (total: %d)\n",
		result.Clipped, result.Skipped, result.Failed, result.Total())
	return result
}

// WriteNote writes md to dir/name.md through a temporary file. An existing
// note is never overwritten; the name gains a numeric suffix instead.
func WriteNote(dir, name, md string) (path, finalName string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	finalName = name
	for n := 2; ; n++ {
		path = filepath.Join(dir, finalName+".md")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		finalName = name + "_" + strconv.Itoa(n)
	}

	tmpFile, err := os.CreateTemp(dir, ".clip-*.tmp")
	if err != nil {
		return "", "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.WriteString(md)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return "", "", fmt.Errorf("writing note: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", "", fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", "", fmt.Errorf("renaming temp file: %w", err)
	}
	return path, finalName, nil
}
