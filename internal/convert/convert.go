// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert is the HTML-to-Markdown entry point and the driver that
// converts batches of local HTML files.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/html2md/internal/dom"
	"github.com/pdiddy/html2md/internal/frontmatter"
	"github.com/pdiddy/html2md/internal/parse"
	"github.com/pdiddy/html2md/internal/render"
	"github.com/pdiddy/html2md/pkg/types"
)

// DefaultFrontMatter is the key list used when none is configured.
var DefaultFrontMatter = []string{"title", "source"}

// Convert turns an HTML document into Markdown. The front-matter block for
// keys comes first, then the body rendered from the first <article>, else
// <body>, else the document root. baseURL resolves relative links and is
// echoed by the "source" key.
func Convert(baseURL, html string, keys []string) (string, error) {
	d, err := parse.HTML(html)
	if err != nil {
		return "", err
	}
	return ConvertDom(baseURL, d, keys)
}

// ConvertReader is Convert over a reader.
func ConvertReader(baseURL string, r io.Reader, keys []string) (string, error) {
	d, err := parse.Reader(r)
	if err != nil {
		return "", err
	}
	return ConvertDom(baseURL, d, keys)
}

// ConvertDom renders an already-built tree.
func ConvertDom(baseURL string, d *dom.Dom, keys []string) (string, error) {
	fm, err := frontmatter.Block(frontmatter.Extract(baseURL, d, keys))
	if err != nil {
		return "", err
	}
	body, err := render.Render(baseURL, d, d.RenderRoot())
	if err != nil {
		return "", err
	}
	return fm + body, nil
}

// Converter transforms an HTML source into Markdown.
type Converter interface {
	// Convert reads the HTML at path and returns the Markdown content.
	Convert(path string) (string, error)
}

// FileConverter converts HTML files from disk. A path of "-" reads Stdin.
type FileConverter struct {
	BaseURL     string
	FrontMatter []string
	Stdin       io.Reader
}

// Convert reads the file at path and converts it.
func (f FileConverter) Convert(path string) (string, error) {
	keys := f.FrontMatter
	if keys == nil {
		keys = DefaultFrontMatter
	}
	if path == "-" {
		in := f.Stdin
		if in == nil {
			in = os.Stdin
		}
		return ConvertReader(f.BaseURL, in, keys)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening HTML %s: %w", path, err)
	}
	defer file.Close()

	md, err := ConvertReader(f.BaseURL, file, keys)
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", path, err)
	}
	return md, nil
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertDocument converts a single document and writes it to
// outDir/<id>.md. If that file already exists it skips conversion and
// returns ConversionNone.
func ConvertDocument(c Converter, doc types.Document, outDir string, w io.Writer) types.ConversionStatus {
	mdPath := filepath.Join(outDir, doc.ID+".md")
	if _, err := os.Stat(mdPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", doc.ID)
		return types.ConversionNone
	}

	md, err := c.Convert(doc.SourcePath)
	return writeResult(doc, md, err, mdPath, w)
}

func writeResult(doc types.Document, md string, convErr error, mdPath string, w io.Writer) types.ConversionStatus {
	if convErr != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, convErr)
		return types.ConversionFailed
	}
	if err := os.MkdirAll(filepath.Dir(mdPath), 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
		return types.ConversionFailed
	}
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
		return types.ConversionFailed
	}
	fmt.Fprintf(w, "converted: %s\n", doc.ID)
	return types.ConversionDone
}

// ConvertBatch converts docs on up to workers goroutines, printing
// per-document status to w in input order and returning a summary.
func ConvertBatch(c Converter, docs []types.Document, outDir string, workers int, w io.Writer) BatchResult {
	var (
		result  BatchResult
		pending []types.Document
		skipped = make(map[int]bool)
	)
	for i, doc := range docs {
		if _, err := os.Stat(filepath.Join(outDir, doc.ID+".md")); err == nil {
			skipped[i] = true
			continue
		}
		pending = append(pending, doc)
	}

	paths := make([]string, len(pending))
	for i, doc := range pending {
		paths[i] = doc.SourcePath
	}
	converted := ConvertFiles(c, paths, workers)

	next := 0
	for i, doc := range docs {
		var status types.ConversionStatus
		if skipped[i] {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", doc.ID)
			status = types.ConversionNone
		} else {
			r := converted[next]
			next++
			status = writeResult(doc, r.Markdown, r.Err, filepath.Join(outDir, doc.ID+".md"), w)
		}
		switch status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ConvertPaths builds Document records from HTML paths and delegates to
// ConvertBatch. Each ID is the file name without its extension.
func ConvertPaths(c Converter, paths []string, outDir string, workers int, w io.Writer) BatchResult {
	return ConvertBatch(c, Documents(paths), outDir, workers, w)
}

// Documents builds Document records from HTML paths. Stdin is named
// "stdin".
func Documents(paths []string) []types.Document {
	docs := make([]types.Document, len(paths))
	for i, p := range paths {
		id := "stdin"
		if p != "-" {
			id = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		}
		docs[i] = types.Document{ID: id, SourcePath: p}
	}
	return docs
}
