// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the html2md converter,
// clipper and server.
package types

import "time"

// ClipStatus indicates the outcome of clipping a page.
type ClipStatus string

const (
	ClipNone    ClipStatus = "none"
	ClipDone    ClipStatus = "clipped"
	ClipSkipped ClipStatus = "skipped"
	ClipFailed  ClipStatus = "failed"
)

// Clip holds metadata and file paths for a clipped web page.
type Clip struct {
	// URL is the page the HTML was fetched from.
	URL string `json:"url" yaml:"url"`

	// Name is the note name without extension (e.g. "20250524_225141").
	Name string `json:"name" yaml:"name"`

	// Title is the extracted page title, if any.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Path is the local filesystem path of the written Markdown note.
	Path string `json:"path" yaml:"path"`

	// ClippedAt is when the page was clipped.
	ClippedAt time.Time `json:"clipped_at" yaml:"clipped_at"`

	// Status tracks whether the clip completed.
	Status ClipStatus `json:"status" yaml:"status"`

	// Markdown is the converted note body, front-matter included.
	Markdown string `json:"-" yaml:"-"`
}
