// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates the state of HTML-to-Markdown conversion for a
// document.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Document is one HTML source queued for conversion.
type Document struct {
	// ID is the output base name (e.g. "index" for "site/index.html").
	ID string `json:"id" yaml:"id"`

	// SourcePath is the local HTML file, or "-" for stdin.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// ConversionStatus tracks whether the document has been converted.
	ConversionStatus ConversionStatus `json:"conversion_status" yaml:"conversion_status"`
}
