// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package text holds the whitespace and invisible-character policy shared
// by every renderer.
package text

import (
	"strings"
	"unicode"
)

// BreakToken is what <br> renders to. It keeps logical lines on one
// Markdown line.
const BreakToken = "<br>"

func invisible(r rune) bool {
	switch r {
	case '\u00A0', // no-break space
		'\u200B', // zero-width space
		'\u200C', // zero-width non-joiner
		'\u200D', // zero-width joiner
		'\u2060', // word joiner
		'\uFEFF': // BOM
		return true
	}
	return unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r'
}

func strip(s string) string {
	return strings.Map(func(r rune) rune {
		if invisible(r) {
			return -1
		}
		return r
	}, s)
}

// Normalize removes invisible and control characters, collapses whitespace
// runs into a single space and trims both ends. A string with no visible
// content normalizes to "". Normalize is idempotent.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strip(s)), " ")
}

// NormalizeEdges is Normalize that keeps a single space at an edge where s
// had whitespace and the caller asks for it. Callers ask when the
// neighbouring output on that side is inline content. A whitespace-only
// string becomes " " only when both edges are kept.
func NormalizeEdges(s string, keepLeading, keepTrailing bool) string {
	cleaned := strip(s)
	core := strings.Join(strings.Fields(cleaned), " ")
	if core == "" {
		if keepLeading && keepTrailing && cleaned != "" {
			return " "
		}
		return ""
	}
	first, _ := firstRune(cleaned)
	last, _ := lastRune(cleaned)
	if keepLeading && unicode.IsSpace(first) {
		core = " " + core
	}
	if keepTrailing && unicode.IsSpace(last) {
		core += " "
	}
	return core
}

// CollapseLine folds a rendered fragment onto one line: break tokens and
// every whitespace run (no-break spaces included) become single spaces.
func CollapseLine(s string) string {
	s = strings.ReplaceAll(s, BreakToken, " ")
	return strings.Join(strings.Fields(s), " ")
}

// IsBlank reports whether s has no visible content.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Indent prefixes every non-empty line of s after the first with pad.
func Indent(s, pad string) string {
	if pad == "" || !strings.Contains(s, "\n") {
		return s
	}
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

func lastRune(s string) (rune, bool) {
	r := []rune(s)
	if len(r) == 0 {
		return 0, false
	}
	return r[len(r)-1], true
}
