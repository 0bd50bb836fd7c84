// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/html2md/internal/dom"
)

// noiseClasses mark page chrome. Matching is a case-insensitive substring
// test against the whole class attribute.
var noiseClasses = []string{
	"sidebar", "author", "publication", "mobile", "share", "userinfo",
	"topics", "comment", "navigation", "footer", "advertisement", "social",
}

var ignoredTags = []string{"script", "style", "noscript", "footer", "nav", "head", "template"}

// ClassFilter drops any element whose class attribute names page chrome,
// children included. <html> and <body> are exempt since dropping them would
// drop the page, and so is anything inside <pre>, where highlighters put
// token classes such as "comment".
type ClassFilter struct{}

func (ClassFilter) Matches(d *dom.Dom, id dom.NodeID) bool {
	class, ok := d.Attr(id, "class")
	if !ok || !IsNoiseClass(class) {
		return false
	}
	return !d.IsElement(id, "html", "body") && !insidePre(d, id)
}

func (ClassFilter) Render(*Engine, *dom.Dom, dom.NodeID, *Context) (string, error) {
	return "", nil
}

// IsNoiseClass reports whether a class attribute value names page chrome.
func IsNoiseClass(class string) bool {
	class = strings.ToLower(class)
	for _, kw := range noiseClasses {
		if strings.Contains(class, kw) {
			return true
		}
	}
	return false
}

// Ignored renders nothing for non-content elements.
type Ignored struct{}

func (Ignored) Matches(d *dom.Dom, id dom.NodeID) bool {
	return d.IsElement(id, ignoredTags...)
}

func (Ignored) Render(*Engine, *dom.Dom, dom.NodeID, *Context) (string, error) {
	return "", nil
}
