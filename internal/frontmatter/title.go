// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frontmatter

import (
	"github.com/pdiddy/html2md/internal/dom"
	"github.com/pdiddy/html2md/internal/text"
)

// TitleExtractor finds the page title. Sources are tried in order until one
// yields visible text: <head><title>, <meta name="title">,
// <meta property="og:title">, <meta name="twitter:title">, then the first
// h1..h6 inside <body>.
type TitleExtractor struct{}

func (TitleExtractor) Key() string { return "title" }

func (TitleExtractor) Extract(_ string, d *dom.Dom) (string, bool) {
	sources := []func(*dom.Dom) string{
		headTitle,
		metaContent("name", "title"),
		metaContent("property", "og:title"),
		metaContent("name", "twitter:title"),
	}
	for _, src := range sources {
		if v := src(d); v != "" {
			return v, true
		}
	}

	body, ok := d.FindBody()
	if !ok {
		return "", false
	}
	for _, tag := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		if id, ok := d.FindElementByTag(body, tag); ok {
			if v := text.Normalize(d.CollectTextContent(id)); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

func headTitle(d *dom.Dom) string {
	head, ok := d.FindHead()
	if !ok {
		return ""
	}
	id, ok := d.FindElementByTag(head, "title")
	if !ok {
		return ""
	}
	return text.Normalize(d.CollectTextContent(id))
}

func metaContent(attr, value string) func(*dom.Dom) string {
	return func(d *dom.Dom) string {
		for _, id := range d.FindAllMeta() {
			v, ok := d.Attr(id, attr)
			if !ok || v != value {
				continue
			}
			content, ok := d.Attr(id, "content")
			if !ok {
				continue
			}
			if n := text.Normalize(content); n != "" {
				return n
			}
		}
		return ""
	}
}

// SourceExtractor echoes the caller-supplied base URL.
type SourceExtractor struct{}

func (SourceExtractor) Key() string { return "source" }

func (SourceExtractor) Extract(baseURL string, _ *dom.Dom) (string, bool) {
	return baseURL, baseURL != ""
}
