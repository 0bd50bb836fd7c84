// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"github.com/pdiddy/html2md/internal/dom"
	"github.com/pdiddy/html2md/internal/text"
)

var inlineTags = []string{
	"strong", "b", "em", "i", "br", "span",
	"abbr", "cite", "del", "dfn", "ins", "kbd", "mark", "q",
	"s", "samp", "small", "sub", "sup", "time", "u", "var",
}

// Inline renders phrasing elements. Only strong/b and em/i add emphasis
// markers; the rest pass their content through.
type Inline struct{}

func (Inline) Matches(d *dom.Dom, id dom.NodeID) bool {
	return d.IsElement(id, inlineTags...)
}

func (Inline) Render(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	tag := d.TagName(id)
	if tag == "br" {
		return text.BreakToken, nil
	}

	link, linked := "", false
	if tag == "span" {
		link, linked = claimLink(d, id, tag, ctx)
	}

	saved := ctx.InInline
	ctx.InInline = true
	content, err := e.RenderChildren(d, id, ctx)
	ctx.InInline = saved
	if err != nil {
		return "", err
	}

	switch {
	case linked:
		return wrapInline(content, "[", "]("+link+")"), nil
	case tag == "strong" || tag == "b":
		return wrapInline(content, "**", "**"), nil
	case tag == "em" || tag == "i":
		return wrapInline(content, "*", "*"), nil
	}
	return content, nil
}
