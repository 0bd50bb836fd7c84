// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/html2md/internal/dom"
)

// Paragraph renders <p> as an inline run followed by a blank line.
type Paragraph struct{}

func (Paragraph) Matches(d *dom.Dom, id dom.NodeID) bool {
	return d.TagName(id) == "p"
}

func (Paragraph) Render(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	indent := ctx.blockIndent()
	link, linked := claimLink(d, id, "p", ctx)

	saved := ctx.InInline
	ctx.InInline = true
	content, err := e.RenderChildren(d, id, ctx)
	ctx.InInline = saved
	if err != nil {
		return "", err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", nil
	}
	if linked {
		content = "[" + content + "](" + link + ")"
	}
	ctx.ListFirstItem = false
	return indent + content + "\n\n", nil
}
