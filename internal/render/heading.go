// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/html2md/internal/dom"
	"github.com/pdiddy/html2md/internal/text"
)

// Heading renders h1..h6 as ATX headings on a single line.
type Heading struct{}

func (Heading) Matches(d *dom.Dom, id dom.NodeID) bool {
	return headingLevel(d.TagName(id)) > 0
}

func (Heading) Render(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	tag := d.TagName(id)
	level := headingLevel(tag)
	if level == 0 {
		return "", unsupported(d, id, "heading")
	}

	indent := ctx.blockIndent()
	link, linked := claimLink(d, id, tag, ctx)

	savedPreserve, savedHeading := ctx.PreserveWhitespace, ctx.InHeading
	ctx.PreserveWhitespace, ctx.InHeading = true, true
	content, err := e.RenderChildren(d, id, ctx)
	ctx.PreserveWhitespace, ctx.InHeading = savedPreserve, savedHeading
	if err != nil {
		return "", err
	}

	line := text.Normalize(text.CollapseLine(content))
	if line == "" {
		return "", nil
	}
	if linked {
		line = "[" + line + "](" + link + ")"
	}
	ctx.ListFirstItem = false
	return indent + strings.Repeat("#", level) + " " + line + "\n\n", nil
}

func headingLevel(tag string) int {
	if len(tag) != 2 || tag[0] != 'h' || tag[1] < '1' || tag[1] > '6' {
		return 0
	}
	return int(tag[1] - '0')
}
