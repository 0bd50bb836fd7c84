// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/html2md/internal/dom"
)

var genericBlockTags = []string{"div", "section", "article", "main", "header", "aside", "nav", "footer"}

// GenericBlock is the catch-all for structural containers. <div> is
// transparent; the others emit their trimmed content as one block.
type GenericBlock struct{}

func (GenericBlock) Matches(d *dom.Dom, id dom.NodeID) bool {
	return d.IsElement(id, genericBlockTags...)
}

func (GenericBlock) Render(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	if d.TagName(id) == "div" {
		return e.RenderChildren(d, id, ctx)
	}
	return renderBlock(e, d, id, ctx)
}

// Aside renders <aside> like a generic block. Noise asides never reach it:
// the class filter runs first.
type Aside struct{}

func (Aside) Matches(d *dom.Dom, id dom.NodeID) bool {
	return d.TagName(id) == "aside"
}

func (Aside) Render(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	return renderBlock(e, d, id, ctx)
}

func renderBlock(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	indent := ctx.blockIndent()
	content, err := e.RenderChildren(d, id, ctx)
	if err != nil {
		return "", err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", nil
	}
	ctx.ListFirstItem = false
	return indent + content + "\n\n", nil
}
