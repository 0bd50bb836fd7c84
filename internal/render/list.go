// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/html2md/internal/dom"
	"github.com/pdiddy/html2md/internal/text"
)

const (
	bulletWidth  = 2 // "- "
	orderedWidth = 3 // "1. "
)

// List renders <ul>, <ol> and <li>. ListDepth accumulates the marker width
// of enclosing lists so continuation lines align under the item text.
// Ordered items are always numbered "1."; Markdown renderers count.
type List struct{}

func (List) Matches(d *dom.Dom, id dom.NodeID) bool {
	return d.IsElement(id, "ul", "ol", "li")
}

func (List) Render(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	switch d.TagName(id) {
	case "ul":
		return renderList(e, d, id, ctx, bulletWidth)
	case "ol":
		return renderList(e, d, id, ctx, orderedWidth)
	case "li":
		return renderItem(e, d, id, ctx)
	}
	return "", unsupported(d, id, "list")
}

// renderList trims and terminates an outermost list with a blank line. A
// nested list starts on a new line and is left for the enclosing item to
// absorb.
func renderList(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context, width int) (string, error) {
	ctx.ListDepth += width
	content, err := e.RenderChildren(d, id, ctx)
	ctx.ListDepth -= width
	if err != nil {
		return "", err
	}

	if text.IsBlank(content) {
		return "", nil
	}
	content = strings.TrimRight(content, " \t\n")
	if ctx.ListDepth == 0 {
		return content + "\n\n", nil
	}
	return "\n" + content, nil
}

func renderItem(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	saved := ctx.ListFirstItem
	ctx.ListFirstItem = true
	content, err := joinItemChildren(e, d, id, ctx)
	ctx.ListFirstItem = saved
	if err != nil {
		return "", err
	}

	content = strings.TrimLeft(strings.TrimRight(content, " \t\n"), " \t")
	if content == "" {
		return "", nil
	}

	var marker string
	parent, _ := d.Parent(id)
	if d.TagName(parent) == "ol" {
		marker = pad(ctx.ListDepth-orderedWidth) + "1."
	} else {
		marker = pad(ctx.ListDepth-bulletWidth) + "-"
	}

	var b strings.Builder
	if previousItemLoose(d, id) {
		b.WriteString("\n")
	}
	b.WriteString(marker)
	b.WriteString(" ")
	b.WriteString(content)
	b.WriteString("\n")
	return b.String(), nil
}

// joinItemChildren concatenates the rendered children of an item, putting
// a blank line between inline text and a following block, and indenting
// inline text that resumes after a block.
func joinItemChildren(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	children, err := d.Children(id)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	prevBlock := false
	for _, child := range children {
		out, err := e.RenderNode(d, child, ctx)
		if err != nil {
			return "", err
		}
		if text.IsBlank(out) {
			if out != "" && b.Len() > 0 && !prevBlock {
				b.WriteString(out)
			}
			continue
		}

		nested := strings.HasPrefix(out, "\n")
		block := nested || strings.HasSuffix(out, "\n\n")
		cur := b.String()
		switch {
		case cur == "":
		case nested:
			if strings.HasSuffix(cur, "\n") {
				out = strings.TrimLeft(out, "\n")
			}
		case block:
			if !strings.HasSuffix(cur, "\n") {
				trimmed := strings.TrimRight(cur, " ")
				b.Reset()
				b.WriteString(trimmed)
				b.WriteString("\n\n")
			}
		case prevBlock:
			if !strings.HasSuffix(cur, "\n") {
				b.WriteString("\n\n")
			}
			b.WriteString(ctx.continuationIndent())
			out = strings.TrimLeft(out, " ")
		}

		b.WriteString(out)
		prevBlock = block
		ctx.ListFirstItem = false
	}
	return b.String(), nil
}

// previousItemLoose reports whether the previous sibling item ended with a
// paragraph or code block.
func previousItemLoose(d *dom.Dom, id dom.NodeID) bool {
	prev := previousElement(d, id)
	if d.TagName(prev) != "li" {
		return false
	}
	children, err := d.Children(prev)
	if err != nil {
		return false
	}
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		n, err := d.Node(c)
		if err != nil {
			return false
		}
		switch n.Data.Kind {
		case dom.TextNode:
			if text.Normalize(n.Data.Text) != "" {
				return false
			}
		case dom.ElementNode:
			return d.IsElement(c, "p", "pre")
		}
	}
	return false
}

func previousElement(d *dom.Dom, id dom.NodeID) dom.NodeID {
	parent, err := d.Parent(id)
	if err != nil {
		return dom.InvalidNode
	}
	children, err := d.Children(parent)
	if err != nil {
		return dom.InvalidNode
	}
	prev := dom.InvalidNode
	for _, c := range children {
		if c == id {
			return prev
		}
		if d.TagName(c) != "" {
			prev = c
		}
	}
	return dom.InvalidNode
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
