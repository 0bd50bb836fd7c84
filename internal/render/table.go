// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/html2md/internal/dom"
	"github.com/pdiddy/html2md/internal/text"
)

// Table renders tables as pipe rows, one per <tr>. No header separator row
// is emitted and colspan/rowspan are ignored.
type Table struct{}

func (Table) Matches(d *dom.Dom, id dom.NodeID) bool {
	return d.IsElement(id, "table", "thead", "tbody", "tfoot", "tr", "th", "td")
}

func (Table) Render(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	tag := d.TagName(id)
	indent := ""
	if tag == "table" {
		indent = ctx.blockIndent()
	}

	savedTable, savedInline := ctx.InTable, ctx.InInline
	ctx.InTable = true
	if tag == "th" || tag == "td" {
		ctx.InInline = true
	}
	content, err := e.RenderChildren(d, id, ctx)
	ctx.InTable, ctx.InInline = savedTable, savedInline
	if err != nil {
		return "", err
	}

	switch tag {
	case "table":
		if strings.TrimSpace(content) == "" {
			return "", nil
		}
		ctx.ListFirstItem = false
		rows := text.Indent(strings.TrimRight(content, "\n"), ctx.continuationIndent())
		return indent + rows + "\n\n", nil
	case "tr":
		if strings.TrimSpace(content) == "" {
			return "", nil
		}
		return "| " + strings.TrimRight(content, " ") + "\n", nil
	case "th", "td":
		return cell(content) + " | ", nil
	default:
		return content, nil
	}
}

// cell flattens cell content onto one line and escapes pipes.
func cell(s string) string {
	var parts []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.ReplaceAll(strings.Join(parts, " "), "|", `\|`)
}
