// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/html2md/internal/dom"
)

// Media renders <a> and <img>.
//
// An anchor wrapping more than one element is a compound link (a card): its
// URL is handed down as a LinkInfo and applied to the first eligible
// descendant in document order, so the link appears once.
type Media struct{}

func (Media) Matches(d *dom.Dom, id dom.NodeID) bool {
	return d.IsElement(id, "a", "img")
}

func (Media) Render(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	switch d.TagName(id) {
	case "a":
		return renderAnchor(e, d, id, ctx)
	case "img":
		return renderImage(d, id, ctx), nil
	}
	return "", unsupported(d, id, "media")
}

func renderAnchor(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	href, _ := d.Attr(id, "href")
	safe := IsSafeURL(href)
	link := ""
	if safe {
		link = resolveOrRaw(ctx.BaseURL, href)
	}

	if safe && isCompound(d, id) {
		saved := ctx.Link
		info := &LinkInfo{URL: link, Targets: DefaultLinkTargets}
		ctx.Link = info
		content, err := e.RenderChildren(d, id, ctx)
		ctx.Link = saved
		if err != nil {
			return "", err
		}
		// Nothing claimed the link; keep it if the content is one line.
		if trimmed := strings.TrimSpace(content); info.Pending() && trimmed != "" && !strings.Contains(trimmed, "\n") {
			return "[" + trimmed + "](" + link + ")", nil
		}
		return content, nil
	}

	saved := ctx.InInline
	ctx.InInline = true
	content, err := e.RenderChildren(d, id, ctx)
	ctx.InInline = saved
	if err != nil {
		return "", err
	}
	if !safe {
		return content, nil
	}
	return wrapInline(content, "[", "]("+link+")"), nil
}

func renderImage(d *dom.Dom, id dom.NodeID, ctx *Context) string {
	alt, _ := d.Attr(id, "alt")
	alt = strings.TrimSpace(alt)
	if ctx.InHeading {
		return alt
	}

	src, _ := d.Attr(id, "src")
	safe := IsSafeURL(src)
	if safe {
		src = resolveOrRaw(ctx.BaseURL, src)
	}

	inline := ctx.InInline && ctx.Link == nil
	indent := ""
	if !inline {
		indent = ctx.blockIndent()
	}

	var out string
	if link, ok := claimLink(d, id, "img", ctx); ok {
		if safe {
			out = "[![" + alt + "](" + src + ")](" + link + ")"
		} else {
			out = "[" + alt + "](" + link + ")"
		}
	} else if safe {
		out = "![" + alt + "](" + src + ")"
	} else {
		out = alt
	}

	if out == "" || inline {
		return out
	}
	ctx.ListFirstItem = false
	return indent + out + "\n\n"
}

// resolveOrRaw falls back to the unresolved URL when resolution fails, so
// one bad link never fails the document.
func resolveOrRaw(base, u string) string {
	resolved, err := ResolveURL(base, u)
	if err != nil {
		return strings.TrimSpace(u)
	}
	return resolved
}

// isCompound reports whether an anchor wraps more than one element, or a
// single block element such as a heading or a container.
func isCompound(d *dom.Dom, id dom.NodeID) bool {
	children, err := d.Children(id)
	if err != nil {
		return false
	}
	var elems []dom.NodeID
	for _, c := range children {
		if d.TagName(c) != "" {
			elems = append(elems, c)
		}
	}
	switch len(elems) {
	case 0:
		return false
	case 1:
		return !isPhrasing(d, elems[0]) && d.TagName(elems[0]) != "br"
	default:
		return true
	}
}
