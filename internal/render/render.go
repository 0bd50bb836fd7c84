// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render walks a dom.Dom and emits Markdown. A tag table maps
// element names to renderers; elements the table does not claim fall through
// a priority-ordered chain of attribute-driven renderers, and anything left
// renders as the concatenation of its children.
//
// Rendering state lives in a Context threaded through the recursion. A
// renderer that changes a Context field around a recursive call restores it
// before returning, so sibling subtrees never observe each other's state.
// Recursion depth follows document depth; there is no explicit guard.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/html2md/internal/dom"
	"github.com/pdiddy/html2md/internal/text"
	"github.com/pdiddy/html2md/pkg/types"
)

// Context is the mutable state of one render call. It is never shared
// between concurrent calls.
type Context struct {
	// BaseURL resolves relative links and image sources. Read-only.
	BaseURL string

	InInline bool
	// ListDepth is the cumulative marker width of enclosing lists
	// (2 per unordered, 3 per ordered), not the nesting count.
	ListDepth int
	// ListFirstItem is set by <li> and consumed by the first block inside
	// it, which then skips its indent.
	ListFirstItem      bool
	InTable            bool
	PreserveWhitespace bool
	InHeading          bool
	// Link is the pending link of the innermost compound anchor.
	Link *LinkInfo
	// LastChar is the last rune of the most recent non-empty output.
	LastChar rune
}

// blockIndent is the prefix for a block that starts now. The first block
// of a list item sits right after the marker and gets none.
func (c *Context) blockIndent() string {
	if c.ListDepth == 0 || c.ListFirstItem {
		return ""
	}
	return strings.Repeat(" ", c.ListDepth)
}

// continuationIndent pads lines after the first inside a list item.
func (c *Context) continuationIndent() string {
	return strings.Repeat(" ", c.ListDepth)
}

// LinkInfo carries a compound anchor's resolved URL to its descendants.
// Exactly one eligible descendant may claim it.
type LinkInfo struct {
	URL     string
	Targets []string
	applied bool
}

// DefaultLinkTargets is the order of tags eligible to carry a compound link.
var DefaultLinkTargets = []string{"img", "h1", "h2", "h3", "h4", "h5", "h6", "p", "span"}

// Claim applies the link to a node with the given tag. It succeeds at most
// once per LinkInfo.
func (l *LinkInfo) Claim(tag string) bool {
	if l == nil || l.applied {
		return false
	}
	for _, t := range l.Targets {
		if t == tag {
			l.applied = true
			return true
		}
	}
	return false
}

// Pending reports whether the link has not been claimed yet.
func (l *LinkInfo) Pending() bool {
	return l != nil && !l.applied
}

// Renderer renders one element kind.
type Renderer interface {
	// Matches reports whether the renderer accepts this specific node.
	Matches(d *dom.Dom, id dom.NodeID) bool
	Render(e *Engine, d *dom.Dom, id dom.NodeID, ctx *Context) (string, error)
}

// Engine dispatches nodes to renderers.
type Engine struct {
	guards  []Renderer
	tags    map[string]Renderer
	generic []Renderer
}

// NewEngine returns an engine with every built-in renderer registered.
func NewEngine() *Engine {
	e := &Engine{tags: make(map[string]Renderer, 48)}

	e.guards = append(e.guards, ClassFilter{})

	e.Register(Heading{}, "h1", "h2", "h3", "h4", "h5", "h6")
	e.Register(Paragraph{}, "p")
	e.Register(Inline{}, inlineTags...)
	e.Register(Media{}, "a", "img")
	e.Register(CodeBlock{}, "pre", "code")
	e.Register(Table{}, "table", "thead", "tbody", "tfoot", "tr", "th", "td")
	e.Register(List{}, "ul", "ol", "li")
	e.Register(Aside{}, "aside")
	e.Register(Ignored{}, ignoredTags...)

	e.generic = []Renderer{CodeFrame{}, GenericBlock{}}
	return e
}

// Register maps tags to r, replacing earlier registrations.
func (e *Engine) Register(r Renderer, tags ...string) {
	for _, t := range tags {
		e.tags[t] = r
	}
}

var defaultEngine = NewEngine()

// Render renders the subtree at root with a fresh Context.
func Render(baseURL string, d *dom.Dom, root dom.NodeID) (string, error) {
	ctx := &Context{BaseURL: baseURL}
	return defaultEngine.RenderNode(d, root, ctx)
}

// RenderNode renders one node: guards first, then the tag table, then the
// generic chain, then the default of concatenating children.
func (e *Engine) RenderNode(d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	n, err := d.Node(id)
	if err != nil {
		return "", err
	}

	out, err := e.dispatch(d, id, n, ctx)
	if err != nil {
		return "", err
	}
	if r, _ := utf8.DecodeLastRuneInString(out); out != "" && r != utf8.RuneError {
		ctx.LastChar = r
	}
	return out, nil
}

func (e *Engine) dispatch(d *dom.Dom, id dom.NodeID, n *dom.Node, ctx *Context) (string, error) {
	if n.Data.Kind == dom.ElementNode {
		for _, g := range e.guards {
			if g.Matches(d, id) {
				return g.Render(e, d, id, ctx)
			}
		}
		if r, ok := e.tags[n.Data.Tag.Local]; ok && r.Matches(d, id) {
			return r.Render(e, d, id, ctx)
		}
		for _, r := range e.generic {
			if r.Matches(d, id) {
				return r.Render(e, d, id, ctx)
			}
		}
	}
	return e.RenderChildren(d, id, ctx)
}

// RenderChildren renders the default form of a node: children concatenated
// for elements and the document, normalized text for text nodes, nothing
// for comments.
func (e *Engine) RenderChildren(d *dom.Dom, id dom.NodeID, ctx *Context) (string, error) {
	n, err := d.Node(id)
	if err != nil {
		return "", err
	}
	switch n.Data.Kind {
	case dom.ElementNode, dom.DocumentNode:
		var b strings.Builder
		prevBlock := false
		for _, child := range n.Children {
			out, err := e.RenderNode(d, child, ctx)
			if err != nil {
				return "", err
			}
			if ctx.PreserveWhitespace || ctx.InTable {
				b.WriteString(out)
				continue
			}
			prevBlock = appendFlow(&b, out, prevBlock, ctx)
		}
		return b.String(), nil
	case dom.TextNode:
		return renderText(d, id, n.Data.Text, ctx), nil
	default:
		return "", nil
	}
}

// appendFlow appends one child's output to b. A block (output ending in a
// blank line) that follows inline output starts after a blank line, and
// inline output that follows a block starts at the list continuation
// column. It reports whether b now ends with a block.
func appendFlow(b *strings.Builder, out string, prevBlock bool, ctx *Context) bool {
	if text.IsBlank(out) {
		if !prevBlock {
			b.WriteString(out)
		}
		return prevBlock
	}

	block := strings.HasSuffix(out, "\n\n")
	cur := b.String()
	switch {
	case block && cur != "" && !strings.HasSuffix(cur, "\n"):
		trimmed := strings.TrimRight(cur, " ")
		b.Reset()
		b.WriteString(trimmed)
		b.WriteString("\n\n")
	case !block && prevBlock && !strings.HasPrefix(out, "\n"):
		b.WriteString(ctx.continuationIndent())
		out = strings.TrimLeft(out, " ")
	}
	b.WriteString(out)
	if ctx.ListDepth > 0 {
		ctx.ListFirstItem = false
	}
	return block
}

// renderText keeps an edge space only where the neighbouring output on that
// side is inline: a phrasing sibling, or anything inside an inline element.
func renderText(d *dom.Dom, id dom.NodeID, s string, ctx *Context) string {
	if ctx.PreserveWhitespace {
		return s
	}
	prev, next := siblings(d, id)
	prevInline, nextInline := isPhrasing(d, prev), isPhrasing(d, next)
	afterText := ctx.LastChar != 0 && !unicode.IsSpace(ctx.LastChar)

	if text.IsBlank(text.Normalize(s)) {
		return text.NormalizeEdges(s, prevInline && nextInline && afterText, prevInline && nextInline)
	}
	lead := (ctx.InInline || prevInline) && afterText && d.TagName(prev) != "br"
	trail := (ctx.InInline || nextInline) && d.TagName(next) != "br"
	return text.NormalizeEdges(s, lead, trail)
}

func siblings(d *dom.Dom, id dom.NodeID) (prev, next dom.NodeID) {
	prev, next = dom.InvalidNode, dom.InvalidNode
	parent, err := d.Parent(id)
	if err != nil || parent == dom.InvalidNode {
		return
	}
	children, err := d.Children(parent)
	if err != nil {
		return
	}
	for i, c := range children {
		if c != id {
			continue
		}
		if i > 0 {
			prev = children[i-1]
		}
		if i+1 < len(children) {
			next = children[i+1]
		}
		break
	}
	return
}

var phrasingTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "cite": true, "code": true, "del": true,
	"dfn": true, "em": true, "i": true, "img": true, "ins": true, "kbd": true,
	"mark": true, "q": true, "s": true, "samp": true, "small": true, "span": true,
	"strong": true, "sub": true, "sup": true, "time": true, "u": true, "var": true,
}

// isPhrasing reports whether id is an inline element whose output flows with
// adjacent text. <br> is excluded: text hugs the break token.
func isPhrasing(d *dom.Dom, id dom.NodeID) bool {
	if id == dom.InvalidNode {
		return false
	}
	return phrasingTags[d.TagName(id)]
}

// hasContent reports whether id carries visible text or an image.
func hasContent(d *dom.Dom, id dom.NodeID) bool {
	if text.Normalize(d.CollectTextContent(id)) != "" {
		return true
	}
	_, ok := d.FindElementByTag(id, "img")
	return ok
}

// claimLink applies the pending compound link to id when its tag is
// eligible and it has something to carry the link.
func claimLink(d *dom.Dom, id dom.NodeID, tag string, ctx *Context) (string, bool) {
	if !ctx.Link.Pending() {
		return "", false
	}
	if tag != "img" && !hasContent(d, id) {
		return "", false
	}
	if !ctx.Link.Claim(tag) {
		return "", false
	}
	return ctx.Link.URL, true
}

// wrapInline surrounds the trimmed core of s with open/close, moving any edge
// space outside the delimiters.
func wrapInline(s, open, close string) string {
	core := strings.TrimSpace(s)
	if core == "" {
		return ""
	}
	var b strings.Builder
	if strings.HasPrefix(s, " ") {
		b.WriteByte(' ')
	}
	b.WriteString(open)
	b.WriteString(core)
	b.WriteString(close)
	if strings.HasSuffix(s, " ") {
		b.WriteByte(' ')
	}
	return b.String()
}

func unsupported(d *dom.Dom, id dom.NodeID, renderer string) error {
	return types.NewError(types.KindUnsupported, "%s renderer cannot render <%s>", renderer, d.TagName(id))
}
