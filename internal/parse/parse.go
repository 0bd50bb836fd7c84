// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse turns HTML into a dom.Dom. Tokenizing, auto-closing and error
// recovery are delegated to golang.org/x/net/html; its tree is replayed as
// tree-construction events into a dom.Sink.
package parse

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/html2md/internal/dom"
	"github.com/pdiddy/html2md/pkg/types"
)

// HTML parses src into a Dom.
func HTML(src string) (*dom.Dom, error) {
	return Reader(strings.NewReader(src))
}

// Reader parses HTML read from r into a Dom. Any failure of the underlying
// parser aborts with a parse error carrying its diagnostic.
func Reader(r io.Reader) (*dom.Dom, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, types.WrapError(types.KindParse, err, "parsing HTML")
	}
	b := dom.NewBuilder()
	if err := Replay(root, b); err != nil {
		return nil, err
	}
	return b.Finish(), nil
}

// Replay walks a parsed x/net/html document and emits the equivalent
// creation and append events into sink, in document order.
func Replay(root *html.Node, sink dom.Sink) error {
	if root == nil {
		return types.NewError(types.KindParse, "empty document")
	}
	return replayChildren(root, sink.Document(), sink)
}

func replayChildren(n *html.Node, parent dom.NodeID, sink dom.Sink) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := replayNode(c, parent, sink); err != nil {
			return err
		}
	}
	return nil
}

func replayNode(n *html.Node, parent dom.NodeID, sink dom.Sink) error {
	switch n.Type {
	case html.ElementNode:
		attrs := make([]dom.Attr, 0, len(n.Attr))
		for _, a := range n.Attr {
			attrs = append(attrs, dom.Attr{Name: a.Key, Value: a.Val})
		}
		id := sink.CreateElement(dom.QualName{Space: n.Namespace, Local: n.Data}, attrs)
		if err := sink.AppendChild(parent, id); err != nil {
			return types.WrapError(types.KindParse, err, "appending <%s>", n.Data)
		}
		target := id
		if n.Data == "template" {
			target = sink.TemplateContents(id)
		}
		return replayChildren(n, target, sink)
	case html.TextNode:
		if err := sink.AppendText(parent, n.Data); err != nil {
			return types.WrapError(types.KindParse, err, "appending text")
		}
	case html.CommentNode:
		id := sink.CreateComment(n.Data)
		if err := sink.AppendChild(parent, id); err != nil {
			return types.WrapError(types.KindParse, err, "appending comment")
		}
	case html.DocumentNode:
		return replayChildren(n, parent, sink)
	case html.ErrorNode:
		sink.ParseError(n.Data)
	}
	// Doctype and raw nodes carry nothing the renderers read.
	return nil
}
