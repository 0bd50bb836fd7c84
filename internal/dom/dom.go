// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dom implements the arena-backed document tree the renderers walk.
// Every node lives in a single slice and is addressed by index; parent and
// child links are indices, never pointers. Nodes are never removed or
// reparented once created.
package dom

import (
	"fmt"
	"strings"

	"github.com/pdiddy/html2md/pkg/types"
)

// NodeID is an index into the Dom arena.
type NodeID int

// InvalidNode is never a valid lookup target. It is the parent of the root.
const InvalidNode NodeID = -1

func (id NodeID) String() string {
	return fmt.Sprintf("NodeId(%d)", int(id))
}

// NodeKind discriminates NodeData.
type NodeKind int

const (
	DocumentNode NodeKind = iota
	ElementNode
	TextNode
	CommentNode
)

// QualName is a namespace-qualified element name.
type QualName struct {
	Space string
	Local string
}

// NodeData is the payload of a node. Tag and Attrs are set for elements,
// Text for text and comment nodes.
type NodeData struct {
	Kind  NodeKind
	Tag   QualName
	Attrs map[string]string
	Text  string
}

// Node is one arena slot.
type Node struct {
	Data     NodeData
	Parent   NodeID
	Children []NodeID
}

// Dom owns every parsed node. Document is always index 0.
type Dom struct {
	arena    []Node
	Document NodeID
}

// New creates a Dom holding only the Document root.
func New() *Dom {
	return &Dom{
		arena: []Node{{
			Data:   NodeData{Kind: DocumentNode},
			Parent: InvalidNode,
		}},
		Document: 0,
	}
}

// Element returns NodeData for an element with the given local name.
func Element(tag string, attrs map[string]string) NodeData {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return NodeData{Kind: ElementNode, Tag: QualName{Local: tag}, Attrs: attrs}
}

// Text returns NodeData for a text node.
func Text(s string) NodeData {
	return NodeData{Kind: TextNode, Text: s}
}

// Comment returns NodeData for a comment node.
func Comment(s string) NodeData {
	return NodeData{Kind: CommentNode, Text: s}
}

// Len returns the number of nodes in the arena.
func (d *Dom) Len() int {
	return len(d.arena)
}

// Create appends a node and wires it under parent.
func (d *Dom) Create(data NodeData, parent NodeID) (NodeID, error) {
	if _, err := d.Node(parent); err != nil {
		return InvalidNode, err
	}
	id := d.createDetached(data)
	d.arena[id].Parent = parent
	d.arena[parent].Children = append(d.arena[parent].Children, id)
	return id, nil
}

// createDetached appends a node with no parent. The builder attaches it
// later through appendChild.
func (d *Dom) createDetached(data NodeData) NodeID {
	id := NodeID(len(d.arena))
	d.arena = append(d.arena, Node{Data: data, Parent: InvalidNode})
	return id
}

// appendChild links a detached child under parent. A child that already has
// a parent is left where it is.
func (d *Dom) appendChild(parent, child NodeID) error {
	if _, err := d.Node(parent); err != nil {
		return err
	}
	c, err := d.Node(child)
	if err != nil {
		return err
	}
	if c.Parent != InvalidNode || child == d.Document || child == parent {
		return nil
	}
	c.Parent = parent
	d.arena[parent].Children = append(d.arena[parent].Children, child)
	return nil
}

// Node returns the node for id, or ErrInvalidNode when id is out of range.
// The returned node must not be mutated once rendering starts.
func (d *Dom) Node(id NodeID) (*Node, error) {
	if id < 0 || int(id) >= len(d.arena) {
		return nil, types.NewError(types.KindInvalidNode, "node %s not found", id)
	}
	return &d.arena[id], nil
}

// Parent returns the parent of id, InvalidNode for the root.
func (d *Dom) Parent(id NodeID) (NodeID, error) {
	n, err := d.Node(id)
	if err != nil {
		return InvalidNode, err
	}
	return n.Parent, nil
}

// Children returns the ordered child ids of id.
func (d *Dom) Children(id NodeID) ([]NodeID, error) {
	n, err := d.Node(id)
	if err != nil {
		return nil, err
	}
	return n.Children, nil
}

// ElementData returns the tag and attributes of an element node. Non-element
// nodes yield ErrUnsupported.
func (d *Dom) ElementData(id NodeID) (QualName, map[string]string, error) {
	n, err := d.Node(id)
	if err != nil {
		return QualName{}, nil, err
	}
	if n.Data.Kind != ElementNode {
		return QualName{}, nil, types.NewError(types.KindUnsupported, "node %s is not an element", id)
	}
	return n.Data.Tag, n.Data.Attrs, nil
}

// TagName returns the local tag name of id, or "" for non-elements and
// invalid ids.
func (d *Dom) TagName(id NodeID) string {
	n, err := d.Node(id)
	if err != nil || n.Data.Kind != ElementNode {
		return ""
	}
	return n.Data.Tag.Local
}

// IsElement reports whether id is an element with one of the given tags.
func (d *Dom) IsElement(id NodeID, tags ...string) bool {
	name := d.TagName(id)
	if name == "" {
		return false
	}
	for _, t := range tags {
		if name == t {
			return true
		}
	}
	return false
}

// Attr returns the named attribute of an element.
func (d *Dom) Attr(id NodeID, name string) (string, bool) {
	n, err := d.Node(id)
	if err != nil || n.Data.Kind != ElementNode {
		return "", false
	}
	v, ok := n.Data.Attrs[name]
	return v, ok
}

// FindElementByTag returns the first element named tag in pre-order
// depth-first order, starting at (and including) start.
func (d *Dom) FindElementByTag(start NodeID, tag string) (NodeID, bool) {
	n, err := d.Node(start)
	if err != nil {
		return InvalidNode, false
	}
	if n.Data.Kind == ElementNode && n.Data.Tag.Local == tag {
		return start, true
	}
	for _, child := range n.Children {
		if found, ok := d.FindElementByTag(child, tag); ok {
			return found, true
		}
	}
	return InvalidNode, false
}

// FindAllElementsByTag returns every element named tag under start, in
// pre-order.
func (d *Dom) FindAllElementsByTag(start NodeID, tag string) []NodeID {
	var out []NodeID
	d.walk(start, func(id NodeID, n *Node) {
		if n.Data.Kind == ElementNode && n.Data.Tag.Local == tag {
			out = append(out, id)
		}
	})
	return out
}

// FindElementsWithAttribute returns every element under start carrying the
// named attribute, regardless of value.
func (d *Dom) FindElementsWithAttribute(start NodeID, name string) []NodeID {
	var out []NodeID
	d.walk(start, func(id NodeID, n *Node) {
		if n.Data.Kind != ElementNode {
			return
		}
		if _, ok := n.Data.Attrs[name]; ok {
			out = append(out, id)
		}
	})
	return out
}

// FindElementsWithAttributeValue returns every element under start whose
// named attribute equals value exactly.
func (d *Dom) FindElementsWithAttributeValue(start NodeID, name, value string) []NodeID {
	var out []NodeID
	d.walk(start, func(id NodeID, n *Node) {
		if n.Data.Kind != ElementNode {
			return
		}
		if v, ok := n.Data.Attrs[name]; ok && v == value {
			out = append(out, id)
		}
	})
	return out
}

// CollectTextContent concatenates every descendant text node of id in
// document order. Comments are ignored.
func (d *Dom) CollectTextContent(id NodeID) string {
	var b strings.Builder
	d.walk(id, func(_ NodeID, n *Node) {
		if n.Data.Kind == TextNode {
			b.WriteString(n.Data.Text)
		}
	})
	return b.String()
}

func (d *Dom) walk(id NodeID, fn func(NodeID, *Node)) {
	n, err := d.Node(id)
	if err != nil {
		return
	}
	fn(id, n)
	for _, child := range n.Children {
		d.walk(child, fn)
	}
}

// FindHead returns the first <head> element.
func (d *Dom) FindHead() (NodeID, bool) {
	return d.FindElementByTag(d.Document, "head")
}

// FindBody returns the first <body> element.
func (d *Dom) FindBody() (NodeID, bool) {
	return d.FindElementByTag(d.Document, "body")
}

// FindArticle returns the first <article> element.
func (d *Dom) FindArticle() (NodeID, bool) {
	return d.FindElementByTag(d.Document, "article")
}

// FindAllMeta returns every <meta> element in the document.
func (d *Dom) FindAllMeta() []NodeID {
	return d.FindAllElementsByTag(d.Document, "meta")
}

// RenderRoot selects where rendering starts: the first <article>, else the
// first <body>, else the document root.
func (d *Dom) RenderRoot() NodeID {
	if id, ok := d.FindArticle(); ok {
		return id
	}
	if id, ok := d.FindBody(); ok {
		return id
	}
	return d.Document
}
