// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dom

// Attr is one attribute as delivered by the tree builder.
type Attr struct {
	Name  string
	Value string
}

// Sink receives tree-construction events from an HTML5 tree builder.
// Only creation and appending change the tree; the remaining operations are
// part of the protocol but accepted as no-ops, since the tree never
// reparents or mutates nodes after creation.
type Sink interface {
	Document() NodeID
	CreateElement(name QualName, attrs []Attr) NodeID
	CreateComment(text string) NodeID
	AppendChild(parent, child NodeID) error
	AppendText(parent NodeID, text string) error

	AddAttrsIfMissing(target NodeID, attrs []Attr)
	Reparent(node, newParent NodeID)
	RemoveFromParent(node NodeID)
	TemplateContents(target NodeID) NodeID
	ParseError(msg string)
}

// Builder is the Sink that produces a Dom.
type Builder struct {
	dom    *Dom
	errors []string
}

// NewBuilder returns a Builder over an empty Dom.
func NewBuilder() *Builder {
	return &Builder{dom: New()}
}

// Document returns the root id.
func (b *Builder) Document() NodeID { return b.dom.Document }

// CreateElement creates a detached element. Void and unknown elements are
// created the same way as any other.
func (b *Builder) CreateElement(name QualName, attrs []Attr) NodeID {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if _, dup := m[a.Name]; dup {
			continue
		}
		m[a.Name] = a.Value
	}
	return b.dom.createDetached(NodeData{Kind: ElementNode, Tag: name, Attrs: m})
}

// CreateComment creates a detached comment.
func (b *Builder) CreateComment(text string) NodeID {
	return b.dom.createDetached(Comment(text))
}

// AppendChild attaches a detached node under parent.
func (b *Builder) AppendChild(parent, child NodeID) error {
	return b.dom.appendChild(parent, child)
}

// AppendText creates a text node under parent.
func (b *Builder) AppendText(parent NodeID, text string) error {
	_, err := b.dom.Create(Text(text), parent)
	return err
}

func (b *Builder) AddAttrsIfMissing(NodeID, []Attr) {}
func (b *Builder) Reparent(NodeID, NodeID)          {}
func (b *Builder) RemoveFromParent(NodeID)          {}

// TemplateContents returns the template element itself so its content is
// appended in place.
func (b *Builder) TemplateContents(target NodeID) NodeID { return target }

// ParseError records a recoverable diagnostic from the tree builder.
func (b *Builder) ParseError(msg string) {
	b.errors = append(b.errors, msg)
}

// Diagnostics returns the recoverable parse diagnostics seen so far.
func (b *Builder) Diagnostics() []string {
	return b.errors
}

// Finish returns the built Dom.
func (b *Builder) Finish() *Dom {
	return b.dom
}
