// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/html2md/pkg/types"
)

// buildPage builds:
//
//	<html><head><title>T</title><meta name="title" content="M"></head>
//	<body><h1 id="x">Hello <!--c--><b>World</b></h1><article><p>a</p></article></body></html>
func buildPage(t *testing.T) (*Dom, map[string]NodeID) {
	t.Helper()
	d := New()
	ids := map[string]NodeID{}
	mk := func(name string, data NodeData, parent NodeID) NodeID {
		id, err := d.Create(data, parent)
		require.NoError(t, err)
		if name != "" {
			ids[name] = id
		}
		return id
	}
	html := mk("html", Element("html", nil), d.Document)
	head := mk("head", Element("head", nil), html)
	title := mk("title", Element("title", nil), head)
	mk("", Text("T"), title)
	mk("meta", Element("meta", map[string]string{"name": "title", "content": "M"}), head)
	body := mk("body", Element("body", nil), html)
	h1 := mk("h1", Element("h1", map[string]string{"id": "x"}), body)
	mk("", Text("Hello "), h1)
	mk("", Comment("c"), h1)
	b := mk("b", Element("b", nil), h1)
	mk("", Text("World"), b)
	article := mk("article", Element("article", nil), body)
	p := mk("p", Element("p", nil), article)
	mk("", Text("a"), p)
	return d, ids
}

func TestNew(t *testing.T) {
	d := New()
	assert.Equal(t, NodeID(0), d.Document)
	assert.Equal(t, 1, d.Len())

	n, err := d.Node(d.Document)
	require.NoError(t, err)
	assert.Equal(t, DocumentNode, n.Data.Kind)
	assert.Equal(t, InvalidNode, n.Parent)
}

func TestCreate_WiresParentAndChild(t *testing.T) {
	d := New()
	div, err := d.Create(Element("div", nil), d.Document)
	require.NoError(t, err)
	txt, err := d.Create(Text("x"), div)
	require.NoError(t, err)

	parent, err := d.Parent(txt)
	require.NoError(t, err)
	assert.Equal(t, div, parent)

	children, err := d.Children(div)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{txt}, children)
}

func TestCreate_InvalidParent(t *testing.T) {
	d := New()
	_, err := d.Create(Text("x"), NodeID(9))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidNode)
	assert.Equal(t, 1, d.Len())
}

func TestNode_InvalidIDs(t *testing.T) {
	d := New()
	for _, id := range []NodeID{InvalidNode, NodeID(1), NodeID(100)} {
		_, err := d.Node(id)
		assert.ErrorIs(t, err, types.ErrInvalidNode, id.String())
	}
}

func TestElementData(t *testing.T) {
	d, ids := buildPage(t)

	tag, attrs, err := d.ElementData(ids["h1"])
	require.NoError(t, err)
	assert.Equal(t, "h1", tag.Local)
	assert.Equal(t, "x", attrs["id"])

	_, _, err = d.ElementData(d.Document)
	assert.ErrorIs(t, err, types.ErrUnsupported)
}

func TestFind(t *testing.T) {
	d, ids := buildPage(t)

	id, ok := d.FindElementByTag(d.Document, "b")
	require.True(t, ok)
	assert.Equal(t, ids["b"], id)

	_, ok = d.FindElementByTag(ids["article"], "h1")
	assert.False(t, ok)

	assert.Equal(t, []NodeID{ids["meta"]}, d.FindAllMeta())
	assert.Equal(t, []NodeID{ids["h1"], ids["meta"]}, sorted(append(
		d.FindElementsWithAttribute(d.Document, "id"),
		d.FindElementsWithAttribute(d.Document, "content")...)))
	assert.Equal(t, []NodeID{ids["meta"]}, d.FindElementsWithAttributeValue(d.Document, "name", "title"))
	assert.Empty(t, d.FindElementsWithAttributeValue(d.Document, "name", "other"))

	head, ok := d.FindHead()
	require.True(t, ok)
	assert.Equal(t, ids["head"], head)
	body, ok := d.FindBody()
	require.True(t, ok)
	assert.Equal(t, ids["body"], body)
}

func TestCollectTextContent(t *testing.T) {
	d, ids := buildPage(t)
	assert.Equal(t, "Hello World", d.CollectTextContent(ids["h1"]))
	assert.Equal(t, "", d.CollectTextContent(NodeID(999)))
}

func TestRenderRoot(t *testing.T) {
	d, ids := buildPage(t)
	assert.Equal(t, ids["article"], d.RenderRoot())

	d = New()
	html, _ := d.Create(Element("html", nil), d.Document)
	body, _ := d.Create(Element("body", nil), html)
	assert.Equal(t, body, d.RenderRoot())

	assert.Equal(t, New().Document, New().RenderRoot())
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	div := b.CreateElement(QualName{Local: "div"}, []Attr{{Name: "class", Value: "a"}, {Name: "class", Value: "b"}})
	require.NoError(t, b.AppendChild(b.Document(), div))
	require.NoError(t, b.AppendText(div, "x"))

	// A second append never reparents.
	other := b.CreateElement(QualName{Local: "span"}, nil)
	require.NoError(t, b.AppendChild(b.Document(), other))
	require.NoError(t, b.AppendChild(div, other))

	b.ParseError("unexpected token")
	d := b.Finish()

	assert.Equal(t, []string{"unexpected token"}, b.Diagnostics())
	v, ok := d.Attr(div, "class")
	require.True(t, ok)
	assert.Equal(t, "a", v)

	parent, err := d.Parent(other)
	require.NoError(t, err)
	assert.Equal(t, d.Document, parent)
	assert.True(t, d.IsElement(div, "p", "div"))
	assert.False(t, d.IsElement(div, "p"))
}

func sorted(ids []NodeID) []NodeID {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}
