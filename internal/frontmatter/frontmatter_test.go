// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frontmatter

import (
	"bytes"
	"testing"

	adrg "github.com/adrg/frontmatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/html2md/internal/dom"
	"github.com/pdiddy/html2md/internal/parse"
)

func mustParse(t *testing.T, src string) *dom.Dom {
	t.Helper()
	d, err := parse.HTML(src)
	require.NoError(t, err)
	return d
}

func TestTitleExtractor(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
		ok   bool
	}{
		{
			name: "head title",
			html: `<html><head><title>  Page   Title </title><meta property="og:title" content="OG"></head><body><h1>H</h1></body></html>`,
			want: "Page Title", ok: true,
		},
		{
			name: "meta title",
			html: `<html><head><meta name="title" content="Meta"><meta property="og:title" content="OG"></head></html>`,
			want: "Meta", ok: true,
		},
		{
			name: "og title after blank title",
			html: `<html><head><title> </title><meta property="og:title" content="Open Graph"></head></html>`,
			want: "Open Graph", ok: true,
		},
		{
			name: "twitter title",
			html: `<html><head><meta name="twitter:title" content="Tweet"></head></html>`,
			want: "Tweet", ok: true,
		},
		{
			name: "first heading in body",
			html: `<body><p>intro</p><h2>Second <em>Level</em></h2><h1>First</h1></body>`,
			want: "First", ok: true,
		},
		{
			name: "lower level when no h1",
			html: `<body><h3>Only H3</h3></body>`,
			want: "Only H3", ok: true,
		},
		{
			name: "none",
			html: `<body><p>no title</p></body>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TitleExtractor{}.Extract("", mustParse(t, tt.html))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceExtractor(t *testing.T) {
	d := mustParse(t, "<p>x</p>")
	v, ok := SourceExtractor{}.Extract("https://example.com/a", d)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a", v)

	_, ok = SourceExtractor{}.Extract("", d)
	assert.False(t, ok)
}

func TestExtract_OrderDedupUnknown(t *testing.T) {
	d := mustParse(t, "<title>T</title>")
	fields := Extract("https://example.com", d, []string{"source", "bogus", "title", "source"})
	assert.Equal(t, []Field{
		{Key: "source", Value: "https://example.com"},
		{Key: "title", Value: "T"},
	}, fields)

	assert.Empty(t, Extract("", mustParse(t, "<p>x</p>"), []string{"title", "source"}))
}

type authorExtractor struct{}

func (authorExtractor) Key() string { return "author" }

func (authorExtractor) Extract(_ string, d *dom.Dom) (string, bool) {
	for _, id := range d.FindElementsWithAttributeValue(d.Document, "name", "author") {
		return d.Attr(id, "content")
	}
	return "", false
}

func TestRegister(t *testing.T) {
	Register(authorExtractor{})
	t.Cleanup(func() {
		mu.Lock()
		defer mu.Unlock()
		extractors = extractors[:2]
	})

	assert.Equal(t, []string{"title", "source", "author"}, Keys())
	_, ok := Lookup("author")
	assert.True(t, ok)

	d := mustParse(t, `<head><meta name="author" content="Ada"></head>`)
	assert.Equal(t, []Field{{Key: "author", Value: "Ada"}}, Extract("", d, []string{"author"}))
}

func TestBlock(t *testing.T) {
	out, err := Block(nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)

	out, err = Block([]Field{{Key: "title", Value: "Hello"}, {Key: "source", Value: "https://example.com"}})
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: Hello\nsource: https://example.com\n---\n\n", out)
}

func TestBlock_RoundTripsThroughFrontMatterParser(t *testing.T) {
	fields := []Field{
		{Key: "title", Value: `Colons: "quotes" and # hashes`},
		{Key: "source", Value: "https://example.com/?a=1&b=2"},
	}
	out, err := Block(fields)
	require.NoError(t, err)

	var meta map[string]string
	rest, err := adrg.Parse(bytes.NewBufferString(out+"# Body\n"), &meta)
	require.NoError(t, err)
	assert.Equal(t, fields[0].Value, meta["title"])
	assert.Equal(t, fields[1].Value, meta["source"])
	assert.Equal(t, "# Body\n", string(bytes.TrimLeft(rest, "\n")))
}
