// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/html2md/pkg/types"
)

func TestIsSafeURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"javascript:alert(1)", false},
		{"JavaScript:alert(1)", false},
		{"data:text/html;base64,AAAA", false},
		{"VBScript:msgbox", false},
		{"http://example.com", false},
		{"HTTP://example.com", false},
		{"#section", false},
		{"https://example.com", true},
		{"mailto:me@example.com", true},
		{"tel:+15551234", true},
		{"ftp://files.example.com", true},
		{"/x", true},
		{"x", true},
		{"./x", true},
		{"../x", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSafeURL(tt.url))
		})
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		target string
		want   string
	}{
		{"relative file", "https://example.com/blog", "image.jpg", "https://example.com/blog/image.jpg"},
		{"parent of file base", "https://example.com/blog/post.html", "../img.png", "https://example.com/img.png"},
		{"two parents", "https://example.com/a/b/c", "../../x", "https://example.com/a/x"},
		{"parent of dir base", "https://example.com/blog/post", "../assets/image.jpg", "https://example.com/blog/assets/image.jpg"},
		{"too many parents", "https://example.com/deep/nested/path", "../../../../root.jpg", "https://example.com/root.jpg"},
		{"root relative", "https://blog.example.com/file/index.html", "/root/index.html", "https://blog.example.com/root/index.html"},
		{"host only base", "https://example.com", "/assets/logo.png", "https://example.com/assets/logo.png"},
		{"dot slash", "https://example.com/category/sub/index.html", "./icon.gif", "https://example.com/category/sub/icon.gif"},
		{"fragment ignored", "https://example.com/page#section", "image.jpg", "https://example.com/page/image.jpg"},
		{"query ignored", "https://example.com/blog?page=2&sort=date", "../images/header.jpg", "https://example.com/images/header.jpg"},
		{"target query kept", "https://example.com/a/", "b?x=1#y", "https://example.com/a/b?x=1#y"},
		{"absolute passes through", "https://example.com", "https://other.org/x", "https://other.org/x"},
		{"mailto passes through", "https://example.com", "mailto:me@example.com", "mailto:me@example.com"},
		{"protocol relative", "https://example.com", "//cdn.example.com/a.js", "https://cdn.example.com/a.js"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURL(tt.base, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveURL_InvalidBase(t *testing.T) {
	for _, base := range []string{"", "http://example.com", "example.com/path", "https://"} {
		t.Run(base, func(t *testing.T) {
			_, err := ResolveURL(base, "image.jpg")
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInvalidURL)
		})
	}
}
