// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/html2md/internal/httputil"
	"github.com/pdiddy/html2md/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func TestFetch(t *testing.T) {
	var ua, accept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<p>hi</p>"))
	}))
	defer ts.Close()

	f := New(types.HTTPConfig{UserAgent: "test-agent/1.0"})
	page, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.Equal(t, "<p>hi</p>", page.HTML)
	assert.Equal(t, ts.URL, page.FinalURL)
	assert.Equal(t, "test-agent/1.0", ua)
	assert.Contains(t, accept, "text/html")
}

func TestFetch_DefaultUserAgent(t *testing.T) {
	var ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
	}))
	defer ts.Close()

	_, err := New(types.HTTPConfig{}).Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, ua)
}

func TestFetch_DecodesCharset(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write([]byte("<p>caf\xe9</p>"))
	}))
	defer ts.Close()

	page, err := New(types.HTTPConfig{}).Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "<p>café</p>", page.HTML)
}

func TestFetch_FollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("moved"))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	page, err := New(types.HTTPConfig{}).Fetch(context.Background(), ts.URL+"/old")
	require.NoError(t, err)
	assert.Equal(t, ts.URL+"/old", page.URL)
	assert.Equal(t, ts.URL+"/new", page.FinalURL)
	assert.Equal(t, "moved", page.HTML)
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr: "HTTP 404",
		},
		{
			name: "pdf",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/pdf")
			},
			wantErr: "unexpected content type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			_, err := New(types.HTTPConfig{}).Fetch(context.Background(), ts.URL)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFetch_RetriesTooManyRequests(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	page, err := New(types.HTTPConfig{MaxRetries: 2}).Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", page.HTML)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetch_TruncatesBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("abcdefghij"))
	}))
	defer ts.Close()

	f := New(types.HTTPConfig{})
	f.MaxBytes = 4
	page, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "abcd", page.HTML)
}

func TestIsHTML(t *testing.T) {
	assert.True(t, isHTML(""))
	assert.True(t, isHTML("text/html"))
	assert.True(t, isHTML("TEXT/HTML; charset=utf-8"))
	assert.True(t, isHTML("application/xhtml+xml"))
	assert.False(t, isHTML("application/json"))
	assert.False(t, isHTML(";;"))
}
