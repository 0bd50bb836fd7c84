// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves page HTML for the clip and serve stages.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/pdiddy/html2md/internal/httputil"
	"github.com/pdiddy/html2md/pkg/types"
)

// DefaultMaxBytes caps how much of a response body is read.
const DefaultMaxBytes = 10 << 20

// DefaultUserAgent is sent when the config leaves UserAgent empty.
const DefaultUserAgent = "html2md/0.1"

// Page is a fetched HTML document, decoded to UTF-8.
type Page struct {
	// URL is the requested address.
	URL string
	// FinalURL is the address after redirects. Relative links resolve
	// against it.
	FinalURL    string
	HTML        string
	ContentType string
}

// Fetcher retrieves the HTML at a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// HTTPFetcher fetches over HTTP with the shared 429/503 retry policy.
type HTTPFetcher struct {
	Client   *http.Client
	Config   types.HTTPConfig
	MaxBytes int64
}

// New returns an HTTPFetcher whose client uses cfg.Timeout.
func New(cfg types.HTTPConfig) *HTTPFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: timeout},
		Config:   cfg,
		MaxBytes: DefaultMaxBytes,
	}
}

// Fetch GETs url and returns its body decoded to UTF-8. Non-200 responses
// and non-HTML content types are errors. The HTTP client follows
// redirects.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	ua := f.Config.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, f.Config.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return nil, fmt.Errorf("unexpected content type %q from %s", contentType, url)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	body, err := charset.NewReader(io.LimitReader(resp.Body, limit), contentType)
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	return &Page{
		URL:         url,
		FinalURL:    resp.Request.URL.String(),
		HTML:        string(data),
		ContentType: contentType,
	}, nil
}

// isHTML accepts text/html, XHTML, and a missing content type.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "text/html" || mt == "application/xhtml+xml" || strings.HasSuffix(mt, "+html")
}
