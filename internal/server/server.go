// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the converter over HTTP.
package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/html2md/internal/convert"
	"github.com/pdiddy/html2md/pkg/types"
)

// DefaultMaxBodyBytes caps request bodies when the config leaves it unset.
const DefaultMaxBodyBytes = 10 << 20

// Server serves POST /v1/convert, GET /healthz and GET /metrics.
type Server struct {
	cfg         types.ServerConfig
	frontMatter []string
	log         io.Writer
	registry    *prometheus.Registry
	metrics     *metrics
}

// New builds a Server. frontMatter is the key list used when a request
// names none; log receives one line per request.
func New(cfg types.ServerConfig, frontMatter []string, log io.Writer) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if frontMatter == nil {
		frontMatter = convert.DefaultFrontMatter
	}
	if log == nil {
		log = io.Discard
	}
	reg := prometheus.NewRegistry()
	return &Server{
		cfg:         cfg,
		frontMatter: frontMatter,
		log:         log,
		registry:    reg,
		metrics:     newMetrics(reg),
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Post("/v1/convert", s.handleConvert)
	return r
}

// ListenAndServe serves until the listener fails.
func (s *Server) ListenAndServe() error {
	addr := s.cfg.Listen
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Fprintf(s.log, "listening on %s\n", addr)
	return srv.ListenAndServe()
}

// handleConvert converts the HTML request body. Query parameters:
// base_url resolves relative links and feeds the "source" key; each key
// selects a front-matter key, in order.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	outcome := OutcomeOK
	defer func() {
		s.metrics.conversions.WithLabelValues(outcome).Inc()
		s.metrics.duration.Observe(time.Since(start).Seconds())
	}()

	q := r.URL.Query()
	baseURL := q.Get("base_url")
	if err := validateBaseURL(baseURL); err != nil {
		outcome = OutcomeInvalidURL
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	keys := s.frontMatter
	if k, ok := q["key"]; ok {
		keys = k
	}

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	md, err := convert.ConvertReader(baseURL, body, keys)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			outcome = OutcomeTooLarge
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		case errors.Is(err, types.ErrParse):
			outcome = OutcomeParseError
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, types.ErrInvalidURL):
			outcome = OutcomeInvalidURL
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			outcome = OutcomeError
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, md)
}

// validateBaseURL accepts an empty base or an absolute http(s) URL.
func validateBaseURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return types.NewError(types.KindInvalidURL, "base_url %q is not an absolute http(s) URL", raw)
	}
	return nil
}

// logRequests writes "METHOD path status duration" per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		fmt.Fprintf(s.log, "%s %s %d %v\n", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Microsecond))
	})
}
