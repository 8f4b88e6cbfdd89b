package web

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookview/internal/book"
	"bookview/internal/httpx"
)

const maxRequestBytes = 1 << 20

// RouterConfig holds what NewRouter needs to assemble the server.
type RouterConfig struct {
	Service      *book.Service
	DefaultISBN  string
	CoverBaseURL string
	CORSOrigins  []string
	EnableHSTS   bool
	// RateLimit is optional; nil disables per-client limiting.
	RateLimit *httpx.RateLimitMiddleware
}

// NewRouter builds the full HTTP surface: pages, JSON API, health and
// metrics, wrapped in the middleware chain.
func NewRouter(cfg RouterConfig) (http.Handler, error) {
	pages, err := NewHandler(cfg.Service, cfg.DefaultISBN)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	pages.Register(mux)
	book.NewHTTPHandler(cfg.Service).Register(mux)

	imgSources, err := imageOrigins(cfg.CoverBaseURL)
	if err != nil {
		return nil, err
	}

	mws := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(imgSources, cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSOrigins),
		httpx.RequestSizeLimitMiddleware(maxRequestBytes),
	}
	if cfg.RateLimit != nil {
		mws = append(mws, cfg.RateLimit.Middleware)
	}
	return httpx.Chain(mux, mws...), nil
}

// imageOrigins returns the origins cover images may be loaded from. Thumbnail
// URLs from the details endpoint are served by the same cover host.
func imageOrigins(coverBaseURL string) ([]string, error) {
	if coverBaseURL == "" {
		return nil, nil
	}
	u, err := url.Parse(coverBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse cover base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("cover base url %q must be absolute", coverBaseURL)
	}
	return []string{u.Scheme + "://" + u.Host}, nil
}
