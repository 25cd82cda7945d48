// Package backend provides the HTTP client to the gallery backend API
// with TTL caching, media streaming, and error translation.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/galeria/gallery-frontend/pkg/cache"
	"github.com/galeria/gallery-frontend/pkg/gallery"
)

// Prometheus metrics for backend operations.
var (
	backendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_backend_requests_total",
		Help: "Total backend requests by path and status",
	}, []string{"path", "status"})

	backendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gallery_backend_request_duration_seconds",
		Help:    "Backend request duration in seconds by path",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20},
	}, []string{"path"})

	backendErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_backend_errors_total",
		Help: "Total backend errors by kind",
	}, []string{"kind"})
)

const (
	// MaxArtworkIDLength bounds artwork IDs before any upstream call.
	MaxArtworkIDLength = 50

	// jsonTimeout bounds JSON API calls.
	jsonTimeout = 20 * time.Second

	// mediaTimeout bounds streamed media calls.
	mediaTimeout = 30 * time.Second

	// maxErrorBody caps how much of an upstream error body is kept.
	maxErrorBody = 4 * 1024

	apiKeyHeader = "X-API-Key"
)

// Client is the backend API client. JSON responses are served from an
// in-memory TTL cache when fresh; media is streamed uncached.
type Client struct {
	httpClient  *http.Client
	mediaClient *http.Client
	baseURL     string
	apiKey      string
	cache       *cache.Store
	logger      zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the backend base URL, e.g. "http://localhost:9000".
	BaseURL string

	// APIKey is sent as X-API-Key when non-empty.
	APIKey string

	// CacheTTL is the maximum age of a cached JSON response.
	CacheTTL time.Duration

	// Clock overrides the cache clock (for testing). Nil means time.Now.
	Clock cache.Clock
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:  baseURL,
		CacheTTL: 5 * time.Minute,
	}
}

// New creates a new backend client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("cache TTL must be positive (got %v)", cfg.CacheTTL)
	}

	logger := log.With().Str("component", "backend-client").Logger()

	return &Client{
		httpClient:  &http.Client{Timeout: jsonTimeout},
		mediaClient: &http.Client{Timeout: mediaTimeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		cache:       cache.NewStore(cfg.CacheTTL, cfg.Clock),
		logger:      logger,
	}, nil
}

// Fetch returns the JSON payload for a backend path, from cache when
// the entry is younger than the TTL, otherwise from a fresh upstream
// call whose result replaces the cache entry.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	if payload, err := c.cache.Get(path); err == nil {
		c.logger.Debug().Str("path", path).Msg("Cache hit")
		return payload, nil
	}

	c.logger.Debug().Str("path", path).Msg("Cache miss, fetching from backend")

	startTime := time.Now()
	defer func() {
		backendRequestDuration.WithLabelValues(path).Observe(time.Since(startTime).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("Backend request failed")
		backendErrorsTotal.WithLabelValues("transport").Inc()
		backendRequestsTotal.WithLabelValues(path, "transport_error").Inc()
		return nil, &ServiceUnavailableError{Op: "fetch " + path, Err: err}
	}
	defer resp.Body.Close()

	backendRequestsTotal.WithLabelValues(path, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBounded(resp.Body, maxErrorBody)
		c.logger.Warn().
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("Backend request error")
		backendErrorsTotal.WithLabelValues("upstream").Inc()
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		backendErrorsTotal.WithLabelValues("transport").Inc()
		return nil, &ServiceUnavailableError{Op: "read " + path, Err: err}
	}
	if !json.Valid(payload) {
		backendErrorsTotal.WithLabelValues("decode").Inc()
		return nil, fmt.Errorf("backend returned invalid JSON for %s", path)
	}

	c.cache.Set(path, payload)
	return payload, nil
}

// Artworks fetches and decodes the full artwork collection.
func (c *Client) Artworks(ctx context.Context) ([]gallery.Artwork, error) {
	payload, err := c.Fetch(ctx, "/api/artworks")
	if err != nil {
		return nil, err
	}
	return gallery.DecodeCollection(payload)
}

// Artwork fetches a single artwork by ID. IDs that are empty or longer
// than MaxArtworkIDLength fail fast with a ValidationError before any
// upstream call. An upstream 404 propagates as an UpstreamError so the
// caller can branch via IsNotFound.
func (c *Client) Artwork(ctx context.Context, id string) (gallery.Artwork, error) {
	if id == "" || len(id) > MaxArtworkIDLength {
		return gallery.Artwork{}, &ValidationError{
			Field:   "artwork_id",
			Message: fmt.Sprintf("must be 1-%d characters", MaxArtworkIDLength),
		}
	}

	payload, err := c.Fetch(ctx, "/api/artworks/"+id)
	if err != nil {
		return gallery.Artwork{}, err
	}
	return gallery.DecodeArtwork(payload)
}

// Stream opens an uncached media request and returns the response for
// the caller to stream from. The caller owns the body. Non-2xx
// responses are translated to UpstreamError with the body capped.
func (c *Client) Stream(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.mediaClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("Media request failed")
		backendErrorsTotal.WithLabelValues("transport").Inc()
		backendRequestsTotal.WithLabelValues(path, "transport_error").Inc()
		return nil, &ServiceUnavailableError{Op: "stream " + path, Err: err}
	}

	backendRequestsTotal.WithLabelValues(path, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBounded(resp.Body, maxErrorBody)
		resp.Body.Close()
		c.logger.Warn().
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("Media request error")
		backendErrorsTotal.WithLabelValues("upstream").Inc()
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	return resp, nil
}

// ClearCache removes every cached entry unconditionally.
func (c *Client) ClearCache() {
	c.cache.Clear()
	c.logger.Info().Msg("Cache cleared")
}

// CacheSize returns the number of cached entries.
func (c *Client) CacheSize() int {
	return c.cache.Len()
}

// readBounded reads at most limit bytes and returns them as a string.
func readBounded(r io.Reader, limit int64) string {
	body, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return ""
	}
	return string(body)
}
