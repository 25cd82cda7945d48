// Package metrics provides the Prometheus registry reference and HTTP
// handler for the gallery front end. All metrics are defined in their
// respective packages (backend, cache, web) to maintain modularity and
// avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the gallery
// front end. All metrics are automatically registered via promauto in
// their respective packages.
var Registry = prometheus.DefaultRegisterer

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Backend Metrics (pkg/backend):
//   - gallery_backend_requests_total{path, status} (Counter): Backend requests by path and status
//   - gallery_backend_request_duration_seconds{path} (Histogram): Backend request duration
//   - gallery_backend_errors_total{kind} (Counter): Errors by kind (upstream, transport, decode)
//
// Cache Metrics (pkg/cache):
//   - gallery_cache_hits_total (Counter): Cache hits
//   - gallery_cache_misses_total (Counter): Cache misses, including TTL expiries
//   - gallery_cache_entries (Gauge): Current number of cached responses
//   - gallery_cache_clears_total (Counter): Explicit cache clears
//
// Inbound Metrics (internal/web):
//   - gallery_http_requests_total{route, status} (Counter): Inbound requests by route and status
//   - gallery_http_request_duration_seconds{route} (Histogram): Inbound request duration
//   - gallery_http_rate_limited_total (Counter): Requests rejected by the rate limiter
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   rate(gallery_cache_hits_total[5m]) /
//   (rate(gallery_cache_hits_total[5m]) + rate(gallery_cache_misses_total[5m]))
//
//   # Backend Error Rate
//   rate(gallery_backend_errors_total[5m])
//
//   # P95 Inbound Latency
//   histogram_quantile(0.95, rate(gallery_http_request_duration_seconds_bucket[5m]))
