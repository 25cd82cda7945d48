// Package cache provides the in-memory TTL cache in front of backend
// API calls.
//
// The store keeps one entry per backend request path. Entries carry
// the raw JSON payload and the time they were fetched; an entry whose
// age has reached the TTL is treated as a miss and deleted on read.
// There is no background sweeper.
//
// # Basic Usage
//
//	store := cache.NewStore(5*time.Minute, nil)
//
//	payload, err := store.Get("/api/artworks")
//	if err == cache.ErrCacheMiss {
//		// fetch from backend, then:
//		store.Set("/api/artworks", payload)
//	}
//
// # Fake Clock
//
// The clock is injected so TTL behavior can be tested without
// sleeping:
//
//	now := time.Now()
//	store := cache.NewStore(time.Minute, func() time.Time { return now })
//
// # Metrics
//
// The store exports Prometheus metrics:
//
//   - gallery_cache_hits_total - Cache hits
//   - gallery_cache_misses_total - Cache misses (absent or expired)
//   - gallery_cache_entries - Current entry count
//   - gallery_cache_clears_total - Explicit invalidations
//
// # Concurrency
//
// The map itself is mutex-guarded, but the miss-fetch-set sequence in
// the caller is intentionally not atomic: two requests racing on the
// same path may both miss and both fetch upstream. The last writer
// wins, and since a Set is always a full replacement this is safe.
package cache
