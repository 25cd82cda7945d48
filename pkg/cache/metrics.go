package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Hits tracks cache hits
	Hits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_cache_hits_total",
			Help: "Total number of backend cache hits",
		},
	)

	// Misses tracks cache misses, including TTL expiries
	Misses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_cache_misses_total",
			Help: "Total number of backend cache misses",
		},
	)

	// Entries tracks the current number of cached paths
	Entries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_cache_entries",
			Help: "Current number of cached backend responses",
		},
	)

	// Clears tracks explicit cache invalidations
	Clears = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_cache_clears_total",
			Help: "Total number of explicit cache clears",
		},
	)
)
