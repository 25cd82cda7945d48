// Package cache provides a process-local TTL cache for backend responses.
package cache

import (
	"errors"
	"sync"
	"time"
)

// ErrCacheMiss indicates the requested path was not found in cache
// or its entry has exceeded the configured TTL.
var ErrCacheMiss = errors.New("cache miss")

// Clock returns the current time. Injected so TTL behavior is
// testable with a fake clock.
type Clock func() time.Time

type entry struct {
	payload   []byte
	fetchedAt time.Time
}

// Store is an in-memory TTL cache keyed by backend request path.
//
// Entries are full replacements: a Set overwrites payload and
// timestamp together, so readers never observe a partial value.
// Expiry is enforced lazily at read time; there is no background
// eviction goroutine.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     Clock
	entries map[string]entry
}

// NewStore creates a store with the given TTL. A nil clock defaults
// to time.Now.
func NewStore(ttl time.Duration, clock Clock) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		ttl:     ttl,
		now:     clock,
		entries: make(map[string]entry),
	}
}

// Get returns the cached payload for path.
// Returns ErrCacheMiss if the path is absent or the entry's age has
// reached the TTL. Expired entries are deleted on read.
func (s *Store) Get(path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[path]
	if !ok {
		Misses.Inc()
		return nil, ErrCacheMiss
	}

	if s.now().Sub(e.fetchedAt) >= s.ttl {
		delete(s.entries, path)
		Misses.Inc()
		return nil, ErrCacheMiss
	}

	Hits.Inc()
	return e.payload, nil
}

// Set stores payload for path with a fresh timestamp, replacing any
// previous entry.
func (s *Store) Set(path string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[path] = entry{
		payload:   payload,
		fetchedAt: s.now(),
	}
	Entries.Set(float64(len(s.entries)))
}

// Clear removes all entries unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]entry)
	Entries.Set(0)
	Clears.Inc()
}

// Len returns the number of entries currently held, including entries
// that would expire on their next read.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// TTL returns the configured time-to-live.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
