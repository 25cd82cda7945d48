// Package testutil provides testing utilities for the gallery front end.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock backend endpoint.
type MockResponse struct {
	StatusCode  int
	Body        string
	ContentType string
	Delay       time.Duration
}

// MockBackend is a configurable mock gallery backend for testing. It
// records request counts per path so tests can assert whether a call
// was served from cache or went upstream.
type MockBackend struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc
	counts   map[string]int

	LastRequestHeader http.Header
}

// NewMockBackend creates a new mock backend server.
func NewMockBackend() *MockBackend {
	mock := &MockBackend{
		handlers: make(map[string]http.HandlerFunc),
		counts:   make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.counts[r.URL.Path]++
		mock.LastRequestHeader = r.Header.Clone()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockBackend) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockBackend) Close() {
	m.server.Close()
}

// Reset clears all counters and custom handlers.
func (m *MockBackend) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = make(map[string]http.HandlerFunc)
	m.counts = make(map[string]int)
	m.LastRequestHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockBackend) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a canned response for a path.
func (m *MockBackend) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		contentType := resp.ContentType
		if contentType == "" {
			contentType = "application/json; charset=utf-8"
		}
		w.Header().Set("Content-Type", contentType)

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetArtworks configures the collection endpoint from fixtures.
func (m *MockBackend) SetArtworks(artworks []map[string]any) {
	body, err := json.Marshal(artworks)
	if err != nil {
		panic(err)
	}
	m.SetResponse("/api/artworks", MockResponse{
		StatusCode: http.StatusOK,
		Body:       string(body),
	})
}

// SetArtwork configures a single-artwork endpoint from a fixture.
func (m *MockBackend) SetArtwork(id string, artwork map[string]any) {
	body, err := json.Marshal(artwork)
	if err != nil {
		panic(err)
	}
	m.SetResponse("/api/artworks/"+id, MockResponse{
		StatusCode: http.StatusOK,
		Body:       string(body),
	})
}

// RequestCount returns how many requests hit the given path.
func (m *MockBackend) RequestCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counts[path]
}

// TotalRequests returns the number of requests across all paths.
func (m *MockBackend) TotalRequests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, n := range m.counts {
		total += n
	}
	return total
}

// defaultHandler answers unconfigured paths with an empty collection
// shape for the listing endpoint and 404 for everything else.
func (m *MockBackend) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if r.URL.Path == "/api/artworks" {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
		return
	}

	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"detail": "Not found"}`))
}

// NewNotFoundResponse creates a 404 response in the backend's shape.
func NewNotFoundResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       `{"detail": "Artwork not found"}`,
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"detail": "Internal server error"}`,
	}
}
