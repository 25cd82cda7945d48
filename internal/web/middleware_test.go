package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/galeria/gallery-frontend/internal/testutil"
	"github.com/galeria/gallery-frontend/pkg/backend"
)

func TestCORS_AllowAll(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	srv := newTestServer(t, mock, "")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("Allow-Origin = %q, want echoed origin", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	srv := newTestServer(t, mock, "")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/gallery", nil)
	req.Header.Set("Origin", "https://example.com")
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want 204 for preflight", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("Preflight should advertise allowed methods")
	}
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()

	client, err := backend.New(backend.DefaultConfig(mock.URL()))
	if err != nil {
		t.Fatalf("backend.New failed: %v", err)
	}
	srv, err := NewServer(Config{
		Backend:        client,
		AllowedOrigins: []string{"https://trusted.example"},
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty for disallowed origin", got)
	}
}

func TestRateLimit(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()

	client, err := backend.New(backend.DefaultConfig(mock.URL()))
	if err != nil {
		t.Fatalf("backend.New failed: %v", err)
	}
	srv, err := NewServer(Config{
		Backend:        client,
		AllowedOrigins: []string{"*"},
		RateLimitRPS:   1,
		RateLimitBurst: 2,
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	handler := srv.Handler()
	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}

	// Burst of 2 passes, the rest are rejected.
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("First requests = %v, want burst to pass", codes[:2])
	}
	if codes[2] != http.StatusTooManyRequests && codes[3] != http.StatusTooManyRequests {
		t.Errorf("Later requests = %v, want 429 once the bucket drains", codes[2:])
	}
}

func TestRateLimit_DisabledByDefault(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	srv := newTestServer(t, mock, "")

	for i := 0; i < 20; i++ {
		rec := doRequest(t, srv, http.MethodGet, "/")
		if rec.Code != http.StatusOK {
			t.Fatalf("Request %d: status = %d, want 200 with limiter disabled", i, rec.Code)
		}
	}
}
