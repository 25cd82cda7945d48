package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/galeria/gallery-frontend/internal/testutil"
	"github.com/galeria/gallery-frontend/pkg/backend"
)

func newTestServer(t *testing.T, mock *testutil.MockBackend, apiKey string) *Server {
	t.Helper()

	cfg := backend.DefaultConfig(mock.URL())
	cfg.APIKey = apiKey
	client, err := backend.New(cfg)
	if err != nil {
		t.Fatalf("backend.New failed: %v", err)
	}

	srv, err := NewServer(Config{
		Backend:        client,
		APIKey:         apiKey,
		AllowedOrigins: []string{"*"},
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return srv
}

func doRequest(t *testing.T, srv *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewServer_RequiresBackend(t *testing.T) {
	if _, err := NewServer(Config{}); err == nil {
		t.Error("Expected error for missing backend client")
	}
}

func TestHandleRoot(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	srv := newTestServer(t, mock, "")

	rec := doRequest(t, srv, http.MethodGet, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" || body["app"] != AppName {
		t.Errorf("Body = %v", body)
	}
}
