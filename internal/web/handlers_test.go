package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/galeria/gallery-frontend/internal/testutil"
)

func galleryFixtures() []map[string]any {
	return []map[string]any{
		{"artwork_id": "a1", "title": "Sunset Harbor", "medium": "Oil on canvas", "year": "1990"},
		{"artwork_id": "a2", "title": "Blue Interior", "medium": "Watercolor", "year": 2005},
		{"artwork_id": "a3", "title": "Untitled", "medium": "Oil on canvas"},
	}
}

func TestHandleGalleryList(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	mock.SetArtworks(galleryFixtures())
	srv := newTestServer(t, mock, "")

	rec := doRequest(t, srv, http.MethodGet, "/gallery")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	page := rec.Body.String()
	for _, want := range []string{"Sunset Harbor", "Blue Interior", "Untitled", "Page 1 of 1"} {
		if !strings.Contains(page, want) {
			t.Errorf("Page missing %q", want)
		}
	}
}

func TestHandleGalleryList_Filtered(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	mock.SetArtworks(galleryFixtures())
	srv := newTestServer(t, mock, "")

	rec := doRequest(t, srv, http.MethodGet, "/gallery?year_from=2000")
	page := rec.Body.String()

	if strings.Contains(page, "Sunset Harbor") {
		t.Error("Filtered-out artwork rendered")
	}
	if !strings.Contains(page, "Blue Interior") {
		t.Error("Matching artwork missing")
	}
	// The medium dropdown still lists options from the full collection.
	if !strings.Contains(page, "Oil on canvas") {
		t.Error("Medium options should come from the unfiltered collection")
	}
}

func TestHandleGalleryList_EchoesFilters(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	mock.SetArtworks(galleryFixtures())
	srv := newTestServer(t, mock, "")

	rec := doRequest(t, srv, http.MethodGet, "/gallery?q=sunset&year_from=1980")
	page := rec.Body.String()

	if !strings.Contains(page, `value="sunset"`) || !strings.Contains(page, `value="1980"`) {
		t.Error("Form should echo the active filters")
	}
}

func TestHandleGalleryList_BadNumbersNormalized(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	mock.SetArtworks(galleryFixtures())
	srv := newTestServer(t, mock, "")

	// Unparseable and out-of-range values never produce an error page.
	rec := doRequest(t, srv, http.MethodGet, "/gallery?page=banana&per_page=9999&year_from=abc")
	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200 for normalized input", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Page 1 of 1") {
		t.Error("Pagination should normalize to page 1")
	}
}

func TestHandleGalleryList_BackendDown(t *testing.T) {
	mock := testutil.NewMockBackend()
	mock.Close()
	srv := newTestServer(t, mock, "")

	rec := doRequest(t, srv, http.MethodGet, "/gallery")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503 for transport failure", rec.Code)
	}
}

func TestHandleGalleryShow(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	mock.SetArtwork("a1", map[string]any{
		"artwork_id": "a1",
		"title":      "Sunset Harbor",
		"medium":     "Oil on canvas",
		"year":       "1990",
		"image_path": "art/a1.jpg",
	})
	srv := newTestServer(t, mock, "")

	rec := doRequest(t, srv, http.MethodGet, "/gallery/a1")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	page := rec.Body.String()
	for _, want := range []string{"Sunset Harbor", "Oil on canvas", "1990", "/media/art/a1.jpg"} {
		if !strings.Contains(page, want) {
			t.Errorf("Page missing %q", want)
		}
	}
}

func TestHandleGalleryShow_NotFound(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	srv := newTestServer(t, mock, "")

	rec := doRequest(t, srv, http.MethodGet, "/gallery/missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Artwork not found") {
		t.Error("Expected friendly 404 page")
	}
}

func TestHandleGalleryShow_InvalidID(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	srv := newTestServer(t, mock, "")

	longID := strings.Repeat("x", 51)
	rec := doRequest(t, srv, http.MethodGet, "/gallery/"+longID)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", rec.Code)
	}
	// Rejected before any upstream call.
	if mock.TotalRequests() != 0 {
		t.Errorf("Upstream requests = %d, want 0", mock.TotalRequests())
	}
}

func TestHandleStats(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	mock.SetArtworks(galleryFixtures())
	srv := newTestServer(t, mock, "")

	rec := doRequest(t, srv, http.MethodGet, "/api/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	body := strings.TrimSpace(rec.Body.String())
	want := `{"total_artworks":3,` +
		`"by_medium":{"Oil on canvas":2,"Watercolor":1},` +
		`"by_year":{"Unknown":1,"2005":1,"1990":1}}`
	if body != want {
		t.Errorf("Stats = %s, want %s", body, want)
	}
}

func TestHandleHealth(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	mock.SetArtworks(nil)
	srv := newTestServer(t, mock, "")

	rec := doRequest(t, srv, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "healthy" || body["backend"] != "connected" {
		t.Errorf("Body = %v, want healthy/connected", body)
	}
	if _, ok := body["cache_size"]; !ok {
		t.Error("Health payload should report cache size")
	}
}

func TestHandleHealth_BackendDown(t *testing.T) {
	mock := testutil.NewMockBackend()
	mock.Close()
	srv := newTestServer(t, mock, "")

	rec := doRequest(t, srv, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200 even when unhealthy", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "unhealthy" || body["backend"] != "disconnected" {
		t.Errorf("Body = %v, want unhealthy/disconnected", body)
	}
}

func TestHandleCacheClear(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	mock.SetArtworks(galleryFixtures())
	srv := newTestServer(t, mock, "topsecret")

	// Warm the cache.
	doRequest(t, srv, http.MethodGet, "/gallery")
	if got := mock.RequestCount("/api/artworks"); got != 1 {
		t.Fatalf("Upstream requests = %d, want 1", got)
	}

	rec := doRequest(t, srv, http.MethodPost, "/api/cache/clear?api_key=topsecret")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	// The next listing goes upstream again.
	doRequest(t, srv, http.MethodGet, "/gallery")
	if got := mock.RequestCount("/api/artworks"); got != 2 {
		t.Errorf("Upstream requests = %d, want 2 after clear", got)
	}
}

func TestHandleCacheClear_WrongSecret(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	mock.SetArtworks([]map[string]any{{"artwork_id": "a1", "title": "Original Title"}})
	srv := newTestServer(t, mock, "topsecret")

	// Warm the cache, then change the upstream data.
	doRequest(t, srv, http.MethodGet, "/gallery")
	mock.SetArtworks([]map[string]any{{"artwork_id": "a1", "title": "Changed Title"}})

	rec := doRequest(t, srv, http.MethodPost, "/api/cache/clear?api_key=wrong")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("Status = %d, want 403", rec.Code)
	}

	// The cache was not emptied: the stale listing is still served.
	page := doRequest(t, srv, http.MethodGet, "/gallery").Body.String()
	if !strings.Contains(page, "Original Title") {
		t.Error("Expected stale cached data after refused clear")
	}
	if got := mock.RequestCount("/api/artworks"); got != 1 {
		t.Errorf("Upstream requests = %d, want 1 (still cached)", got)
	}
}

func TestHandleCacheClear_NoSecretConfigured(t *testing.T) {
	mock := testutil.NewMockBackend()
	defer mock.Close()
	srv := newTestServer(t, mock, "")

	// With no secret configured every attempt is refused, even with an
	// empty key.
	rec := doRequest(t, srv, http.MethodPost, "/api/cache/clear?api_key=")
	if rec.Code != http.StatusForbidden {
		t.Errorf("Status = %d, want 403 when no secret configured", rec.Code)
	}
}
