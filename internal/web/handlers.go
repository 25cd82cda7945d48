package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/galeria/gallery-frontend/pkg/backend"
	"github.com/galeria/gallery-frontend/pkg/gallery"
)

// filterEcho carries the raw filter inputs back into the template so
// the form stays populated.
type filterEcho struct {
	Q        string
	YearFrom string
	YearTo   string
	Medium   string
}

type listPage struct {
	Artworks   []gallery.Artwork
	Mediums    []string
	Pagination gallery.Pagination
	Filters    filterEcho
}

type showPage struct {
	Artwork gallery.Artwork
}

type notFoundPage struct {
	Message string
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"app":     AppName,
		"version": AppVersion,
	})
}

func (s *Server) handleGalleryList(w http.ResponseWriter, r *http.Request) {
	spec, echo := parseFilterSpec(r)

	artworks, err := s.backend.Artworks(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	result := gallery.Query(artworks, spec)

	s.logger.Debug().
		Str("q", echo.Q).
		Str("medium", echo.Medium).
		Int("page", result.Pagination.Page).
		Int("total_items", result.Pagination.TotalItems).
		Msg("Listing rendered")

	s.render(w, http.StatusOK, "gallery_list.html", listPage{
		Artworks:   result.Artworks,
		Mediums:    result.Mediums,
		Pagination: result.Pagination,
		Filters:    echo,
	})
}

func (s *Server) handleGalleryShow(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	artwork, err := s.backend.Artwork(r.Context(), id)
	if err != nil {
		if backend.IsNotFound(err) {
			s.render(w, http.StatusNotFound, "404.html", notFoundPage{
				Message: "Artwork not found",
			})
			return
		}
		s.fail(w, err)
		return
	}

	s.render(w, http.StatusOK, "gallery_show.html", showPage{Artwork: artwork})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	artworks, err := s.backend.Artworks(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gallery.ComputeStats(artworks))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	timestamp := time.Now().Format(time.RFC3339)

	if _, err := s.backend.Fetch(r.Context(), "/api/artworks"); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "unhealthy",
			"backend":   "disconnected",
			"error":     err.Error(),
			"timestamp": timestamp,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"backend":    "connected",
		"cache_size": s.backend.CacheSize(),
		"timestamp":  timestamp,
	})
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("api_key")

	// Refuse outright when no secret is configured.
	if s.apiKey == "" || key != s.apiKey {
		s.logger.Warn().Msg("Cache clear refused")
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Forbidden"})
		return
	}

	s.backend.ClearCache()

	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "success",
		"message":   "Cache cleared",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// parseFilterSpec reads the listing query parameters. Unparseable
// numbers are treated as absent; out-of-range pagination values are
// normalized downstream by gallery.Query.
func parseFilterSpec(r *http.Request) (gallery.FilterSpec, filterEcho) {
	q := r.URL.Query()

	echo := filterEcho{
		Q:        q.Get("q"),
		YearFrom: strings.TrimSpace(q.Get("year_from")),
		YearTo:   strings.TrimSpace(q.Get("year_to")),
		Medium:   q.Get("medium"),
	}

	spec := gallery.FilterSpec{
		Query:    echo.Q,
		YearFrom: parseOptionalInt(echo.YearFrom),
		YearTo:   parseOptionalInt(echo.YearTo),
		Medium:   echo.Medium,
		Page:     parseIntDefault(q.Get("page"), 1),
		PerPage:  parseIntDefault(q.Get("per_page"), gallery.DefaultPerPage),
	}
	return spec, echo
}

func parseOptionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func parseIntDefault(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}
