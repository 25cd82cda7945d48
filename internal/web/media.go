package web

import (
	"io"
	"net/http"
	"strings"

	"github.com/galeria/gallery-frontend/pkg/backend"
)

// mediaChunkSize bounds peak memory while streaming media bodies.
const mediaChunkSize = 64 * 1024

// errInvalidMediaPath marks a media path rejected by the traversal
// guard.
var errInvalidMediaPath = &backend.ValidationError{
	Field:   "media path",
	Message: "path traversal not allowed",
}

// ValidateMediaPath rejects media paths that could escape the backend
// media root. The check runs on the raw, undecoded path so encoded
// traversal sequences cannot slip through, and it runs before any
// upstream call.
func ValidateMediaPath(raw string) error {
	if strings.HasPrefix(raw, "/") {
		return errInvalidMediaPath
	}
	if strings.Contains(raw, "..") {
		return errInvalidMediaPath
	}
	// Percent-encoded dots would decode to traversal segments upstream.
	if strings.Contains(strings.ToLower(raw), "%2e") {
		return errInvalidMediaPath
	}
	return nil
}

// mediaGuard rejects traversal attempts on /media/ paths ahead of
// ServeMux dispatch, which would otherwise clean ".." segments into a
// redirect.
func (s *Server) mediaGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw, ok := strings.CutPrefix(r.URL.EscapedPath(), "/media/"); ok {
			if err := ValidateMediaPath(raw); err != nil {
				s.logger.Warn().Str("path", raw).Msg("Rejected media path")
				writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid media path"})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// handleMedia proxies a media file from the backend, streaming the
// body in bounded chunks so peak memory is independent of file size.
func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	// EscapedPath keeps the path in its raw form; the guard must see
	// exactly what would be forwarded upstream.
	raw := strings.TrimPrefix(r.URL.EscapedPath(), "/media/")

	if err := ValidateMediaPath(raw); err != nil {
		s.logger.Warn().Str("path", raw).Msg("Rejected media path")
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid media path"})
		return
	}

	resp, err := s.backend.Stream(r.Context(), "/media/"+raw)
	if err != nil {
		s.fail(w, err)
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)

	// A copy error here usually means the caller disconnected;
	// stopping early is fine.
	buf := make([]byte, mediaChunkSize)
	if _, err := io.CopyBuffer(w, resp.Body, buf); err != nil {
		s.logger.Debug().Err(err).Str("path", raw).Msg("Media stream ended early")
	}
}
