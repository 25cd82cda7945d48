// Package web provides the HTTP surface of the gallery front end:
// server-rendered gallery pages, the media proxy, stats, health, and
// cache administration.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/galeria/gallery-frontend/pkg/backend"
	"github.com/galeria/gallery-frontend/pkg/logging"
)

const (
	// AppName and AppVersion identify the service in the root probe.
	AppName    = "Public Gallery"
	AppVersion = "1.0"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server holds the handlers' shared dependencies.
type Server struct {
	backend        *backend.Client
	apiKey         string
	allowedOrigins []string
	limiter        *rate.Limiter
	tmpl           *template.Template
	logger         zerolog.Logger
}

// Config holds the server configuration.
type Config struct {
	// Backend is the backend API client (required).
	Backend *backend.Client

	// APIKey gates the cache-clear operation. Empty disables it.
	APIKey string

	// AllowedOrigins is the CORS origin list; "*" allows all.
	AllowedOrigins []string

	// RateLimitRPS and RateLimitBurst configure the inbound token
	// bucket. RPS <= 0 disables rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewServer creates the server and parses the embedded templates.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Backend == nil {
		return nil, fmt.Errorf("backend client is required")
	}

	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}
	tmpl, err := template.New("gallery").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}

	return &Server{
		backend:        cfg.Backend,
		apiKey:         cfg.APIKey,
		allowedOrigins: cfg.AllowedOrigins,
		limiter:        limiter,
		tmpl:           tmpl,
		logger:         logging.NewLogger("web"),
	}, nil
}

// Handler returns the fully wired handler: routes wrapped in rate
// limiting, CORS, and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /gallery", s.handleGalleryList)
	mux.HandleFunc("GET /gallery/{id}", s.handleGalleryShow)
	mux.HandleFunc("GET /media/", s.handleMedia)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/cache/clear", s.handleCacheClear)

	// The media guard must run before ServeMux dispatch: the mux
	// path-cleans ".." segments into a redirect instead of letting the
	// handler reject them.
	var h http.Handler = mux
	h = s.mediaGuard(h)
	h = s.rateLimit(h)
	h = s.cors(h)
	h = s.logRequests(h)
	return h
}

// render executes a template into a buffer first so a render failure
// can still produce a clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := s.tmpl.ExecuteTemplate(buf, name, data); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("Template render failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

var bufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

func getBuffer() *bytes.Buffer {
	return bufPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufPool.Put(buf)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// fail maps a backend error to its HTTP status and writes a JSON
// error body in the backend's shape.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := backend.StatusFor(err)
	s.logger.Warn().Err(err).Int("status", status).Msg("Request failed")
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}
