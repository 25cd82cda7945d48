package main

import (
	"net/http"

	"github.com/galeria/gallery-frontend/internal/config"
	"github.com/galeria/gallery-frontend/internal/web"
	"github.com/galeria/gallery-frontend/pkg/backend"
	"github.com/galeria/gallery-frontend/pkg/logging"
	"github.com/galeria/gallery-frontend/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup(logging.DefaultConfig())
		logger := logging.NewLogger("main")
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
	})
	logger := logging.NewLogger("main")

	client, err := backend.New(backend.Config{
		BaseURL:  cfg.BackendBase,
		APIKey:   cfg.APIKey,
		CacheTTL: cfg.CacheTTL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create backend client")
	}

	server, err := web.NewServer(web.Config{
		Backend:        client,
		APIKey:         cfg.APIKey,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create server")
	}

	mux := http.NewServeMux()
	mux.Handle("/", server.Handler())
	mux.Handle("GET /metrics", metrics.Handler())

	addr := ":" + cfg.Port
	logger.Info().
		Str("addr", addr).
		Str("backend", cfg.BackendBase).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting gallery front end")

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}
