package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BackendBase != "http://localhost:9000" {
		t.Errorf("BackendBase = %q, want default", cfg.BackendBase)
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty default", cfg.APIKey)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BACKEND_BASE", "http://backend:9000/")
	t.Setenv("API_KEY", "secret")
	t.Setenv("CACHE_TTL", "60")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BackendBase != "http://backend:9000" {
		t.Errorf("BackendBase = %q, want trailing slash trimmed", cfg.BackendBase)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("APIKey = %q, want secret", cfg.APIKey)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %v, want 1m", cfg.CacheTTL)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}

func TestLoad_InvalidTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "0")

	if _, err := Load(); err == nil {
		t.Error("Expected error for non-positive CACHE_TTL")
	}
}
