package config_test

import (
	"testing"
	"time"

	"github.com/ozcitizen/backend/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_ADDRESS", "SHUTDOWN_TIMEOUT", "DB_DRIVER", "TIMEZONE", "ANALYSIS_CACHE_TTL", "CORS_ORIGINS", "LLM_URL"} {
		t.Setenv(k, "")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerAddress != ":8080" || cfg.DBDriver != "sqlite" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.AnalysisCacheTTL != 720*time.Hour {
		t.Errorf("expected 30 day cache, got %v", cfg.AnalysisCacheTTL)
	}
	if cfg.Timezone.String() != "Australia/Sydney" {
		t.Errorf("unexpected timezone %v", cfg.Timezone)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.LLMURL != "" {
		t.Errorf("expected remote analysis disabled by default, got %q", cfg.LLMURL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("TIMEZONE", "Australia/Perth")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DB_DRIVER", "postgres")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("unexpected shutdown timeout %v", cfg.ShutdownTimeout)
	}
	if cfg.Timezone.String() != "Australia/Perth" {
		t.Errorf("unexpected timezone %v", cfg.Timezone)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("unexpected driver %q", cfg.DBDriver)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"TOKEN_TTL": "forever",
		"TIMEZONE":  "Mars/Olympus",
	}
	for k, v := range tests {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			if _, err := config.Load(); err == nil {
				t.Errorf("expected error for %s=%q", k, v)
			}
		})
	}
}

func TestLoad_BareNumberIsSeconds(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "10")
	t.Setenv("ANALYSIS_CACHE_TTL", "3600")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.AnalysisCacheTTL != time.Hour {
		t.Errorf("expected 1h, got %v", cfg.AnalysisCacheTTL)
	}
}
