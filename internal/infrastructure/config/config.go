package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone database for TIMEZONE on hosts without one

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// Storage
	DBDriver string // "sqlite" or "postgres"
	DBDSN    string // empty = driver default

	// Device tokens
	TokenSecret string
	TokenTTL    time.Duration

	// Term analysis
	LLMURL           string // OpenAI-compatible endpoint; empty disables remote analysis
	LLMModel         string
	LLMAPIKey        string
	AnalysisCacheTTL time.Duration
	RedisURL         string // empty = cache in the KV store
	CacheSweep       string // cron spec for the KV cache sweep

	Timezone       *time.Location
	TermsMatchMode string
}

// Load reads the environment, after loading .env if it exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdown, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := getDuration("TOKEN_TTL", 365*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getDuration("ANALYSIS_CACHE_TTL", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}

	tzName := getenvDefault("TIMEZONE", "Australia/Sydney")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("config: TIMEZONE=%q: %w", tzName, err)
	}

	return &Config{
		ServerAddress:    getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout:  shutdown,
		CORSOrigins:      getList("CORS_ORIGINS", []string{"*"}),
		DBDriver:         getenvDefault("DB_DRIVER", "sqlite"),
		DBDSN:            os.Getenv("DB_DSN"),
		TokenSecret:      os.Getenv("TOKEN_SECRET"),
		TokenTTL:         tokenTTL,
		LLMURL:           os.Getenv("LLM_URL"),
		LLMModel:         getenvDefault("LLM_MODEL", "qwen3-8b"),
		LLMAPIKey:        os.Getenv("LLM_API_KEY"),
		AnalysisCacheTTL: cacheTTL,
		RedisURL:         os.Getenv("REDIS_URL"),
		CacheSweep:       getenvDefault("CACHE_SWEEP_SCHEDULE", "@daily"),
		Timezone:         loc,
		TermsMatchMode:   getenvDefault("TERMS_MATCH_MODE", "substring"),
	}, nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDuration(k string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	// A bare number is read as seconds rather than cast's nanoseconds.
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		v = strconv.FormatInt(n, 10) + "s"
	}
	d, err := cast.ToDurationE(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid duration: %w", k, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive", k)
	}
	return d, nil
}

func getList(k string, fallback []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range cast.ToStringSlice(strings.ReplaceAll(v, ",", " ")) {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
