package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	DatabasePath    string
	Env             string
	DefaultSource   string
	DefaultPayment  string
	PaidOnlyRevenue bool
	Extractor       string
	ExtractTimeout  time.Duration
	GeminiAPIKey    string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by user) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabasePath = getEnv("DATABASE_PATH", "bookly.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.DefaultSource = getEnv("DEFAULT_SOURCE", "Walk-in")
	cfg.DefaultPayment = getEnv("DEFAULT_PAYMENT", "Cash")
	// Pending orders count toward revenue by default; flip to restrict
	// dashboards to settled money only.
	cfg.PaidOnlyRevenue = ParseBool("PAID_ONLY_REVENUE", false)
	cfg.Extractor = getEnv("EXTRACTOR", "heuristic")
	cfg.ExtractTimeout = ParseDuration("EXTRACT_TIMEOUT", 15*time.Second)
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}

// ParseDuration reads an env var as a time.Duration with default.
func ParseDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %s", key, v)
			return def
		}
		return d
	}
	return def
}
