package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env                  string
	HTTPAddr             string
	CatalogMode          string
	UnitsFixtures        string
	MongoURI             string
	MongoDB              string
	KafkaBrokers         []string
	KafkaTopic           string
	DefaultCityTax       float64
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:           getEnv("APP_ENV", "dev"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		CatalogMode:   strings.ToLower(getEnv("CATALOG_MODE", "memory")),
		UnitsFixtures: getEnv("UNITS_FIXTURES", ""),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       getEnv("MONGO_DB", "stays"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "booking.confirmed"),
	}

	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	cityTax, err := parseFloatEnv("CITY_TAX_DEFAULT", 0)
	if err != nil {
		return Config{}, err
	}
	if cityTax < 0 {
		return Config{}, fmt.Errorf("CITY_TAX_DEFAULT cannot be negative")
	}
	cfg.DefaultCityTax = cityTax

	ttl, err := parseDurationEnv("SESSION_TTL", 2*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTL = ttl

	sweep, err := parseDurationEnv("SESSION_SWEEP_INTERVAL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionSweepInterval = sweep

	switch cfg.CatalogMode {
	case "memory":
	case "mongo":
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when CATALOG_MODE=mongo")
		}
	default:
		return Config{}, fmt.Errorf("unknown CATALOG_MODE %q", cfg.CatalogMode)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseFloatEnv(key string, def float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s number: %w", key, err)
	}
	return f, nil
}
