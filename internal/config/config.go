// Package config handles application configuration from environment
// variables and an optional settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey indicates that no DataMall API key is configured.
// Paths that never touch the network ignore it.
var ErrMissingAPIKey = errors.New("LTA_API_KEY not set; get a key at https://datamall.lta.gov.sg and export it or put it in .env")

// Config holds all application configuration. It is built once in main
// and passed into the services that need it.
type Config struct {
	APIKey  string
	BaseURL string

	CachePath string
	CacheTTL  time.Duration

	FetchTimeout    time.Duration
	ArrivalTimeout  time.Duration
	ArrivalCacheTTL time.Duration

	LocationTimeout time.Duration
	DefaultRadiusKm float64
}

// Load reads configuration from the environment with sensible defaults,
// applying an optional settings file first. A .env file in the working
// directory is loaded if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:          getEnv("LTA_API_KEY", ""),
		BaseURL:         getEnv("LTA_API_URL", "https://datamall2.mytransport.sg/ltaodataservice"),
		CachePath:       getEnv("SGBUS_CACHE_PATH", "data/bus_stops_cache.json"),
		CacheTTL:        24 * time.Hour,
		FetchTimeout:    getDurationEnv("SGBUS_FETCH_TIMEOUT_SECONDS", 60),
		ArrivalTimeout:  getDurationEnv("SGBUS_ARRIVAL_TIMEOUT_SECONDS", 10),
		ArrivalCacheTTL: getDurationEnv("SGBUS_ARRIVAL_CACHE_SECONDS", 30),
		LocationTimeout: getDurationEnv("SGBUS_LOCATION_TIMEOUT_SECONDS", 5),
		DefaultRadiusKm: 0.5,
	}

	if err := applySettingsFile(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RequireAPIKey checks that an API key is present. Any code path that
// contacts DataMall must call this before doing so.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// MaskedAPIKey returns the key with its middle hidden, for log output.
func (c *Config) MaskedAPIKey() string {
	if len(c.APIKey) <= 8 {
		return "***"
	}
	return fmt.Sprintf("%s...%s", c.APIKey[:4], c.APIKey[len(c.APIKey)-4:])
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return time.Duration(defaultSeconds) * time.Second
}
