package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// settingsFile is looked for in the working directory. Everything in it
// is optional; values present override the built-in defaults but not
// environment variables.
const settingsFile = "sgbus.yml"

type settings struct {
	BaseURL         string  `yaml:"baseURL" validate:"omitempty,url"`
	CachePath       string  `yaml:"cachePath"`
	FetchTimeoutS   int     `yaml:"fetchTimeoutSeconds" validate:"gte=0"`
	ArrivalTimeoutS int     `yaml:"arrivalTimeoutSeconds" validate:"gte=0"`
	DefaultRadiusKm float64 `yaml:"defaultRadiusKm" validate:"gte=0"`
}

func applySettingsFile(cfg *Config) error {
	data, err := os.ReadFile(settingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", settingsFile, err)
	}

	var s settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parsing %s: %w", settingsFile, err)
	}

	v := validator.New()
	if err := v.Struct(s); err != nil {
		return fmt.Errorf("invalid %s: %w", settingsFile, err)
	}

	if s.BaseURL != "" && os.Getenv("LTA_API_URL") == "" {
		cfg.BaseURL = s.BaseURL
	}
	if s.CachePath != "" && os.Getenv("SGBUS_CACHE_PATH") == "" {
		cfg.CachePath = s.CachePath
	}
	if s.FetchTimeoutS > 0 && os.Getenv("SGBUS_FETCH_TIMEOUT_SECONDS") == "" {
		cfg.FetchTimeout = secondsDuration(s.FetchTimeoutS)
	}
	if s.ArrivalTimeoutS > 0 && os.Getenv("SGBUS_ARRIVAL_TIMEOUT_SECONDS") == "" {
		cfg.ArrivalTimeout = secondsDuration(s.ArrivalTimeoutS)
	}
	if s.DefaultRadiusKm > 0 {
		cfg.DefaultRadiusKm = s.DefaultRadiusKm
	}

	return nil
}

func secondsDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}
