// ABOUTME: Centralized configuration for the minakami tracker
// ABOUTME: YAML file overlaid by environment variables, with validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the tracker.
type Config struct {
	// Database settings
	DBPath string `yaml:"db_path"`

	// OpenAI settings for narrative generation. The durations are
	// env-only (Go duration strings don't round-trip through YAML).
	OpenAIKey  string        `yaml:"-"`
	ChatModel  string        `yaml:"chat_model"`
	Timeout    time.Duration `yaml:"-"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"-"`

	// Strava settings
	StravaClientID     string `yaml:"strava_client_id"`
	StravaClientSecret string `yaml:"-"`
	StravaRefreshToken string `yaml:"-"`

	// Location merge radius in meters: samples within this distance of
	// a known location count as a revisit instead of a new place.
	NearbyRadiusMeters float64 `yaml:"nearby_radius_meters"`
}

// DefaultConfigPath returns the default YAML config location following
// XDG spec.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".config/minakami/config.yaml"
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, "minakami", "config.yaml")
}

// Load reads configuration: defaults, then the YAML file if present,
// then environment variable overrides.
func Load() (*Config, error) {
	return LoadFrom(configPathFromEnv())
}

// LoadFrom loads configuration with an explicit YAML path. A missing
// file is not an error; the file is optional.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		ChatModel:          "gpt-4o-mini",
		Timeout:            30 * time.Second,
		MaxRetries:         3,
		RetryDelay:         2 * time.Second,
		NearbyRadiusMeters: 100,
	}

	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("invalid config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func configPathFromEnv() string {
	if p := os.Getenv("MINAKAMI_CONFIG"); p != "" {
		return p
	}
	return DefaultConfigPath()
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MINAKAMI_DB"); v != "" {
		c.DBPath = v
	}
	c.OpenAIKey = getEnv("OPENAI_API_KEY", c.OpenAIKey)
	c.ChatModel = getEnv("MINAKAMI_OPENAI_MODEL", c.ChatModel)
	c.Timeout = getEnvDuration("MINAKAMI_OPENAI_TIMEOUT", c.Timeout)
	c.MaxRetries = getEnvInt("MINAKAMI_OPENAI_MAX_RETRIES", c.MaxRetries)
	c.RetryDelay = getEnvDuration("MINAKAMI_OPENAI_RETRY_DELAY", c.RetryDelay)
	c.StravaClientID = getEnv("STRAVA_CLIENT_ID", c.StravaClientID)
	c.StravaClientSecret = getEnv("STRAVA_CLIENT_SECRET", c.StravaClientSecret)
	c.StravaRefreshToken = getEnv("STRAVA_REFRESH_TOKEN", c.StravaRefreshToken)
	c.NearbyRadiusMeters = getEnvFloat("MINAKAMI_NEARBY_RADIUS", c.NearbyRadiusMeters)
}

// Validate checks ranges that would otherwise fail far from the cause.
func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("MINAKAMI_OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.NearbyRadiusMeters <= 0 {
		return fmt.Errorf("MINAKAMI_NEARBY_RADIUS must be positive, got %f", c.NearbyRadiusMeters)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
