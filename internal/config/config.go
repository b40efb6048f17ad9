package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Digital-Shane/like-that/internal/log"
)

var (
	ErrMissingTMDBKey   = errors.New("tmdb_api_key is not set (config file or TMDB_API_KEY)")
	ErrMissingOpenAIKey = errors.New("openai_api_key is not set (config file or OPENAI_API_KEY)")
)

// Config holds every runtime setting for the CLI and the HTTP server.
type Config struct {
	// TMDB settings
	TMDBAPIKey            string `json:"tmdb_api_key"`
	TMDBLanguage          string `json:"tmdb_language"`
	TMDBGenreLanguage     string `json:"tmdb_genre_language"`
	TMDBRequestsPerWindow int    `json:"tmdb_requests_per_window"`
	TMDBWindowSeconds     int    `json:"tmdb_window_seconds"`
	TMDBWorkerCount       int    `json:"tmdb_worker_count"`

	// Language model settings
	OpenAIAPIKey      string  `json:"openai_api_key"`
	OpenAIModel       string  `json:"openai_model"`
	OpenAIBaseURL     string  `json:"openai_base_url,omitempty"`
	OpenAITemperature float32 `json:"openai_temperature"`

	// Server and logging
	ListenAddr            string `json:"listen_addr"`
	LogLevel              string `json:"log_level"`
	LogJSON               bool   `json:"log_json"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDBAPIKey:            "",
		TMDBLanguage:          "fa-IR",
		TMDBGenreLanguage:     "en-US",
		TMDBRequestsPerWindow: 38,
		TMDBWindowSeconds:     10,
		TMDBWorkerCount:       10,
		OpenAIAPIKey:          "",
		OpenAIModel:           "gpt-4o",
		OpenAITemperature:     0.1,
		ListenAddr:            ":5001",
		LogLevel:              "info",
		LogJSON:               false,
		RequestTimeoutSeconds: 60,
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".like-that", "config.json"), nil
}

// Load reads the configuration from disk and applies environment overrides.
// A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.fillDefaults()
	return &cfg, nil
}

// fillDefaults replaces zero values with defaults. LogJSON has no distinct
// unset state and is left as decoded.
func (cfg *Config) fillDefaults() {
	defaults := DefaultConfig()
	if cfg.TMDBLanguage == "" {
		cfg.TMDBLanguage = defaults.TMDBLanguage
	}
	if cfg.TMDBGenreLanguage == "" {
		cfg.TMDBGenreLanguage = defaults.TMDBGenreLanguage
	}
	if cfg.TMDBRequestsPerWindow == 0 {
		cfg.TMDBRequestsPerWindow = defaults.TMDBRequestsPerWindow
	}
	if cfg.TMDBWindowSeconds == 0 {
		cfg.TMDBWindowSeconds = defaults.TMDBWindowSeconds
	}
	if cfg.TMDBWorkerCount == 0 {
		cfg.TMDBWorkerCount = defaults.TMDBWorkerCount
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = defaults.OpenAIModel
	}
	if cfg.OpenAITemperature == 0 {
		cfg.OpenAITemperature = defaults.OpenAITemperature
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaults.ListenAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.RequestTimeoutSeconds == 0 {
		cfg.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}
}

// ApplyEnv overrides file settings with non-empty environment values.
func (cfg *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("TMDB_API_KEY"); v != "" {
		cfg.TMDBAPIKey = v
	}
	if v := getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := getenv("PORT"); v != "" {
		cfg.ListenAddr = ":" + strings.TrimPrefix(v, ":")
	}
	if v := getenv("LIKE_THAT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Validate reports every setting that keeps a query from running.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.TMDBAPIKey == "" {
		errs = append(errs, ErrMissingTMDBKey)
	}
	if cfg.OpenAIAPIKey == "" {
		errs = append(errs, ErrMissingOpenAIKey)
	}
	if cfg.TMDBWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("tmdb_worker_count must be at least 1, got %d", cfg.TMDBWorkerCount))
	}
	if cfg.TMDBRequestsPerWindow < 0 || cfg.TMDBWindowSeconds < 0 {
		errs = append(errs, errors.New("tmdb rate limit settings must not be negative"))
	}
	if !log.ValidLevel(cfg.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log_level %q", cfg.LogLevel))
	}
	return errors.Join(errs...)
}

// Window returns the outbound TMDB throttle window.
func (cfg *Config) Window() time.Duration {
	return time.Duration(cfg.TMDBWindowSeconds) * time.Second
}

// RequestTimeout returns the per-query deadline.
func (cfg *Config) RequestTimeout() time.Duration {
	return time.Duration(cfg.RequestTimeoutSeconds) * time.Second
}

// Masked returns a copy safe to print, with API keys hidden.
func (cfg *Config) Masked() *Config {
	c := *cfg
	c.TMDBAPIKey = mask(c.TMDBAPIKey)
	c.OpenAIAPIKey = mask(c.OpenAIAPIKey)
	return &c
}

func mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// Save writes the configuration to disk
func (cfg *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Keys live in this file.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
