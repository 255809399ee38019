package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL      = "https://www.themealdb.com/api/json/v1/1/"
	DefaultNotesBaseURL = "https://openrouter.ai/api/v1"
	DefaultNotesModel   = "deepseek/deepseek-r1-distill-llama-70b"
	DefaultTokenEnv     = "OPENROUTER_API_KEY"
)

// Config represents the complete mealfinder configuration
type Config struct {
	API     APIConfig     `yaml:"api"`
	Server  ServerConfig  `yaml:"server"`
	Notes   NotesConfig   `yaml:"notes"`
	Logging LoggingConfig `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
}

// APIConfig points the fetcher at TheMealDB. A zero timeout leaves the
// http.Client default in place.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig contains HTTP service settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// NotesConfig controls the optional kitchen notes agent
type NotesConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	TokenEnv string `yaml:"token_env"`
}

// LoggingConfig selects level and destination. An empty file logs to stderr.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// UIConfig holds terminal screen settings
type UIConfig struct {
	NotesStyle string `yaml:"notes_style"`
}

// Default returns a configuration with every field populated.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(c.API.BaseURL, "/") {
		c.API.BaseURL += "/"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Notes.BaseURL == "" {
		c.Notes.BaseURL = DefaultNotesBaseURL
	}
	if c.Notes.Model == "" {
		c.Notes.Model = DefaultNotesModel
	}
	if c.Notes.TokenEnv == "" {
		c.Notes.TokenEnv = DefaultTokenEnv
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.UI.NotesStyle == "" {
		c.UI.NotesStyle = "dark"
	}
}

// Validate rejects values the binaries cannot run with.
func (c *Config) Validate() error {
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", c.API.Timeout)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// NotesToken returns the API token for the notes agent from the environment.
func (c *Config) NotesToken() string {
	return os.Getenv(c.Notes.TokenEnv)
}
