package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for values missing from the config file
const (
	DefaultBackendURL = "http://localhost:8080"
	DefaultAdviceURL  = "http://localhost:5000"
	DefaultCacheTTL   = 10 * time.Minute
)

// Environment overrides, applied after the file
const (
	EnvBackendURL = "TASKDECK_BACKEND_URL"
	EnvAdviceURL  = "TASKDECK_ADVICE_URL"
	EnvRedisAddr  = "TASKDECK_REDIS_ADDR"
	EnvThemeFile  = "TASKDECK_THEME_FILE"
)

// Config represents the application configuration
type Config struct {
	BackendURL string `yaml:"backend_url"`
	AdviceURL  string `yaml:"advice_url"`
	// HTTPTimeout bounds each backend request; zero keeps the transport default
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	// SessionPath overrides where the signed-in user is stored
	SessionPath string      `yaml:"session_path"`
	Cache       CacheConfig `yaml:"cache"`
	KeyMappings KeyMappings `yaml:"key_mappings"`
	ColorScheme ColorScheme `yaml:"theme"`
}

// CacheConfig configures the optional advice cache
type CacheConfig struct {
	// RedisAddr enables the cache when set (host:port)
	RedisAddr string        `yaml:"redis_addr"`
	TTL       time.Duration `yaml:"ttl"`
}

// Default returns a config with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// loadThemeFile loads and merges theme from TASKDECK_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// applyEnv overrides file values with the process environment
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBackendURL)); v != "" {
		c.BackendURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAdviceURL)); v != "" {
		c.AdviceURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRedisAddr)); v != "" {
		c.Cache.RedisAddr = v
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		// Return default config if we can't determine config path
		config := Default()
		loadThemeFile(config)
		config.applyEnv()
		return config, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	loadThemeFile(&config)
	config.applyEnv()

	// Fill in any missing values with defaults
	config.applyDefaults()

	if config.HTTPTimeout < 0 {
		return nil, fmt.Errorf("http_timeout must not be negative, got %s", config.HTTPTimeout)
	}
	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Path returns the path to the config file
func Path() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "taskdeck", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "taskdeck", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	c.BackendURL = strings.TrimRight(c.BackendURL, "/")
	if c.BackendURL == "" {
		c.BackendURL = DefaultBackendURL
	}
	if c.AdviceURL == "" {
		c.AdviceURL = DefaultAdviceURL
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
