// Package config loads devdir settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName names the configuration directory
	AppName = "devdir"

	defaultDestination = "Development"
	defaultSkipList    = "awesome-config,nvim-config,dotfiles"
	defaultPerPage     = 100
	maxPerPage         = 100
	defaultLogLevel    = "warn"
)

// Config holds the settings of a run. Command line flags override them.
type Config struct {
	Destination     string  `yaml:"destination"`
	Skip            *string `yaml:"skip,omitempty"` // nil selects the default list; "" skips nothing
	PerPage         int     `yaml:"per_page"`
	APIBaseURL      string  `yaml:"api_base_url,omitempty"`
	CredentialsFile string  `yaml:"credentials_file,omitempty"`
	HTTPTimeout     string  `yaml:"http_timeout,omitempty"`  // e.g. "30s"; empty means none
	CloneTimeout    string  `yaml:"clone_timeout,omitempty"` // per repository; empty means none
	LogLevel        string  `yaml:"log_level"`
}

// DefaultConfig provides default configuration values
func DefaultConfig() *Config {
	skip := defaultSkipList
	return &Config{
		Destination: defaultDestination,
		Skip:        &skip,
		PerPage:     defaultPerPage,
		LogLevel:    defaultLogLevel,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/devdir/config.yaml or its platform
// equivalent
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, AppName, "config.yaml"), nil
}

// LoadConfig loads configuration from a file. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.MergeDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Exists reports whether a config file is present at path
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat config file: %w", err)
}

// SaveConfig saves configuration to a file, creating its directory
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeDefaults merges default values for unset fields
func (c *Config) MergeDefaults() {
	defaults := DefaultConfig()
	if c.Destination == "" {
		c.Destination = defaults.Destination
	}
	if c.Skip == nil {
		c.Skip = defaults.Skip
	}
	if c.PerPage == 0 {
		c.PerPage = defaults.PerPage
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.PerPage < 1 || c.PerPage > maxPerPage {
		return fmt.Errorf("per_page must be between 1 and %d", maxPerPage)
	}
	if _, err := parseOptionalDuration(c.HTTPTimeout); err != nil {
		return fmt.Errorf("invalid http_timeout: %w", err)
	}
	if _, err := parseOptionalDuration(c.CloneTimeout); err != nil {
		return fmt.Errorf("invalid clone_timeout: %w", err)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// SkipList returns the configured skip list
func (c *Config) SkipList() string {
	if c.Skip == nil {
		return defaultSkipList
	}
	return *c.Skip
}

// HTTPTimeoutDuration returns the catalog request timeout, zero for none
func (c *Config) HTTPTimeoutDuration() time.Duration {
	d, _ := parseOptionalDuration(c.HTTPTimeout)
	return d
}

// CloneTimeoutDuration returns the per-repository clone timeout, zero for none
func (c *Config) CloneTimeoutDuration() time.Duration {
	d, _ := parseOptionalDuration(c.CloneTimeout)
	return d
}

func parseOptionalDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration cannot be negative")
	}
	return d, nil
}
