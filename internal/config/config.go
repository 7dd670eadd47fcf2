// Package config loads and validates the m3ukit configuration file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Resolve contains settings for the redirect resolution stage.
type Resolve struct {
	Workers           int    `toml:"workers"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
	MaxRedirects      int    `toml:"max_redirects"`
	Retries           int    `toml:"retries"`
	RetryDelaySeconds int    `toml:"retry_delay_seconds"`
	UserAgent         string `toml:"user_agent"`
}

// Fetch contains settings for loading remote playlist sources.
type Fetch struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Output contains default serialization settings; command flags override.
type Output struct {
	// SortURLs emits each channel's addresses lexicographically sorted
	// for reproducible output. Disabled, first-seen order is kept.
	SortURLs bool `toml:"sort_urls"`
	// StripConfig drops directive lines (for example #EXTVLCOPT) from
	// the output.
	StripConfig bool `toml:"strip_config"`
}

// Logging contains log output settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for m3ukit.
type Config struct {
	Resolve Resolve `toml:"resolve"`
	Fetch   Fetch   `toml:"fetch"`
	Output  Output  `toml:"output"`
	Logging Logging `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Resolve: Resolve{
			Workers:           5,
			TimeoutSeconds:    10,
			MaxRedirects:      10,
			Retries:           3,
			RetryDelaySeconds: 10,
		},
		Fetch: Fetch{
			TimeoutSeconds: 30,
		},
		Output: Output{
			SortURLs: true,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// Sample returns the embedded sample configuration file text.
func Sample() string {
	return sampleConfig
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/m3ukit/config.toml")
}

// Load locates, parses, and validates a configuration file. When no file
// exists the defaults are returned; exists reports which happened.
func Load(path string) (cfg *Config, resolvedPath string, exists bool, err error) {
	c := Default()

	resolvedPath, exists, err = resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&c); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, "", false, err
	}
	return &c, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("m3ukit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() {
	c.Resolve.UserAgent = strings.TrimSpace(c.Resolve.UserAgent)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

// Validate checks configured values for consistency.
func (c *Config) Validate() error {
	if c.Resolve.Workers < 1 {
		return fmt.Errorf("resolve.workers must be at least 1, got %d", c.Resolve.Workers)
	}
	if c.Resolve.TimeoutSeconds < 1 {
		return fmt.Errorf("resolve.timeout_seconds must be at least 1, got %d", c.Resolve.TimeoutSeconds)
	}
	if c.Resolve.MaxRedirects < 1 {
		return fmt.Errorf("resolve.max_redirects must be at least 1, got %d", c.Resolve.MaxRedirects)
	}
	if c.Resolve.Retries < 0 {
		return fmt.Errorf("resolve.retries must not be negative, got %d", c.Resolve.Retries)
	}
	if c.Resolve.RetryDelaySeconds < 0 {
		return fmt.Errorf("resolve.retry_delay_seconds must not be negative, got %d", c.Resolve.RetryDelaySeconds)
	}
	if c.Fetch.TimeoutSeconds < 1 {
		return fmt.Errorf("fetch.timeout_seconds must be at least 1, got %d", c.Fetch.TimeoutSeconds)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// ResolveTimeout returns the probe timeout as a duration.
func (c *Config) ResolveTimeout() time.Duration {
	return time.Duration(c.Resolve.TimeoutSeconds) * time.Second
}

// RetryDelay returns the delay between retry rounds as a duration.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Resolve.RetryDelaySeconds) * time.Second
}

// FetchTimeout returns the remote source fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for commands.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
