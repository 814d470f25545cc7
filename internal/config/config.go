package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const appDir = "playlistformatter"

// Config holds runtime configuration loaded from TOML.
type Config struct {
	Output  OutputConfig  `toml:"output"`
	Log     LogConfig     `toml:"log"`
	History HistoryConfig `toml:"history"`
	Publish PublishConfig `toml:"publish"`
}

// OutputConfig controls where and how playlists are exported.
type OutputConfig struct {
	Dir       string `toml:"dir"` // empty: next to the input file
	Overwrite bool   `toml:"overwrite"`
	Format    string `toml:"format"` // csv, txt
}

type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// PublishConfig holds defaults for recreating playlists on a platform.
type PublishConfig struct {
	Platform     string `toml:"platform"` // spotify, youtube
	SearchLimit  int    `toml:"search_limit"`
	CallbackPort int    `toml:"callback_port"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Output:  OutputConfig{Format: "csv"},
		Log:     LogConfig{Level: "warn"},
		History: HistoryConfig{Enabled: true},
		Publish: PublishConfig{Platform: "spotify", SearchLimit: 5, CallbackPort: 8080},
	}
}

// Load reads configuration from disk on top of the defaults. If path is
// empty, the default location is used and a missing file is not an error.
func Load(path string) (*Config, string, error) {
	cfg := Default()
	cfgPath := path
	if cfgPath == "" {
		var err error
		cfgPath, err = DefaultPath()
		if err != nil {
			return nil, "", fmt.Errorf("resolve config path: %w", err)
		}
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		if path == "" && errors.Is(err, os.ErrNotExist) {
			return cfg, cfgPath, nil
		}
		return nil, cfgPath, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, cfgPath, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfgPath, err
	}
	return cfg, cfgPath, nil
}

// Validate checks enumerated settings and limits.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "csv", "txt":
	default:
		return fmt.Errorf("output.format must be csv or txt, got %q", c.Output.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Publish.Platform) {
	case "spotify", "youtube":
	default:
		return fmt.Errorf("publish.platform must be spotify or youtube, got %q", c.Publish.Platform)
	}
	if c.Publish.SearchLimit <= 0 {
		return fmt.Errorf("publish.search_limit must be positive, got %d", c.Publish.SearchLimit)
	}
	if c.Publish.CallbackPort <= 0 || c.Publish.CallbackPort > 65535 {
		return fmt.Errorf("publish.callback_port out of range: %d", c.Publish.CallbackPort)
	}
	return nil
}

// HistoryPath returns the configured history database path or the default one.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, "history.db"), nil
}

// DefaultPath returns <user config dir>/playlistformatter/config.toml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, "config.toml"), nil
}

// LoadEnv loads platform credentials from .env files into the environment.
// Variables that are already set win. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}
