package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "culturedeck"

type Config struct {
	// StatePath overrides the preferences database location (default: XDG data dir).
	StatePath string `koanf:"state_path"`

	Search      SearchConfig      `koanf:"search"`
	HTTP        HTTPConfig        `koanf:"http"`
	MusicBrainz MusicBrainzConfig `koanf:"musicbrainz"`
	Met         EndpointConfig    `koanf:"met"`
	Cleveland   EndpointConfig    `koanf:"cleveland"`
	Log         LogConfig         `koanf:"log"`
	Metrics     MetricsConfig     `koanf:"metrics"`
}

// SearchConfig tunes the search controller and aggregator caps.
type SearchConfig struct {
	MinQueryLength  int           `koanf:"min_query_length"` // default: 2
	Debounce        time.Duration `koanf:"debounce"`         // default: 500ms
	MaxResults      int           `koanf:"max_results"`      // artifacts shown (default: 20)
	MetDetailLimit  int           `koanf:"met_detail_limit"` // Met objects fetched per search (default: 10)
	ArtistLimit     int           `koanf:"artist_limit"`     // default: 15
	RecordingLimit  int           `koanf:"recording_limit"`  // default: 15
	InstrumentLimit int           `koanf:"instrument_limit"` // default: 10
}

// HTTPConfig holds fetch retry settings.
type HTTPConfig struct {
	Timeout     time.Duration `koanf:"timeout"`      // per attempt (default: 15s)
	MaxAttempts int           `koanf:"max_attempts"` // default: 3
	Backoff     time.Duration `koanf:"backoff"`      // linear base (default: 400ms)
}

// MusicBrainzConfig holds MusicBrainz endpoint and rate limit settings.
type MusicBrainzConfig struct {
	BaseURL   string        `koanf:"base_url"`
	UserAgent string        `koanf:"user_agent"`
	Interval  time.Duration `koanf:"interval"` // min gap between requests (default: 1s)
}

// EndpointConfig holds a museum API base URL. Empty selects the public endpoint.
type EndpointConfig struct {
	BaseURL string `koanf:"base_url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string `koanf:"level"`       // debug, info, warn, error (default: info)
	File        string `koanf:"file"`        // default: XDG state dir
	Development bool   `koanf:"development"` // console encoding
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `koanf:"addr"` // e.g. "127.0.0.1:9464"
}

func Load() (*Config, error) {
	return loadPaths(getConfigPaths())
}

func loadPaths(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "load %s", path)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	cfg.StatePath = expandPath(cfg.StatePath)
	cfg.Log.File = expandPath(cfg.Log.File)

	cfg.MusicBrainz.BaseURL = strings.TrimSuffix(cfg.MusicBrainz.BaseURL, "/")
	cfg.Met.BaseURL = strings.TrimSuffix(cfg.Met.BaseURL, "/")
	cfg.Cleveland.BaseURL = strings.TrimSuffix(cfg.Cleveland.BaseURL, "/")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/culturedeck/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasMetrics returns true if the metrics endpoint is configured.
func (c *Config) HasMetrics() bool {
	return c.Metrics.Addr != ""
}

// GetSearchConfig returns the search configuration with defaults applied.
func (c *Config) GetSearchConfig() SearchConfig {
	cfg := c.Search

	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = 2
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 20
	}
	if cfg.MetDetailLimit <= 0 {
		cfg.MetDetailLimit = 10
	}
	if cfg.ArtistLimit <= 0 || cfg.ArtistLimit > 100 {
		cfg.ArtistLimit = 15
	}
	if cfg.RecordingLimit <= 0 || cfg.RecordingLimit > 100 {
		cfg.RecordingLimit = 15
	}
	if cfg.InstrumentLimit <= 0 || cfg.InstrumentLimit > 100 {
		cfg.InstrumentLimit = 10
	}

	return cfg
}

// GetHTTPConfig returns the fetch configuration with defaults applied.
func (c *Config) GetHTTPConfig() HTTPConfig {
	cfg := c.HTTP

	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 400 * time.Millisecond
	}

	return cfg
}

// GetMusicBrainzConfig returns the MusicBrainz configuration with defaults
// applied. The interval is never below one second, the service's published limit.
func (c *Config) GetMusicBrainzConfig() MusicBrainzConfig {
	cfg := c.MusicBrainz

	if cfg.Interval < time.Second {
		cfg.Interval = time.Second
	}

	return cfg
}

// GetLogConfig returns the logging configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	if cfg.Level == "" {
		cfg.Level = "info"
	}

	return cfg
}
