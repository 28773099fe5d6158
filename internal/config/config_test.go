//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/state/culturedeck.db",
			expected: filepath.Join(home, "state", "culturedeck.db"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/log/culturedeck.log",
			expected: "/var/log/culturedeck.log",
		},
		{
			name:     "relative path unchanged",
			input:    "logs/culturedeck.log",
			expected: "logs/culturedeck.log",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "culturedeck", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func TestHasMetrics(t *testing.T) {
	if (&Config{}).HasMetrics() {
		t.Error("HasMetrics() = true for empty config")
	}
	if !(&Config{Metrics: MetricsConfig{Addr: ":9464"}}).HasMetrics() {
		t.Error("HasMetrics() = false with addr set")
	}
}

func TestGetSearchConfig_Defaults(t *testing.T) {
	cfg := (&Config{}).GetSearchConfig()

	want := SearchConfig{
		MinQueryLength:  2,
		Debounce:        500 * time.Millisecond,
		MaxResults:      20,
		MetDetailLimit:  10,
		ArtistLimit:     15,
		RecordingLimit:  15,
		InstrumentLimit: 10,
	}
	if cfg != want {
		t.Errorf("GetSearchConfig() = %+v, want %+v", cfg, want)
	}
}

func TestGetSearchConfig_CustomValues(t *testing.T) {
	custom := SearchConfig{
		MinQueryLength:  3,
		Debounce:        250 * time.Millisecond,
		MaxResults:      40,
		MetDetailLimit:  5,
		ArtistLimit:     25,
		RecordingLimit:  30,
		InstrumentLimit: 5,
	}
	cfg := (&Config{Search: custom}).GetSearchConfig()
	if cfg != custom {
		t.Errorf("GetSearchConfig() = %+v, want %+v", cfg, custom)
	}
}

func TestGetSearchConfig_InvalidValues(t *testing.T) {
	cfg := (&Config{Search: SearchConfig{
		MinQueryLength:  -1,
		Debounce:        -time.Second,
		ArtistLimit:     500,
		RecordingLimit:  -3,
		InstrumentLimit: 101,
	}}).GetSearchConfig()

	if cfg.MinQueryLength != 2 {
		t.Errorf("MinQueryLength = %d, want 2", cfg.MinQueryLength)
	}
	if cfg.Debounce != 500*time.Millisecond {
		t.Errorf("Debounce = %v, want 500ms", cfg.Debounce)
	}
	if cfg.ArtistLimit != 15 {
		t.Errorf("ArtistLimit = %d, want 15 (MusicBrainz caps limit at 100)", cfg.ArtistLimit)
	}
	if cfg.RecordingLimit != 15 {
		t.Errorf("RecordingLimit = %d, want 15", cfg.RecordingLimit)
	}
	if cfg.InstrumentLimit != 10 {
		t.Errorf("InstrumentLimit = %d, want 10", cfg.InstrumentLimit)
	}
}

func TestGetHTTPConfig_Defaults(t *testing.T) {
	cfg := (&Config{}).GetHTTPConfig()

	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Timeout)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.Backoff != 400*time.Millisecond {
		t.Errorf("Backoff = %v, want 400ms", cfg.Backoff)
	}
}

func TestGetMusicBrainzConfig_IntervalFloor(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		expected time.Duration
	}{
		{"unset", 0, time.Second},
		{"below limit", 200 * time.Millisecond, time.Second},
		{"exactly one second", time.Second, time.Second},
		{"slower is allowed", 2 * time.Second, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := (&Config{MusicBrainz: MusicBrainzConfig{Interval: tt.interval}}).GetMusicBrainzConfig()
			if cfg.Interval != tt.expected {
				t.Errorf("Interval = %v, want %v", cfg.Interval, tt.expected)
			}
		})
	}
}

func TestGetLogConfig_DefaultLevel(t *testing.T) {
	if got := (&Config{}).GetLogConfig().Level; got != "info" {
		t.Errorf("Level = %q, want %q", got, "info")
	}
	if got := (&Config{Log: LogConfig{Level: "debug"}}).GetLogConfig().Level; got != "debug" {
		t.Errorf("Level = %q, want %q", got, "debug")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}
	return path
}

func TestLoad_EmptyConfig(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not change to temp directory: %v", err)
	}
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	if err := os.WriteFile("config.toml", []byte(""), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	// Values may be inherited from ~/.config/culturedeck/config.toml if it exists.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
}

func TestLoad_MissingFilesGiveZeroConfig(t *testing.T) {
	cfg, err := loadPaths([]string{filepath.Join(t.TempDir(), "absent.toml")})
	if err != nil {
		t.Fatalf("loadPaths() error = %v", err)
	}
	if cfg.Search != (SearchConfig{}) || cfg.HTTP != (HTTPConfig{}) {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoad_BasicConfig(t *testing.T) {
	path := writeConfig(t, `
state_path = "~/culturedeck/state.db"

[search]
min_query_length = 3
debounce = "300ms"
max_results = 30

[http]
timeout = "5s"
max_attempts = 4
backoff = "250ms"

[musicbrainz]
base_url = "http://localhost:5000/ws/2/"
user_agent = "test/1.0 (me@example.com)"
interval = "2s"

[met]
base_url = "http://localhost:5001"

[log]
level = "debug"
development = true

[metrics]
addr = "127.0.0.1:9464"
`)

	cfg, err := loadPaths([]string{path})
	if err != nil {
		t.Fatalf("loadPaths() error = %v", err)
	}

	if cfg.Search.MinQueryLength != 3 {
		t.Errorf("Search.MinQueryLength = %d, want 3", cfg.Search.MinQueryLength)
	}
	if cfg.Search.Debounce != 300*time.Millisecond {
		t.Errorf("Search.Debounce = %v, want 300ms", cfg.Search.Debounce)
	}
	if cfg.HTTP.MaxAttempts != 4 || cfg.HTTP.Backoff != 250*time.Millisecond || cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("HTTP = %+v", cfg.HTTP)
	}

	// Trailing slash is removed
	if cfg.MusicBrainz.BaseURL != "http://localhost:5000/ws/2" {
		t.Errorf("MusicBrainz.BaseURL = %q", cfg.MusicBrainz.BaseURL)
	}
	if cfg.MusicBrainz.UserAgent != "test/1.0 (me@example.com)" {
		t.Errorf("MusicBrainz.UserAgent = %q", cfg.MusicBrainz.UserAgent)
	}
	if cfg.MusicBrainz.Interval != 2*time.Second {
		t.Errorf("MusicBrainz.Interval = %v, want 2s", cfg.MusicBrainz.Interval)
	}
	if cfg.Met.BaseURL != "http://localhost:5001" {
		t.Errorf("Met.BaseURL = %q", cfg.Met.BaseURL)
	}
	if cfg.Cleveland.BaseURL != "" {
		t.Errorf("Cleveland.BaseURL = %q, want empty", cfg.Cleveland.BaseURL)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Development {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if !cfg.HasMetrics() {
		t.Error("HasMetrics() = false, want true")
	}

	home, _ := os.UserHomeDir()
	if expected := filepath.Join(home, "culturedeck", "state.db"); cfg.StatePath != expected {
		t.Errorf("StatePath = %q, want %q", cfg.StatePath, expected)
	}
}

func TestLoad_LaterFileWins(t *testing.T) {
	global := writeConfig(t, `
[search]
max_results = 10
min_query_length = 4
`)
	local := writeConfig(t, `
[search]
max_results = 50
`)

	cfg, err := loadPaths([]string{global, local})
	if err != nil {
		t.Fatalf("loadPaths() error = %v", err)
	}
	if cfg.Search.MaxResults != 50 {
		t.Errorf("MaxResults = %d, want 50", cfg.Search.MaxResults)
	}
	if cfg.Search.MinQueryLength != 4 {
		t.Errorf("MinQueryLength = %d, want 4 (merged from first file)", cfg.Search.MinQueryLength)
	}
}

func TestLoad_InvalidToml(t *testing.T) {
	path := writeConfig(t, "invalid = [[[")

	if _, err := loadPaths([]string{path}); err == nil {
		t.Error("loadPaths() expected error for invalid TOML, got nil")
	}
}

func TestLoad_LogFileExpansion(t *testing.T) {
	path := writeConfig(t, `
[log]
file = "~/logs/culturedeck.log"
`)

	cfg, err := loadPaths([]string{path})
	if err != nil {
		t.Fatalf("loadPaths() error = %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, "logs", "culturedeck.log")
	if cfg.Log.File != expected {
		t.Errorf("Log.File = %q, want %q", cfg.Log.File, expected)
	}
}
