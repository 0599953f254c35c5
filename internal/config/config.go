// Package config loads lifeline settings from the TOML config file, a .env
// file, and LIFELINE_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all lifeline configuration.
type Config struct {
	General    GeneralConfig     `toml:"general"`
	Log        LogConfig         `toml:"log"`
	History    HistoryConfig     `toml:"history"`
	Watch      WatchConfig       `toml:"watch"`
	Appearance AppearanceConfig  `toml:"appearance"`
	Resources  ResourceOverrides `toml:"resources"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Snapshot string `toml:"snapshot,omitempty"`
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// HistoryConfig controls the assessment history database.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path,omitempty"`
	Keep    int    `toml:"keep"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Addr         string `toml:"addr"`
	Schedule     string `toml:"schedule"`
	EventsBuffer int    `toml:"events_buffer"`
}

// AppearanceConfig holds display settings.
type AppearanceConfig struct {
	Color bool `toml:"color"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		History: HistoryConfig{
			Enabled: true,
			Keep:    500,
		},
		Watch: WatchConfig{
			Addr:         "127.0.0.1:8787",
			Schedule:     "@every 1m",
			EventsBuffer: 200,
		},
		Appearance: AppearanceConfig{
			Color: true,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lifeline")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lifeline")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "lifeline")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "lifeline")
}

// HistoryPath is the configured history database, or the default under DataDir.
func (c Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(DataDir(), "history.db")
}

// Load reads the config file (defaults if it doesn't exist), then applies
// .env and LIFELINE_* environment overrides.
func Load() (Config, error) {
	cfg, err := LoadFile(Path())
	if err != nil {
		return cfg, err
	}
	if err := LoadDotEnv(".env"); err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile reads a config file, returning defaults if it doesn't exist.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the config location
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil //nolint:nilerr // no .env is the common case
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// envOverrides mirrors the settings that may come from the environment.
// Pointers distinguish "unset" from a zero value.
type envOverrides struct {
	Snapshot       *string `env:"LIFELINE_SNAPSHOT"`
	LogLevel       *string `env:"LIFELINE_LOG_LEVEL"`
	LogFormat      *string `env:"LIFELINE_LOG_FORMAT"`
	HistoryEnabled *bool   `env:"LIFELINE_HISTORY_ENABLED"`
	HistoryPath    *string `env:"LIFELINE_HISTORY_PATH"`
	HistoryKeep    *int    `env:"LIFELINE_HISTORY_KEEP"`
	WatchAddr      *string `env:"LIFELINE_WATCH_ADDR"`
	WatchSchedule  *string `env:"LIFELINE_WATCH_SCHEDULE"`
	Color          *bool   `env:"LIFELINE_COLOR"`
}

// ApplyEnv overlays LIFELINE_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	setString(&cfg.General.Snapshot, raw.Snapshot)
	setString(&cfg.Log.Level, raw.LogLevel)
	setString(&cfg.Log.Format, raw.LogFormat)
	setString(&cfg.History.Path, raw.HistoryPath)
	setString(&cfg.Watch.Addr, raw.WatchAddr)
	setString(&cfg.Watch.Schedule, raw.WatchSchedule)
	if raw.HistoryEnabled != nil {
		cfg.History.Enabled = *raw.HistoryEnabled
	}
	if raw.HistoryKeep != nil {
		cfg.History.Keep = *raw.HistoryKeep
	}
	if raw.Color != nil {
		cfg.Appearance.Color = *raw.Color
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
