package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// JSONFileName is the versioned JSON config looked up in the project dir
	JSONFileName = ".toastq.json"
	// YAMLFileName is the YAML config used when no JSON config exists
	YAMLFileName = ".toastq.yaml"
)

// ErrInvalidConfig is returned when a loaded config fails validation
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the full toastq configuration
type Config struct {
	Toast ToastConfig `json:"toast" yaml:"toast"`
	Log   LogConfig   `json:"log" yaml:"log"`
}

// ToastConfig contains toast display settings
type ToastConfig struct {
	DurationMs  int `json:"durationMs" yaml:"durationMs"`
	MaxWidth    int `json:"maxWidth" yaml:"maxWidth"`
	HistorySize int `json:"historySize" yaml:"historySize"`
	// RateLimit caps how many toasts per second the keyboard shortcuts create
	RateLimit int `json:"rateLimit" yaml:"rateLimit"`
}

// Duration returns the default display time
func (t ToastConfig) Duration() time.Duration {
	return time.Duration(t.DurationMs) * time.Millisecond
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file" yaml:"file"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Toast: ToastConfig{
			DurationMs:  3000,
			MaxWidth:    40,
			HistorySize: 8,
			RateLimit:   10,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadConfig loads configuration from project path with priority:
// 1. .toastq.json in project root (with version migration support)
// 2. .toastq.yaml (or .toastq.yml) in project root
// 3. Defaults
func LoadConfig(projectPath string) (*Config, error) {
	jsonPath := filepath.Join(projectPath, JSONFileName)
	if data, err := os.ReadFile(jsonPath); err == nil {
		cfg, err := ParseVersionedConfig(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", JSONFileName, err)
		}
		return finish(cfg, JSONFileName)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", JSONFileName, err)
	}

	for _, name := range []string{YAMLFileName, strings.TrimSuffix(YAMLFileName, ".yaml") + ".yml"} {
		cfg, err := loadYAML(filepath.Join(projectPath, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return finish(cfg, name)
	}

	return DefaultConfig(), nil
}

func finish(cfg *Config, source string) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return MergeWithDefaults(cfg), nil
}

// Validate rejects values that cannot be displayed. Zero values are allowed
// and are replaced with defaults by MergeWithDefaults.
func (c *Config) Validate() error {
	if c.Toast.DurationMs < 0 {
		return fmt.Errorf("%w: toast.durationMs must not be negative, got %d", ErrInvalidConfig, c.Toast.DurationMs)
	}
	if c.Toast.MaxWidth < 0 {
		return fmt.Errorf("%w: toast.maxWidth must not be negative, got %d", ErrInvalidConfig, c.Toast.MaxWidth)
	}
	if c.Toast.HistorySize < 0 {
		return fmt.Errorf("%w: toast.historySize must not be negative, got %d", ErrInvalidConfig, c.Toast.HistorySize)
	}
	if c.Toast.RateLimit < 0 {
		return fmt.Errorf("%w: toast.rateLimit must not be negative, got %d", ErrInvalidConfig, c.Toast.RateLimit)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Toast.DurationMs == 0 {
		cfg.Toast.DurationMs = defaults.Toast.DurationMs
	}
	if cfg.Toast.MaxWidth == 0 {
		cfg.Toast.MaxWidth = defaults.Toast.MaxWidth
	}
	if cfg.Toast.HistorySize == 0 {
		cfg.Toast.HistorySize = defaults.Toast.HistorySize
	}
	if cfg.Toast.RateLimit == 0 {
		cfg.Toast.RateLimit = defaults.Toast.RateLimit
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	return cfg
}

// JSON returns the config as indented JSON, without version information
func (c *Config) JSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
