// Package config provides configuration types and defaults for casier.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/casier/internal/log"
)

// Config holds all configuration options for casier.
type Config struct {
	// TerseWidth caps the preview length of text and rectangle registers
	// in one-line listings.
	TerseWidth int `mapstructure:"terse_width"`

	// Separator is inserted between the old and new text when appending
	// or prepending to a text register.
	Separator string `mapstructure:"separator"`

	UI      UIConfig        `mapstructure:"ui"`
	Theme   ThemeConfig     `mapstructure:"theme"`
	Tracing TracingConfig   `mapstructure:"tracing"`
	Cache   CacheConfig     `mapstructure:"cache"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	// StartVerbose opens the browser with the detail pane expanded.
	StartVerbose bool `mapstructure:"start_verbose"`
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     text:
	//       primary: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "text.primary": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// TracingConfig holds trace export configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/casier/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// CacheConfig controls the description render cache used by the browser.
type CacheConfig struct {
	// Disabled turns the cache off; descriptions are re-rendered on
	// every read.
	Disabled bool `mapstructure:"disabled"`

	// TTLSeconds is how long a rendered description stays cached.
	// Default: 300
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/casier/traces/traces.jsonl or empty string if home dir
// unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "casier", "traces", "traces.jsonl")
}

// Validate checks the configuration for errors. Zero values fall back to
// defaults, so only actively wrong settings fail.
func Validate(cfg Config) error {
	if cfg.TerseWidth < 0 {
		return fmt.Errorf("terse_width must be non-negative, got %d", cfg.TerseWidth)
	}
	if cfg.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must be non-negative, got %d", cfg.Cache.TTLSeconds)
	}
	if cfg.Theme.Mode != "" && cfg.Theme.Mode != "light" && cfg.Theme.Mode != "dark" {
		return fmt.Errorf("theme.mode must be \"light\", \"dark\", or empty, got %q", cfg.Theme.Mode)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		TerseWidth: 20,
		Separator:  "",
		UI: UIConfig{
			ShowStatusBar: true,
			StartVerbose:  false,
		},
		Theme: ThemeConfig{},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Cache: CacheConfig{
			Disabled:   false,
			TTLSeconds: 300,
		},
		Flags: map[string]bool{
			"live-reload": true,
			"delete-key":  true,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Casier Configuration

# Width of one-line register previews (text and rectangle registers)
terse_width: 20

# String placed between old and new text when appending/prepending
# separator: "\n"

# UI settings
ui:
  show_status_bar: true  # Show status bar at bottom
  start_verbose: false   # Open with the detail pane expanded

# Theme configuration
theme:
  # Force light or dark mode, or leave empty for terminal detection
  # mode: dark
  #
  # Override specific colors:
  # colors:
  #   text.primary: "#FFFFFF"
  #   text.muted: "#888888"
  #   accent: "#54A0FF"

# Description render cache
cache:
  disabled: false   # Re-render on every read when true
  ttl_seconds: 300  # How long a rendered description stays cached

# Feature flags
flags:
  live-reload: true  # Reload theme and settings when the config file changes
  delete-key: true   # Allow deleting registers from the browser

# Trace export configuration
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/casier/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
