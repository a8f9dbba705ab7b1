// Package config provides YAML configuration parsing for the scoreboard.
//
// This package enables running the scoreboard as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	title: Court 1
//	port: 8080
//	network: true
//	settings_file: ${SCOREBOARD_SETTINGS:-Config.json}
//
//	limits:
//	  left:  {limit: 15, max_limit: 20}
//	  right: {limit: 21, max_limit: 30}
//
//	timing:
//	  blink_interval: 150ms
//	  game_over_scroll_interval: 1m
//
//	log_level: info
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort       = 8080
	defaultMaxClients = 8

	// minBlinkInterval keeps the blink ticker from flooding the render queue.
	minBlinkInterval = 50 * time.Millisecond
	minScrollPeriod  = time.Second
)

// Config is the root configuration structure for the scoreboard binary.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the remote control page title. Defaults to "Scoreboard".
	Title string `yaml:"title"`

	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port"`

	// Network starts the remote control server at boot.
	Network bool `yaml:"network"`

	// SettingsFile is the JSON device settings file. Empty keeps settings
	// in memory only. Supports ${VAR} and ${VAR:-default}.
	SettingsFile string `yaml:"settings_file"`

	// MaxClients caps concurrent remote viewers. Defaults to 8.
	MaxClients int `yaml:"max_clients"`

	// Splash is scrolled once at boot. Nil uses the built-in banner; an
	// empty string skips it.
	Splash *string `yaml:"splash"`

	// Limits are the two presets offered while choosing.
	Limits LimitsConfig `yaml:"limits"`

	// Timing tunes the game-over animation.
	Timing TimingConfig `yaml:"timing"`

	// LogLevel is debug, info, warn or error. Defaults to info.
	LogLevel string `yaml:"log_level"`
}

// LimitsConfig holds the left and right limit presets.
type LimitsConfig struct {
	Left  Limit `yaml:"left"`
	Right Limit `yaml:"right"`
}

// Limit is a single preset. Zero values take the built-in preset.
type Limit struct {
	Limit    int `yaml:"limit"`
	MaxLimit int `yaml:"max_limit"`
}

// TimingConfig tunes the game-over animation. Zero values take the
// built-in defaults.
type TimingConfig struct {
	BlinkInterval          Duration `yaml:"blink_interval"`
	GameOverScrollInterval Duration `yaml:"game_over_scroll_interval"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Port: defaultPort, MaxClients: defaultMaxClients}
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in Title and SettingsFile.
// Defaults are applied for Port (8080) and MaxClients (8).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.MaxClients == 0 {
		cfg.MaxClients = defaultMaxClients
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	expanded, err := expandEnvVars(c.Title)
	if err != nil {
		return fmt.Errorf("title: %w", err)
	}
	c.Title = expanded

	expanded, err = expandEnvVars(c.SettingsFile)
	if err != nil {
		return fmt.Errorf("settings_file: %w", err)
	}
	c.SettingsFile = expanded

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxClients < 1 {
		return fmt.Errorf("max_clients must be positive, got %d", c.MaxClients)
	}

	if err := c.Limits.Left.validate("limits.left"); err != nil {
		return err
	}
	if err := c.Limits.Right.validate("limits.right"); err != nil {
		return err
	}

	if d := c.Timing.BlinkInterval.Duration(); d != 0 && d < minBlinkInterval {
		return fmt.Errorf("timing.blink_interval must be at least %s, got %s", minBlinkInterval, d)
	}
	if d := c.Timing.GameOverScrollInterval.Duration(); d != 0 && d < minScrollPeriod {
		return fmt.Errorf("timing.game_over_scroll_interval must be at least %s, got %s", minScrollPeriod, d)
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}

	return nil
}

func (l Limit) isZero() bool { return l == Limit{} }

func (l Limit) validate(field string) error {
	if l.isZero() {
		return nil
	}
	if l.Limit <= 0 || l.MaxLimit <= 0 {
		return fmt.Errorf("%s: limit and max_limit must be positive", field)
	}
	if l.Limit > l.MaxLimit {
		return fmt.Errorf("%s: limit %d exceeds max_limit %d", field, l.Limit, l.MaxLimit)
	}
	return nil
}
