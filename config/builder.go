package config

import (
	"log/slog"

	"github.com/jpalmerr/scoreboard"
)

// BuildOptions converts parsed configuration into SDK options.
//
// The logger is passed through unchanged; a file-backed settings store is
// added when SettingsFile is set. Zero values in cfg leave the SDK defaults
// in place.
func BuildOptions(cfg *Config, logger *slog.Logger) []scoreboard.Option {
	opts := []scoreboard.Option{
		scoreboard.WithPort(cfg.Port),
		scoreboard.WithNetwork(cfg.Network),
		scoreboard.WithMaxClients(cfg.MaxClients),
	}

	if logger != nil {
		opts = append(opts, scoreboard.WithLogger(logger))
	}
	if cfg.Title != "" {
		opts = append(opts, scoreboard.WithTitle(cfg.Title))
	}
	if cfg.SettingsFile != "" {
		opts = append(opts, scoreboard.WithSettingsStore(scoreboard.NewSettingsFile(cfg.SettingsFile)))
	}
	if cfg.Splash != nil {
		opts = append(opts, scoreboard.WithSplash(*cfg.Splash))
	}

	if !cfg.Limits.Left.isZero() || !cfg.Limits.Right.isZero() {
		left := scoreboard.Limits{Limit: 15, MaxLimit: 20}
		right := scoreboard.Limits{Limit: 21, MaxLimit: 30}
		if !cfg.Limits.Left.isZero() {
			left = scoreboard.Limits(cfg.Limits.Left)
		}
		if !cfg.Limits.Right.isZero() {
			right = scoreboard.Limits(cfg.Limits.Right)
		}
		opts = append(opts, scoreboard.WithLimitPresets(left, right))
	}

	if d := cfg.Timing.BlinkInterval.Duration(); d > 0 {
		opts = append(opts, scoreboard.WithBlinkInterval(d))
	}
	if d := cfg.Timing.GameOverScrollInterval.Duration(); d > 0 {
		opts = append(opts, scoreboard.WithGameOverScrollInterval(d))
	}

	return opts
}
