package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jpalmerr/scoreboard"
	"github.com/jpalmerr/scoreboard/config"
	"github.com/jpalmerr/scoreboard/input"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a JSON logger for CLI use.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// serveCmd runs the scoreboard until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scoreboard",
	Long: `Run the scoreboard.

The device will:
  - Load configuration from the YAML file, if one is given
  - Scroll the splash banner and wait for a limit to be chosen
  - Read button presses from stdin (l, r, s; upper case to hold)
  - Serve the remote control page when networking is enabled

A .env file in the working directory is loaded first, so variables it
defines can be referenced from the config file.

The scoreboard runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  scoreboard serve
  scoreboard serve --network --port 9000
  scoreboard serve -c /etc/scoreboard/scoreboard.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file")
	serveCmd.Flags().Bool("network", false, "start the remote control server")
	serveCmd.Flags().Int("port", 0, "HTTP port (overrides config)")
	serveCmd.Flags().Bool("no-input", false, "do not read button presses from stdin")
}

// loadServeConfig resolves the config file and command line overrides.
func loadServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("network") {
		cfg.Network, _ = cmd.Flags().GetBool("network")
	}
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt("port")
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("port must be between 1 and 65535, got %d", port)
		}
		cfg.Port = port
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	// a missing .env is normal
	envErr := godotenv.Load()

	cfg, err := loadServeConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, cfg.Level())
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warn("could not load .env file", "error", envErr)
	}

	logger.Info("config loaded",
		"port", cfg.Port,
		"network", cfg.Network,
		"settings_file", cfg.SettingsFile,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := config.BuildOptions(cfg, logger)

	noInput, _ := cmd.Flags().GetBool("no-input")
	if !noInput {
		buttons := input.NewLineSource(cmd.InOrStdin(), logger)
		go func() {
			if err := buttons.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("button input stopped", "error", err)
			}
		}()
		opts = append(opts, scoreboard.WithInput(buttons))
	}

	sb, err := scoreboard.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create scoreboard: %w", err)
	}

	// start - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- sb.Start(ctx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("scoreboard error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("scoreboard error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
