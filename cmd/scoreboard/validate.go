package main

import (
	"fmt"

	"github.com/jpalmerr/scoreboard/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a config file without starting the device.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a scoreboard configuration file without starting the device.

This command parses the YAML, expands environment variables, and validates
all fields.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  scoreboard validate -c scoreboard.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	settings := cfg.SettingsFile
	if settings == "" {
		settings = "(memory)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Port:        %d\n", cfg.Port)
	fmt.Fprintf(out, "  Network:     %t\n", cfg.Network)
	fmt.Fprintf(out, "  Max clients: %d\n", cfg.MaxClients)
	fmt.Fprintf(out, "  Settings:    %s\n", settings)

	return nil
}
