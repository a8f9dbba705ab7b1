// Package main is the entry point for the scoreboard CLI.
//
// The scoreboard can be embedded as a library (SDK) or run as a standalone
// binary with optional YAML configuration. This CLI provides the standalone
// binary approach.
//
// Usage:
//
//	scoreboard serve -c scoreboard.yaml   # Run the device
//	scoreboard validate -c scoreboard.yaml
//	scoreboard settings show --file Config.json
//	scoreboard version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "scoreboard",
	Short: "A two-team LED scoreboard controller",
	Long: `Scoreboard drives a two-team LED scoreboard.

Three buttons choose a score limit, count points and swap ends. Phones and
laptops on the same network can watch the score live and, once unlocked
with the enable password, control the match remotely.

Quick start:
  1. Run: scoreboard serve --network
  2. Press l or r then Enter to pick a limit, l/r to score, s to swap
  3. Open http://localhost:8080 in your browser

Example config:
  title: Court 1
  port: 8080
  network: true
  settings_file: Config.json
  limits:
    left:  {limit: 15, max_limit: 20}
    right: {limit: 21, max_limit: 30}`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this scoreboard binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "scoreboard %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
