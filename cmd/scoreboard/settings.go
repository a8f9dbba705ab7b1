package main

import (
	"errors"
	"fmt"

	"github.com/jpalmerr/scoreboard/internal/store"
	"github.com/spf13/cobra"
)

const defaultSettingsFile = "Config.json"

// settingsCmd groups the device settings subcommands.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change persisted device settings",
	Long: `Show or change the device settings file.

The settings file holds the hostname, the remote enable password and
whether the remote control server starts at boot.

Example:
  scoreboard settings show
  scoreboard settings set --file Config.json --enable-password hunter2 --start-wifi`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update one or more settings",
	RunE:  runSettingsSet,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)

	settingsCmd.PersistentFlags().String("file", defaultSettingsFile, "path to the settings file")

	settingsSetCmd.Flags().String("hostname", "", "device hostname")
	settingsSetCmd.Flags().String("enable-password", "", "password that unlocks remote control")
	settingsSetCmd.Flags().Bool("start-wifi", false, "start the remote control server at boot")
}

// loadSettings reads the settings file, treating a missing file as empty.
func loadSettings(s *store.FileStore) (store.Settings, error) {
	settings, err := s.Load()
	if errors.Is(err, store.ErrNotFound) {
		return store.Settings{}, nil
	}
	return settings, err
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	settings, err := loadSettings(store.NewFileStore(path))
	if err != nil {
		return err
	}

	password := "(not set)"
	if settings.EnablePassword != "" {
		password = "********"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Settings (%s)\n", path)
	fmt.Fprintf(out, "  Hostname:        %s\n", settings.Hostname)
	fmt.Fprintf(out, "  Enable password: %s\n", password)
	fmt.Fprintf(out, "  Start WiFi:      %t\n", settings.StartWiFi)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("hostname") && !flags.Changed("enable-password") && !flags.Changed("start-wifi") {
		return errors.New("nothing to set: pass --hostname, --enable-password or --start-wifi")
	}

	path, _ := flags.GetString("file")
	s := store.NewFileStore(path)
	settings, err := loadSettings(s)
	if err != nil {
		return err
	}

	if flags.Changed("hostname") {
		settings.Hostname, _ = flags.GetString("hostname")
	}
	if flags.Changed("enable-password") {
		settings.EnablePassword, _ = flags.GetString("enable-password")
	}
	if flags.Changed("start-wifi") {
		settings.StartWiFi, _ = flags.GetBool("start-wifi")
	}

	if err := s.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Settings saved to %s\n", path)
	return nil
}
