package store

import (
	"errors"
	"log/slog"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("store: settings not found")

// Settings is the persisted device configuration.
type Settings struct {
	// Hostname is advertised on the local network.
	Hostname string `json:"hostname"`

	// EnablePassword unlocks admin actions for remote peers.
	// Empty means no peer can become admin.
	EnablePassword string `json:"enable_password"`

	// StartWiFi brings the network up at boot even without an explicit request.
	StartWiFi bool `json:"start_wifi"`
}

// Store loads and saves [Settings].
//
// Implementations must be safe for concurrent access.
type Store interface {
	// Load returns the saved settings, or [ErrNotFound] if none exist.
	Load() (Settings, error)

	// Save replaces the saved settings.
	Save(s Settings) error
}

// LoadOrDefault loads settings from s. Any failure is logged and the zero
// Settings are returned with loaded set to false.
func LoadOrDefault(s Store, logger *slog.Logger) (settings Settings, loaded bool) {
	if logger == nil {
		logger = slog.Default()
	}
	if s == nil {
		return Settings{}, false
	}

	settings, err := s.Load()
	switch {
	case errors.Is(err, ErrNotFound):
		logger.Info("no saved settings, using defaults")
		return Settings{}, false
	case err != nil:
		logger.Error("failed to load settings, using defaults", "error", err)
		return Settings{}, false
	}

	logger.Info("settings loaded",
		"hostname", settings.Hostname,
		"enable_password_set", settings.EnablePassword != "",
		"start_wifi", settings.StartWiFi,
	)
	return settings, true
}
