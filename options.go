package scoreboard

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jpalmerr/scoreboard/display"
	"github.com/jpalmerr/scoreboard/input"
	"github.com/jpalmerr/scoreboard/internal/store"
)

// Settings is the persisted device configuration: hostname, enable
// password and whether the network starts at boot.
type Settings = store.Settings

// SettingsStore loads and saves [Settings].
type SettingsStore = store.Store

// NewSettingsFile returns a [SettingsStore] backed by a JSON file. The file
// is written atomically and need not exist yet.
func NewSettingsFile(path string) SettingsStore {
	return store.NewFileStore(path)
}

// NewSettingsMemory returns a process-local [SettingsStore] holding s.
func NewSettingsMemory(s Settings) SettingsStore {
	return store.NewMemoryStoreWith(s)
}

// sbConfig holds mutable state during Scoreboard construction.
type sbConfig struct {
	title                  string
	port                   int
	network                bool
	splash                 string
	maxClients             int
	logger                 *slog.Logger
	settings               SettingsStore
	display                display.Display
	input                  input.Source
	clock                  clockwork.Clock
	presets                [2]Limits
	blinkInterval          time.Duration
	gameOverScrollInterval time.Duration
	changeCallbacks        []func(State)
	restart                func()
}

// Option is a function that configures a [Scoreboard] during construction.
//
// Options return an error if validation fails.
type Option func(*sbConfig) error

// WithPort sets the HTTP port for the remote control server.
// Port 0 picks a free port. Defaults to 8080.
//
// Returns an error if the port is outside 0-65535.
func WithPort(port int) Option {
	return func(cfg *sbConfig) error {
		if port < 0 || port > 65535 {
			return errors.New("port must be between 0 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithTitle sets the remote control page title. Defaults to "Scoreboard".
func WithTitle(title string) Option {
	return func(cfg *sbConfig) error {
		cfg.title = title
		return nil
	}
}

// WithLogger sets a custom [slog.Logger]. If not specified, [slog.Default]
// is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *sbConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithNetwork starts the remote control server at boot. The server also
// starts when the saved settings ask for it.
func WithNetwork(enabled bool) Option {
	return func(cfg *sbConfig) error {
		cfg.network = enabled
		return nil
	}
}

// WithSettingsStore sets where device settings are loaded from. Without
// it the device boots with default settings and no enable password.
//
// Returns an error if the store is nil.
func WithSettingsStore(s SettingsStore) Option {
	return func(cfg *sbConfig) error {
		if s == nil {
			return errors.New("settings store cannot be nil")
		}
		cfg.settings = s
		return nil
	}
}

// WithDisplay sets the panel to draw on. Defaults to an in-memory 64x32
// [display.Matrix].
//
// Returns an error if the display is nil.
func WithDisplay(d display.Display) Option {
	return func(cfg *sbConfig) error {
		if d == nil {
			return errors.New("display cannot be nil")
		}
		cfg.display = d
		return nil
	}
}

// WithInput sets the source of physical button events.
// Without it the device is driven only remotely.
//
// Returns an error if the source is nil.
func WithInput(src input.Source) Option {
	return func(cfg *sbConfig) error {
		if src == nil {
			return errors.New("input source cannot be nil")
		}
		cfg.input = src
		return nil
	}
}

// WithClock sets the clock every timer runs on. Intended for tests.
//
// Returns an error if the clock is nil.
func WithClock(c clockwork.Clock) Option {
	return func(cfg *sbConfig) error {
		if c == nil {
			return errors.New("clock cannot be nil")
		}
		cfg.clock = c
		return nil
	}
}

// WithMaxClients sets how many remote viewers may be connected at once.
// Defaults to 8.
//
// Returns an error if n is not positive.
func WithMaxClients(n int) Option {
	return func(cfg *sbConfig) error {
		if n <= 0 {
			return errors.New("max clients must be positive")
		}
		cfg.maxClients = n
		return nil
	}
}

// WithLimitPresets sets the two limits offered while choosing, picked with
// the left and right buttons. Defaults to 15/20 and 21/30.
//
// Returns an error if any value is not positive or a limit exceeds its max.
func WithLimitPresets(left, right Limits) Option {
	return func(cfg *sbConfig) error {
		for _, l := range []Limits{left, right} {
			if l.Limit <= 0 || l.MaxLimit <= 0 {
				return errors.New("limits must be positive")
			}
			if l.Limit > l.MaxLimit {
				return errors.New("limit cannot exceed max limit")
			}
		}
		cfg.presets = [2]Limits{left, right}
		return nil
	}
}

// WithSplash sets the text scrolled once across the panel at boot.
// An empty text skips the splash. Defaults to "Scoreboard 1.0".
func WithSplash(text string) Option {
	return func(cfg *sbConfig) error {
		cfg.splash = text
		return nil
	}
}

// WithBlinkInterval sets how fast the winner's box blinks after a game.
// Defaults to 150ms.
//
// Returns an error if the duration is zero or negative.
func WithBlinkInterval(d time.Duration) Option {
	return func(cfg *sbConfig) error {
		if d <= 0 {
			return errors.New("blink interval must be positive")
		}
		cfg.blinkInterval = d
		return nil
	}
}

// WithGameOverScrollInterval sets how often the game-over marquee repeats.
// Defaults to one minute.
//
// Returns an error if the duration is zero or negative.
func WithGameOverScrollInterval(d time.Duration) Option {
	return func(cfg *sbConfig) error {
		if d <= 0 {
			return errors.New("game over scroll interval must be positive")
		}
		cfg.gameOverScrollInterval = d
		return nil
	}
}

// WithChangeCallback registers a function called with the new [State]
// after every change to the match.
//
// Multiple callbacks execute in registration order, after the display and
// remote viewers have been notified. Callbacks run on the goroutine that
// made the change and must not block. Panics are recovered and logged.
//
// Nil callbacks are silently ignored.
func WithChangeCallback(cb func(State)) Option {
	return func(cfg *sbConfig) error {
		if cb == nil {
			return nil
		}
		cfg.changeCallbacks = append(cfg.changeCallbacks, cb)
		return nil
	}
}

// WithRestartHook sets what happens when swap is held for ten seconds.
// The default clears the score and returns to the boot screen.
//
// Nil restores the default.
func WithRestartHook(fn func()) Option {
	return func(cfg *sbConfig) error {
		cfg.restart = fn
		return nil
	}
}
