package scoreboard

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jpalmerr/scoreboard/dashboard"
	"github.com/jpalmerr/scoreboard/display"
	"github.com/jpalmerr/scoreboard/input"
	"github.com/jpalmerr/scoreboard/internal/buttons"
	"github.com/jpalmerr/scoreboard/internal/match"
	"github.com/jpalmerr/scoreboard/internal/remote"
	"github.com/jpalmerr/scoreboard/internal/render"
	"github.com/jpalmerr/scoreboard/internal/score"
	"github.com/jpalmerr/scoreboard/internal/server"
	"github.com/jpalmerr/scoreboard/internal/store"
)

const (
	defaultPort   = 8080
	defaultSplash = "Scoreboard 1.0"
)

// Scoreboard is the device: it owns the match, drives the panel, reads the
// buttons and, when the network is up, serves remote viewers.
//
// It is created using [New] with functional options and run with
// [Scoreboard.Start]:
//
//	sb, err := scoreboard.New(
//	    scoreboard.WithNetwork(true),
//	    scoreboard.WithSettingsStore(store),
//	)
//	if err != nil {
//	    slog.Error("failed to create scoreboard", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	sb.Start(ctx) // blocks until context cancelled
type Scoreboard struct {
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

	mu   sync.RWMutex
	ctrl *match.Controller
	srv  *server.Server
}

// New creates a [Scoreboard] with the given options.
//
// Defaults:
//   - Port: 8080, network off unless the saved settings enable it
//   - Display: in-memory 64x32 matrix
//   - Limit presets: 15/20 and 21/30
//   - Max clients: 8
//
// Returns an error if any option is invalid.
func New(opts ...Option) (*Scoreboard, error) {
	cfg := &sbConfig{
		port:       defaultPort,
		splash:     defaultSplash,
		maxClients: remote.DefaultMaxPeers,
		presets: [2]Limits{
			{Limit: 15, MaxLimit: 20},
			{Limit: 21, MaxLimit: 30},
		},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := cfg.clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	disp := cfg.display
	if disp == nil {
		disp = display.NewMatrix(display.DefaultWidth, display.DefaultHeight, clock)
	}

	return &Scoreboard{
		title:                  cfg.title,
		port:                   cfg.port,
		network:                cfg.network,
		splash:                 cfg.splash,
		maxClients:             cfg.maxClients,
		logger:                 logger,
		settings:               cfg.settings,
		display:                disp,
		input:                  cfg.input,
		clock:                  clock,
		presets:                cfg.presets,
		blinkInterval:          cfg.blinkInterval,
		gameOverScrollInterval: cfg.gameOverScrollInterval,
		changeCallbacks:        cfg.changeCallbacks,
		restart:                cfg.restart,
	}, nil
}

// Start boots the device and runs it until ctx is cancelled.
//
// The boot sequence is:
//
//   - scroll the splash across the panel (blocking)
//   - enter STARTING and show "Config" while the settings load
//   - start the remote control server if requested by [WithNetwork] or by
//     the saved settings
//   - hand over to the supervisor, which moves on to CHOOSING
//
// Settings that fail to load are not fatal; the device runs with defaults.
// Returns nil on graceful shutdown. Returns an error if the HTTP server
// fails to start.
func (sb *Scoreboard) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}
	sb.logger.Info("scoreboard starting", "title", sb.title, "network", sb.network)

	ctrl := match.NewController(sb.logger)
	sched := render.NewScheduler(ctrl, sb.display, render.Config{
		BlinkInterval:          sb.blinkInterval,
		GameOverScrollInterval: sb.gameOverScrollInterval,
		Choices:                [2]score.Limits{sb.presets[0].internal(), sb.presets[1].internal()},
		Clock:                  sb.clock,
	}, sb.logger)

	if err := sched.Splash(ctx, sb.splash); err != nil {
		sb.logger.Info("scoreboard stopped during splash")
		return nil
	}

	restart := sb.restart
	if restart == nil {
		restart = func() {
			ctrl.Reset()
			ctrl.SetMode(match.Starting)
		}
	}
	dispatcher := buttons.NewDispatcher(ctrl, buttons.Config{
		Presets: [2]score.Limits{sb.presets[0].internal(), sb.presets[1].internal()},
		Restart: restart,
	}, sb.logger)

	// buttons rebind before the panel redraws for a new mode
	ctrl.OnModeChange(dispatcher)
	ctrl.OnModeChange(sched)

	runCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	cleanup := func() {
		cancel()
		wg.Wait()
		sched.Stop()
		sb.setRunning(nil, nil)
	}

	sched.Start(runCtx)
	sb.setRunning(ctrl, nil)
	ctrl.SetMode(match.Starting)

	sched.Message("Config")
	settings, loaded := store.LoadOrDefault(sb.settings, sb.logger)

	if sb.network || settings.StartWiFi {
		if !loaded {
			sb.logger.Warn("no saved settings, remote admin is disabled until an enable password is set")
		}
		sched.Message("WebApp")

		password := settings.EnablePassword
		hub := remote.NewHub(ctrl, func() string { return password }, sb.maxClients, sb.logger)
		ctrl.OnChange(hub)

		var frames server.FrameSource
		if fs, ok := sb.display.(server.FrameSource); ok {
			frames = fs
		}
		srv := server.NewServer(hub, frames, sb.port, dashboard.Assets, sb.title, sb.logger)
		if err := srv.Start(runCtx); err != nil {
			cleanup()
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		sb.setRunning(ctrl, srv)
	}

	ctrl.OnChange(sched)

	if len(sb.changeCallbacks) > 0 {
		ctrl.OnChange(match.StateObserverFunc(func() {
			st := stateFromSnapshot(ctrl.Snapshot())
			for _, cb := range sb.changeCallbacks {
				invokeCallbackSafe(cb, st, sb.logger)
			}
		}))
	}

	supervisor := match.NewSupervisor(ctrl, sched, sb.clock, match.DefaultSupervisorInterval, sb.logger)
	wg.Add(1)
	go func() {
		defer wg.Done()
		supervisor.Run(runCtx)
	}()

	if sb.input != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dispatcher.Run(runCtx, sb.input)
		}()
	}

	<-ctx.Done()
	cleanup()
	sb.logger.Info("scoreboard stopped")
	return nil
}

// State returns the current match state. ok is false when the device is
// not running.
func (sb *Scoreboard) State() (st State, ok bool) {
	sb.mu.RLock()
	ctrl := sb.ctrl
	sb.mu.RUnlock()

	if ctrl == nil {
		return State{}, false
	}
	return stateFromSnapshot(ctrl.Snapshot()), true
}

// Addr returns the address the remote control server is listening on, or
// nil when it is not running.
func (sb *Scoreboard) Addr() net.Addr {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	if sb.srv == nil {
		return nil
	}
	return sb.srv.Addr()
}

// Port returns the configured HTTP port.
func (sb *Scoreboard) Port() int {
	return sb.port
}

// Title returns the configured page title.
func (sb *Scoreboard) Title() string {
	return sb.title
}

// Display returns the panel the device draws on.
func (sb *Scoreboard) Display() display.Display {
	return sb.display
}

func (sb *Scoreboard) setRunning(ctrl *match.Controller, srv *server.Server) {
	sb.mu.Lock()
	sb.ctrl = ctrl
	sb.srv = srv
	sb.mu.Unlock()
}

// invokeCallbackSafe calls a change callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(State), st State, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("change callback panicked",
				"panic", r,
				"mode", st.Mode.String(),
			)
		}
	}()
	cb(st)
}
