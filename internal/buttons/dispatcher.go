package buttons

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jpalmerr/scoreboard/input"
	"github.com/jpalmerr/scoreboard/internal/match"
	"github.com/jpalmerr/scoreboard/internal/score"
)

// Hold thresholds.
const (
	DefaultHoldThreshold    = time.Second
	DefaultRestartThreshold = 10 * time.Second
)

// Controller is the set of match actions buttons can trigger.
type Controller interface {
	SetLimits(limit, maxLimit int)
	Swap()
	Reset()
	IncrementScore(side score.Side, delta int)
}

// Config configures a Dispatcher.
type Config struct {
	// Presets are the limits offered by the left and right buttons while
	// choosing.
	Presets [2]score.Limits

	HoldThreshold    time.Duration
	RestartThreshold time.Duration

	// Restart is called when swap is held past RestartThreshold in any
	// mode. Nil disables it.
	Restart func()
}

// DefaultConfig returns the 15/20 and 21/30 presets with 1s and 10s holds.
func DefaultConfig() Config {
	return Config{
		Presets: [2]score.Limits{
			{Limit: 15, MaxLimit: 20},
			{Limit: 21, MaxLimit: 30},
		},
		HoldThreshold:    DefaultHoldThreshold,
		RestartThreshold: DefaultRestartThreshold,
	}
}

type gesture int

const (
	press gesture = iota
	hold
)

type binding struct {
	button  input.Button
	gesture gesture
}

// Dispatcher turns events into controller calls according to the bindings
// of the current mode.
type Dispatcher struct {
	ctrl   Controller
	cfg    Config
	logger *slog.Logger

	mu       sync.RWMutex
	bindings map[binding]func()
}

// NewDispatcher creates a Dispatcher with nothing bound. Register it with
// the controller's OnModeChange so the table follows the mode.
func NewDispatcher(ctrl Controller, cfg Config, logger *slog.Logger) *Dispatcher {
	if cfg.HoldThreshold <= 0 {
		cfg.HoldThreshold = DefaultHoldThreshold
	}
	if cfg.RestartThreshold <= 0 {
		cfg.RestartThreshold = DefaultRestartThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		ctrl:     ctrl,
		cfg:      cfg,
		logger:   logger,
		bindings: map[binding]func(){},
	}
}

// OnModeChange implements match.ModeObserver.
func (d *Dispatcher) OnModeChange(next match.Mode) {
	table := d.table(next)

	d.mu.Lock()
	d.bindings = table
	d.mu.Unlock()

	d.logger.Debug("buttons rebound", "mode", next.String(), "bindings", len(table))
}

func (d *Dispatcher) table(mode match.Mode) map[binding]func() {
	t := map[binding]func(){}

	switch mode {
	case match.Choosing:
		left, right := d.cfg.Presets[0], d.cfg.Presets[1]
		t[binding{input.Left, press}] = func() { d.ctrl.SetLimits(left.Limit, left.MaxLimit) }
		t[binding{input.Right, press}] = func() { d.ctrl.SetLimits(right.Limit, right.MaxLimit) }

	case match.Running, match.GameOver:
		t[binding{input.Swap, press}] = d.ctrl.Swap
		t[binding{input.Swap, hold}] = d.ctrl.Reset
		t[binding{input.Left, press}] = func() { d.ctrl.IncrementScore(score.LHS, 1) }
		t[binding{input.Left, hold}] = func() { d.ctrl.IncrementScore(score.LHS, -1) }
		t[binding{input.Right, press}] = func() { d.ctrl.IncrementScore(score.RHS, 1) }
		t[binding{input.Right, hold}] = func() { d.ctrl.IncrementScore(score.RHS, -1) }
	}
	return t
}

// Handle dispatches one event. The bound action runs on the caller's
// goroutine without the dispatcher lock held, since it may change the mode
// and rebind.
func (d *Dispatcher) Handle(e input.Event) {
	if e.Button == input.Swap && e.Held >= d.cfg.RestartThreshold && d.cfg.Restart != nil {
		d.logger.Warn("restart requested from buttons", "held", e.Held)
		d.cfg.Restart()
		return
	}

	g := press
	if e.Held >= d.cfg.HoldThreshold {
		g = hold
	}

	d.mu.RLock()
	action := d.bindings[binding{e.Button, g}]
	d.mu.RUnlock()

	if action == nil {
		d.logger.Debug("unbound button", "button", e.Button.String(), "held", e.Held)
		return
	}
	d.logger.Debug("button", "button", e.Button.String(), "held", e.Held)
	action()
}

// Run dispatches events from src until its channel closes or ctx is done.
func (d *Dispatcher) Run(ctx context.Context, src input.Source) {
	events := src.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				d.logger.Info("button source closed")
				return
			}
			d.Handle(e)
		}
	}
}
