package match

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultSupervisorInterval is how often the supervisor checks for
// transitions.
const DefaultSupervisorInterval = 10 * time.Millisecond

// ScrollChecker reports whether the display is still scrolling text.
type ScrollChecker interface {
	IsScrolling() bool
}

// Supervisor drives the transitions the Controller never makes on its own:
//
//   - Starting to Choosing once the splash has finished scrolling
//   - Running to GameOver once a team has won
//   - GameOver back to Running when a correction undoes the win
//
// Choosing is left by [Controller.SetLimits].
type Supervisor struct {
	ctrl     *Controller
	display  ScrollChecker
	clock    clockwork.Clock
	interval time.Duration
	logger   *slog.Logger
}

// NewSupervisor creates a Supervisor. A nil clock uses the real clock and a
// non-positive interval uses [DefaultSupervisorInterval].
func NewSupervisor(ctrl *Controller, display ScrollChecker, clock clockwork.Clock, interval time.Duration, logger *slog.Logger) *Supervisor {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultSupervisorInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{
		ctrl:     ctrl,
		display:  display,
		clock:    clock,
		interval: interval,
		logger:   logger,
	}
}

// Run checks for transitions every interval until ctx is cancelled.
func (s *Supervisor) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.Step()
		}
	}
}

// Step performs a single check and reports whether it changed the mode.
func (s *Supervisor) Step() bool {
	switch s.ctrl.Mode() {
	case Starting:
		if s.display == nil || !s.display.IsScrolling() {
			s.ctrl.SetMode(Choosing)
			return true
		}
	case Running:
		if s.ctrl.IsGameOver() {
			s.logger.Info("game over", "leader", s.ctrl.Leader().String())
			s.ctrl.SetMode(GameOver)
			return true
		}
	case GameOver:
		if !s.ctrl.IsGameOver() {
			s.ctrl.SetMode(Running)
			return true
		}
	}
	return false
}
