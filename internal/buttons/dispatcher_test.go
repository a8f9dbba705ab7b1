package buttons

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jpalmerr/scoreboard/input"
	"github.com/jpalmerr/scoreboard/internal/match"
	"github.com/jpalmerr/scoreboard/internal/score"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDispatcher(t *testing.T, mode match.Mode) (*Dispatcher, *match.Controller, *atomic.Int32) {
	t.Helper()
	var restarts atomic.Int32
	ctrl := match.NewController(testLogger())
	cfg := DefaultConfig()
	cfg.Restart = func() { restarts.Add(1) }
	d := NewDispatcher(ctrl, cfg, testLogger())
	ctrl.OnModeChange(d)
	ctrl.SetMode(mode)
	return d, ctrl, &restarts
}

func tap(b input.Button) input.Event { return input.Event{Button: b} }

func held(b input.Button, d time.Duration) input.Event {
	return input.Event{Button: b, Held: d}
}

func TestDispatcher_StartingIgnoresEverything(t *testing.T) {
	d, ctrl, _ := newTestDispatcher(t, match.Starting)

	for _, e := range []input.Event{tap(input.Left), tap(input.Right), tap(input.Swap), held(input.Swap, time.Second)} {
		d.Handle(e)
	}

	if ctrl.Score(score.LHS) != 0 || ctrl.Score(score.RHS) != 0 {
		t.Error("score changed while starting")
	}
	if ctrl.Mode() != match.Starting {
		t.Errorf("Mode() = %v, want STARTING", ctrl.Mode())
	}
}

func TestDispatcher_ChoosingPresets(t *testing.T) {
	tests := []struct {
		name   string
		button input.Button
		want   score.Limits
	}{
		{name: "left", button: input.Left, want: score.Limits{Limit: 15, MaxLimit: 20}},
		{name: "right", button: input.Right, want: score.Limits{Limit: 21, MaxLimit: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ctrl, _ := newTestDispatcher(t, match.Choosing)

			d.Handle(tap(tt.button))

			if ctrl.Limits() != tt.want {
				t.Errorf("Limits() = %+v, want %+v", ctrl.Limits(), tt.want)
			}
			if ctrl.Mode() != match.Running {
				t.Errorf("Mode() = %v, want RUNNING", ctrl.Mode())
			}
		})
	}
}

func TestDispatcher_ChoosingSwapUnbound(t *testing.T) {
	d, ctrl, _ := newTestDispatcher(t, match.Choosing)

	d.Handle(tap(input.Swap))

	if ctrl.TeamOf(score.LHS) != score.Red {
		t.Error("swap applied while choosing")
	}
	if ctrl.Mode() != match.Choosing {
		t.Errorf("Mode() = %v, want CHOOSING", ctrl.Mode())
	}
}

func TestDispatcher_Running(t *testing.T) {
	d, ctrl, _ := newTestDispatcher(t, match.Running)

	d.Handle(tap(input.Left))
	d.Handle(tap(input.Left))
	d.Handle(tap(input.Right))
	if ctrl.Score(score.LHS) != 2 || ctrl.Score(score.RHS) != 1 {
		t.Fatalf("scores = %d/%d, want 2/1", ctrl.Score(score.LHS), ctrl.Score(score.RHS))
	}

	d.Handle(held(input.Left, 1500*time.Millisecond))
	if ctrl.Score(score.LHS) != 1 {
		t.Errorf("Score(LHS) = %d after hold, want 1", ctrl.Score(score.LHS))
	}

	d.Handle(held(input.Right, time.Second))
	if ctrl.Score(score.RHS) != 0 {
		t.Errorf("Score(RHS) = %d after hold, want 0", ctrl.Score(score.RHS))
	}

	d.Handle(tap(input.Swap))
	if ctrl.TeamOf(score.LHS) != score.Blue {
		t.Error("swap press did not swap")
	}

	d.Handle(held(input.Swap, 2*time.Second))
	if ctrl.TeamOf(score.LHS) != score.Red || ctrl.Score(score.LHS) != 0 {
		t.Error("swap hold did not reset")
	}
}

func TestDispatcher_GameOverCorrection(t *testing.T) {
	d, ctrl, _ := newTestDispatcher(t, match.Running)
	ctrl.SetLimits(3, 5)
	for i := 0; i < 3; i++ {
		d.Handle(tap(input.Left))
	}
	ctrl.SetMode(match.GameOver)

	// further points are refused, the leader may be corrected
	d.Handle(tap(input.Left))
	if ctrl.Score(score.LHS) != 3 {
		t.Errorf("Score(LHS) = %d, want 3", ctrl.Score(score.LHS))
	}
	d.Handle(held(input.Left, time.Second))
	if ctrl.Score(score.LHS) != 2 {
		t.Errorf("Score(LHS) = %d, want 2", ctrl.Score(score.LHS))
	}
}

func TestDispatcher_Restart(t *testing.T) {
	modes := []match.Mode{match.Starting, match.Choosing, match.Running, match.GameOver}

	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			d, ctrl, restarts := newTestDispatcher(t, mode)

			d.Handle(held(input.Swap, 10*time.Second))

			if restarts.Load() != 1 {
				t.Errorf("restarts = %d, want 1", restarts.Load())
			}
			if ctrl.TeamOf(score.LHS) != score.Red {
				t.Error("restart hold also triggered swap")
			}
		})
	}
}

func TestDispatcher_RestartNil(t *testing.T) {
	ctrl := match.NewController(testLogger())
	d := NewDispatcher(ctrl, DefaultConfig(), testLogger())
	ctrl.OnModeChange(d)
	ctrl.SetMode(match.Running)
	ctrl.IncrementScore(score.LHS, 1)

	// without a restart hook a long hold is an ordinary hold
	d.Handle(held(input.Swap, 10*time.Second))

	if ctrl.Score(score.LHS) != 0 {
		t.Errorf("Score(LHS) = %d, want 0 after reset", ctrl.Score(score.LHS))
	}
}

func TestDispatcher_Run(t *testing.T) {
	d, ctrl, _ := newTestDispatcher(t, match.Running)
	src := input.NewChanSource(4)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		d.Run(ctx, src)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		if err := src.Send(ctx, tap(input.Right)); err != nil {
			t.Fatal(err)
		}
	}
	src.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after source closed")
	}

	if ctrl.Score(score.RHS) != 3 {
		t.Errorf("Score(RHS) = %d, want 3", ctrl.Score(score.RHS))
	}
}

func TestDispatcher_RunCancelled(t *testing.T) {
	d, _, _ := newTestDispatcher(t, match.Running)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		d.Run(ctx, input.NewChanSource(0))
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
