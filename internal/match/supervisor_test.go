package match

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jpalmerr/scoreboard/internal/score"
)

type fakeScroller struct {
	scrolling atomic.Bool
}

func (f *fakeScroller) IsScrolling() bool { return f.scrolling.Load() }

func TestSupervisor_StartingWaitsForSplash(t *testing.T) {
	c := NewController(testLogger())
	display := &fakeScroller{}
	display.scrolling.Store(true)
	s := NewSupervisor(c, display, clockwork.NewFakeClock(), 0, testLogger())

	if s.Step() {
		t.Error("Step() changed mode while splash is scrolling")
	}
	if c.Mode() != Starting {
		t.Fatalf("Mode() = %v, want STARTING", c.Mode())
	}

	display.scrolling.Store(false)
	if !s.Step() {
		t.Error("Step() = false after splash finished")
	}
	if c.Mode() != Choosing {
		t.Errorf("Mode() = %v, want CHOOSING", c.Mode())
	}

	// choosing is left by SetLimits, never by the supervisor
	if s.Step() {
		t.Error("Step() changed mode while choosing")
	}
}

func TestSupervisor_GameOverCycle(t *testing.T) {
	c := NewController(testLogger())
	c.SetLimits(3, 5)
	s := NewSupervisor(c, nil, clockwork.NewFakeClock(), 0, testLogger())

	for i := 0; i < 3; i++ {
		c.IncrementScore(score.LHS, 1)
	}
	if !s.Step() || c.Mode() != GameOver {
		t.Fatalf("Mode() = %v after 3/0, want GAME_OVER", c.Mode())
	}
	if s.Step() {
		t.Error("Step() changed mode while game is still over")
	}

	// winner correction undoes the win
	c.IncrementScore(score.LHS, -1)
	if !s.Step() || c.Mode() != Running {
		t.Errorf("Mode() = %v after correction, want RUNNING", c.Mode())
	}
}

func TestSupervisor_Run(t *testing.T) {
	c := NewController(testLogger())
	clock := clockwork.NewFakeClock()
	s := NewSupervisor(c, &fakeScroller{}, clock, 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	if err := clock.BlockUntilContext(waitCtx, 1); err != nil {
		t.Fatalf("ticker never created: %v", err)
	}
	clock.Advance(10 * time.Millisecond)

	deadline := time.After(time.Second)
	for c.Mode() != Choosing {
		select {
		case <-deadline:
			t.Fatalf("Mode() = %v, want CHOOSING", c.Mode())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
