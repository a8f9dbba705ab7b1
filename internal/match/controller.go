package match

import (
	"log/slog"
	"sync"

	"github.com/jpalmerr/scoreboard/internal/score"
)

// SideState is what one side of the board currently shows.
type SideState struct {
	Team  score.Team
	Score int
}

// Snapshot is a point-in-time read of the match.
//
// Fields are read one after another without a transaction; a snapshot taken
// while another goroutine mutates may mix the two states for a moment.
// Observers are notified again after every change, so the next snapshot
// converges.
type Snapshot struct {
	Mode     Mode
	LHS      SideState
	RHS      SideState
	Limits   score.Limits
	Leader   score.Team
	GameOver bool
}

// Controller owns the score and the mode state machine and notifies
// observers of every change.
//
// The Controller never transitions on its own; callers decide when to move
// between modes (see [Supervisor]). It is safe for concurrent use: each
// mutation together with its notification sequence runs under a dispatch
// lock, so sequences from different input goroutines never interleave.
type Controller struct {
	dispatchMu sync.Mutex

	mu   sync.RWMutex
	mode Mode

	score *score.Score

	obsMu          sync.RWMutex
	modeObservers  []ModeObserver
	stateObservers []StateObserver

	logger *slog.Logger
}

// NewController creates a Controller in [Starting] mode with a fresh score.
// A nil logger falls back to [slog.Default].
func NewController(logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		mode:   Starting,
		score:  score.New(),
		logger: logger,
	}
}

// OnModeChange registers a mode observer. Observers are never removed.
func (c *Controller) OnModeChange(o ModeObserver) {
	if o == nil {
		return
	}
	c.obsMu.Lock()
	c.modeObservers = append(c.modeObservers, o)
	c.obsMu.Unlock()
}

// OnChange registers a state observer. Observers are never removed.
func (c *Controller) OnChange(o StateObserver) {
	if o == nil {
		return
	}
	c.obsMu.Lock()
	c.stateObservers = append(c.stateObservers, o)
	c.obsMu.Unlock()
}

// Mode returns the committed mode.
func (c *Controller) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// SetMode transitions to next and returns the previous mode.
//
// Mode observers see next while Mode still reports the previous value; the
// mode is then committed and state observers run. The full sequence fires
// even when next equals the current mode.
func (c *Controller) SetMode(next Mode) Mode {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()
	return c.setMode(next)
}

func (c *Controller) setMode(next Mode) Mode {
	prev := c.Mode()
	c.logger.Info("mode change", "from", prev.String(), "to", next.String())

	for _, o := range c.modeObserverList() {
		c.invokeSafe("mode", func() { o.OnModeChange(next) })
	}

	c.mu.Lock()
	c.mode = next
	c.mu.Unlock()

	c.notifyChange()
	return prev
}

// SetLimits replaces the game limits and forces [Running] mode, even when
// called outside [Choosing].
func (c *Controller) SetLimits(limit, maxLimit int) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.logger.Info("set limits", "limit", limit, "max_limit", maxLimit)
	c.score.SetLimits(limit, maxLimit)
	c.setMode(Running)
}

// Swap exchanges the sides of the two teams.
func (c *Controller) Swap() {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.logger.Info("swap")
	c.score.Swap()
	c.notifyChange()
}

// Reset zeroes the score and restores the default side mapping.
func (c *Controller) Reset() {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.logger.Info("reset")
	c.score.Reset()
	c.notifyChange()
}

// IncrementScore applies delta to the team on side. Rule violations are
// silently ignored; observers are notified either way.
func (c *Controller) IncrementScore(side score.Side, delta int) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	applied := c.score.Increment(side, delta)
	c.logger.Info("increment score", "side", side.String(), "delta", delta, "applied", applied)
	c.notifyChange()
}

// Score returns the total shown on side.
func (c *Controller) Score(side score.Side) int { return c.score.Get(side) }

// SideOf returns the side team is displayed on.
func (c *Controller) SideOf(team score.Team) score.Side { return c.score.SideOf(team) }

// TeamOf returns the team displayed on side.
func (c *Controller) TeamOf(side score.Side) score.Team { return c.score.TeamOf(side) }

// Leader returns the leading team (Blue on a tie).
func (c *Controller) Leader() score.Team { return c.score.Leader() }

// IsGameOver reports whether a team has won.
func (c *Controller) IsGameOver() bool { return c.score.GameOver() }

// Limits returns the current game limits.
func (c *Controller) Limits() score.Limits { return c.score.Limits() }

// Snapshot reads the current mode and both sides.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Mode:     c.Mode(),
		LHS:      c.side(score.LHS),
		RHS:      c.side(score.RHS),
		Limits:   c.score.Limits(),
		Leader:   c.score.Leader(),
		GameOver: c.score.GameOver(),
	}
}

func (c *Controller) side(side score.Side) SideState {
	return SideState{Team: c.score.TeamOf(side), Score: c.score.Get(side)}
}

func (c *Controller) notifyChange() {
	observers := c.stateObserverList()
	c.logger.Debug("change notify", "observers", len(observers))
	for _, o := range observers {
		c.invokeSafe("state", o.OnStateChange)
	}
}

func (c *Controller) modeObserverList() []ModeObserver {
	c.obsMu.RLock()
	defer c.obsMu.RUnlock()
	return c.modeObservers[:len(c.modeObservers):len(c.modeObservers)]
}

func (c *Controller) stateObserverList() []StateObserver {
	c.obsMu.RLock()
	defer c.obsMu.RUnlock()
	return c.stateObservers[:len(c.stateObservers):len(c.stateObservers)]
}

// invokeSafe calls an observer with panic recovery.
// Panics are logged but do not propagate to the mutating caller.
func (c *Controller) invokeSafe(kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("observer panicked", "kind", kind, "panic", r)
		}
	}()
	fn()
}
