package render

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jpalmerr/scoreboard/display"
	"github.com/jpalmerr/scoreboard/internal/match"
	"github.com/jpalmerr/scoreboard/internal/score"
)

const (
	startingBanner = "Initializing"
	choosingPrompt = "Choose Game Limit"

	// the panel's red is brighter than its blue
	blueBoost = 60

	// one leader fade cycle
	fadePeriod = 3 * time.Second

	splashFrame = 10 * time.Millisecond
)

// StateReader is what a redraw pass reads. It is satisfied by
// *match.Controller.
type StateReader interface {
	Mode() match.Mode
	Score(side score.Side) int
	TeamOf(side score.Side) score.Team
	SideOf(team score.Team) score.Side
	Leader() score.Team
}

// Config holds the Scheduler's tunables.
type Config struct {
	// QueueSize bounds the command queue.
	QueueSize int

	// EnqueueTimeout is how long a producer waits on a full queue before
	// the command is dropped.
	EnqueueTimeout time.Duration

	// IdleTimeout is how long the drain loop waits for a command before
	// running an idle animation pass.
	IdleTimeout time.Duration

	// BlinkInterval is the game-over leader box blink period.
	BlinkInterval time.Duration

	// GameOverScrollInterval is how often the game-over marquee repeats.
	GameOverScrollInterval time.Duration

	// GameOverText is the game-over marquee text.
	GameOverText string

	// Choices are the two limits offered while choosing, left then right.
	Choices [2]score.Limits

	// Clock drives every timer. Nil uses the real clock.
	Clock clockwork.Clock
}

// DefaultConfig returns the configuration of the reference panel.
func DefaultConfig() Config {
	return Config{
		QueueSize:              4,
		EnqueueTimeout:         100 * time.Millisecond,
		IdleTimeout:            100 * time.Millisecond,
		BlinkInterval:          150 * time.Millisecond,
		GameOverScrollInterval: 60 * time.Second,
		GameOverText:           "Game Over",
		Choices: [2]score.Limits{
			{Limit: 15, MaxLimit: 20},
			{Limit: 21, MaxLimit: 30},
		},
	}
}

// Stats counts queue and render activity.
type Stats struct {
	Accepted   uint64 `json:"accepted"`
	Dropped    uint64 `json:"dropped"`
	Dispatched uint64 `json:"dispatched"`
	Redraws    uint64 `json:"redraws"`
	IdlePasses uint64 `json:"idle_passes"`
}

// Scheduler serialises all display access onto one goroutine.
//
// Producers submit commands with [Scheduler.Enqueue] from any goroutine.
// The drain goroutine applies each command, then coalesces whatever else is
// already queued, then performs one full redraw. When no command arrives
// within the idle timeout it runs a mode-dependent idle animation instead.
//
// All lifecycle methods (Start, Stop) are safe for concurrent use.
type Scheduler struct {
	state   StateReader
	display display.Display
	cfg     Config
	clock   clockwork.Clock
	queue   chan Command
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool

	timerMu sync.Mutex
	timers  *gameOverTimers

	// owned by the drain goroutine
	message string
	blink   bool

	// cleared by mode changes, set by the drain goroutine
	noClear atomic.Bool

	accepted   atomic.Uint64
	dropped    atomic.Uint64
	dispatched atomic.Uint64
	redraws    atomic.Uint64
	idlePasses atomic.Uint64
}

// NewScheduler creates a Scheduler. Zero fields of cfg take their
// [DefaultConfig] values.
//
// The drain goroutine is not running until [Scheduler.Start] is called;
// commands enqueued before then wait in the queue.
func NewScheduler(state StateReader, d display.Display, cfg Config, logger *slog.Logger) *Scheduler {
	def := DefaultConfig()
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.EnqueueTimeout <= 0 {
		cfg.EnqueueTimeout = def.EnqueueTimeout
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if cfg.BlinkInterval <= 0 {
		cfg.BlinkInterval = def.BlinkInterval
	}
	if cfg.GameOverScrollInterval <= 0 {
		cfg.GameOverScrollInterval = def.GameOverScrollInterval
	}
	if cfg.GameOverText == "" {
		cfg.GameOverText = def.GameOverText
	}
	if cfg.Choices == ([2]score.Limits{}) {
		cfg.Choices = def.Choices
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		state:   state,
		display: d,
		cfg:     cfg,
		clock:   cfg.Clock,
		queue:   make(chan Command, cfg.QueueSize),
		logger:  logger,
	}
}

// Splash scrolls text once across the display, twinkling in the background,
// and blocks until it has finished or ctx is done. It must be called before
// [Scheduler.Start].
func (s *Scheduler) Splash(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	s.logger.Info("splash", "text", text)
	s.display.StartScrolling(s.marquee(text, 1, 60))

	w, h := s.display.Width(), s.display.Height()
	for s.display.IsScrolling() {
		select {
		case <-ctx.Done():
			s.display.StopScrolling()
			return fmt.Errorf("splash interrupted: %w", ctx.Err())
		case <-s.clock.After(splashFrame):
		}
		v := uint8(rand.Intn(256))
		s.twinkle(0, 0, w, h, display.RGB(v, v, v), 0)
		s.display.Show()
	}
	return nil
}

// Start launches the drain goroutine.
//
// If ctx is nil, context.Background() is used as the parent context.
// Start is idempotent; subsequent calls after the first are no-ops.
// If Stop was called before Start, Start is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	runCtx := s.ctx // capture under lock to avoid race
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.run(runCtx)
	}()
}

// Stop halts the drain goroutine and the game-over timers and waits for
// them to exit. An in-flight redraw pass is allowed to finish.
//
// Stop is idempotent and safe to call multiple times. Calling Stop before
// Start is a safe no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		if s.cancel != nil {
			s.cancel()
		}
	}
	s.mu.Unlock()

	s.stopTimers()
	s.wg.Wait()
}

// Enqueue submits cmd. If the queue is full it waits up to the enqueue
// timeout, then drops the command. It reports whether cmd was queued.
func (s *Scheduler) Enqueue(cmd Command) bool {
	select {
	case s.queue <- cmd:
		s.accepted.Add(1)
		return true
	default:
	}

	timer := s.clock.NewTimer(s.cfg.EnqueueTimeout)
	defer timer.Stop()

	select {
	case s.queue <- cmd:
		s.accepted.Add(1)
		return true
	case <-timer.Chan():
		s.dropped.Add(1)
		s.logger.Debug("render queue full, dropping command", "command", cmd.String())
		return false
	}
}

// tryEnqueue submits cmd without waiting. Timer goroutines use it.
func (s *Scheduler) tryEnqueue(cmd Command) bool {
	select {
	case s.queue <- cmd:
		s.accepted.Add(1)
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// Render requests a redraw.
func (s *Scheduler) Render() bool { return s.Enqueue(Redraw{}) }

// StopScrolling requests that any running marquee be halted.
func (s *Scheduler) StopScrolling() bool { return s.Enqueue(StopScroll{}) }

// Message replaces the status message shown while starting.
func (s *Scheduler) Message(text string) bool {
	s.logger.Info("message", "text", text)
	ok := s.Enqueue(DisplayMessage{Text: text})
	if !ok {
		s.logger.Error("failed to queue message", "text", text)
	}
	return ok
}

// IsScrolling reports whether the display marquee is running.
func (s *Scheduler) IsScrolling() bool { return s.display.IsScrolling() }

// Stats returns a copy of the counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Accepted:   s.accepted.Load(),
		Dropped:    s.dropped.Load(),
		Dispatched: s.dispatched.Load(),
		Redraws:    s.redraws.Load(),
		IdlePasses: s.idlePasses.Load(),
	}
}

// OnModeChange implements match.ModeObserver.
//
// Entering GameOver arms the blink and marquee timers and queues the first
// marquee right away; entering any other mode disarms them.
func (s *Scheduler) OnModeChange(next match.Mode) {
	s.logger.Debug("display mode change", "mode", next.String())
	s.noClear.Store(false)

	s.stopTimers()
	if next == match.GameOver {
		s.startTimers()
		s.tryEnqueue(PeriodicScroll{Text: s.cfg.GameOverText})
	}
	s.Render()
}

// OnStateChange implements match.StateObserver.
func (s *Scheduler) OnStateChange() {
	s.Render()
}

// run is the drain loop.
func (s *Scheduler) run(ctx context.Context) {
	for {
		timer := s.clock.NewTimer(s.cfg.IdleTimeout)
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case cmd := <-s.queue:
			timer.Stop()
			s.apply(cmd)
			s.drainPending()
			s.redraw()

		case <-timer.Chan():
			s.idle()
		}
	}
}

// drainPending applies every command already queued so a burst costs a
// single redraw.
func (s *Scheduler) drainPending() {
	for {
		select {
		case cmd := <-s.queue:
			s.apply(cmd)
		default:
			return
		}
	}
}

func (s *Scheduler) apply(cmd Command) {
	s.dispatched.Add(1)
	s.logger.Debug("render command", "command", cmd.String())

	switch c := cmd.(type) {
	case Redraw:
	case StopScroll:
		s.display.StopScrolling()
	case BlinkTick:
		s.blink = !s.blink
	case PeriodicScroll:
		m := s.marquee(c.Text, 1, 40)
		m.OffsetLeft = 1
		s.display.StartScrolling(m)
	case DisplayMessage:
		s.message = c.Text
	}
}

// redraw renders the layout of the current mode.
func (s *Scheduler) redraw() {
	s.redraws.Add(1)
	if !s.noClear.Load() {
		s.display.FillScreen(display.Black)
	}

	switch s.state.Mode() {
	case match.Starting:
		s.drawStarting()

	case match.Choosing:
		s.drawChoices()

	case match.Running:
		s.noClear.Store(true)
		s.display.StopScrolling()
		s.drawScoreboard()

	case match.GameOver:
		s.noClear.Store(true)
		s.drawScoreboard()
		s.drawLeaderBox()
	}

	s.display.Show()
}

// idle runs the ambient animation between commands.
func (s *Scheduler) idle() {
	s.idlePasses.Add(1)

	boxW, _ := s.scoreBox()
	w, h := s.display.Width(), s.display.Height()
	midX, midW := boxW, w-2*boxW

	switch s.state.Mode() {
	case match.GameOver:
		s.drawLeaderBox()
		s.twinkle(midX, 0, midW, h, s.fadeColor(), 0)

	case match.Choosing:
		v := uint8(rand.Intn(255 - blueBoost))
		s.twinkle(0, 0, w, h, display.RGB(v, 0, 0), midW+h)
		s.twinkle(0, 0, w, h, display.RGB(0, 0, v+blueBoost), midW+h)
		s.drawChoices()

	case match.Running:
		count := s.state.Score(score.LHS) + s.state.Score(score.RHS)
		if count < 1 {
			count = 1
		}
		v := uint8(rand.Intn(256))
		s.twinkle(midX, 0, midW, h, display.RGB(v, v, v), count)

	case match.Starting:
	}

	s.display.Show()
}

func (s *Scheduler) drawStarting() {
	w, _ := display.TextBounds(display.FontSmall, startingBanner)
	s.display.DrawText(s.display.Width()/2-w/2, 0, display.FontSmall, display.White, startingBanner)

	if s.message != "" {
		mw, mh := display.TextBounds(display.FontSmall, s.message)
		x := s.display.Width()/2 - mw/2
		y := s.display.Height()/2 - mh/2
		s.display.DrawText(x, y, display.FontSmall, display.Orange, s.message)
	}
}

func (s *Scheduler) drawChoices() {
	s.drawSide(score.LHS, s.cfg.Choices[0].Limit, false)
	s.drawSide(score.RHS, s.cfg.Choices[1].Limit, false)

	if !s.display.IsScrolling() {
		s.display.StartScrolling(s.marquee(choosingPrompt, display.Forever, 60))
	}
}

func (s *Scheduler) drawScoreboard() {
	s.drawSide(score.LHS, s.state.Score(score.LHS), true)
	s.drawSide(score.RHS, s.state.Score(score.RHS), true)
}

// drawSide draws a two digit value on side, optionally on the background of
// the team currently there.
func (s *Scheduler) drawSide(side score.Side, value int, background bool) {
	boxW, boxH := s.scoreBox()
	x := 0
	if side == score.RHS {
		x = s.display.Width() - boxW
	}
	if background {
		s.display.FillRect(x, 0, boxW, boxH, teamColor(s.state.TeamOf(side)))
	}
	s.display.DrawText(x+2, s.display.Height()-3, display.FontScore, display.White, fmt.Sprintf("%02d", value))
}

// drawLeaderBox outlines the leader's score box, green or black depending
// on the blink state.
func (s *Scheduler) drawLeaderBox() {
	boxW, boxH := s.scoreBox()
	x := 0
	if s.state.SideOf(s.state.Leader()) == score.RHS {
		x = s.display.Width() - boxW
	}

	c := display.Black
	if s.blink {
		c = display.Green
	}
	s.display.DrawRect(x, 0, boxW, boxH, c)
	s.display.DrawRect(x+1, 1, boxW-2, boxH-2, c)
}

// scoreBox is the size of one side's score area.
func (s *Scheduler) scoreBox() (width, height int) {
	w, _ := display.TextBounds(display.FontScore, "00")
	return w + 4, s.display.Height()
}

// fadeColor fades the leader's colour from full to dark once per fade period.
func (s *Scheduler) fadeColor() display.Color {
	elapsed := s.clock.Now().UnixNano() % int64(fadePeriod)
	frac := float64(elapsed) / float64(fadePeriod)
	v := uint8(255 - 255*frac)
	if s.state.Leader() == score.Red {
		return display.RGB(v, 0, 0)
	}
	return display.RGB(0, 0, v)
}

// twinkle turns count random pixels on in c and count random pixels off.
// A zero count uses the mean of width and height.
func (s *Scheduler) twinkle(x, y, width, height int, c display.Color, count int) {
	if width <= 0 || height <= 0 {
		return
	}
	if count == 0 {
		count = (width + height) / 2
	}
	for i := 0; i < count; i++ {
		s.display.SetPixel(x+rand.Intn(width), y+rand.Intn(height), c)
	}
	for i := 0; i < count; i++ {
		s.display.SetPixel(x+rand.Intn(width), y+rand.Intn(height), display.Black)
	}
}

// marquee is a green vertically centred scroll.
func (s *Scheduler) marquee(text string, loops, speed int) display.Scroll {
	_, fh := display.FontScroll.Cell()
	return display.Scroll{
		Text:      text,
		Color:     display.Green,
		Font:      display.FontScroll,
		Loops:     loops,
		Speed:     speed,
		OffsetTop: s.display.Height()/2 - fh/2,
	}
}

func teamColor(t score.Team) display.Color {
	if t == score.Red {
		return display.Red
	}
	return display.Blue
}
