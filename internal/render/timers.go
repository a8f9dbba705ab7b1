package render

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// gameOverTimers feed BlinkTick and PeriodicScroll into the queue while the
// match is over. Their sends never wait: a tick that finds the queue full is
// lost, and the next one will come.
type gameOverTimers struct {
	done chan struct{}
	wg   sync.WaitGroup
}

func (s *Scheduler) startTimers() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.timers != nil {
		return
	}

	t := &gameOverTimers{done: make(chan struct{})}
	t.every(s.clock, s.cfg.BlinkInterval, func() { s.tryEnqueue(BlinkTick{}) })
	t.every(s.clock, s.cfg.GameOverScrollInterval, func() {
		s.tryEnqueue(PeriodicScroll{Text: s.cfg.GameOverText})
	})
	s.timers = t
}

func (s *Scheduler) stopTimers() {
	s.timerMu.Lock()
	t := s.timers
	s.timers = nil
	s.timerMu.Unlock()

	if t == nil {
		return
	}
	close(t.done)
	t.wg.Wait()
}

// timersRunning reports whether the game-over timers are armed.
func (s *Scheduler) timersRunning() bool {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	return s.timers != nil
}

func (t *gameOverTimers) every(clock clockwork.Clock, d time.Duration, fn func()) {
	ticker := clock.NewTicker(d)
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.Chan():
				fn()
			}
		}
	}()
}
