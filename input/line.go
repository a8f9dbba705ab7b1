package input

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"time"
)

// Durations reported by LineSource for its hold keys.
const (
	HoldDuration    = time.Second
	RestartDuration = 10 * time.Second
)

// LineSource turns keystrokes from a text stream into events, for running
// the device headless:
//
//	l r s   press left, right, swap
//	L R S   hold left, right, swap for HoldDuration
//	!       hold swap for RestartDuration
//
// Whitespace is skipped; any other character is logged and ignored.
type LineSource struct {
	r      io.Reader
	ch     chan Event
	logger *slog.Logger
}

// NewLineSource creates a LineSource over r. Call Run to start reading.
func NewLineSource(r io.Reader, logger *slog.Logger) *LineSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &LineSource{
		r:      r,
		ch:     make(chan Event, 8),
		logger: logger,
	}
}

// Events implements Source.
func (l *LineSource) Events() <-chan Event { return l.ch }

// Run reads until EOF, a read error or ctx is done, then closes the events
// channel.
func (l *LineSource) Run(ctx context.Context) error {
	defer close(l.ch)

	br := bufio.NewReader(l.r)
	for {
		c, _, err := br.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		e, ok := parseKey(c)
		if !ok {
			if c != ' ' && c != '\n' && c != '\r' && c != '\t' {
				l.logger.Debug("ignoring key", "key", string(c))
			}
			continue
		}

		select {
		case l.ch <- e:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func parseKey(c rune) (Event, bool) {
	switch c {
	case 'l':
		return Event{Button: Left}, true
	case 'r':
		return Event{Button: Right}, true
	case 's':
		return Event{Button: Swap}, true
	case 'L':
		return Event{Button: Left, Held: HoldDuration}, true
	case 'R':
		return Event{Button: Right, Held: HoldDuration}, true
	case 'S':
		return Event{Button: Swap, Held: HoldDuration}, true
	case '!':
		return Event{Button: Swap, Held: RestartDuration}, true
	}
	return Event{}, false
}
