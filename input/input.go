// Package input describes physical button events and their sources.
//
// The device has three buttons: one per side and a swap button in the
// middle. A source reports each release together with how long the button
// was held; interpreting the duration is left to the consumer.
package input

import (
	"context"
	"time"
)

// Button identifies a physical button.
type Button int

const (
	Left Button = iota
	Right
	Swap
)

// String returns the button name used in logs.
func (b Button) String() string {
	switch b {
	case Left:
		return "left"
	case Right:
		return "right"
	case Swap:
		return "swap"
	default:
		return "unknown"
	}
}

// Event is one completed press.
type Event struct {
	Button Button
	// Held is how long the button was down. Zero for a short press.
	Held time.Duration
}

// Source delivers button events.
type Source interface {
	// Events returns the channel events arrive on. It is closed when the
	// source is exhausted.
	Events() <-chan Event
}

// ChanSource is a Source fed by the caller.
type ChanSource struct {
	ch chan Event
}

// NewChanSource returns a ChanSource with the given buffer size.
func NewChanSource(buffer int) *ChanSource {
	return &ChanSource{ch: make(chan Event, buffer)}
}

// Events implements Source.
func (c *ChanSource) Events() <-chan Event { return c.ch }

// Send delivers e, blocking until it is accepted or ctx is done.
func (c *ChanSource) Send(ctx context.Context, e Event) error {
	select {
	case c.ch <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close ends the source. Send must not be called afterwards.
func (c *ChanSource) Close() { close(c.ch) }
