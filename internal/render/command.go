package render

// Command is a unit of work for the render goroutine.
//
// The set of commands is closed: [Redraw], [StopScroll], [BlinkTick],
// [PeriodicScroll] and [DisplayMessage].
type Command interface {
	command()
	String() string
}

// Redraw requests a full redraw pass. Pending redraws coalesce into one.
type Redraw struct{}

// StopScroll halts any running marquee before redrawing.
type StopScroll struct{}

// BlinkTick flips the game-over leader box.
type BlinkTick struct{}

// PeriodicScroll starts the game-over marquee with Text.
type PeriodicScroll struct {
	Text string
}

// DisplayMessage replaces the status message shown while starting.
type DisplayMessage struct {
	Text string
}

func (Redraw) command()         {}
func (StopScroll) command()     {}
func (BlinkTick) command()      {}
func (PeriodicScroll) command() {}
func (DisplayMessage) command() {}

func (Redraw) String() string         { return "redraw" }
func (StopScroll) String() string     { return "stop_scroll" }
func (BlinkTick) String() string      { return "blink_tick" }
func (PeriodicScroll) String() string { return "periodic_scroll" }
func (DisplayMessage) String() string { return "display_message" }
