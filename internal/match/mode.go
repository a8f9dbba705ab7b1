package match

// Mode is the coarse phase of a match.
type Mode int

const (
	// Starting is the boot phase; the display shows the splash and messages.
	Starting Mode = iota

	// Choosing waits for a game limit to be picked.
	Choosing

	// Running is normal play.
	Running

	// GameOver is entered once a team has won; corrections may return to Running.
	GameOver
)

// String returns the mode name used on the wire.
func (m Mode) String() string {
	switch m {
	case Starting:
		return "STARTING"
	case Choosing:
		return "CHOOSING"
	case Running:
		return "RUNNING"
	case GameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// ModeObserver is notified of every mode transition.
//
// OnModeChange receives the incoming mode. It is called before the mode is
// committed, so [Controller.Mode] still returns the previous mode.
type ModeObserver interface {
	OnModeChange(next Mode)
}

// StateObserver is notified after every externally visible change.
type StateObserver interface {
	OnStateChange()
}

// ModeObserverFunc adapts a function to [ModeObserver].
type ModeObserverFunc func(next Mode)

// OnModeChange calls f(next).
func (f ModeObserverFunc) OnModeChange(next Mode) { f(next) }

// StateObserverFunc adapts a function to [StateObserver].
type StateObserverFunc func()

// OnStateChange calls f().
func (f StateObserverFunc) OnStateChange() { f() }
