package scoreboard

import (
	"github.com/jpalmerr/scoreboard/internal/match"
	"github.com/jpalmerr/scoreboard/internal/score"
)

// Mode is the device's top-level state.
type Mode string

const (
	// ModeStarting is shown while the device boots.
	ModeStarting Mode = "STARTING"

	// ModeChoosing waits for a game limit to be picked.
	ModeChoosing Mode = "CHOOSING"

	// ModeRunning is a game in progress.
	ModeRunning Mode = "RUNNING"

	// ModeGameOver is shown once a team has won.
	ModeGameOver Mode = "GAME_OVER"
)

// String returns the mode name.
func (m Mode) String() string { return string(m) }

// SideState is what one side of the board shows.
type SideState struct {
	// Team is "red" or "blue".
	Team string

	// Score is the team's total.
	Score int
}

// Limits are the game-ending thresholds. A team wins once it has at least
// Limit points and leads by two, or reaches MaxLimit.
type Limits struct {
	Limit    int
	MaxLimit int
}

// State is a point-in-time view of the match handed to change callbacks.
//
// State is a value; it shares nothing with the running device.
type State struct {
	Mode     Mode
	LHS      SideState
	RHS      SideState
	Limits   Limits
	Leader   string
	GameOver bool
}

func stateFromSnapshot(snap match.Snapshot) State {
	return State{
		Mode:     Mode(snap.Mode.String()),
		LHS:      sideState(snap.LHS),
		RHS:      sideState(snap.RHS),
		Limits:   Limits(snap.Limits),
		Leader:   snap.Leader.Color(),
		GameOver: snap.GameOver,
	}
}

func sideState(s match.SideState) SideState {
	return SideState{Team: s.Team.Color(), Score: s.Score}
}

func (l Limits) internal() score.Limits {
	return score.Limits{Limit: l.Limit, MaxLimit: l.MaxLimit}
}
