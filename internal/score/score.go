package score

import "sync"

const (
	// DefaultLimit is the soft game-ending threshold.
	DefaultLimit = 21

	// DefaultMaxLimit is the hard cap; reaching it ends the game on any margin.
	DefaultMaxLimit = 30
)

// Team is a fixed logical identity whose total accumulates independently of
// the side it is displayed on.
type Team int

const (
	Red Team = iota
	Blue
)

// String returns the upper-case team name used in logs.
func (t Team) String() string {
	switch t {
	case Red:
		return "RED"
	case Blue:
		return "BLUE"
	default:
		return "UNKNOWN"
	}
}

// Color returns the lower-case colour name used on the wire.
func (t Team) Color() string {
	if t == Red {
		return "red"
	}
	return "blue"
}

// Side is a physical display position.
type Side int

const (
	LHS Side = iota
	RHS
)

// String returns the side name used in logs.
func (s Side) String() string {
	switch s {
	case LHS:
		return "LHS"
	case RHS:
		return "RHS"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == LHS {
		return RHS
	}
	return LHS
}

// Limits holds the two game-ending thresholds.
type Limits struct {
	Limit    int `json:"limit" yaml:"limit"`
	MaxLimit int `json:"max_limit" yaml:"max_limit"`
}

// DefaultLimits returns the 21/30 limits a fresh score starts with.
func DefaultLimits() Limits {
	return Limits{Limit: DefaultLimit, MaxLimit: DefaultMaxLimit}
}

// Score holds both team totals, the limits and the side mapping.
//
// Score is safe for concurrent use. Readers may observe a value that is
// superseded a moment later; every individual read and mutation is atomic.
type Score struct {
	mu      sync.RWMutex
	limits  Limits
	totals  [2]int
	swapped bool
}

// New returns a 0/0 score with default limits and red on the left.
func New() *Score {
	return &Score{limits: DefaultLimits()}
}

// SetLimits replaces both thresholds. Values are not validated.
func (s *Score) SetLimits(limit, maxLimit int) {
	s.mu.Lock()
	s.limits = Limits{Limit: limit, MaxLimit: maxLimit}
	s.mu.Unlock()
}

// Limits returns the current thresholds.
func (s *Score) Limits() Limits {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.limits
}

// Swap inverts the team to side mapping. Totals are untouched.
func (s *Score) Swap() {
	s.mu.Lock()
	s.swapped = !s.swapped
	s.mu.Unlock()
}

// Swapped reports whether the mapping is currently inverted.
func (s *Score) Swapped() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.swapped
}

// Reset zeroes both totals and restores the unswapped mapping.
// The limits are kept.
func (s *Score) Reset() {
	s.mu.Lock()
	s.totals = [2]int{}
	s.swapped = false
	s.mu.Unlock()
}

// SideOf returns the side the team is displayed on.
func (s *Score) SideOf(team Team) Side {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sideOf(team, s.swapped)
}

// TeamOf returns the team displayed on the side.
func (s *Score) TeamOf(side Side) Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return teamOf(side, s.swapped)
}

// Get returns the total of the team currently on side.
func (s *Score) Get(side Side) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totals[teamOf(side, s.swapped)]
}

// Total returns the raw total of a team.
func (s *Score) Total(team Team) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totals[team]
}

// Increment applies delta to the team on side, subject to the rules:
//
//  1. once the game is over, no total may go up and only the leader's side
//     may be corrected downward;
//  2. no total may go negative.
//
// It reports whether the delta was applied. A rejection is not an error.
func (s *Score) Increment(side Side, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameOver() {
		if delta > 0 || sideOf(s.leader(), s.swapped) != side {
			return false
		}
	}

	team := teamOf(side, s.swapped)
	total := s.totals[team] + delta
	if total < 0 {
		return false
	}
	s.totals[team] = total
	return true
}

// GameOver reports whether a team has won under the current limits.
func (s *Score) GameOver() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gameOver()
}

// Leader returns the team with the strictly higher total.
// Ties resolve to Blue; the tie-break is an arbitrary default, not a rule.
func (s *Score) Leader() Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leader()
}

func (s *Score) gameOver() bool {
	red, blue := s.totals[Red], s.totals[Blue]

	// nobody has reached the limit
	if red < s.limits.Limit && blue < s.limits.Limit {
		return false
	}

	// more than a one point lead wins
	if abs(red-blue) > 1 {
		return true
	}

	// first to max wins
	return red >= s.limits.MaxLimit || blue >= s.limits.MaxLimit
}

func (s *Score) leader() Team {
	if s.totals[Red] > s.totals[Blue] {
		return Red
	}
	return Blue
}

func sideOf(team Team, swapped bool) Side {
	side := LHS
	if team == Blue {
		side = RHS
	}
	if swapped {
		side = side.Opposite()
	}
	return side
}

func teamOf(side Side, swapped bool) Team {
	team := Red
	if side == RHS {
		team = Blue
	}
	if swapped {
		if team == Red {
			team = Blue
		} else {
			team = Red
		}
	}
	return team
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
