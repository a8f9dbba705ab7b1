package score

import (
	"sync"
	"testing"
)

// setTotals drives a score to the given totals through the public API,
// with red on the left. Points alternate so the game cannot end early.
func setTotals(t *testing.T, s *Score, red, blue int) {
	t.Helper()
	for s.Total(Red) < red || s.Total(Blue) < blue {
		if s.Total(Red) < red && !s.Increment(s.SideOf(Red), 1) {
			t.Fatalf("red +1 rejected at %d/%d", s.Total(Red), s.Total(Blue))
		}
		if s.Total(Blue) < blue && !s.Increment(s.SideOf(Blue), 1) {
			t.Fatalf("blue +1 rejected at %d/%d", s.Total(Red), s.Total(Blue))
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New()

	if got := s.Limits(); got != DefaultLimits() {
		t.Errorf("Limits() = %+v, want %+v", got, DefaultLimits())
	}
	if s.Get(LHS) != 0 || s.Get(RHS) != 0 {
		t.Errorf("Get() = %d/%d, want 0/0", s.Get(LHS), s.Get(RHS))
	}
	if s.Swapped() {
		t.Error("Swapped() = true, want false")
	}
	if s.GameOver() {
		t.Error("GameOver() = true on a fresh score")
	}
}

func TestSideTeamMapping(t *testing.T) {
	s := New()

	if s.SideOf(Red) != LHS || s.SideOf(Blue) != RHS {
		t.Errorf("unswapped SideOf = %v/%v, want LHS/RHS", s.SideOf(Red), s.SideOf(Blue))
	}
	if s.TeamOf(LHS) != Red || s.TeamOf(RHS) != Blue {
		t.Errorf("unswapped TeamOf = %v/%v, want RED/BLUE", s.TeamOf(LHS), s.TeamOf(RHS))
	}

	s.Swap()

	if s.SideOf(Red) != RHS || s.SideOf(Blue) != LHS {
		t.Errorf("swapped SideOf = %v/%v, want RHS/LHS", s.SideOf(Red), s.SideOf(Blue))
	}
	if s.TeamOf(LHS) != Blue || s.TeamOf(RHS) != Red {
		t.Errorf("swapped TeamOf = %v/%v, want BLUE/RED", s.TeamOf(LHS), s.TeamOf(RHS))
	}

	// bijection in both states
	for _, swapped := range []bool{false, true} {
		for _, team := range []Team{Red, Blue} {
			if got := teamOf(sideOf(team, swapped), swapped); got != team {
				t.Errorf("teamOf(sideOf(%v)) = %v with swapped=%v", team, got, swapped)
			}
		}
	}
}

func TestSwap_IsItsOwnInverse(t *testing.T) {
	s := New()
	setTotals(t, s, 3, 5)

	s.Swap()
	if s.Get(LHS) != 5 || s.Get(RHS) != 3 {
		t.Errorf("after Swap Get() = %d/%d, want 5/3", s.Get(LHS), s.Get(RHS))
	}
	s.Swap()

	if s.Get(LHS) != 3 || s.Get(RHS) != 5 {
		t.Errorf("after double Swap Get() = %d/%d, want 3/5", s.Get(LHS), s.Get(RHS))
	}
	if s.Total(Red) != 3 || s.Total(Blue) != 5 {
		t.Errorf("Total() = %d/%d, want 3/5", s.Total(Red), s.Total(Blue))
	}
	if s.SideOf(Red) != LHS || s.TeamOf(RHS) != Blue {
		t.Error("double Swap did not restore the mapping")
	}
}

func TestIncrement_SwappedAppliesToTeamOnSide(t *testing.T) {
	s := New()
	s.Swap()

	s.Increment(LHS, 1)

	if s.Total(Blue) != 1 || s.Total(Red) != 0 {
		t.Errorf("Total() = red %d blue %d, want red 0 blue 1", s.Total(Red), s.Total(Blue))
	}
}

func TestIncrement_NeverNegative(t *testing.T) {
	s := New()

	if s.Increment(LHS, -1) {
		t.Error("Increment(LHS, -1) on 0 applied, want rejected")
	}
	setTotals(t, s, 2, 0)
	if s.Increment(LHS, -3) {
		t.Error("Increment(LHS, -3) on 2 applied, want rejected")
	}
	if s.Get(LHS) != 2 {
		t.Errorf("Get(LHS) = %d, want 2", s.Get(LHS))
	}

	// arbitrary sequence keeps both totals non-negative
	deltas := []int{-1, 1, -2, 3, -5, -1, 2, -2, -2, 4}
	for i, d := range deltas {
		side := LHS
		if i%2 == 1 {
			side = RHS
		}
		s.Increment(side, d)
		if s.Get(LHS) < 0 || s.Get(RHS) < 0 {
			t.Fatalf("negative total after step %d: %d/%d", i, s.Get(LHS), s.Get(RHS))
		}
	}
}

func TestGameOver(t *testing.T) {
	tests := []struct {
		name      string
		red, blue int
		want      bool
	}{
		{name: "fresh", red: 0, blue: 0, want: false},
		{name: "below limit with big lead", red: 20, blue: 2, want: false},
		{name: "limit with two point lead", red: 21, blue: 19, want: true},
		{name: "limit with one point lead", red: 21, blue: 20, want: false},
		{name: "deuce above limit", red: 22, blue: 21, want: false},
		{name: "two clear above limit", red: 24, blue: 22, want: true},
		{name: "max limit on one point lead", red: 30, blue: 29, want: true},
		{name: "blue wins", red: 10, blue: 21, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.SetLimits(21, 30)
			setTotals(t, s, tt.red, tt.blue)
			if got := s.GameOver(); got != tt.want {
				t.Errorf("GameOver() at %d/%d = %v, want %v", tt.red, tt.blue, got, tt.want)
			}
		})
	}
}

func TestIncrement_AfterGameOver(t *testing.T) {
	s := New()
	s.SetLimits(21, 30)
	setTotals(t, s, 21, 19)

	if !s.GameOver() {
		t.Fatal("GameOver() = false, want true")
	}
	if s.Increment(LHS, 1) {
		t.Error("winner +1 after game over applied, want rejected")
	}
	if s.Increment(RHS, 1) {
		t.Error("loser +1 after game over applied, want rejected")
	}
	if s.Increment(RHS, -1) {
		t.Error("loser -1 after game over applied, want rejected")
	}
	if s.Get(LHS) != 21 || s.Get(RHS) != 19 {
		t.Fatalf("Get() = %d/%d, want 21/19", s.Get(LHS), s.Get(RHS))
	}

	if !s.Increment(LHS, -1) {
		t.Error("winner -1 after game over rejected, want applied")
	}
	if s.Get(LHS) != 20 {
		t.Errorf("Get(LHS) = %d, want 20", s.Get(LHS))
	}
	if s.GameOver() {
		t.Error("GameOver() = true after winner correction, want false")
	}
}

func TestIncrement_AfterGameOverFollowsSwap(t *testing.T) {
	s := New()
	setTotals(t, s, 21, 10)
	s.Swap() // red now on the right

	if s.Increment(LHS, -1) {
		t.Error("loser side -1 after swap applied, want rejected")
	}
	if !s.Increment(RHS, -1) {
		t.Error("winner side -1 after swap rejected, want applied")
	}
	if s.Total(Red) != 20 {
		t.Errorf("Total(Red) = %d, want 20", s.Total(Red))
	}
}

func TestGameOver_StaysTrueUntilChanged(t *testing.T) {
	s := New()
	setTotals(t, s, 21, 0)

	// rejected mutations never clear game over
	for _, side := range []Side{LHS, RHS} {
		for _, d := range []int{1, 5} {
			s.Increment(side, d)
			if !s.GameOver() {
				t.Fatalf("GameOver() cleared by Increment(%v, %d)", side, d)
			}
		}
	}
	s.Increment(RHS, -1)
	s.Swap()
	if !s.GameOver() {
		t.Fatal("GameOver() cleared by Swap")
	}

	s.SetLimits(25, 30)
	if s.GameOver() {
		t.Error("GameOver() = true after raising limits, want false")
	}
	s.SetLimits(21, 30)
	s.Reset()
	if s.GameOver() {
		t.Error("GameOver() = true after Reset, want false")
	}
}

func TestLeader(t *testing.T) {
	s := New()
	if s.Leader() != Blue {
		t.Errorf("Leader() at 0/0 = %v, want BLUE", s.Leader())
	}
	setTotals(t, s, 1, 0)
	if s.Leader() != Red {
		t.Errorf("Leader() at 1/0 = %v, want RED", s.Leader())
	}
	s.Increment(RHS, 1)
	if s.Leader() != Blue {
		t.Errorf("Leader() at 1/1 = %v, want BLUE", s.Leader())
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.SetLimits(15, 20)
	setTotals(t, s, 4, 7)
	s.Swap()

	s.Reset()

	if s.Total(Red) != 0 || s.Total(Blue) != 0 {
		t.Errorf("Total() = %d/%d, want 0/0", s.Total(Red), s.Total(Blue))
	}
	if s.Swapped() {
		t.Error("Swapped() = true after Reset")
	}
	if got := s.Limits(); got != (Limits{Limit: 15, MaxLimit: 20}) {
		t.Errorf("Limits() = %+v, want 15/20 kept", got)
	}
}

func TestStrings(t *testing.T) {
	if Red.String() != "RED" || Blue.String() != "BLUE" {
		t.Errorf("Team.String() = %q/%q", Red.String(), Blue.String())
	}
	if Red.Color() != "red" || Blue.Color() != "blue" {
		t.Errorf("Team.Color() = %q/%q", Red.Color(), Blue.Color())
	}
	if LHS.String() != "LHS" || RHS.String() != "RHS" {
		t.Errorf("Side.String() = %q/%q", LHS.String(), RHS.String())
	}
	if LHS.Opposite() != RHS || RHS.Opposite() != LHS {
		t.Error("Opposite() is not an involution")
	}
}

func TestScore_ConcurrentAccess(t *testing.T) {
	s := New()
	s.SetLimits(1000, 2000)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if i%2 == 0 {
					s.Increment(LHS, 1)
				} else {
					_ = s.Get(LHS)
					_ = s.GameOver()
					_ = s.Leader()
				}
			}
		}(i)
	}
	wg.Wait()

	if s.Get(LHS) != 400 {
		t.Errorf("Get(LHS) = %d, want 400", s.Get(LHS))
	}
}
