package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/jpalmerr/scoreboard"
	"github.com/jpalmerr/scoreboard/input"
)

const rallyLength = 1500 * time.Millisecond

// runReferee presses buttons the way a bored referee would: pick the short
// game, award random rallies, and start over a little after each game ends.
func runReferee(ctx context.Context, sb *scoreboard.Scoreboard, buttons *input.ChanSource) {
	ticker := time.NewTicker(rallyLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		st, ok := sb.State()
		if !ok {
			continue
		}

		var e input.Event
		switch st.Mode {
		case scoreboard.ModeChoosing:
			e = input.Event{Button: input.Left}
		case scoreboard.ModeRunning:
			e = input.Event{Button: input.Left}
			if rand.Intn(2) == 1 {
				e.Button = input.Right
			}
		case scoreboard.ModeGameOver:
			e = input.Event{Button: input.Swap, Held: input.HoldDuration}
		default:
			continue
		}

		if err := buttons.Send(ctx, e); err != nil {
			return
		}
	}
}
