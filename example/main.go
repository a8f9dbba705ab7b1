package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpalmerr/scoreboard"
	"github.com/jpalmerr/scoreboard/input"
)

func main() {
	// simulated button presses (see referee.go)
	buttons := input.NewChanSource(8)

	sb, err := scoreboard.New(
		scoreboard.WithPort(8080),
		scoreboard.WithNetwork(true),
		scoreboard.WithTitle("Demo Court"),
		scoreboard.WithSettingsStore(scoreboard.NewSettingsMemory(scoreboard.Settings{
			Hostname:       "demo",
			EnablePassword: "demo",
		})),
		scoreboard.WithInput(buttons),
		scoreboard.WithChangeCallback(func(st scoreboard.State) {
			slog.Info("score", "mode", st.Mode, "lhs", st.LHS.Score, "rhs", st.RHS.Score)
		}),
	)
	if err != nil {
		slog.Error("failed to create scoreboard", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Scoreboard Demo                                     ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080 in your browser          ║")
	fmt.Println("  ║   Enable password: demo                               ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   A simulated referee plays games to 15               ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go runReferee(ctx, sb, buttons)

	if err := sb.Start(ctx); err != nil {
		slog.Error("scoreboard error", "error", err)
		os.Exit(1)
	}
}
