// Package scoreboard runs a two-team LED scoreboard.
//
// The device shows two scores on a small RGB panel, is operated with three
// physical buttons (left, right and swap) and can optionally serve a remote
// control page to phones on the local network.
//
// # Quick Start
//
//	sb, _ := scoreboard.New(
//	    scoreboard.WithNetwork(true),
//	    scoreboard.WithSettingsStore(scoreboard.NewSettingsFile("Config.json")),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	sb.Start(ctx) // blocks until context is cancelled
//
// # Modes
//
// The device moves through four modes:
//
//   - STARTING: boot banner while settings load and the network comes up
//   - CHOOSING: the side buttons pick one of two game limits
//   - RUNNING: the side buttons score (+1 press, -1 hold), swap exchanges
//     sides and a long swap hold resets
//   - GAME_OVER: the winner's box blinks; the leader may still be corrected,
//     which returns the game to RUNNING
//
// A game ends once a team reaches the limit with a two point lead, or
// reaches the max limit.
//
// # Remote Viewers
//
// With the network up, viewers connect over a websocket (or read-only SSE)
// and receive a JSON snapshot after every change. A viewer that sends the
// enable password from the device settings may score, swap, reset and set
// limits too.
//
// # Architecture
//
// The package wires together several internal packages (under internal/):
//
//   - score: team totals, limits and the side mapping
//   - match: the mode state machine and change notification
//   - render: the single goroutine that owns the panel
//   - remote: per-peer snapshot fan-out and admin gating
//   - server: HTTP, SSE and websocket transport
//   - buttons: mode-dependent button bindings
//   - store: persisted device settings
//
// The public display and input packages let hosts plug in real hardware.
package scoreboard
