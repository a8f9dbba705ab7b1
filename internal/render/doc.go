// Package render owns the display.
//
// A single goroutine drains a small bounded queue of [Command] values and is
// the only caller of the display. Producers never block for long: a full
// queue is waited on briefly and the command is then dropped, since every
// redraw reads the current state anyway.
//
// The main components are:
//
//   - [Command]: the closed set of render commands
//   - [Scheduler]: the queue, the drain goroutine and the game-over timers
//   - [StateReader]: what a redraw pass reads from the match
//
// The Scheduler registers with the match controller as both a mode observer
// (to arm and disarm the game-over timers) and a state observer (to request
// a redraw).
package render
