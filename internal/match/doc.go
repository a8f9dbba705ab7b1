// Package match owns the authoritative match state: the score and the
// coarse mode of the match.
//
// The main components are:
//
//   - [Controller]: wraps a score.Score with a [Mode] state machine and
//     fans out two independent notification channels to registered observers
//   - [ModeObserver] and [StateObserver]: the two observer capabilities
//   - [Supervisor]: the periodic loop that drives the externally-decided
//     transitions (splash finished, game won, game corrected)
//
// Notifications are synchronous and ordered by registration. Mode observers
// run before the new mode is committed; state observers run after. Observers
// execute on the goroutine that performed the mutation and must not call
// back into the Controller's mutating methods.
package match
