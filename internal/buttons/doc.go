// Package buttons maps physical button events to match actions.
//
// The mapping depends on the mode: while the splash runs nothing is bound,
// while choosing the side buttons pick a limit preset, and during play they
// score. The [Dispatcher] rebuilds its binding table on every mode change.
package buttons
