// Package score implements the scoring rules of a two-team match.
//
// Totals are kept per [Team]. The physical [Side] a team occupies is derived
// from a single swapped flag, so swapping ends never touches the totals.
//
// The rules follow "win by two, cap at max" scoring: reaching the soft limit
// is not enough while the lead is a single point, but the first team to reach
// the hard limit wins regardless of margin. With the default 21/30 limits,
// at 20 all the side which first gains a two point lead wins, and at 29 all
// the side scoring the 30th point wins.
//
// Rule violations are silent: a rejected mutation leaves the score unchanged
// and raises no error.
package score
