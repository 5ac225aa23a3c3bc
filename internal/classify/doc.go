// Package classify infers price, venue, virtual status and age
// appropriateness from loosely structured event text.
//
// Every classifier is a tiered fallback: labeled fields first, then
// explicit patterns, then keyword scoring. The keyword sets and sentinels
// live in one Rules table so the two feed sources share a single set of
// heuristics instead of drifting copies.
package classify
