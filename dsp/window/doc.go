// Package window generates the analysis windows used for overlap-add
// synthesis and reports how they sum when shifted by a hop.
//
// Windows are periodic by default (w[i] uses i/n rather than i/(n-1)), which
// is the form whose shifted copies add up to a constant at the usual hops.
package window
