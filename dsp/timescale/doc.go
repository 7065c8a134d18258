// Package timescale implements an overlap-add (OLA) time-scaling engine.
//
// The engine reads fixed-size analysis windows every hop input samples and
// writes them every hop·factor output samples, so elapsed time is scaled by
// factor while the spectral content of each window, and therefore pitch, is
// left unchanged. It is a streaming processor: callers push blocks of input
// and pop finalized output frames as they become available.
//
// Engines hold mutable state and are not safe for concurrent use. Create one
// per stream.
package timescale
