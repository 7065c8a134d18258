// Package time computes level statistics of time-domain signals: DC, RMS,
// peak, crest factor, zero crossings and clipped samples. StreamingStats
// accumulates the same values block by block.
package time
