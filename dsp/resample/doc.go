// Package resample converts sample rates with a polyphase Kaiser-windowed
// FIR filter.
//
// Resampler is a streaming single-channel converter for a rational ratio
// up/down. Fixed wraps one Resampler per channel behind a fixed input block
// size, which is the contract the pitch-shift pipeline drives: ask
// InputFramesNext and OutputFramesNext, then Process exactly one block.
//
// Quality modes:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
//
// A 1:1 ratio bypasses filtering and copies input to output unchanged.
package resample
