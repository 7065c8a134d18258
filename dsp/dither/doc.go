// Package dither converts normalized float samples to signed 16-bit PCM.
//
// Samples are clamped to [-1, 1], scaled by 32767 and rounded to the nearest
// integer. An optional dither noise of a few LSB can be added before
// rounding to decorrelate the quantization error from the signal.
package dither
