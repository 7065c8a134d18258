// Package frequency computes spectral statistics of audio signals, including
// the dominant frequency used to verify pitch shifts.
package frequency
