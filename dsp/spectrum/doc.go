// Package spectrum provides the frequency-domain measurements used to
// inspect pitch-shifted audio: averaged magnitude spectra computed with
// algo-fft, bin magnitude helpers, and a single-bin Goertzel
// detector for checking the level at one expected frequency.
package spectrum
