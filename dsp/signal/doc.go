// Package signal renders reproducible test material for the pitch shifter:
// sines, major triads, exponential sweeps and white noise, as sample slices
// or as multi-channel blocks ready to encode.
package signal
