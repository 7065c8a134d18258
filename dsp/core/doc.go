// Package core holds the data model shared by the transposition packages:
// channel-major sample blocks, stream format descriptions and the sample
// rate options of the signal generators, plus a few numeric helpers.
package core
