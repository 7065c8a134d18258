// Package wavio reads and writes 16-bit PCM WAV streams as [core.Block]
// values.
//
// Decoding and encoding are done by github.com/go-audio/wav. This package
// restricts the accepted format to uncompressed 16-bit PCM, converts between
// interleaved integers and channel-major normalized samples, and applies the
// output quantizer from package dither.
package wavio
