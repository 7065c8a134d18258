// Package transpose shifts the pitch of PCM audio by a number of semitones
// while keeping its duration.
//
// A shift of S semitones is the frequency ratio r = 2^(S/12). The stream is
// first stretched in time by r with the overlap-add engine of package
// timescale, which leaves the pitch of every window unchanged, and then
// resampled from rate to rate/r, which restores the original duration and
// moves every frequency by r.
//
// [Pipeline] runs one conversion between a [Source] and a [Sink]. [File]
// and [Bytes] wire it to WAV files and in-memory WAV payloads.
package transpose
