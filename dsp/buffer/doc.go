// Package buffer provides the growable sample queue used by the stretch
// engine: samples are appended at the back, accumulated in place, and
// drained from the front without shifting the remaining data on every call.
package buffer
