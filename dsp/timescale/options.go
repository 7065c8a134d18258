package timescale

import "github.com/cwbudde/algo-transpose/dsp/window"

// Option configures an Engine.
type Option func(*config)

type config struct {
	window     window.Type
	fractional bool
	raw        bool
}

func defaultConfig() config {
	return config{window: window.TypeHann}
}

// WithWindow selects the analysis window. The default is the periodic Hann
// window.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

// WithFractionalHop places synthesis windows at floor(k·hop·factor) instead
// of k·floor(hop·factor), so the fractional part of the synthesis hop is
// carried forward and long streams do not drift.
func WithFractionalHop() Option {
	return func(c *config) {
		c.fractional = true
	}
}

// WithRawOverlapAdd disables division by the accumulated window weight.
// Output gain is then the plain overlap-add sum of the windows, which is
// unity only for window/hop pairs that satisfy the OLA identity.
func WithRawOverlapAdd() Option {
	return func(c *config) {
		c.raw = true
	}
}
