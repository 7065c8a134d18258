package spectrum

import "github.com/cwbudde/algo-vecmath"

// split holds the real and imaginary planes of a complex spectrum, the
// layout algo-vecmath's magnitude kernels expect. It is reused across calls
// by the owner.
type split struct {
	re, im []float64
}

func (s *split) load(in []complex128) {
	n := len(in)
	if cap(s.re) < n {
		s.re, s.im = make([]float64, n), make([]float64, n)
	}
	s.re, s.im = s.re[:n], s.im[:n]
	for i, c := range in {
		s.re[i], s.im[i] = real(c), imag(c)
	}
}

// magnitude writes |X[k]| for min(len(dst), len(in)) bins into dst.
func (s *split) magnitude(dst []float64, in []complex128) {
	n := min(len(dst), len(in))
	s.load(in[:n])
	vecmath.Magnitude(dst[:n], s.re, s.im)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	MagnitudeInto(out, in)
	return out
}

// MagnitudeInto writes |X[k]| for min(len(dst), len(in)) bins into dst.
func MagnitudeInto(dst []float64, in []complex128) {
	var s split
	s.magnitude(dst, in)
}
