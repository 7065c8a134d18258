package dither

import (
	"fmt"
	"strings"
)

// DitherType selects the probability distribution used for dither noise.
type DitherType int

const (
	// DitherNone applies no dither (plain rounding).
	DitherNone DitherType = iota
	// DitherRectangular uses a uniform (rectangular) PDF.
	DitherRectangular
	// DitherTriangular uses a triangular PDF (TPDF), the most common choice.
	DitherTriangular
	// DitherGaussian uses a Gaussian PDF.
	DitherGaussian

	ditherTypeCount // sentinel for validation
)

var ditherTypeNames = [ditherTypeCount]string{
	"None", "Rectangular", "Triangular", "Gaussian",
}

// short names accepted by ParseDitherType in addition to the full names
var ditherTypeAliases = map[string]DitherType{
	"rect": DitherRectangular,
	"tpdf": DitherTriangular,
}

// String returns the name of the dither type.
func (dt DitherType) String() string {
	if dt.Valid() {
		return ditherTypeNames[dt]
	}
	return fmt.Sprintf("DitherType(%d)", dt)
}

// Valid reports whether dt is a known dither type.
func (dt DitherType) Valid() bool {
	return dt >= 0 && dt < ditherTypeCount
}

// ParseDitherType resolves a case-insensitive name such as "none", "tpdf" or
// "Triangular".
func ParseDitherType(s string) (DitherType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if dt, ok := ditherTypeAliases[s]; ok {
		return dt, nil
	}
	for i, name := range ditherTypeNames {
		if strings.ToLower(name) == s {
			return DitherType(i), nil
		}
	}
	return DitherNone, fmt.Errorf("dither: unknown dither type %q", s)
}
