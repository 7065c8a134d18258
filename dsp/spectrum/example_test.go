package spectrum_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-transpose/dsp/spectrum"
)

func ExampleWelch() {
	x := make([]float64, 4096)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 64 * float64(i) / 1024)
	}

	mag, err := spectrum.Welch(x, 1024)
	if err != nil {
		panic(err)
	}

	peak := 0
	for i := range mag {
		if mag[i] > mag[peak] {
			peak = i
		}
	}
	fmt.Println("bins:", len(mag), "peak:", peak)
	// Output: bins: 513 peak: 64
}
