package window

import "fmt"

func ExampleGenerate() {
	w := Generate(TypeHann, 4)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.50 1.00 0.50
}

func ExampleOverlapAdd() {
	w, _ := Hann(8)
	s, _ := OverlapAdd(w, 4)
	fmt.Printf("min=%.2f max=%.2f\n", s.Min, s.Max)
	// Output:
	// min=1.00 max=1.00
}
