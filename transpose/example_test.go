package transpose_test

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cwbudde/algo-transpose/dsp/core"
	"github.com/cwbudde/algo-transpose/transpose"
	"github.com/cwbudde/algo-transpose/wavio"
)

func ExampleBytes() {
	spec := core.AudioSpec{Channels: 1, SampleRate: 8000, BitDepth: 16}
	tone := core.NewBlock(1, 8000)

	var in wavio.Buffer
	enc, _ := wavio.NewEncoder(&in, spec)
	_ = enc.WriteFrames(tone, tone.Frames())
	_ = enc.Close()

	out, st, err := transpose.Bytes(context.Background(), in.Bytes(), transpose.DefaultConfig(-12))
	if err != nil {
		fmt.Println(err)
		return
	}

	got, _, _ := wavio.ReadAll(bytes.NewReader(out))
	fmt.Printf("ratio=%.1f rate=%d converter=%.0f Hz\n", st.Ratio, got.SampleRate, st.ConverterRate)
	// Output: ratio=0.5 rate=8000 converter=16000 Hz
}
