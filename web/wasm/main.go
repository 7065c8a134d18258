//go:build js && wasm

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"syscall/js"

	"github.com/cwbudde/algo-transpose/dsp/resample"
	"github.com/cwbudde/algo-transpose/internal/analysis"
	"github.com/cwbudde/algo-transpose/transpose"
	"github.com/cwbudde/algo-transpose/wavio"
)

var funcs []js.Func

func main() {
	api := js.Global().Get("Object").New()

	api.Set("ratio", export(func(args []js.Value) any {
		if len(args) < 1 {
			return js.Null()
		}
		return transpose.Ratio(args[0].Float())
	}))

	// transpose(wav: Uint8Array, semitones: number, quality?: string)
	api.Set("transpose", export(func(args []js.Value) any {
		if len(args) < 2 {
			return failure(errors.New("transpose(wav, semitones) needs two arguments"))
		}
		cfg := transpose.DefaultConfig(args[1].Float())
		if len(args) > 2 && args[2].Type() == js.TypeString {
			q, err := resample.ParseQuality(args[2].String())
			if err != nil {
				return failure(err)
			}
			cfg.Quality = q
		}

		out, st, err := transpose.Bytes(context.Background(), readBytes(args[0]), cfg)
		if err != nil {
			return failure(err)
		}

		res := js.Global().Get("Object").New()
		res.Set("wav", toUint8Array(out))
		res.Set("ratio", st.Ratio)
		res.Set("frames", st.FramesOut)
		res.Set("clipped", st.Output.Clipped)
		return res
	}))

	// analyze(wav: Uint8Array) returns the report as a JSON string.
	api.Set("analyze", export(func(args []js.Value) any {
		if len(args) < 1 {
			return failure(errors.New("analyze(wav) needs one argument"))
		}
		rep, err := analysis.WAV(bytes.NewReader(readBytes(args[0])))
		if err != nil {
			return failure(err)
		}
		data, err := json.Marshal(rep)
		if err != nil {
			return failure(err)
		}
		return string(data)
	}))

	js.Global().Set("AlgoTranspose", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}

func readBytes(v js.Value) []byte {
	b := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(b, v)
	return b
}

func toUint8Array(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

func failure(err error) js.Value {
	kind := "io"
	switch {
	case errors.Is(err, transpose.ErrFormat), errors.Is(err, wavio.ErrFormat):
		kind = "format"
	case errors.Is(err, transpose.ErrConfiguration):
		kind = "configuration"
	}
	res := js.Global().Get("Object").New()
	res.Set("error", err.Error())
	res.Set("kind", kind)
	return res
}
