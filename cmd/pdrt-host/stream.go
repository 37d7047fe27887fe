package main

import (
	"github.com/gordonklaus/portaudio"

	"github.com/pdrt/pdrt/engine"
)

// openStream opens a default portaudio duplex stream and wires its
// interleaved callback buffers to ctx.Process, which works in
// channel-major planar buffers. De/re-interleaving happens once per
// block, outside the real-time-sensitive DSP pass itself.
func openStream(ctx *engine.Context, inChannels, outChannels int, sampleRate float64, blockSize int) (*portaudio.Stream, error) {
	in := make([][]float32, inChannels)
	out := make([][]float32, outChannels)
	for ch := range in {
		in[ch] = make([]float32, blockSize)
	}
	for ch := range out {
		out[ch] = make([]float32, blockSize)
	}

	callback := func(inBuf, outBuf []float32) {
		deinterleave(inBuf, in, inChannels)
		ctx.Process(in, out)
		interleave(out, outBuf, outChannels)
	}

	return portaudio.OpenDefaultStream(inChannels, outChannels, sampleRate, blockSize, callback)
}

func deinterleave(src []float32, dst [][]float32, channels int) {
	if channels == 0 {
		return
	}
	frames := len(src) / channels
	for ch := 0; ch < channels; ch++ {
		buf := dst[ch]
		for i := 0; i < frames && i < len(buf); i++ {
			buf[i] = src[i*channels+ch]
		}
	}
}

func interleave(src [][]float32, dst []float32, channels int) {
	if channels == 0 {
		return
	}
	frames := len(dst) / channels
	for ch := 0; ch < channels; ch++ {
		buf := src[ch]
		for i := 0; i < frames && i < len(buf); i++ {
			dst[i*channels+ch] = buf[i]
		}
	}
}
