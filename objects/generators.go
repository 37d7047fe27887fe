package objects

import (
	"math"
	"math/rand"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

const twoPi = 2 * math.Pi

// phasorSignal (phasor~) is a free-running ramp from 0 to 1 at a given
// frequency in Hz; osc~ is built on the same running-phase state,
// differing only in how the phase is mapped to output.
type phasorSignal struct {
	*graph.Base
	freq       float32
	freqSignal bool
	phase      float64
}

func newPhasorSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &phasorSignal{freq: firstFloat(init, 0)}
	o.Base = graph.NewBase(o, "phasor~", g, 1, 0, 1, 1)
	return o, nil
}

func (o *phasorSignal) BindSignalInlet(inlet int, buf *graph.Buffer) {
	o.Base.BindSignalInlet(inlet, buf)
	if inlet == 0 {
		o.freqSignal = true
	}
}

func (o *phasorSignal) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 0 && msg.IsFloatAt(0) && !o.freqSignal {
		o.freq = msg.FloatAt(0)
	}
}

func (o *phasorSignal) ProcessDSP() {
	out := o.SignalOutletBuffer(0).Samples
	sr := o.Graph().SampleRate()
	if o.freqSignal {
		in := o.SignalInletBuffer(0).Samples
		for i := range out {
			out[i] = float32(o.phase)
			o.phase += float64(in[i]) / sr
			o.phase -= math.Floor(o.phase)
		}
		return
	}
	step := float64(o.freq) / sr
	for i := range out {
		out[i] = float32(o.phase)
		o.phase += step
		o.phase -= math.Floor(o.phase)
	}
}

// oscSignal (osc~) is a sine oscillator sharing phasor~'s running-
// phase bookkeeping, emitting sin(2*pi*phase) each sample (so a
// freshly constructed osc~ starts at zero crossing, not at its peak).
type oscSignal struct {
	*graph.Base
	freq       float32
	freqSignal bool
	phase      float64
}

func newOscSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &oscSignal{freq: firstFloat(init, 0)}
	o.Base = graph.NewBase(o, "osc~", g, 1, 0, 1, 1)
	return o, nil
}

func (o *oscSignal) BindSignalInlet(inlet int, buf *graph.Buffer) {
	o.Base.BindSignalInlet(inlet, buf)
	if inlet == 0 {
		o.freqSignal = true
	}
}

func (o *oscSignal) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 0 && msg.IsFloatAt(0) && !o.freqSignal {
		o.freq = msg.FloatAt(0)
	}
}

func (o *oscSignal) ProcessDSP() {
	out := o.SignalOutletBuffer(0).Samples
	sr := o.Graph().SampleRate()
	if o.freqSignal {
		in := o.SignalInletBuffer(0).Samples
		for i := range out {
			out[i] = float32(math.Sin(twoPi * o.phase))
			o.phase += float64(in[i]) / sr
			o.phase -= math.Floor(o.phase)
		}
		return
	}
	step := float64(o.freq) / sr
	for i := range out {
		out[i] = float32(math.Sin(twoPi * o.phase))
		o.phase += step
		o.phase -= math.Floor(o.phase)
	}
}

// noiseSignal (noise~) emits uniform white noise in [-1, 1].
type noiseSignal struct {
	*graph.Base
	rng *rand.Rand
}

func newNoiseSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &noiseSignal{rng: rand.New(rand.NewSource(1))}
	o.Base = graph.NewBase(o, "noise~", g, 0, 0, 0, 1)
	return o, nil
}

func (o *noiseSignal) ProcessDSP() {
	out := o.SignalOutletBuffer(0).Samples
	for i := range out {
		out[i] = o.rng.Float32()*2 - 1
	}
}

// sigSignal (sig~) converts a float message into a constant signal,
// stepping to the new value at the exact sample the message arrives
// within the block.
type sigSignal struct {
	*graph.Base
	value               float32
	blockIndexOfLastMsg int
}

func newSigSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &sigSignal{value: firstFloat(init, 0)}
	o.Base = graph.NewBase(o, "sig~", g, 1, 0, 0, 1)
	return o, nil
}

func (o *sigSignal) ReceiveMessage(inlet int, msg atom.Message) {
	if inlet != 0 || !msg.IsFloatAt(0) {
		o.Base.ReceiveMessage(inlet, msg)
		return
	}
	idx := msg.BlockIndexOf(o.Graph().BlockStartHint(), o.Graph().SampleRate())
	o.runTo(idx)
	o.value = msg.FloatAt(0)
	o.blockIndexOfLastMsg = idx
}

func (o *sigSignal) runTo(idx int) {
	out := o.SignalOutletBuffer(0).Samples
	end := idx
	if end > len(out) {
		end = len(out)
	}
	for i := o.blockIndexOfLastMsg; i < end; i++ {
		out[i] = o.value
	}
}

func (o *sigSignal) ProcessDSP() {
	o.runTo(len(o.SignalOutletBuffer(0).Samples))
	o.blockIndexOfLastMsg = 0
}

func init() {
	graph.RegisterFactory("phasor~", newPhasorSignal)
	graph.RegisterFactory("osc~", newOscSignal)
	graph.RegisterFactory("noise~", newNoiseSignal)
	graph.RegisterFactory("sig~", newSigSignal)
}
