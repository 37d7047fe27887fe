package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// adc is adc~: one signal outlet per declared input channel (creation
// args list 1-based channel numbers; default is channels 1, 2),
// copying from the engine's global ADC buffer each block. It has no
// dataflow parent.
type adc struct {
	*graph.Base
	channels []int
}

func newAdc(g *graph.Graph, init atom.Message) (graph.Object, error) {
	channels := channelArgs(init, []int{0, 1})
	o := &adc{channels: channels}
	o.Base = graph.NewBase(o, "adc~", g, 0, 0, 0, len(channels))
	o.SetRoot(true)
	return o, nil
}

func (o *adc) ProcessDSP() {
	io := o.Graph().AudioIO()
	for outlet, ch := range o.channels {
		out := o.SignalOutletBuffer(outlet).Samples
		if io == nil {
			for i := range out {
				out[i] = 0
			}
			continue
		}
		in := io.ADCChannel(ch)
		for i := range out {
			if i < len(in) {
				out[i] = in[i]
			} else {
				out[i] = 0
			}
		}
	}
}

// dac is dac~: one signal inlet per declared output channel,
// accumulating into the engine's global DAC buffer each block (several
// dac~ objects, or several inlets of one, may target the same channel
// and all add into it — step 3). It absorbs signal with
// no dataflow child (the "leaf" classification).
type dac struct {
	*graph.Base
	channels []int
}

func newDac(g *graph.Graph, init atom.Message) (graph.Object, error) {
	channels := channelArgs(init, []int{0, 1})
	o := &dac{channels: channels}
	o.Base = graph.NewBase(o, "dac~", g, 0, 0, len(channels), 0)
	o.SetLeaf(true)
	return o, nil
}

func (o *dac) ProcessDSP() {
	io := o.Graph().AudioIO()
	if io == nil {
		return
	}
	for inlet, ch := range o.channels {
		io.AccumulateDAC(ch, o.SignalInletBuffer(inlet).Samples)
	}
}

// channelArgs parses 1-based channel numbers from init's float atoms
// (converting to 0-based), defaulting to def when none are given.
func channelArgs(init atom.Message, def []int) []int {
	var chans []int
	for _, a := range init.Atoms {
		if a.IsFloat() {
			chans = append(chans, int(a.Float)-1)
		}
	}
	if len(chans) == 0 {
		return def
	}
	return chans
}

// inletSignal (inlet~) exposes one signal inlet of a subpatch/
// abstraction to its parent graph; the parser connects the parent's
// outgoing wire to this object's inlet when instantiating an
// abstraction. Internally it is a plain passthrough.
type inletSignal struct{ *graph.Base }

func newInletSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &inletSignal{}
	o.Base = graph.NewBase(o, "inlet~", g, 0, 0, 1, 1)
	o.SetRoot(true)
	return o, nil
}

func (o *inletSignal) ProcessDSP() {
	copy(o.SignalOutletBuffer(0).Samples, o.SignalInletBuffer(0).Samples)
}

// outletSignal (outlet~) is inlet~'s mirror at a subpatch's downstream
// boundary.
type outletSignal struct{ *graph.Base }

func newOutletSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &outletSignal{}
	o.Base = graph.NewBase(o, "outlet~", g, 0, 0, 1, 1)
	o.SetLeaf(true)
	return o, nil
}

func (o *outletSignal) ProcessDSP() {
	copy(o.SignalOutletBuffer(0).Samples, o.SignalInletBuffer(0).Samples)
}

func init() {
	graph.RegisterFactory("adc~", newAdc)
	graph.RegisterFactory("dac~", newDac)
	graph.RegisterFactory("inlet~", newInletSignal)
	graph.RegisterFactory("outlet~", newOutletSignal)
}
