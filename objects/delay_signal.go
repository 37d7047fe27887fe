package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
	"github.com/pdrt/pdrt/registry"
)

const defaultDelayLineMs = 1000.0

// delwriteSignal (delwrite~) records its signal inlet into a named
// circular history buffer that delread~/vd~ objects of the same name
// read back from.
type delwriteSignal struct {
	*graph.Base
	name string
	dl   *registry.DelayLine
}

func newDelwriteSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	maxMs := defaultDelayLineMs
	if init.Len() > 1 && init.IsFloatAt(1) {
		maxMs = float64(init.FloatAt(1))
	}
	o := &delwriteSignal{
		name: firstSymbol(init),
		dl:   registry.NewDelayLine(maxMs, g.SampleRate(), g.BlockSize()),
	}
	o.Base = graph.NewBase(o, "delwrite~", g, 0, 0, 1, 0)
	o.SetLeaf(true)
	registryOf(g).RegisterDelWrite(o.name, o.dl)
	return o, nil
}

func (o *delwriteSignal) ProcessDSP() {
	o.dl.WriteBlock(o.SignalInletBuffer(0).Samples)
}

// delreadSignal (delread~) reads back a fixed delay time in ms, set at
// creation or by a float message.
type delreadSignal struct {
	*graph.Base
	delayMs float32
	dl      *registry.DelayLine
}

func newDelreadSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &delreadSignal{}
	if init.Len() > 1 && init.IsFloatAt(1) {
		o.delayMs = init.FloatAt(1)
	}
	o.Base = graph.NewBase(o, "delread~", g, 1, 0, 0, 1)
	o.SetRoot(true)
	registryOf(g).RegisterDelRead(firstSymbol(init), o)
	return o, nil
}

func (o *delreadSignal) Bind(dl *registry.DelayLine) { o.dl = dl }

func (o *delreadSignal) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 0 && msg.IsFloatAt(0) {
		o.delayMs = msg.FloatAt(0)
	}
}

func (o *delreadSignal) ProcessDSP() {
	out := o.SignalOutletBuffer(0).Samples
	if o.dl == nil {
		for i := range out {
			out[i] = 0
		}
		return
	}
	o.dl.ReadBlock(float64(o.delayMs), out)
}

// vdSignal (vd~) is delread~'s variable-delay sibling: the delay time
// is itself a signal, interpolated linearly between adjacent samples.
type vdSignal struct {
	*graph.Base
	dl *registry.DelayLine
}

func newVdSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &vdSignal{}
	o.Base = graph.NewBase(o, "vd~", g, 0, 0, 1, 1)
	registryOf(g).RegisterDelRead(firstSymbol(init), o)
	return o, nil
}

func (o *vdSignal) Bind(dl *registry.DelayLine) { o.dl = dl }

func (o *vdSignal) ProcessDSP() {
	out := o.SignalOutletBuffer(0).Samples
	if o.dl == nil {
		for i := range out {
			out[i] = 0
		}
		return
	}
	o.dl.ReadVariable(o.SignalInletBuffer(0).Samples, out)
}

func init() {
	graph.RegisterFactory("delwrite~", newDelwriteSignal)
	graph.RegisterFactory("delread~", newDelreadSignal)
	graph.RegisterFactory("vd~", newVdSignal)
}
