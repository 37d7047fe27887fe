package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
	"github.com/pdrt/pdrt/registry"
)

func registryOf(g *graph.Graph) *registry.Registry {
	return g.Registry().(*registry.Registry)
}

// tabread looks up a single sample by integer index on demand (message
// rate). Out-of-range indices yield 0.
type tabread struct {
	*graph.Base
	name string
	arr  *registry.Array
}

func newTabread(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &tabread{name: firstSymbol(init)}
	o.Base = graph.NewBase(o, "tabread", g, 1, 1, 0, 0)
	o.SetRoot(true)
	registryOf(g).RegisterArrayReader(o.name, o)
	return o, nil
}

func (o *tabread) Bind(arr *registry.Array) { o.arr = arr }

func (o *tabread) ProcessMessage(inlet int, msg atom.Message) {
	if inlet != 0 || !msg.IsFloatAt(0) || o.arr == nil {
		return
	}
	v := o.arr.At(int(msg.FloatAt(0)))
	o.SendMessage(0, atom.NewFloatMessage(msg.Timestamp, v))
}

// tabread4 is tabread's message-rate 4-point-interpolating sibling,
// addressed by a fractional index.
type tabread4 struct {
	*graph.Base
	name string
	arr  *registry.Array
}

func newTabread4(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &tabread4{name: firstSymbol(init)}
	o.Base = graph.NewBase(o, "tabread4", g, 1, 1, 0, 0)
	o.SetRoot(true)
	registryOf(g).RegisterArrayReader(o.name, o)
	return o, nil
}

func (o *tabread4) Bind(arr *registry.Array) { o.arr = arr }

func (o *tabread4) ProcessMessage(inlet int, msg atom.Message) {
	if inlet != 0 || !msg.IsFloatAt(0) || o.arr == nil {
		return
	}
	o.SendMessage(0, atom.NewFloatMessage(msg.Timestamp, cubic4(o.arr, float64(msg.FloatAt(0)))))
}

// cubic4 implements tabread4~ interpolation: 4-point
// cubic interpolation of arr by a fractional sample index, clamping
// out-of-range taps to zero.
func cubic4(arr *registry.Array, index float64) float32 {
	i0 := int(index)
	frac := float32(index - float64(i0))
	y0 := arr.At(i0 - 1)
	y1 := arr.At(i0)
	y2 := arr.At(i0 + 1)
	y3 := arr.At(i0 + 2)

	// Standard 4-point, 3rd-order Hermite-style cubic (Breeuwsma
	// catmull-rom coefficients), matching Pd's platform-default
	// (non-vDSP) interpolation path.
	c0 := y1
	c1 := 0.5 * (y2 - y0)
	c2 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c3 := 0.5*(y3-y0) + 1.5*(y1-y2)
	return ((c3*frac+c2)*frac+c1)*frac + c0
}

// tabread4Signal is tabread4~: the signal-rate cubic-interpolating
// array reader, indexed by a per-sample fractional-index signal inlet.
type tabread4Signal struct {
	*graph.Base
	name string
	arr  *registry.Array
}

func newTabread4Signal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &tabread4Signal{name: firstSymbol(init)}
	o.Base = graph.NewBase(o, "tabread4~", g, 0, 0, 1, 1)
	o.SetRoot(true)
	registryOf(g).RegisterArrayReader(o.name, o)
	return o, nil
}

func (o *tabread4Signal) Bind(arr *registry.Array) { o.arr = arr }

func (o *tabread4Signal) ProcessDSP() {
	out := o.SignalOutletBuffer(0).Samples
	if o.arr == nil {
		for i := range out {
			out[i] = 0
		}
		return
	}
	idx := o.SignalInletBuffer(0).Samples
	for i := range out {
		out[i] = cubic4(o.arr, float64(idx[i]))
	}
}

// tabreadSignal is tabread~: streams consecutive array samples as a
// signal starting from index 0 each time it (re)binds, advancing one
// sample per block-sample and holding at the last sample once past the
// end of the array. Onset-setting is intentionally unimplemented,
// matching Pd's own tabread~.
type tabreadSignal struct {
	*graph.Base
	name string
	arr  *registry.Array
	pos  int
}

func newTabreadSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &tabreadSignal{name: firstSymbol(init)}
	o.Base = graph.NewBase(o, "tabread~", g, 0, 0, 0, 1)
	o.SetRoot(true)
	registryOf(g).RegisterArrayReader(o.name, o)
	return o, nil
}

func (o *tabreadSignal) Bind(arr *registry.Array) { o.arr = arr; o.pos = 0 }

func (o *tabreadSignal) ProcessDSP() {
	out := o.SignalOutletBuffer(0).Samples
	for i := range out {
		if o.arr == nil {
			out[i] = 0
			continue
		}
		out[i] = o.arr.At(o.pos)
		if o.pos < len(o.arr.Data)-1 {
			o.pos++
		}
	}
}

// tabplaySignal (tabplay~) plays an array once from start to finish as
// a signal, triggered by a bang, then goes silent.
type tabplaySignal struct {
	*graph.Base
	name     string
	arr      *registry.Array
	pos      int
	playing  bool
}

func newTabplaySignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &tabplaySignal{name: firstSymbol(init)}
	o.Base = graph.NewBase(o, "tabplay~", g, 1, 0, 0, 1)
	o.SetRoot(true)
	registryOf(g).RegisterArrayReader(o.name, o)
	return o, nil
}

func (o *tabplaySignal) Bind(arr *registry.Array) { o.arr = arr }

func (o *tabplaySignal) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 0 && msg.IsBangAt(0) {
		o.pos = 0
		o.playing = o.arr != nil
	}
}

func (o *tabplaySignal) ProcessDSP() {
	out := o.SignalOutletBuffer(0).Samples
	for i := range out {
		if !o.playing || o.pos >= len(o.arr.Data) {
			out[i] = 0
			o.playing = false
			continue
		}
		out[i] = o.arr.Data[o.pos]
		o.pos++
	}
}

// tabwriteSignal (tabwrite~) records an incoming signal into the array
// starting at index 0, triggered by a bang, stopping once the array is
// full.
type tabwriteSignal struct {
	*graph.Base
	name      string
	arr       *registry.Array
	pos       int
	recording bool
}

func newTabwriteSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &tabwriteSignal{name: firstSymbol(init)}
	o.Base = graph.NewBase(o, "tabwrite~", g, 1, 0, 1, 0)
	registryOf(g).RegisterArrayReader(o.name, o)
	return o, nil
}

func (o *tabwriteSignal) Bind(arr *registry.Array) { o.arr = arr }

func (o *tabwriteSignal) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 0 && msg.IsBangAt(0) {
		o.pos = 0
		o.recording = o.arr != nil
	}
}

func (o *tabwriteSignal) ProcessDSP() {
	if !o.recording || o.arr == nil {
		return
	}
	in := o.SignalInletBuffer(0).Samples
	for _, s := range in {
		if o.pos >= len(o.arr.Data) {
			o.recording = false
			return
		}
		o.arr.Data[o.pos] = s
		o.pos++
	}
}

func init() {
	graph.RegisterFactory("tabread", newTabread)
	graph.RegisterFactory("tabread4", newTabread4)
	graph.RegisterFactory("tabread~", newTabreadSignal)
	graph.RegisterFactory("tabread4~", newTabread4Signal)
	graph.RegisterFactory("tabplay~", newTabplaySignal)
	graph.RegisterFactory("tabwrite~", newTabwriteSignal)
}
