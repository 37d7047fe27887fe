package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
	"github.com/pdrt/pdrt/registry"
)

// sendSignal (send~) publishes the buffer bound to its signal inlet
// under its name in the registry, where every receive~ of the same name
// reads it; it is a leaf of the dataflow graph. Only the first send~ of
// a name is registered; a later duplicate is reported and ignored.
type sendSignal struct {
	*graph.Base
	name  string
	owner bool // this send~'s registration was accepted
}

func newSendSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &sendSignal{name: firstSymbol(init)}
	o.Base = graph.NewBase(o, "send~", g, 0, 0, 1, 0)
	o.SetLeaf(true)
	r := registryOf(g)
	o.owner = r.SendBuffer(o.name) == nil
	r.RegisterSend(o.name, o.SignalInletBuffer(0))
	return o, nil
}

// BindSignalInlet keeps the registry's published buffer pointer in sync
// whenever send~'s inlet is rebound to a new producer. A duplicate send~
// that was not registered leaves the existing binding alone.
func (o *sendSignal) BindSignalInlet(inlet int, buf *graph.Buffer) {
	o.Base.BindSignalInlet(inlet, buf)
	if inlet == 0 && o.owner {
		registryOf(o.Graph()).UnregisterSend(o.name)
		registryOf(o.Graph()).RegisterSend(o.name, buf)
	}
}

// receiveSignal (receive~) exposes whatever buffer is currently
// registered for its name, defaulting to silence until a
// send~ of that name registers.
type receiveSignal struct {
	*graph.Base
	name string
}

func newReceiveSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &receiveSignal{name: firstSymbol(init)}
	o.Base = graph.NewBase(o, "receive~", g, 0, 0, 0, 1)
	o.SetRoot(true)
	registryOf(g).RegisterReceive(o.name, o)
	if buf := registryOf(g).SendBuffer(o.name); buf != nil {
		o.Rebind(buf)
	}
	return o, nil
}

// Rebind is a no-op: receive~ re-reads the registry's current send~
// buffer every block in ProcessDSP rather than caching a pointer,
// since downstream objects hold a pointer to receive~'s own outlet
// buffer and that identity must never change.
func (o *receiveSignal) Rebind(buf *graph.Buffer) {}

// ProcessDSP copies whatever send~ most recently wrote into receive~'s
// own outlet buffer, or silence if no send~ of this name is registered.
func (o *receiveSignal) ProcessDSP() {
	out := o.SignalOutletBuffer(0).Samples
	if buf := registryOf(o.Graph()).SendBuffer(o.name); buf != nil {
		copy(out, buf.Samples)
		return
	}
	for i := range out {
		out[i] = 0
	}
}

// throwSignal (throw~) contributes its signal inlet into the named
// catch~'s running sum (each catch~ sums every live throw~ of its name).
type throwSignal struct {
	*graph.Base
	name string
}

func newThrowSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &throwSignal{name: firstSymbol(init)}
	o.Base = graph.NewBase(o, "throw~", g, 0, 0, 1, 0)
	o.SetLeaf(true)
	registryOf(g).RegisterThrow(o.name, o)
	return o, nil
}

func (o *throwSignal) Buffer() []float32 { return o.SignalInletBuffer(0).Samples }

// catchSignal (catch~) sums every registered throw~ of its name into
// its outlet each block.
type catchSignal struct {
	*graph.Base
	name   string
	throws []registry.ThrowSource
}

func newCatchSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &catchSignal{name: firstSymbol(init)}
	o.Base = graph.NewBase(o, "catch~", g, 0, 0, 0, 1)
	o.SetRoot(true)
	registryOf(g).RegisterCatch(o.name, o)
	return o, nil
}

func (o *catchSignal) AddThrow(src registry.ThrowSource)    { o.throws = append(o.throws, src) }
func (o *catchSignal) RemoveThrow(src registry.ThrowSource) {
	for i, s := range o.throws {
		if s == src {
			o.throws = append(o.throws[:i], o.throws[i+1:]...)
			return
		}
	}
}

func (o *catchSignal) ProcessDSP() {
	out := o.SignalOutletBuffer(0).Samples
	for i := range out {
		out[i] = 0
	}
	for _, src := range o.throws {
		buf := src.Buffer()
		for i := range out {
			if i < len(buf) {
				out[i] += buf[i]
			}
		}
	}
}

func init() {
	graph.RegisterFactory("send~", newSendSignal)
	graph.RegisterFactory("receive~", newReceiveSignal)
	graph.RegisterFactory("throw~", newThrowSignal)
	graph.RegisterFactory("catch~", newCatchSignal)
}
