package patch

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// abstraction wraps a fully parsed subgraph as a single object usable
// from its parent graph's connections. Each message/signal inlet and
// outlet on the wrapper delegates to the corresponding inlet/inlet~/
// outlet/outlet~ boundary object inside the subgraph, in the order
// those boundary objects were declared.
type abstraction struct {
	*graph.Base
	sub       *graph.Graph
	msgInlets []graph.Object
	sigInlets []graph.Object
	sigOutlet []graph.Object
}

// forwarder is implemented by outletObj; matched structurally so patch
// need not import package objects.
type forwarder interface {
	SetForward(func(atom.Message))
}

func newAbstraction(label string, sub *graph.Graph) graph.Object {
	var msgInlets, sigInlets, msgOutlets, sigOutlets []graph.Object
	for _, o := range sub.Objects() {
		switch o.Label() {
		case "inlet":
			msgInlets = append(msgInlets, o)
		case "inlet~":
			sigInlets = append(sigInlets, o)
		case "outlet":
			msgOutlets = append(msgOutlets, o)
		case "outlet~":
			sigOutlets = append(sigOutlets, o)
		}
	}

	a := &abstraction{sub: sub, msgInlets: msgInlets, sigInlets: sigInlets, sigOutlet: sigOutlets}
	a.Base = graph.NewBase(a, label, sub.Parent, len(msgInlets), len(msgOutlets), len(sigInlets), len(sigOutlets))

	for i, o := range msgOutlets {
		idx := i
		if f, ok := o.(forwarder); ok {
			f.SetForward(func(msg atom.Message) { a.SendMessage(idx, msg) })
		}
	}
	return a
}

func (a *abstraction) ProcessMessage(inlet int, msg atom.Message) {
	if inlet >= 0 && inlet < len(a.msgInlets) {
		a.msgInlets[inlet].ReceiveMessage(0, msg)
	}
}

// BindSignalInlet forwards the parent's producer buffer straight
// through to the matching inlet~ inside the subgraph, rather than
// keeping its own copy: the subgraph's DSP order reads from that bound
// buffer directly when sub.RunDSP runs.
func (a *abstraction) BindSignalInlet(inletIndex int, buf *graph.Buffer) {
	if inletIndex < 0 || inletIndex >= len(a.sigInlets) {
		return
	}
	a.sigInlets[inletIndex].BindSignalInlet(0, buf)
}

// ConnectionType inherits Base's simplifying assumption that an
// object's outlets are either all-message or all-signal; an
// abstraction exposing both kinds of outlet is not addressable by
// outlet index alone under that scheme and is not supported here.

// ProcessDSP runs the subgraph's own DSP pass, then copies each
// outlet~'s computed buffer out to the wrapper's corresponding signal
// outlet (the buffer AddConnectionFromTo hands to downstream objects).
func (a *abstraction) ProcessDSP() {
	a.sub.RunDSP()
	for i, o := range a.sigOutlet {
		copy(a.SignalOutletBuffer(i).Samples, o.SignalOutletBuffer(0).Samples)
	}
}
