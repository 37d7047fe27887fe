package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// inletObj (inlet) exposes one message inlet of a subpatch/abstraction
// boundary to its enclosing object: the abstraction wrapper injects the
// message it receives directly via ReceiveMessage, and inletObj just
// re-sends it out its own single outlet to whatever is wired inside.
type inletObj struct{ *graph.Base }

func newInletObj(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &inletObj{}
	o.Base = graph.NewBase(o, "inlet", g, 1, 1, 0, 0)
	o.SetRoot(true)
	return o, nil
}

func (o *inletObj) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 0 {
		o.SendMessage(0, msg)
	}
}

// outletObj (outlet) is inlet's mirror at a subpatch's downstream
// boundary. Forward is installed by the enclosing abstraction wrapper
// and re-delivers whatever arrives here to the abstraction's own
// matching outlet.
type outletObj struct {
	*graph.Base
	Forward func(msg atom.Message)
}

func newOutletObj(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &outletObj{}
	o.Base = graph.NewBase(o, "outlet", g, 1, 0, 0, 0)
	o.SetLeaf(true)
	return o, nil
}

func (o *outletObj) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 0 && o.Forward != nil {
		o.Forward(msg)
	}
}

// SetForward installs the callback an abstraction wrapper uses to
// collect this outlet's messages.
func (o *outletObj) SetForward(f func(atom.Message)) { o.Forward = f }

func init() {
	graph.RegisterFactory("inlet", newInletObj)
	graph.RegisterFactory("outlet", newOutletObj)
}
