package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// symbolAtom holds and re-emits the last symbol it was sent, per the
// patch-file "#X symbolatom" GUI atom.
type symbolAtom struct {
	*graph.Base
	value string
}

func newSymbolAtom(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &symbolAtom{value: firstSymbol(init)}
	o.Base = graph.NewBase(o, "symbolatom", g, 1, 1, 0, 0)
	return o, nil
}

func (o *symbolAtom) ProcessMessage(inlet int, msg atom.Message) {
	if inlet != 0 {
		return
	}
	if msg.IsSymbolAt(0) {
		o.value = msg.SymbolAt(0)
	}
	o.SendMessage(0, atom.NewSymbolMessage(msg.Timestamp, o.value))
}

func init() {
	graph.RegisterFactory("symbolatom", newSymbolAtom)
}
