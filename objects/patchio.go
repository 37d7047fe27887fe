package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// printObj (print) surfaces whatever arrives on its inlet through the
// engine's diagnostics sink, prefixed by its creation-arg label if one
// was given.
type printObj struct {
	*graph.Base
	label string
}

func newPrint(g *graph.Graph, init atom.Message) (graph.Object, error) {
	label := firstSymbol(init)
	if label == "" {
		label = "print"
	}
	o := &printObj{label: label}
	o.Base = graph.NewBase(o, "print", g, 1, 0, 0, 0)
	o.SetLeaf(true)
	return o, nil
}

func (o *printObj) ProcessMessage(inlet int, msg atom.Message) {
	if inlet != 0 {
		return
	}
	registryOf(o.Graph()).Diag().Infof("%s: %s", o.label, msg.String())
}

// loadbangObj (loadbang) fires a single bang once, the instant the
// patch has finished loading. The engine drives this by sending each
// top-level loadbang a bang stamped with the current block-start
// timestamp when the graph is attached, rather than loadbangObj
// scheduling itself.
type loadbangObj struct{ *graph.Base }

func newLoadbang(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &loadbangObj{}
	o.Base = graph.NewBase(o, "loadbang", g, 1, 1, 0, 0)
	o.SetRoot(true)
	return o, nil
}

func (o *loadbangObj) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 0 && msg.IsBangAt(0) {
		o.SendMessage(0, msg)
	}
}

func init() {
	graph.RegisterFactory("print", newPrint)
	graph.RegisterFactory("loadbang", newLoadbang)
}
