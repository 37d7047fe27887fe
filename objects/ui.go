package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// uiScalar implements the scalar GUI atoms that are modelled as numeric
// or bang sources: toggle, number box ("float"), hsl/vsl sliders. A
// bang or float in retriggers the held value out the single outlet.
type uiScalar struct {
	*graph.Base
	value  float32
	toggle bool // true for [tgl]: alternates between 0 and `on`
	on     float32
}

func newUIScalar(label string, toggle bool) graph.Constructor {
	return func(g *graph.Graph, init atom.Message) (graph.Object, error) {
		o := &uiScalar{toggle: toggle, on: 1, value: firstFloat(init, 0)}
		o.Base = graph.NewBase(o, label, g, 1, 1, 0, 0)
		return o, nil
	}
}

func (o *uiScalar) ProcessMessage(inlet int, msg atom.Message) {
	if inlet != 0 {
		return
	}
	switch {
	case msg.IsFloatAt(0):
		o.value = msg.FloatAt(0)
	case msg.IsBangAt(0):
		if o.toggle {
			if o.value == 0 {
				o.value = o.on
			} else {
				o.value = 0
			}
		}
	default:
		return
	}
	o.SendMessage(0, atom.NewFloatMessage(msg.Timestamp, o.value))
}

// bng is a bang button: any input re-emits a bang.
type bng struct{ *graph.Base }

func newBng(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &bng{}
	o.Base = graph.NewBase(o, "bng", g, 1, 1, 0, 0)
	return o, nil
}

func (o *bng) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 0 {
		o.SendMessage(0, atom.NewBangMessage(msg.Timestamp))
	}
}

func init() {
	graph.RegisterFactory("tgl", newUIScalar("tgl", true))
	graph.RegisterFactory("hsl", newUIScalar("hsl", false))
	graph.RegisterFactory("vsl", newUIScalar("vsl", false))
	graph.RegisterFactory("nbx", newUIScalar("nbx", false))
	graph.RegisterFactory("floatatom", newUIScalar("floatatom", false))
	graph.RegisterFactory("float", newUIScalar("float", false))
	graph.RegisterFactory("bng", newBng)
}
