package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// trigger fans a single incoming message out to N outlets, each
// coerced to its declared type, in strict right-to-left order (Pd's
// well-known evaluation order guarantee, preserved here since
// downstream objects may depend on it for sequencing side effects).
type trigger struct {
	*graph.Base
	kinds []atom.Kind
}

func newTrigger(g *graph.Graph, init atom.Message) (graph.Object, error) {
	var kinds []atom.Kind
	for _, a := range init.Atoms {
		switch a.Symbol {
		case "f", "float":
			kinds = append(kinds, atom.KindFloat)
		case "s", "symbol":
			kinds = append(kinds, atom.KindSymbol)
		case "b", "bang":
			kinds = append(kinds, atom.KindBang)
		default:
			kinds = append(kinds, atom.KindAny)
		}
	}
	if len(kinds) == 0 {
		kinds = []atom.Kind{atom.KindBang, atom.KindBang}
	}
	o := &trigger{kinds: kinds}
	o.Base = graph.NewBase(o, "trigger", g, 1, len(kinds), 0, 0)
	return o, nil
}

func (o *trigger) ProcessMessage(inlet int, msg atom.Message) {
	if inlet != 0 {
		return
	}
	for i := len(o.kinds) - 1; i >= 0; i-- {
		out := coerce(msg, o.kinds[i])
		o.SendMessage(i, out)
	}
}

func coerce(msg atom.Message, k atom.Kind) atom.Message {
	switch k {
	case atom.KindBang:
		return atom.NewBangMessage(msg.Timestamp)
	case atom.KindFloat:
		return atom.NewFloatMessage(msg.Timestamp, msg.FloatAt(0))
	case atom.KindSymbol:
		return atom.NewSymbolMessage(msg.Timestamp, msg.SymbolAt(0))
	default:
		return msg
	}
}

// selectObj ("select"/"sel") compares the incoming float against each
// of its held match values, banging the corresponding outlet and
// swallowing the message; an extra last outlet passes through anything
// that matched nothing.
type selectObj struct {
	*graph.Base
	matches []float32
}

func newSelect(g *graph.Graph, init atom.Message) (graph.Object, error) {
	var matches []float32
	for _, a := range init.Atoms {
		if a.IsFloat() {
			matches = append(matches, a.Float)
		}
	}
	if len(matches) == 0 {
		matches = []float32{0}
	}
	o := &selectObj{matches: matches}
	o.Base = graph.NewBase(o, "select", g, 1, len(matches)+1, 0, 0)
	return o, nil
}

func (o *selectObj) ProcessMessage(inlet int, msg atom.Message) {
	if inlet != 0 || !msg.IsFloatAt(0) {
		return
	}
	v := msg.FloatAt(0)
	for i, m := range o.matches {
		if v == m {
			o.SendMessage(i, atom.NewBangMessage(msg.Timestamp))
			return
		}
	}
	o.SendMessage(len(o.matches), msg)
}

// route dispatches a list whose first atom matches one of the held
// symbols to the corresponding outlet (with that atom stripped), or to
// the final reject outlet unchanged.
type route struct {
	*graph.Base
	keys []string
}

func newRoute(g *graph.Graph, init atom.Message) (graph.Object, error) {
	var keys []string
	for _, a := range init.Atoms {
		if a.IsSymbol() {
			keys = append(keys, a.Symbol)
		}
	}
	o := &route{keys: keys}
	o.Base = graph.NewBase(o, "route", g, 1, len(keys)+1, 0, 0)
	return o, nil
}

func (o *route) ProcessMessage(inlet int, msg atom.Message) {
	if inlet != 0 {
		return
	}
	if msg.IsSymbolAt(0) {
		for i, k := range o.keys {
			if msg.SymbolAt(0) == k {
				o.SendMessage(i, atom.Message{Timestamp: msg.Timestamp, Atoms: msg.Atoms[1:]})
				return
			}
		}
	}
	o.SendMessage(len(o.keys), msg)
}

// moses splits a float stream at a threshold: values < threshold exit
// the left outlet, values >= threshold exit the right outlet.
type moses struct {
	*graph.Base
	threshold float32
}

func newMoses(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &moses{threshold: firstFloat(init, 0)}
	o.Base = graph.NewBase(o, "moses", g, 2, 2, 0, 0)
	return o, nil
}

func (o *moses) ProcessMessage(inlet int, msg atom.Message) {
	switch inlet {
	case 0:
		if !msg.IsFloatAt(0) {
			return
		}
		if msg.FloatAt(0) < o.threshold {
			o.SendMessage(0, msg)
		} else {
			o.SendMessage(1, msg)
		}
	case 1:
		if msg.IsFloatAt(0) {
			o.threshold = msg.FloatAt(0)
		}
	}
}

// spigot gates its left-inlet stream through to the outlet only while
// the right inlet holds a nonzero value.
type spigot struct {
	*graph.Base
	open bool
}

func newSpigot(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &spigot{open: firstFloat(init, 0) != 0}
	o.Base = graph.NewBase(o, "spigot", g, 2, 1, 0, 0)
	return o, nil
}

func (o *spigot) ProcessMessage(inlet int, msg atom.Message) {
	switch inlet {
	case 0:
		if o.open {
			o.SendMessage(0, msg)
		}
	case 1:
		if msg.IsFloatAt(0) {
			o.open = msg.FloatAt(0) != 0
		}
	}
}

// change suppresses repeats: only emits when the incoming float differs
// from the last one emitted.
type change struct {
	*graph.Base
	last    float32
	hasLast bool
}

func newChange(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &change{}
	o.Base = graph.NewBase(o, "change", g, 1, 1, 0, 0)
	return o, nil
}

func (o *change) ProcessMessage(inlet int, msg atom.Message) {
	if inlet != 0 || !msg.IsFloatAt(0) {
		return
	}
	v := msg.FloatAt(0)
	if o.hasLast && v == o.last {
		return
	}
	o.last, o.hasLast = v, true
	o.SendMessage(0, msg)
}

func init() {
	graph.RegisterFactory("trigger", newTrigger)
	graph.RegisterFactory("t", newTrigger)
	graph.RegisterFactory("select", newSelect)
	graph.RegisterFactory("sel", newSelect)
	graph.RegisterFactory("route", newRoute)
	graph.RegisterFactory("moses", newMoses)
	graph.RegisterFactory("spigot", newSpigot)
	graph.RegisterFactory("change", newChange)
}
