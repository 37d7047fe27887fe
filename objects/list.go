package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// listAppend appends its held tail atoms after the incoming list.
type listAppend struct {
	*graph.Base
	tail []atom.Atom
}

func newListAppend(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &listAppend{tail: append([]atom.Atom(nil), init.Atoms...)}
	o.Base = graph.NewBase(o, "append", g, 2, 1, 0, 0)
	return o, nil
}

func (o *listAppend) ProcessMessage(inlet int, msg atom.Message) {
	switch inlet {
	case 0:
		out := append(append([]atom.Atom(nil), msg.Atoms...), o.tail...)
		o.SendMessage(0, atom.Message{Timestamp: msg.Timestamp, Atoms: out})
	case 1:
		o.tail = append([]atom.Atom(nil), msg.Atoms...)
	}
}

// listPrepend prepends its held head atoms before the incoming list.
type listPrepend struct {
	*graph.Base
	head []atom.Atom
}

func newListPrepend(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &listPrepend{head: append([]atom.Atom(nil), init.Atoms...)}
	o.Base = graph.NewBase(o, "prepend", g, 2, 1, 0, 0)
	return o, nil
}

func (o *listPrepend) ProcessMessage(inlet int, msg atom.Message) {
	switch inlet {
	case 0:
		out := append(append([]atom.Atom(nil), o.head...), msg.Atoms...)
		o.SendMessage(0, atom.Message{Timestamp: msg.Timestamp, Atoms: out})
	case 1:
		o.head = append([]atom.Atom(nil), msg.Atoms...)
	}
}

// listSplit emits the atoms before index n out the left outlet and the
// atoms from n onward out the right outlet.
type listSplit struct {
	*graph.Base
	n int
}

func newListSplit(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &listSplit{n: int(firstFloat(init, 0))}
	o.Base = graph.NewBase(o, "split", g, 2, 2, 0, 0)
	return o, nil
}

func (o *listSplit) ProcessMessage(inlet int, msg atom.Message) {
	switch inlet {
	case 0:
		n := o.n
		if n > len(msg.Atoms) {
			n = len(msg.Atoms)
		}
		left := msg.Atoms[:n]
		right := msg.Atoms[n:]
		o.SendMessage(1, atom.Message{Timestamp: msg.Timestamp, Atoms: right})
		o.SendMessage(0, atom.Message{Timestamp: msg.Timestamp, Atoms: left})
	case 1:
		if msg.IsFloatAt(0) {
			o.n = int(msg.FloatAt(0))
		}
	}
}

// listTrim strips any enclosing list wrapper, passing atoms through
// unchanged (Pd's [trim] exists to normalize a one-element
// list into a bare atom for pattern matching; with pdrt's uniform
// atom.Message representation there is no wrapper to strip, so this is
// a pass-through retained for patch compatibility).
type listTrim struct{ *graph.Base }

func newListTrim(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &listTrim{}
	o.Base = graph.NewBase(o, "trim", g, 1, 1, 0, 0)
	return o, nil
}

func (o *listTrim) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 0 {
		o.SendMessage(0, msg)
	}
}

// listLength emits the atom count of an incoming list.
type listLength struct{ *graph.Base }

func newListLength(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &listLength{}
	o.Base = graph.NewBase(o, "length", g, 1, 1, 0, 0)
	return o, nil
}

func (o *listLength) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 0 {
		o.SendMessage(0, atom.NewFloatMessage(msg.Timestamp, float32(len(msg.Atoms))))
	}
}

func init() {
	graph.RegisterFactory("append", newListAppend)
	graph.RegisterFactory("prepend", newListPrepend)
	graph.RegisterFactory("split", newListSplit)
	graph.RegisterFactory("trim", newListTrim)
	graph.RegisterFactory("length", newListLength)
}
