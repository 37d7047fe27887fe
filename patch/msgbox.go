package patch

import (
	"strconv"
	"strings"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// msgBox implements a Pd message box ("#X msg x y atoms…"): any
// message arriving on its one inlet re-emits the literal atom list it
// was constructed with, substituting "$1".."$n" fields against the
// atoms of the *triggering* message (Pd's own message-box semantics),
// yielding an untyped (KindAny) zero atom if the trigger has too few
// atoms.
type msgBox struct {
	*graph.Base
	template []atom.Atom
}

func newMsgBox(g *graph.Graph, fields []string) graph.Object {
	o := &msgBox{template: parseAtoms(fields)}
	o.Base = graph.NewBase(o, "msg", g, 1, 1, 0, 0)
	return o
}

func (o *msgBox) ProcessMessage(inlet int, trigger atom.Message) {
	if inlet != 0 {
		return
	}
	out := make([]atom.Atom, len(o.template))
	for i, a := range o.template {
		if a.IsSymbol() && strings.HasPrefix(a.Symbol, "$") {
			if n, err := strconv.Atoi(a.Symbol[1:]); err == nil && n >= 1 {
				out[i] = trigger.At(n - 1)
				continue
			}
		}
		out[i] = a
	}
	o.SendMessage(0, atom.Message{Timestamp: trigger.Timestamp, Atoms: out})
}

// parseAtoms converts raw text fields into typed atoms: numeric fields
// become floats, everything else (including unresolved "$n" fields,
// resolved later per-trigger by ProcessMessage) becomes a symbol.
func parseAtoms(fields []string) []atom.Atom {
	atoms := make([]atom.Atom, len(fields))
	for i, f := range fields {
		if v, err := strconv.ParseFloat(f, 32); err == nil {
			atoms[i] = atom.Float(float32(v))
		} else {
			atoms[i] = atom.Symbol(f)
		}
	}
	return atoms
}
