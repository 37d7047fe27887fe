// Package atom defines the value types exchanged between objects in a
// patch graph: the tagged Atom and the timestamped Message built from a
// sequence of atoms.
package atom

import (
	"fmt"
	"math"
)

// Kind tags the type carried by an Atom.
type Kind int

const (
	// KindFloat holds a 32-bit float payload.
	KindFloat Kind = iota
	// KindSymbol holds an interned string payload.
	KindSymbol
	// KindBang carries no payload; it signals "do the default thing now".
	KindBang
	// KindAny is an untyped passthrough atom used by "any"-typed inlets.
	KindAny
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindSymbol:
		return "symbol"
	case KindBang:
		return "bang"
	case KindAny:
		return "any"
	default:
		return "unknown"
	}
}

// Atom is a single typed value inside a Message.
type Atom struct {
	Kind   Kind
	Float  float32
	Symbol string
}

// Float returns a float atom.
func Float(v float32) Atom { return Atom{Kind: KindFloat, Float: v} }

// Symbol returns an interned-symbol atom. Interning itself is handled by
// the symbol table (see Intern); this constructor just tags the value.
func Symbol(s string) Atom { return Atom{Kind: KindSymbol, Symbol: s} }

// Bang returns a bang atom.
func Bang() Atom { return Atom{Kind: KindBang} }

// IsFloat reports whether the atom carries a float.
func (a Atom) IsFloat() bool { return a.Kind == KindFloat }

// IsSymbol reports whether the atom carries a symbol.
func (a Atom) IsSymbol() bool { return a.Kind == KindSymbol }

// IsBang reports whether the atom is a bang.
func (a Atom) IsBang() bool { return a.Kind == KindBang }

func (a Atom) String() string {
	switch a.Kind {
	case KindFloat:
		return formatFloat(a.Float)
	case KindSymbol:
		return a.Symbol
	case KindBang:
		return "bang"
	default:
		return "<any>"
	}
}

func formatFloat(v float32) string {
	if v == float32(math.Trunc(float64(v))) && math.Abs(float64(v)) < 1e9 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// Message is an ordered vector of atoms stamped with a delivery time in
// milliseconds since the engine epoch. Messages are ordinary value types;
// Copy produces the heap-allocated variant used for deferred queued
// delivery (see schedule.Queue).
type Message struct {
	Timestamp float64
	Atoms     []Atom
}

// NewMessage builds a message from the given atoms at timestamp ts.
func NewMessage(ts float64, atoms ...Atom) Message {
	return Message{Timestamp: ts, Atoms: atoms}
}

// NewBangMessage is shorthand for a single-atom bang message.
func NewBangMessage(ts float64) Message {
	return Message{Timestamp: ts, Atoms: []Atom{Bang()}}
}

// NewFloatMessage is shorthand for a single-atom float message.
func NewFloatMessage(ts float64, v float32) Message {
	return Message{Timestamp: ts, Atoms: []Atom{Float(v)}}
}

// NewSymbolMessage is shorthand for a single-atom symbol message.
func NewSymbolMessage(ts float64, s string) Message {
	return Message{Timestamp: ts, Atoms: []Atom{Symbol(s)}}
}

// Len returns the number of atoms.
func (m Message) Len() int { return len(m.Atoms) }

// At returns the atom at index i, or the zero Atom (KindAny) if out of range.
func (m Message) At(i int) Atom {
	if i < 0 || i >= len(m.Atoms) {
		return Atom{Kind: KindAny}
	}
	return m.Atoms[i]
}

// IsFloatAt reports whether the atom at index i is a float.
func (m Message) IsFloatAt(i int) bool { return m.At(i).IsFloat() }

// IsSymbolAt reports whether the atom at index i is a symbol.
func (m Message) IsSymbolAt(i int) bool { return m.At(i).IsSymbol() }

// IsBangAt reports whether the atom at index i is a bang.
func (m Message) IsBangAt(i int) bool { return m.At(i).IsBang() }

// FloatAt returns the float value at index i, or 0 if not a float.
func (m Message) FloatAt(i int) float32 {
	a := m.At(i)
	if a.Kind == KindFloat {
		return a.Float
	}
	return 0
}

// SymbolAt returns the symbol value at index i, or "" if not a symbol.
func (m Message) SymbolAt(i int) string {
	a := m.At(i)
	if a.Kind == KindSymbol {
		return a.Symbol
	}
	return ""
}

// Copy returns an independent heap copy of the message, safe to retain
// after the caller's stack frame returns (used when a message is queued
// for deferred delivery).
func (m Message) Copy() Message {
	cp := make([]Atom, len(m.Atoms))
	copy(cp, m.Atoms)
	return Message{Timestamp: m.Timestamp, Atoms: cp}
}

// WithTimestamp returns a copy of the message stamped at ts.
func (m Message) WithTimestamp(ts float64) Message {
	return Message{Timestamp: ts, Atoms: m.Atoms}
}

func (m Message) String() string {
	s := "["
	for i, a := range m.Atoms {
		if i > 0 {
			s += " "
		}
		s += a.String()
	}
	return s + "]"
}

// BlockIndexOf returns the integer sample index, within a block that
// starts at blockStartTimestamp and runs at sampleRate samples/ms
// (sampleRate in Hz, so samples/ms = sampleRate/1000), at which this
// message falls. Used by sample-accurate signal inlets (*~, /~, sig~,
// line~) to split process_dsp around the message's arrival time.
func (m Message) BlockIndexOf(blockStartTimestamp float64, sampleRate float64) int {
	elapsedMs := m.Timestamp - blockStartTimestamp
	if elapsedMs <= 0 {
		return 0
	}
	idx := int(elapsedMs * sampleRate / 1000.0)
	return idx
}
