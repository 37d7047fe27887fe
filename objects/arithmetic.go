package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// binOp is a message-rate binary scalar operator (+, -, *, /, and the
// comparisons). The left inlet (0) triggers output; the right inlet
// (1) retargets the held constant.
type binOp struct {
	*graph.Base
	constant float32
	apply    func(a, b float32) float32
}

func newBinOp(label string, apply func(a, b float32) float32) graph.Constructor {
	return func(g *graph.Graph, init atom.Message) (graph.Object, error) {
		o := &binOp{apply: apply, constant: firstFloat(init, 0)}
		o.Base = graph.NewBase(o, label, g, 2, 1, 0, 0)
		return o, nil
	}
}

func (o *binOp) ProcessMessage(inlet int, msg atom.Message) {
	switch inlet {
	case 0:
		if msg.IsFloatAt(0) {
			result := o.apply(msg.FloatAt(0), o.constant)
			o.SendMessage(0, atom.NewFloatMessage(msg.Timestamp, result))
		} else if msg.IsBangAt(0) {
			result := o.apply(0, o.constant)
			o.SendMessage(0, atom.NewFloatMessage(msg.Timestamp, result))
		}
	case 1:
		if msg.IsFloatAt(0) {
			o.constant = msg.FloatAt(0)
		}
	}
}

func init() {
	graph.RegisterFactory("+", newBinOp("+", func(a, b float32) float32 { return a + b }))
	graph.RegisterFactory("-", newBinOp("-", func(a, b float32) float32 { return a - b }))
	graph.RegisterFactory("*", newBinOp("*", func(a, b float32) float32 { return a * b }))
	// Divide by zero yields 0.
	graph.RegisterFactory("/", newBinOp("/", func(a, b float32) float32 {
		if b == 0 {
			return 0
		}
		return a / b
	}))
	graph.RegisterFactory(">", newBinOp(">", boolF(func(a, b float32) bool { return a > b })))
	graph.RegisterFactory("<", newBinOp("<", boolF(func(a, b float32) bool { return a < b })))
	graph.RegisterFactory(">=", newBinOp(">=", boolF(func(a, b float32) bool { return a >= b })))
	graph.RegisterFactory("<=", newBinOp("<=", boolF(func(a, b float32) bool { return a <= b })))
	graph.RegisterFactory("==", newBinOp("==", boolF(func(a, b float32) bool { return a == b })))
	graph.RegisterFactory("!=", newBinOp("!=", boolF(func(a, b float32) bool { return a != b })))
}

func boolF(pred func(a, b float32) bool) func(a, b float32) float32 {
	return func(a, b float32) float32 {
		if pred(a, b) {
			return 1
		}
		return 0
	}
}
