package objects

import (
	"math"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// mathFunc implements the trigonometric/logarithmic message-rate
// function family: sin, cos, tan, atan, exp, log, sqrt, abs, pow.
type mathFunc struct {
	*graph.Base
	apply func(a, b float32) float32
	arg2  float32 // used by pow
}

func newMathFunc(label string, apply func(a, b float32) float32) graph.Constructor {
	return func(g *graph.Graph, init atom.Message) (graph.Object, error) {
		o := &mathFunc{apply: apply, arg2: firstFloat(init, 0)}
		o.Base = graph.NewBase(o, label, g, 2, 1, 0, 0)
		return o, nil
	}
}

func (o *mathFunc) ProcessMessage(inlet int, msg atom.Message) {
	switch inlet {
	case 0:
		if msg.IsFloatAt(0) {
			o.SendMessage(0, atom.NewFloatMessage(msg.Timestamp, o.apply(msg.FloatAt(0), o.arg2)))
		}
	case 1:
		if msg.IsFloatAt(0) {
			o.arg2 = msg.FloatAt(0)
		}
	}
}

func unary(f func(float64) float64) func(a, b float32) float32 {
	return func(a, b float32) float32 { return float32(f(float64(a))) }
}

func init() {
	graph.RegisterFactory("sin", newMathFunc("sin", unary(math.Sin)))
	graph.RegisterFactory("cos", newMathFunc("cos", unary(math.Cos)))
	graph.RegisterFactory("tan", newMathFunc("tan", unary(math.Tan)))
	graph.RegisterFactory("atan", newMathFunc("atan", unary(math.Atan)))
	graph.RegisterFactory("exp", newMathFunc("exp", unary(math.Exp)))
	graph.RegisterFactory("log", newMathFunc("log", unary(math.Log)))
	graph.RegisterFactory("sqrt", newMathFunc("sqrt", unary(math.Sqrt)))
	graph.RegisterFactory("abs", newMathFunc("abs", unary(math.Abs)))
	graph.RegisterFactory("pow", newMathFunc("pow", func(a, b float32) float32 {
		return float32(math.Pow(float64(a), float64(b)))
	}))
}
