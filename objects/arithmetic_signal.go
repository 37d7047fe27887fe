package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// signalBinOp implements the signal-rate arithmetic family (+~, -~,
// *~, /~). The right inlet
// either carries a live signal (once something has actually connected
// to it) or a scalar constant retargeted by float messages, and a
// float message arriving mid-block splits process_dsp so everything
// before the message's sample index uses the pre-message constant
//.
type signalBinOp struct {
	*graph.Base
	apply             func(a, b float32) float32
	constant          float32
	rightIsSignal     bool
	blockIndexOfLastMsg int
}

func newSignalBinOp(label string, apply func(a, b float32) float32) graph.Constructor {
	return func(g *graph.Graph, init atom.Message) (graph.Object, error) {
		o := &signalBinOp{apply: apply, constant: firstFloat(init, 0)}
		o.Base = graph.NewBase(o, label, g, 1, 0, 2, 1)
		return o, nil
	}
}

// BindSignalInlet overrides Base's to additionally notice that inlet 1
// has been wired to a real producer (as opposed to the default silence
// buffer assigned at construction).
func (o *signalBinOp) BindSignalInlet(inlet int, buf *graph.Buffer) {
	o.Base.BindSignalInlet(inlet, buf)
	if inlet == 1 {
		o.rightIsSignal = true
	}
}

func (o *signalBinOp) ReceiveMessage(inlet int, msg atom.Message) {
	if inlet == 0 || o.rightIsSignal || !msg.IsFloatAt(0) {
		o.ProcessMessage(inlet, msg)
		return
	}
	// Sample-accurate retarget: finish the block up to the message's
	// arrival sample with the old constant before adopting the new one.
	idx := msg.BlockIndexOf(blockStartOf(o.Graph()), o.Graph().SampleRate())
	o.runTo(idx)
	o.constant = msg.FloatAt(0)
	o.blockIndexOfLastMsg = idx
}

// blockStartOf returns the graph's block-start hint, which
// schedule.Scheduler.Advance keeps set to the start of the block being
// (or about to be) processed. Objects only need the relative offset,
// which BlockIndexOf computes from msg.Timestamp minus this block
// start; reading it from the graph means object code never has to
// import engine (which would cycle).
func blockStartOf(g *graph.Graph) float64 { return g.BlockStartHint() }

func (o *signalBinOp) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 1 && msg.IsFloatAt(0) && !o.rightIsSignal {
		o.constant = msg.FloatAt(0)
	}
}

func (o *signalBinOp) runTo(blockIndex int) {
	out := o.SignalOutletBuffer(0).Samples
	left := o.SignalInletBuffer(0).Samples
	start := o.blockIndexOfLastMsg
	if start < 0 {
		start = 0
	}
	end := blockIndex
	if end > len(out) {
		end = len(out)
	}
	for i := start; i < end; i++ {
		out[i] = o.apply(left[i], o.constant)
	}
}

// ProcessDSP computes the remainder of the block (from
// blockIndexOfLastMsg to the end) with the current constant/signal,
// then resets blockIndexOfLastMsg for the next block.
func (o *signalBinOp) ProcessDSP() {
	out := o.SignalOutletBuffer(0).Samples
	left := o.SignalInletBuffer(0).Samples
	if o.rightIsSignal {
		right := o.SignalInletBuffer(1).Samples
		for i := range out {
			out[i] = o.apply(left[i], right[i])
		}
		o.blockIndexOfLastMsg = 0
		return
	}
	start := o.blockIndexOfLastMsg
	for i := start; i < len(out); i++ {
		out[i] = o.apply(left[i], o.constant)
	}
	o.blockIndexOfLastMsg = 0
}

func init() {
	graph.RegisterFactory("+~", newSignalBinOp("+~", func(a, b float32) float32 { return a + b }))
	graph.RegisterFactory("-~", newSignalBinOp("-~", func(a, b float32) float32 { return a - b }))
	graph.RegisterFactory("*~", newSignalBinOp("*~", func(a, b float32) float32 { return a * b }))
	graph.RegisterFactory("/~", newSignalBinOp("/~", func(a, b float32) float32 {
		if b == 0 {
			return 0
		}
		return a / b
	}))
}
