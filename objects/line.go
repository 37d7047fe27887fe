package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// lineGrainMs is the tick interval [line] uses to approximate a
// continuous ramp with discrete scheduled messages.
const lineGrainMs = 20.0

// lineObj (Pd's [line]) ramps its outlet from its current value to a
// target over a duration, emitting intermediate values on a fixed grain
// via the scheduler. A bare float with no duration jumps immediately.
type lineObj struct {
	*graph.Base
	value              float32
	target             float32
	startTs            float64
	durationMs         float64
	anchor             float32
	pending            graph.Handle
}

func newLine(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &lineObj{value: firstFloat(init, 0)}
	o.Base = graph.NewBase(o, "line", g, 2, 1, 0, 0)
	return o, nil
}

func (o *lineObj) ProcessMessage(inlet int, msg atom.Message) {
	if inlet != 0 || !msg.IsFloatAt(0) {
		return
	}
	o.cancelPending()
	o.target = msg.FloatAt(0)
	o.startTs = msg.Timestamp
	if msg.Len() >= 2 && msg.IsFloatAt(1) {
		o.durationMs = float64(msg.FloatAt(1))
	} else {
		o.durationMs = 0
	}
	if o.durationMs <= 0 {
		o.value = o.target
		o.SendMessage(0, atom.NewFloatMessage(msg.Timestamp, o.value))
		return
	}
	o.scheduleTick(msg.Timestamp)
}

func (o *lineObj) scheduleTick(now float64) {
	s := o.Graph().Scheduler()
	if s == nil {
		return
	}
	o.pending = s.Schedule(o, delayTickOutlet, atom.NewBangMessage(now+lineGrainMs))
}

// ReceiveMessage handles the internally-scheduled ramp tick on
// delayTickOutlet (never used by patch connections) in addition to
// normal inlet delivery.
func (o *lineObj) ReceiveMessage(inlet int, msg atom.Message) {
	if inlet == delayTickOutlet {
		o.tick(msg.Timestamp)
		return
	}
	o.ProcessMessage(inlet, msg)
}

func (o *lineObj) tick(now float64) {
	elapsed := now - o.startTs
	if elapsed >= o.durationMs {
		o.value = o.target
		o.SendMessage(0, atom.NewFloatMessage(now, o.value))
		return
	}
	frac := elapsed / o.durationMs
	initial := o.valueAtStart()
	o.value = initial + (o.target-initial)*float32(frac)
	o.SendMessage(0, atom.NewFloatMessage(now, o.value))
	o.scheduleTick(now)
}

// valueAtStart recovers the ramp's starting value; stored separately so
// repeated ticks interpolate from a fixed anchor rather than drifting.
func (o *lineObj) valueAtStart() float32 { return o.anchor }

func (o *lineObj) cancelPending() {
	if o.pending != nil {
		if s := o.Graph().Scheduler(); s != nil {
			s.Cancel(o.pending)
		}
		o.pending = nil
	}
	o.anchor = o.value
}

// lineSignalObj (Pd's [line~]) is line's signal-rate counterpart: a
// ramp computed sample-by-sample in ProcessDSP rather than approximated
// by scheduled ticks. A float/duration message arriving mid-block
// splits process_dsp at the message's exact sample index, the same
// pre-split/continue pattern sig~ and the signal-rate arithmetic family
// use to retarget their own constants mid-block.
type lineSignalObj struct {
	*graph.Base
	value               float32
	target              float32
	incPerSample        float64
	remaining           int
	blockIndexOfLastMsg int
}

func newLineSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &lineSignalObj{value: firstFloat(init, 0)}
	o.target = o.value
	o.Base = graph.NewBase(o, "line~", g, 1, 0, 0, 1)
	return o, nil
}

// ReceiveMessage intercepts a retarget message to split process_dsp at
// the exact sample it arrives on, the way sigSignal.ReceiveMessage does.
func (o *lineSignalObj) ReceiveMessage(inlet int, msg atom.Message) {
	if inlet != 0 || !msg.IsFloatAt(0) {
		o.Base.ReceiveMessage(inlet, msg)
		return
	}
	idx := msg.BlockIndexOf(o.Graph().BlockStartHint(), o.Graph().SampleRate())
	o.runTo(idx)

	o.target = msg.FloatAt(0)
	var durationMs float64
	if msg.Len() >= 2 && msg.IsFloatAt(1) {
		durationMs = float64(msg.FloatAt(1))
	}
	if durationMs <= 0 {
		o.value = o.target
		o.incPerSample = 0
		o.remaining = 0
	} else {
		sr := o.Graph().SampleRate()
		o.remaining = int(durationMs * sr / 1000.0)
		if o.remaining <= 0 {
			o.value = o.target
			o.incPerSample = 0
		} else {
			o.incPerSample = (float64(o.target) - float64(o.value)) / float64(o.remaining)
		}
	}
	o.blockIndexOfLastMsg = idx
}

// runTo fills the outlet buffer from blockIndexOfLastMsg up to
// blockIndex (clamped to the buffer length) with the running ramp,
// advancing value/remaining one sample at a time so a later split
// within the same block continues exactly where this one left off.
func (o *lineSignalObj) runTo(blockIndex int) {
	out := o.SignalOutletBuffer(0).Samples
	end := blockIndex
	if end > len(out) {
		end = len(out)
	}
	for i := o.blockIndexOfLastMsg; i < end; i++ {
		out[i] = o.value
		if o.remaining > 0 {
			o.value += float32(o.incPerSample)
			o.remaining--
			if o.remaining == 0 {
				o.value = o.target
				o.incPerSample = 0
			}
		}
	}
}

func (o *lineSignalObj) ProcessDSP() {
	o.runTo(len(o.SignalOutletBuffer(0).Samples))
	o.blockIndexOfLastMsg = 0
}

func init() {
	graph.RegisterFactory("line", newLine)
	graph.RegisterFactory("line~", newLineSignal)
}
