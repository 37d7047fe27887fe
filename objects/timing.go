package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// delayTickOutlet is the reserved index delayObj, pipeObj, metroObj and
// lineObj schedule their internally-generated tick on. The scheduler
// delivers it through ReceiveMessage as an inlet index, so it is -1,
// which no patch connection can use: ReceiveMessage can route it to the
// tick handler without it ever being confused with a genuine inlet.
const delayTickOutlet = -1

// delayObj (Pd's [delay]/[del]) bangs its outlet delayMs after the last
// bang or float it received, restarting the timer on each trigger and
// retargeting the period via the right inlet. Implemented on top of
// graph.Scheduler's central priority queue plus object-specific
// handlers that re-schedule themselves.
type delayObj struct {
	*graph.Base
	delayMs float32
	pending graph.Handle
}

func newDelay(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &delayObj{delayMs: firstFloat(init, 0)}
	o.Base = graph.NewBase(o, "delay", g, 2, 1, 0, 0)
	return o, nil
}

// ReceiveMessage routes the internally-scheduled tick (delivered on
// delayTickOutlet) to fire() instead of letting it re-enter
// ProcessMessage and re-arm itself forever.
func (o *delayObj) ReceiveMessage(inlet int, msg atom.Message) {
	if inlet == delayTickOutlet {
		o.fire(msg.Timestamp)
		return
	}
	o.ProcessMessage(inlet, msg)
}

func (o *delayObj) fire(ts float64) {
	o.pending = nil
	o.SendMessage(0, atom.NewBangMessage(ts))
}

func (o *delayObj) ProcessMessage(inlet int, msg atom.Message) {
	switch inlet {
	case 0:
		if !msg.IsBangAt(0) && !msg.IsFloatAt(0) {
			return
		}
		o.cancelPending()
		delay := o.delayMs
		if msg.IsFloatAt(0) {
			delay = msg.FloatAt(0)
		}
		target := atom.NewBangMessage(msg.Timestamp + float64(delay))
		if s := o.Graph().Scheduler(); s != nil {
			o.pending = s.Schedule(o, delayTickOutlet, target)
		}
	case 1:
		if msg.IsFloatAt(0) {
			o.delayMs = msg.FloatAt(0)
		}
	}
}

func (o *delayObj) cancelPending() {
	if o.pending != nil {
		if s := o.Graph().Scheduler(); s != nil {
			s.Cancel(o.pending)
		}
		o.pending = nil
	}
}

// pipeObj (Pd's [pipe]) delays an arbitrary message (not just a bang)
// by a fixed period, retaining the original atoms.
type pipeObj struct {
	*graph.Base
	delayMs float32
}

func newPipe(g *graph.Graph, init atom.Message) (graph.Object, error) {
	delay := float32(0)
	if init.Len() > 0 && init.At(init.Len()-1).IsFloat() {
		delay = init.At(init.Len() - 1).Float
	}
	o := &pipeObj{delayMs: delay}
	o.Base = graph.NewBase(o, "pipe", g, 1, 1, 0, 0)
	return o, nil
}

// ReceiveMessage routes the internally-scheduled delayed delivery
// (on delayTickOutlet) straight to SendMessage instead of letting it
// re-enter ProcessMessage and get rescheduled a second time.
func (o *pipeObj) ReceiveMessage(inlet int, msg atom.Message) {
	if inlet == delayTickOutlet {
		o.SendMessage(0, msg)
		return
	}
	o.ProcessMessage(inlet, msg)
}

func (o *pipeObj) ProcessMessage(inlet int, msg atom.Message) {
	if inlet != 0 {
		return
	}
	if s := o.Graph().Scheduler(); s != nil {
		s.Schedule(o, delayTickOutlet, msg.WithTimestamp(msg.Timestamp+float64(o.delayMs)))
	}
}

// metroObj (Pd's [metro]) bangs its outlet every periodMs while
// running; a bang/1 on the left inlet starts it, 0 stops it.
type metroObj struct {
	*graph.Base
	periodMs float32
	running  bool
	pending  graph.Handle
}

func newMetro(g *graph.Graph, init atom.Message) (graph.Object, error) {
	period := firstFloat(init, 1000)
	if period <= 0 {
		period = 1
	}
	o := &metroObj{periodMs: period}
	o.Base = graph.NewBase(o, "metro", g, 2, 1, 0, 0)
	o.SetRoot(true) // metro generates events with no dataflow parent
	return o, nil
}

func (o *metroObj) ProcessMessage(inlet int, msg atom.Message) {
	switch inlet {
	case 0:
		start := msg.IsBangAt(0) || (msg.IsFloatAt(0) && msg.FloatAt(0) != 0)
		stop := msg.IsFloatAt(0) && msg.FloatAt(0) == 0
		switch {
		case stop:
			o.stop()
		case start:
			o.stop()
			o.running = true
			o.tick(msg.Timestamp)
		}
	case 1:
		if msg.IsFloatAt(0) && msg.FloatAt(0) > 0 {
			o.periodMs = msg.FloatAt(0)
		}
	}
}

func (o *metroObj) tick(ts float64) {
	o.SendMessage(0, atom.NewBangMessage(ts))
	if !o.running {
		return
	}
	if s := o.Graph().Scheduler(); s != nil {
		o.pending = s.Schedule(o, delayTickOutlet, atom.NewBangMessage(ts+float64(o.periodMs)))
	}
}

// ReceiveMessage overrides Base's default so the internal self-bang
// scheduled on delayTickOutlet re-fires the metronome instead of being
// handled as a message on a real inlet.
func (o *metroObj) ReceiveMessage(inlet int, msg atom.Message) {
	if inlet == delayTickOutlet {
		if o.running {
			o.tick(msg.Timestamp)
		}
		return
	}
	o.ProcessMessage(inlet, msg)
}

func (o *metroObj) stop() {
	o.running = false
	if o.pending != nil {
		if s := o.Graph().Scheduler(); s != nil {
			s.Cancel(o.pending)
		}
		o.pending = nil
	}
}

// timerObj (Pd's [timer]) reports the elapsed time in ms between a
// bang on its left (start) inlet and a bang on its right (stop) inlet.
type timerObj struct {
	*graph.Base
	startTs float64
}

func newTimer(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &timerObj{}
	o.Base = graph.NewBase(o, "timer", g, 2, 1, 0, 0)
	return o, nil
}

func (o *timerObj) ProcessMessage(inlet int, msg atom.Message) {
	switch inlet {
	case 0:
		if msg.IsBangAt(0) {
			o.startTs = msg.Timestamp
		}
	case 1:
		if msg.IsBangAt(0) {
			o.SendMessage(0, atom.NewFloatMessage(msg.Timestamp, float32(msg.Timestamp-o.startTs)))
		}
	}
}

func init() {
	graph.RegisterFactory("delay", newDelay)
	graph.RegisterFactory("del", newDelay)
	graph.RegisterFactory("pipe", newPipe)
	graph.RegisterFactory("metro", newMetro)
	graph.RegisterFactory("timer", newTimer)
}
