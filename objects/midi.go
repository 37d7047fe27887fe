package objects

import (
	"fmt"
	"math"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// notein emits note number out the left outlet and velocity out the
// right outlet whenever the host injects a MIDI note via
// engine.Context.SendMIDINote. With a channel argument (0-15) it
// subscribes to that channel's routing name only; with none, it
// subscribes to the omni name and hears every channel.
type notein struct{ *graph.Base }

func newNotein(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &notein{}
	o.Base = graph.NewBase(o, "notein", g, 1, 2, 0, 0)
	o.SetRoot(true)
	name := "pdrt_notein_omni"
	if init.Len() > 0 && init.IsFloatAt(0) {
		name = fmt.Sprintf("pdrt_notein_%d", int(init.FloatAt(0)))
	}
	registryOf(g).Messages().Subscribe(name, o)
	return o, nil
}

// Deliver expects a 2-atom [note velocity] message, as sent by the
// MIDI routing table (see engine.Context.SendMIDINote).
func (o *notein) Deliver(msg atom.Message) {
	if msg.Len() < 2 {
		return
	}
	o.SendMessage(1, atom.NewFloatMessage(msg.Timestamp, msg.FloatAt(1)))
	o.SendMessage(0, atom.NewFloatMessage(msg.Timestamp, msg.FloatAt(0)))
}

// stripnote passes through note numbers with velocity > 0 (note-on) and
// drops note-off (velocity 0) messages.
type stripnote struct{ *graph.Base }

func newStripnote(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &stripnote{}
	o.Base = graph.NewBase(o, "stripnote", g, 2, 1, 0, 0)
	return o, nil
}

func (o *stripnote) ProcessMessage(inlet int, msg atom.Message) {
	if inlet != 0 {
		return
	}
	if msg.Len() >= 2 && msg.IsFloatAt(1) && msg.FloatAt(1) == 0 {
		return
	}
	o.SendMessage(0, atom.NewFloatMessage(msg.Timestamp, msg.FloatAt(0)))
}

// mtof converts a MIDI note number to frequency in Hz (A440 = note 69).
type mtof struct{ *graph.Base }

func newMtof(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &mtof{}
	o.Base = graph.NewBase(o, "mtof", g, 1, 1, 0, 0)
	return o, nil
}

func (o *mtof) ProcessMessage(inlet int, msg atom.Message) {
	if inlet != 0 || !msg.IsFloatAt(0) {
		return
	}
	freq := 440.0 * math.Pow(2.0, (float64(msg.FloatAt(0))-69.0)/12.0)
	o.SendMessage(0, atom.NewFloatMessage(msg.Timestamp, float32(freq)))
}

// ftom is mtof's inverse: frequency in Hz to a MIDI note number.
type ftom struct{ *graph.Base }

func newFtom(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &ftom{}
	o.Base = graph.NewBase(o, "ftom", g, 1, 1, 0, 0)
	return o, nil
}

func (o *ftom) ProcessMessage(inlet int, msg atom.Message) {
	if inlet != 0 || !msg.IsFloatAt(0) || msg.FloatAt(0) <= 0 {
		return
	}
	note := 69.0 + 12.0*math.Log2(float64(msg.FloatAt(0))/440.0)
	o.SendMessage(0, atom.NewFloatMessage(msg.Timestamp, float32(note)))
}

func init() {
	graph.RegisterFactory("notein", newNotein)
	graph.RegisterFactory("stripnote", newStripnote)
	graph.RegisterFactory("mtof", newMtof)
	graph.RegisterFactory("ftom", newFtom)
}
