package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
	"github.com/pdrt/pdrt/registry"
)

// noopDiag discards every diagnostic; fine for tests that don't assert
// on the error/log channel.
type noopDiag struct{}

func (noopDiag) Errorf(format string, args ...any) {}
func (noopDiag) Infof(format string, args ...any)  {}

// probe captures the last message an object's outlet sent it, by
// connecting a trivial sink object to that outlet.
type probe struct {
	*graph.Base
	last atom.Message
	got  bool
}

func newProbe(g *graph.Graph) *probe {
	p := &probe{}
	p.Base = graph.NewBase(p, "probe", g, 1, 0, 0, 0)
	return p
}

func (p *probe) ProcessMessage(inlet int, msg atom.Message) {
	p.last = msg
	p.got = true
}

func TestMtofA440(t *testing.T) {
	g := graph.New(0, nil, nil, 64, 44100)
	o, err := newMtof(g, atom.Message{})
	assert.NoError(t, err)
	p := newProbe(g)
	g.Connect(o, 0, p, 0)

	o.ReceiveMessage(0, atom.NewFloatMessage(0, 69))
	assert.True(t, p.got)
	assert.InDelta(t, 440.0, p.last.FloatAt(0), 1e-3)
}

func TestFtomMtofRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		note := rapid.Float64Range(0, 127).Draw(rt, "note")

		g := graph.New(0, nil, nil, 64, 44100)
		m, err := newMtof(g, atom.Message{})
		assert.NoError(t, err)
		f, err := newFtom(g, atom.Message{})
		assert.NoError(t, err)
		p := newProbe(g)
		g.Connect(m, 0, f, 0)
		g.Connect(f, 0, p, 0)

		m.ReceiveMessage(0, atom.NewFloatMessage(0, float32(note)))
		assert.True(t, p.got)
		assert.InDelta(t, note, float64(p.last.FloatAt(0)), 1e-2)
	})
}

func TestStripnoteDropsNoteOff(t *testing.T) {
	g := graph.New(0, nil, nil, 64, 44100)
	o, err := newStripnote(g, atom.Message{})
	assert.NoError(t, err)
	p := newProbe(g)
	g.Connect(o, 0, p, 0)

	o.ReceiveMessage(0, atom.NewMessage(0, atom.Float(60), atom.Float(0)))
	assert.False(t, p.got, "note-off (velocity 0) must not pass through")

	o.ReceiveMessage(0, atom.NewMessage(0, atom.Float(60), atom.Float(100)))
	assert.True(t, p.got)
	assert.Equal(t, float32(60), p.last.FloatAt(0))
}

func TestNoteinSplitsNoteAndVelocity(t *testing.T) {
	g := graph.New(0, nil, nil, 64, 44100)
	g.SetRegistry(registry.New(noopDiag{}))
	o, err := newNotein(g, atom.Message{})
	assert.NoError(t, err)
	note := newProbe(g)
	vel := newProbe(g)
	g.Connect(o, 0, note, 0)
	g.Connect(o, 1, vel, 0)

	o.(*notein).Deliver(atom.NewMessage(0, atom.Float(60), atom.Float(100)))
	assert.Equal(t, float32(60), note.last.FloatAt(0))
	assert.Equal(t, float32(100), vel.last.FloatAt(0))
}
