package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

func TestMsgBoxSubstitutesDollarFields(t *testing.T) {
	g := graph.New(0, nil, nil, 4, 44100)
	box := newMsgBox(g, []string{"$1", "plus", "$2"})

	var sent atom.Message
	sink := newMsgSink(g, &sent)
	g.Connect(box, 0, sink, 0)

	box.ReceiveMessage(0, atom.NewMessage(0, atom.Float(10), atom.Float(20)))

	assert.Equal(t, float32(10), sent.At(0).Float)
	assert.Equal(t, "plus", sent.At(1).Symbol)
	assert.Equal(t, float32(20), sent.At(2).Float)
}

func TestMsgBoxDollarFieldBeyondTriggerLengthFallsBack(t *testing.T) {
	g := graph.New(0, nil, nil, 4, 44100)
	box := newMsgBox(g, []string{"$1", "$2"})

	var sent atom.Message
	sink := newMsgSink(g, &sent)
	g.Connect(box, 0, sink, 0)

	box.ReceiveMessage(0, atom.NewFloatMessage(0, 99))

	assert.Equal(t, float32(99), sent.At(0).Float)
	assert.True(t, sent.At(1).Kind == atom.KindAny)
}

func TestMsgBoxLiteralFieldsPassThroughUnchanged(t *testing.T) {
	g := graph.New(0, nil, nil, 4, 44100)
	box := newMsgBox(g, []string{"bang"})

	var sent atom.Message
	sink := newMsgSink(g, &sent)
	g.Connect(box, 0, sink, 0)

	box.ReceiveMessage(0, atom.NewBangMessage(0))

	assert.Equal(t, "bang", sent.At(0).Symbol)
}

// msgSink is a minimal message-only object capturing the last message
// it received, used to inspect a msgBox's output.
type msgSink struct {
	*graph.Base
	out *atom.Message
}

func newMsgSink(g *graph.Graph, out *atom.Message) *msgSink {
	o := &msgSink{out: out}
	o.Base = graph.NewBase(o, "sink", g, 1, 0, 0, 0)
	return o
}

func (o *msgSink) ProcessMessage(inlet int, msg atom.Message) {
	*o.out = msg
}
