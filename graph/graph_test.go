package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdrt/pdrt/atom"
)

// sigSource is a trivial signal generator: fills its one outlet with a
// constant value on every block, and records how many times it ran.
type sigSource struct {
	*Base
	value float32
	runs  *[]string
	name  string
}

func newSigSource(g *Graph, value float32, name string, runs *[]string) *sigSource {
	o := &sigSource{value: value, name: name, runs: runs}
	o.Base = NewBase(o, "sigSource", g, 0, 0, 0, 1)
	o.SetRoot(true)
	return o
}

func (o *sigSource) ProcessDSP() {
	*o.runs = append(*o.runs, o.name)
	out := o.SignalOutletBuffer(0).Samples
	for i := range out {
		out[i] = o.value
	}
}

// sigPassthrough copies its one signal inlet to its one signal outlet,
// recording run order.
type sigPassthrough struct {
	*Base
	runs *[]string
	name string
}

func newSigPassthrough(g *Graph, name string, runs *[]string) *sigPassthrough {
	o := &sigPassthrough{name: name, runs: runs}
	o.Base = NewBase(o, "sigPassthrough", g, 0, 0, 1, 1)
	return o
}

func (o *sigPassthrough) ProcessDSP() {
	*o.runs = append(*o.runs, o.name)
	copy(o.SignalOutletBuffer(0).Samples, o.SignalInletBuffer(0).Samples)
}

func TestRecomputeDSPOrderProducersBeforeConsumers(t *testing.T) {
	g := New(0, nil, nil, 4, 44100)
	var runs []string
	src := newSigSource(g, 1, "src", &runs)
	mid := newSigPassthrough(g, "mid", &runs)
	sink := newSigPassthrough(g, "sink", &runs)
	g.AddObject(src)
	g.AddObject(mid)
	g.AddObject(sink)
	sink.SetLeaf(true)

	g.Connect(src, 0, mid, 0)
	g.Connect(mid, 0, sink, 0)

	g.RecomputeDSPOrder()
	g.RunDSP()

	assert.Equal(t, []string{"src", "mid", "sink"}, runs)
	assert.Equal(t, float32(1), sink.SignalOutletBuffer(0).Samples[0])
}

func TestRecomputeDSPOrderIncludesDisconnectedAudioObjects(t *testing.T) {
	g := New(0, nil, nil, 4, 44100)
	var runs []string
	orphan := newSigSource(g, 2, "orphan", &runs)
	g.AddObject(orphan)

	g.RecomputeDSPOrder()

	assert.Len(t, g.DSPOrder(), 1)
	assert.Equal(t, orphan, g.DSPOrder()[0])
}

func TestSilenceIsZeroed(t *testing.T) {
	g := New(0, nil, nil, 8, 44100)
	for _, s := range g.Silence().Samples {
		assert.Equal(t, float32(0), s)
	}
}

func TestAllSearchPathsWalksAncestors(t *testing.T) {
	parent := New(0, nil, nil, 4, 44100)
	parent.DeclarePath("/patches")
	child := New(1, parent, nil, 4, 44100)
	child.DeclarePath("/abstractions")

	paths := child.AllSearchPaths()
	assert.Equal(t, []string{"/abstractions", "/patches"}, paths)
}

// messageCounter is a minimal message-only object used to check
// connection/dispatch plumbing independent of any built-in variant.
type messageCounter struct {
	*Base
	received []atom.Message
}

func newMessageCounter(g *Graph) *messageCounter {
	o := &messageCounter{}
	o.Base = NewBase(o, "counter", g, 1, 1, 0, 0)
	return o
}

func (o *messageCounter) ProcessMessage(inlet int, msg atom.Message) {
	o.received = append(o.received, msg)
	o.SendMessage(0, msg)
}

func TestMessageConnectionDeliversInOrder(t *testing.T) {
	g := New(0, nil, nil, 4, 44100)
	a := newMessageCounter(g)
	b := newMessageCounter(g)
	g.Connect(a, 0, b, 0)

	a.ReceiveMessage(0, atom.NewFloatMessage(0, 1))
	a.ReceiveMessage(0, atom.NewFloatMessage(1, 2))

	assert.Len(t, a.received, 2)
	assert.Len(t, b.received, 2)
	assert.Equal(t, float32(1), b.received[0].FloatAt(0))
	assert.Equal(t, float32(2), b.received[1].FloatAt(0))
}
