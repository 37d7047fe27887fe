package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// recorder is a minimal message-only graph.Object that records every
// message delivered to it, for checking queue drain order.
type recorder struct {
	*graph.Base
	got []atom.Message
}

func newRecorder(g *graph.Graph) *recorder {
	o := &recorder{}
	o.Base = graph.NewBase(o, "recorder", g, 1, 0, 0, 0)
	return o
}

func (o *recorder) ProcessMessage(inlet int, msg atom.Message) {
	o.got = append(o.got, msg)
}

func TestQueueDrainOrdersByTimestampThenInsertion(t *testing.T) {
	g := graph.New(0, nil, nil, 4, 44100)
	dest := newRecorder(g)
	q := NewQueue()

	q.Schedule(dest, 0, atom.NewFloatMessage(5, 1))
	q.Schedule(dest, 0, atom.NewFloatMessage(1, 2))
	q.Schedule(dest, 0, atom.NewFloatMessage(1, 3)) // same ts as previous, later insertion

	q.DrainUntil(100)

	assert.Len(t, dest.got, 3)
	assert.Equal(t, float32(2), dest.got[0].FloatAt(0))
	assert.Equal(t, float32(3), dest.got[1].FloatAt(0))
	assert.Equal(t, float32(1), dest.got[2].FloatAt(0))
}

func TestQueueDrainUntilRespectsDeadline(t *testing.T) {
	g := graph.New(0, nil, nil, 4, 44100)
	dest := newRecorder(g)
	q := NewQueue()

	q.Schedule(dest, 0, atom.NewFloatMessage(10, 1))
	q.DrainUntil(10) // strictly less than deadline, so not yet due
	assert.Empty(t, dest.got)

	q.DrainUntil(11)
	assert.Len(t, dest.got, 1)
}

func TestQueueCancelRemovesPendingEntry(t *testing.T) {
	g := graph.New(0, nil, nil, 4, 44100)
	dest := newRecorder(g)
	q := NewQueue()

	h := q.Schedule(dest, 0, atom.NewFloatMessage(5, 1))
	q.Cancel(h)
	q.DrainUntil(100)

	assert.Empty(t, dest.got)
	assert.Equal(t, 0, q.Len())
}

func TestQueueCancelIsSafeOnDeliveredHandle(t *testing.T) {
	g := graph.New(0, nil, nil, 4, 44100)
	dest := newRecorder(g)
	q := NewQueue()

	h := q.Schedule(dest, 0, atom.NewFloatMessage(5, 1))
	q.DrainUntil(100)
	assert.NotPanics(t, func() { q.Cancel(h) })
}

func TestQueuePeekTimestamp(t *testing.T) {
	g := graph.New(0, nil, nil, 4, 44100)
	dest := newRecorder(g)
	q := NewQueue()

	_, ok := q.PeekTimestamp()
	assert.False(t, ok)

	q.Schedule(dest, 0, atom.NewFloatMessage(7, 1))
	q.Schedule(dest, 0, atom.NewFloatMessage(3, 1))

	ts, ok := q.PeekTimestamp()
	assert.True(t, ok)
	assert.Equal(t, 3.0, ts)
}
