package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// dspCounter is a minimal audio object (one signal outlet) that records
// how many times ProcessDSP ran and the block-start hint seen at that
// time, for checking Scheduler.Advance's ordering.
type dspCounter struct {
	*graph.Base
	runs   int
	lastTS float64
}

func newDSPCounter(g *graph.Graph) *dspCounter {
	o := &dspCounter{}
	o.Base = graph.NewBase(o, "dspCounter", g, 0, 0, 0, 1)
	o.SetRoot(true)
	return o
}

func (o *dspCounter) ProcessDSP() {
	o.runs++
	o.lastTS = o.Graph().BlockStartHint()
}

func TestSchedulerAdvanceRunsDSPAndAdvancesClock(t *testing.T) {
	g := graph.New(0, nil, nil, 4, 1000) // 1kHz, 4-sample blocks = 4ms/block
	counter := newDSPCounter(g)
	g.AddObject(counter)
	g.RecomputeDSPOrder()

	s := NewScheduler(4, 1000)
	s.Advance([]*graph.Graph{g})

	assert.Equal(t, 1, counter.runs)
	assert.Equal(t, 0.0, counter.lastTS)
	assert.Equal(t, 4.0, s.BlockStartTimestamp)

	s.Advance([]*graph.Graph{g})
	assert.Equal(t, 2, counter.runs)
	assert.Equal(t, 4.0, counter.lastTS)
	assert.Equal(t, 8.0, s.BlockStartTimestamp)
}

func TestSchedulerAdvanceDrainsDueMessagesBeforeDSP(t *testing.T) {
	g := graph.New(0, nil, nil, 4, 1000)
	dest := newRecorder(g)
	g.AddObject(dest)
	g.RecomputeDSPOrder()

	s := NewScheduler(4, 1000)
	s.Queue.Schedule(dest, 0, atom.NewFloatMessage(2, 42))

	s.Advance([]*graph.Graph{g})

	assert.Len(t, dest.got, 1)
	assert.Equal(t, float32(42), dest.got[0].FloatAt(0))
}

func TestSchedulerAdvanceLeavesLaterMessagesPending(t *testing.T) {
	g := graph.New(0, nil, nil, 4, 1000)
	dest := newRecorder(g)
	g.AddObject(dest)
	g.RecomputeDSPOrder()

	s := NewScheduler(4, 1000)
	s.Queue.Schedule(dest, 0, atom.NewFloatMessage(10, 1)) // falls in the second block

	s.Advance([]*graph.Graph{g})
	assert.Empty(t, dest.got)

	s.Advance([]*graph.Graph{g})
	assert.Len(t, dest.got, 1)
}

func TestClampTimestampNeverReturnsThePast(t *testing.T) {
	s := NewScheduler(4, 1000)
	s.BlockStartTimestamp = 100

	assert.Equal(t, 100.0, s.ClampTimestamp(50))
	assert.Equal(t, 150.0, s.ClampTimestamp(150))
}
