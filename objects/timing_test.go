package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
	"github.com/pdrt/pdrt/schedule"
)

// countingProbe records every message delivered to its one inlet, so
// tests can tell a single delayed delivery apart from a runaway
// re-arm/re-schedule loop.
type countingProbe struct {
	*graph.Base
	got []atom.Message
}

func newCountingProbe(g *graph.Graph) *countingProbe {
	p := &countingProbe{}
	p.Base = graph.NewBase(p, "countingProbe", g, 1, 0, 0, 0)
	return p
}

func (p *countingProbe) ProcessMessage(inlet int, msg atom.Message) {
	p.got = append(p.got, msg)
}

func TestDelayBangsOutletOnceAfterConfiguredDelay(t *testing.T) {
	g := graph.New(0, nil, nil, 64, 44100)
	sched := schedule.NewScheduler(64, 44100)
	g.SetScheduler(sched)

	o, err := newDelay(g, atom.NewFloatMessage(0, 10))
	require.NoError(t, err)
	p := newCountingProbe(g)
	g.Connect(o, 0, p, 0)

	o.ReceiveMessage(0, atom.NewBangMessage(0))
	assert.Empty(t, p.got, "delay must not fire before its period elapses")

	sched.Queue.DrainUntil(20)
	require.Len(t, p.got, 1, "delay must bang its outlet exactly once")
	assert.True(t, p.got[0].IsBangAt(0))

	sched.Queue.DrainUntil(1000)
	assert.Len(t, p.got, 1, "delay must not re-arm itself after firing")
}

func TestDelayRetriggerCancelsPreviousPendingTick(t *testing.T) {
	g := graph.New(0, nil, nil, 64, 44100)
	sched := schedule.NewScheduler(64, 44100)
	g.SetScheduler(sched)

	o, err := newDelay(g, atom.NewFloatMessage(0, 10))
	require.NoError(t, err)
	p := newCountingProbe(g)
	g.Connect(o, 0, p, 0)

	o.ReceiveMessage(0, atom.NewBangMessage(0))
	o.ReceiveMessage(0, atom.NewBangMessage(5)) // retrigger before the first tick fires

	sched.Queue.DrainUntil(1000)
	assert.Len(t, p.got, 1, "retriggering must cancel the original pending tick, not add a second one")
}

func TestPipeDelaysOriginalMessageOnce(t *testing.T) {
	g := graph.New(0, nil, nil, 64, 44100)
	sched := schedule.NewScheduler(64, 44100)
	g.SetScheduler(sched)

	o, err := newPipe(g, atom.NewFloatMessage(0, 15))
	require.NoError(t, err)
	p := newCountingProbe(g)
	g.Connect(o, 0, p, 0)

	o.ReceiveMessage(0, atom.NewMessage(0, atom.Symbol("hello"), atom.Float(42)))
	assert.Empty(t, p.got, "pipe must not deliver before its period elapses")

	sched.Queue.DrainUntil(30)
	require.Len(t, p.got, 1, "pipe must deliver exactly once")
	assert.Equal(t, "hello", p.got[0].SymbolAt(0))
	assert.Equal(t, float32(42), p.got[0].FloatAt(1))

	sched.Queue.DrainUntil(1000)
	assert.Len(t, p.got, 1, "pipe's delayed delivery must not reschedule itself again")
}

func TestLineSignalRampsLinearlyToTarget(t *testing.T) {
	g := graph.New(0, nil, nil, 100, 1000) // 100-sample block, 1000Hz => 1 sample/ms
	o, err := newLineSignal(g, atom.Message{})
	require.NoError(t, err)
	lo := o.(*lineSignalObj)
	g.AddObject(o)
	g.RecomputeDSPOrder()

	o.ReceiveMessage(0, atom.NewMessage(0, atom.Float(10), atom.Float(50)))
	lo.ProcessDSP()

	out := lo.SignalOutletBuffer(0).Samples
	assert.InDelta(t, 0, out[0], 1e-6)
	assert.InDelta(t, 10, out[49], 0.3)
	for i := 50; i < len(out); i++ {
		assert.InDelta(t, 10, out[i], 1e-6)
	}
}

func TestLineSignalZeroDurationJumpsImmediately(t *testing.T) {
	g := graph.New(0, nil, nil, 10, 1000)
	o, err := newLineSignal(g, atom.Message{})
	require.NoError(t, err)
	lo := o.(*lineSignalObj)
	g.AddObject(o)
	g.RecomputeDSPOrder()

	o.ReceiveMessage(0, atom.NewFloatMessage(0, 5))
	lo.ProcessDSP()

	out := lo.SignalOutletBuffer(0).Samples
	for _, s := range out {
		assert.Equal(t, float32(5), s)
	}
}

func TestLineSignalSplitsBlockAtRetargetSample(t *testing.T) {
	g := graph.New(0, nil, nil, 10, 1000) // 1 sample/ms
	o, err := newLineSignal(g, atom.Message{})
	require.NoError(t, err)
	lo := o.(*lineSignalObj)
	g.AddObject(o)
	g.RecomputeDSPOrder()
	g.SetBlockStartHint(0)

	// Jump to 3 immediately, then at sample 5 (5ms in) retarget to 7.
	o.ReceiveMessage(0, atom.NewFloatMessage(0, 3))
	o.ReceiveMessage(0, atom.NewFloatMessage(5, 7))
	lo.ProcessDSP()

	out := lo.SignalOutletBuffer(0).Samples
	for i := 0; i < 5; i++ {
		assert.Equal(t, float32(3), out[i], "samples before the retarget must keep the old value")
	}
	assert.Equal(t, float32(7), out[9])
}
