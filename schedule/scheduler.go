package schedule

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// Scheduler drives one block: drain due messages, then run each
// top-level graph's cached DSP process order. It owns
// the message queue and the engine's notion of wall-clock time
// (BlockStartTimestamp), but not the audio buffers themselves — those
// are the host facade's concern (engine.Context copies ADC/DAC
// buffers around a call to Advance).
type Scheduler struct {
	Queue               *Queue
	BlockStartTimestamp float64
	BlockDurationMs     float64
}

// NewScheduler constructs a scheduler for the given block size and
// sample rate.
func NewScheduler(blockSize int, sampleRate float64) *Scheduler {
	return &Scheduler{
		Queue:           NewQueue(),
		BlockDurationMs: float64(blockSize) / sampleRate * 1000.0,
	}
}

// Schedule implements graph.Scheduler by delegating to the underlying
// Queue, boxing its Handle as the interface's opaque graph.Handle.
func (s *Scheduler) Schedule(dest graph.Object, outlet int, msg atom.Message) graph.Handle {
	return s.Queue.Schedule(dest, outlet, msg)
}

// Cancel implements graph.Scheduler. A handle from a different queue,
// or the zero value, is silently ignored.
func (s *Scheduler) Cancel(h graph.Handle) {
	handle, ok := h.(Handle)
	if !ok {
		return
	}
	s.Queue.Cancel(handle)
}

// ClampTimestamp clamps external timestamps at or below the current
// block start up to it, so externally injected messages are delivered
// no earlier than "now".
func (s *Scheduler) ClampTimestamp(ts float64) float64 {
	if ts < s.BlockStartTimestamp {
		return s.BlockStartTimestamp
	}
	return ts
}

// Advance drains every message due before the end of the current block,
// runs DSP for each of the given top-level graphs in attach order, and
// then advances BlockStartTimestamp by one block and sets each graph's
// block-start hint to the new value, so a message injected between two
// calls is placed relative to the block it will be rendered in. It is the caller's responsibility to hold the engine lock, copy
// host I/O buffers, and advance/zero the ADC/DAC buffers around this
// call.
func (s *Scheduler) Advance(graphs []*graph.Graph) {
	for _, g := range graphs {
		g.SetBlockStartHint(s.BlockStartTimestamp)
	}
	deadline := s.BlockStartTimestamp + s.BlockDurationMs
	s.Queue.DrainUntil(deadline)
	for _, g := range graphs {
		g.RunDSP()
	}
	s.BlockStartTimestamp = deadline
	for _, g := range graphs {
		g.SetBlockStartHint(deadline)
	}
}
