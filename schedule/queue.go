// Package schedule implements the message queue and the per-block
// scheduler: a timestamp-ordered priority queue of pending deliveries,
// and the drain-then-DSP loop that drives one call to Engine.Process.
package schedule

import (
	"container/heap"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// entry is one pending delivery: a heap-copied message destined for
// (Dest, Outlet). seq breaks timestamp ties in FIFO insertion order.
type entry struct {
	timestamp float64
	seq       uint64
	dest      graph.Object
	outlet    int
	msg       atom.Message
	index     int // position in the heap, maintained by container/heap
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].timestamp != h[j].timestamp {
		return h[i].timestamp < h[j].timestamp
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Handle identifies a pending queue entry for cancellation (used by
// metro's stop, delay's reset, line's retarget).
type Handle struct {
	e *entry
}

// Queue is a single min-heap keyed by timestamp. Insertion and
// cancellation are both O(log n).
type Queue struct {
	h       entryHeap
	nextSeq uint64
}

// NewQueue constructs an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule enqueues msg for delivery to (dest, outlet) at msg.Timestamp,
// heap-copying msg so it survives past the caller's stack frame, and
// returns a Handle that can later be passed to Cancel.
func (q *Queue) Schedule(dest graph.Object, outlet int, msg atom.Message) Handle {
	e := &entry{
		timestamp: msg.Timestamp,
		seq:       q.nextSeq,
		dest:      dest,
		outlet:    outlet,
		msg:       msg.Copy(),
	}
	q.nextSeq++
	heap.Push(&q.h, e)
	return Handle{e: e}
}

// Cancel removes a previously scheduled entry, if it is still pending.
// Safe to call on an already-delivered or already-cancelled handle.
func (q *Queue) Cancel(h Handle) {
	if h.e == nil || h.e.index < 0 || h.e.index >= len(q.h) || q.h[h.e.index] != h.e {
		return
	}
	heap.Remove(&q.h, h.e.index)
}

// Len returns the number of pending entries.
func (q *Queue) Len() int { return q.h.Len() }

// PeekTimestamp returns the timestamp of the earliest pending entry and
// true, or (0, false) if the queue is empty.
func (q *Queue) PeekTimestamp() (float64, bool) {
	if q.h.Len() == 0 {
		return 0, false
	}
	return q.h[0].timestamp, true
}

// DrainUntil delivers every entry with timestamp strictly less than
// deadline, in ascending (timestamp, insertion-order) order, dispatching
// each via dest.ReceiveMessage(outlet, msg). Dispatch may itself enqueue
// further entries (possibly before deadline); DrainUntil keeps draining
// until the heap's minimum is >= deadline or the queue is empty, so it
// never "caches" a stale queue size.
func (q *Queue) DrainUntil(deadline float64) {
	for q.h.Len() > 0 && q.h[0].timestamp < deadline {
		e := heap.Pop(&q.h).(*entry)
		e.dest.ReceiveMessage(e.outlet, e.msg)
	}
}
