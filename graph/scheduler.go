package graph

import "github.com/pdrt/pdrt/atom"

// Handle is an opaque reference to a pending scheduled message,
// returned by Scheduler.Schedule and later passed to Scheduler.Cancel.
// Its concrete type is schedule.Handle; it is typed as any here so
// this package (which schedule.Queue depends on) never has to import
// package schedule.
type Handle any

// Scheduler is the subset of schedule.Scheduler/Queue that timing
// objects (metro, delay, pipe, line, line~) need in order to schedule
// or cancel a future message delivery. The engine wires
// a concrete adapter over schedule.Queue into every Graph it creates.
type Scheduler interface {
	Schedule(dest Object, outlet int, msg atom.Message) Handle
	Cancel(h Handle)
}

// SetScheduler installs the engine's scheduler for this graph (and,
// transitively, any subgraphs created under it — see patch.Parser).
func (g *Graph) SetScheduler(s Scheduler) { g.scheduler = s }

// Scheduler returns the graph's scheduler, or nil if none has been set
// (e.g. a graph constructed purely for unit testing object logic).
func (g *Graph) Scheduler() Scheduler { return g.scheduler }
