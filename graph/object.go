// Package graph implements the message/DSP object graph: the Object
// protocol every built-in variant satisfies, the Graph container that
// owns objects and connections, and the topological sort that produces
// a graph's per-block DSP process order.
package graph

import "github.com/pdrt/pdrt/atom"

// ConnType is the type of a connection leaving an outlet.
type ConnType int

const (
	// Message connections carry discrete, timestamped events.
	Message ConnType = iota
	// Signal connections carry per-block sample buffers.
	Signal
)

// Edge is one outgoing connection from an outlet: the destination
// object and the inlet index on that object.
type Edge struct {
	To    Object
	Inlet int
}

// Object is the protocol every node in the graph satisfies.
// Message-only variants implement ProcessDSP as a no-op
// (see Base); only variants that declare ProcessesAudio true are
// included in a graph's DSP process order.
type Object interface {
	// Label is the object's textual type, e.g. "osc~" or "+".
	Label() string

	// ReceiveMessage is the generic entry point for a message arriving
	// at inletIndex. The default behavior (Base.ReceiveMessage)
	// dispatches synchronously to ProcessMessage; audio objects with
	// sample-accurate inlets override it to split process_dsp around
	// the message's arrival sample.
	ReceiveMessage(inletIndex int, msg atom.Message)

	// ProcessMessage is the object's message logic. It may mutate
	// state and call SendMessage to propagate to connected inlets.
	ProcessMessage(inletIndex int, msg atom.Message)

	// SendMessage delivers msg synchronously to every inlet connected
	// to outletIndex, in connection (insertion) order.
	SendMessage(outletIndex int, msg atom.Message)

	// ProcessDSP recomputes every signal outlet's buffer for the
	// current block. No-op for message-only objects.
	ProcessDSP()

	// ConnectionType reports whether outletIndex carries messages or
	// signal.
	ConnectionType(outletIndex int) ConnType

	// NumMessageInlets, NumMessageOutlets, NumSignalInlets,
	// NumSignalOutlets report the port counts declared at
	// construction.
	NumMessageInlets() int
	NumMessageOutlets() int
	NumSignalInlets() int
	NumSignalOutlets() int

	// AddConnectionFromTo records an edge from this object's outlet to
	// target's inlet. Signal connections additionally rebind target's
	// inlet buffer pointer to this object's outlet buffer.
	AddConnectionFromTo(outletIndex int, target Object, inletIndex int)

	// SignalInletBuffer returns the buffer currently bound to a signal
	// inlet (silence if unconnected).
	SignalInletBuffer(inletIndex int) *Buffer
	// SignalOutletBuffer returns the buffer owned by a signal outlet.
	SignalOutletBuffer(outletIndex int) *Buffer
	// BindSignalInlet rebinds a signal inlet to point at buf.
	BindSignalInlet(inletIndex int, buf *Buffer)

	// IsRoot reports whether the object generates signal/events with no
	// dataflow parent (adc~, receive~, catch~, delread~, tabread~,
	// loadbang, metro, ...), or otherwise breaks the upstream topo walk.
	IsRoot() bool
	// IsLeaf reports whether the object absorbs signal/events (dac~,
	// send~, throw~, delwrite~) and so terminates a downstream walk.
	IsLeaf() bool
	// ProcessesAudio reports whether this object has any signal inlet
	// or outlet, and so takes part in the per-block DSP pass.
	ProcessesAudio() bool

	// setOrdered/ordered track the topo-sort "ordered" flag used while
	// walking the graph to compute DSP order; only the graph package
	// touches these.
	setOrdered(bool)
	ordered() bool
}
