// Package registry implements the named-endpoint fabric: the six keyed relations that wire together distributed pairs
// of objects that have no direct graph connection between them —
// send~/receive~, throw~/catch~, delwrite~/delread~/vd~, arrays and
// their readers, and the message-variant send/receive router.
//
// A Registry is owned by one engine instance (graph.Graph objects hold
// a reference to it, installed with graph.Graph.SetRegistry).
package registry

// Diagnostics is the subset of the engine's print-callback sink that
// objects need: Errorf reports duplicate-name registration errors;
// Infof carries the print object's ordinary patch output.
type Diagnostics interface {
	Errorf(format string, args ...any)
	Infof(format string, args ...any)
}

// Registry aggregates the six named relations. The zero value is not
// usable; construct with New.
type Registry struct {
	diag Diagnostics

	signals    *signalTable
	throwCatch *throwCatchTable
	delays     *delayTable
	arrays     *arrayTable
	messages   *MessageRouter
}

// New constructs an empty registry. diag receives duplicate-name error
// reports.
func New(diag Diagnostics) *Registry {
	return &Registry{
		diag:       diag,
		signals:    newSignalTable(),
		throwCatch: newThrowCatchTable(),
		delays:     newDelayTable(),
		arrays:     newArrayTable(),
		messages:   NewMessageRouter(),
	}
}

// Messages returns the message-variant send/receive router.
func (r *Registry) Messages() *MessageRouter { return r.messages }

// Diag returns the engine's print-callback sink, for objects (print)
// that surface ordinary patch output rather than registration errors.
func (r *Registry) Diag() Diagnostics { return r.diag }
