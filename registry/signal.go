package registry

import "github.com/pdrt/pdrt/graph"

// ReceiveSink is implemented by receive~ instances: Rebind is called
// whenever the named producer's buffer changes (a send~ registers,
// unregisters, or — in principle — is replaced).
type ReceiveSink interface {
	Rebind(buf *graph.Buffer)
}

type signalTable struct {
	sends    map[string]*graph.Buffer
	receives map[string][]ReceiveSink
}

func newSignalTable() *signalTable {
	return &signalTable{
		sends:    make(map[string]*graph.Buffer),
		receives: make(map[string][]ReceiveSink),
	}
}

// RegisterSend installs buf under name: a duplicate name is rejected
// (reported, the new send~ is not installed) and the existing binding
// is left untouched; otherwise the buffer is stored and every already-
// registered receive~ of that name is rebound immediately.
func (r *Registry) RegisterSend(name string, buf *graph.Buffer) {
	t := r.signals
	if _, dup := t.sends[name]; dup {
		r.diag.Errorf("send~: duplicate name %q ignored", name)
		return
	}
	t.sends[name] = buf
	for _, sink := range t.receives[name] {
		sink.Rebind(buf)
	}
}

// UnregisterSend removes name's send~ binding and rebinds every
// receive~ of that name to nil (a receive~ with no registered send~
// outputs silence).
func (r *Registry) UnregisterSend(name string) {
	t := r.signals
	delete(t.sends, name)
	for _, sink := range t.receives[name] {
		sink.Rebind(nil)
	}
}

// RegisterReceive appends sink to name's subscriber list and, if a
// send~ of that name is already registered, binds sink to it
// immediately (a receive~ may be created after its send~).
func (r *Registry) RegisterReceive(name string, sink ReceiveSink) {
	t := r.signals
	t.receives[name] = append(t.receives[name], sink)
	if buf, ok := t.sends[name]; ok {
		sink.Rebind(buf)
	}
}

// UnregisterReceive removes sink from name's subscriber list (e.g. on
// dynamic-patching object removal).
func (r *Registry) UnregisterReceive(name string, sink ReceiveSink) {
	list := r.signals.receives[name]
	for i, s := range list {
		if s == sink {
			r.signals.receives[name] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// SendBuffer returns the buffer currently registered for name, or nil.
func (r *Registry) SendBuffer(name string) *graph.Buffer {
	return r.signals.sends[name]
}
