package registry

import "github.com/pdrt/pdrt/atom"

// MessageSink is implemented by receive objects (the message-rate
// "receive", as opposed to the signal-rate receive~).
type MessageSink interface {
	Deliver(msg atom.Message)
}

// MessageRouter is the single message-send controller keyed by symbol
// that every "send"/"receive" pair in an engine goes through. Each
// distinct name is assigned a stable numeric index on first use, and
// the routing table is keyed by that index; every Send and Subscribe
// still looks the name up in the intern table to find it.
type MessageRouter struct {
	names *atom.Table
	sinks map[int][]MessageSink
}

// NewMessageRouter constructs an empty router.
func NewMessageRouter() *MessageRouter {
	return &MessageRouter{names: atom.NewTable(), sinks: make(map[int][]MessageSink)}
}

// Index returns the stable numeric index for name, interning it if
// this is the first time it's been seen.
func (m *MessageRouter) Index(name string) int { return m.names.Intern(name) }

// Subscribe registers sink to receive messages sent to name.
func (m *MessageRouter) Subscribe(name string, sink MessageSink) {
	idx := m.names.Intern(name)
	m.sinks[idx] = append(m.sinks[idx], sink)
}

// Unsubscribe removes sink from name's subscriber list.
func (m *MessageRouter) Unsubscribe(name string, sink MessageSink) {
	idx := m.names.Intern(name)
	list := m.sinks[idx]
	for i, s := range list {
		if s == sink {
			m.sinks[idx] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Send delivers msg to every subscriber of name. A name with no
// matching receiver silently drops the message.
func (m *MessageRouter) Send(name string, msg atom.Message) {
	idx := m.names.Intern(name)
	for _, sink := range m.sinks[idx] {
		sink.Deliver(msg)
	}
}
