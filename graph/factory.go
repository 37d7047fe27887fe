package graph

import (
	"fmt"
	"sync"

	"github.com/pdrt/pdrt/atom"
)

// Constructor builds one object variant from its init message (the
// parsed, $-substituted creation arguments) inside graph g.
type Constructor func(g *Graph, initMessage atom.Message) (Object, error)

var (
	factoryMu sync.RWMutex
	factory   = map[string]Constructor{}
)

// RegisterFactory installs ctor as the constructor for the textual
// object label. Variant packages call this from an init() function,
// so a single dispatch-by-label factory table covers every built-in.
func RegisterFactory(label string, ctor Constructor) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factory[label] = ctor
}

// HasFactory reports whether label has a registered constructor.
func HasFactory(label string) bool {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	_, ok := factory[label]
	return ok
}

// NewObject looks up label's constructor and builds an object inside g.
// Returns an error if label is unknown; callers fall back to abstraction
// loading before reporting a patch error.
func NewObject(label string, g *Graph, initMessage atom.Message) (Object, error) {
	factoryMu.RLock()
	ctor, ok := factory[label]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown object label %q", label)
	}
	return ctor(g, initMessage)
}
