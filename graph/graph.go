package graph

// Connection records a typed edge as parsed from the patch file, kept
// for introspection/dynamic-patching even though the live wiring lives
// in each Object's edge lists and bound buffer pointers.
type Connection struct {
	From       Object
	FromOutlet int
	To         Object
	ToInlet    int
	Type       ConnType
}

// Graph is a recursive container: an ordered list of objects, an
// ordered list of connections, a parent link (nil for the top graph),
// an argument vector for abstractions ($1..$n), declared abstraction
// search paths, and a cached DSP process order.
type Graph struct {
	ID     int64
	Parent *Graph
	Args   []string

	objects     []Object
	connections []Connection

	declarePaths []string

	blockSize  int
	sampleRate float64

	silence *Buffer

	dspOrder []Object

	blockStartTimestamp float64

	scheduler Scheduler

	// registry holds the engine's *registry.Registry. Typed as any
	// because package registry imports package graph (for Object and
	// Buffer); objects package, which imports both, performs the type
	// assertion back to *registry.Registry.
	registry any

	audioIO AudioIO
}

// SetRegistry installs the engine's named-endpoint registry for this
// graph (and, transitively, any subgraphs created under it).
func (g *Graph) SetRegistry(r any) { g.registry = r }

// Registry returns the graph's registry (as any; see SetRegistry).
func (g *Graph) Registry() any { return g.registry }

// New constructs an empty graph with the given graph id.
func New(id int64, parent *Graph, args []string, blockSize int, sampleRate float64) *Graph {
	return &Graph{
		ID:         id,
		Parent:     parent,
		Args:       args,
		blockSize:  blockSize,
		sampleRate: sampleRate,
		silence:    NewBuffer(blockSize),
	}
}

// BlockSize returns the engine's fixed block size in samples.
func (g *Graph) BlockSize() int { return g.blockSize }

// SampleRate returns the engine's sample rate in Hz.
func (g *Graph) SampleRate() float64 { return g.sampleRate }

// Silence returns the graph's shared zero-filled buffer used by signal
// inlets with no connected producer.
func (g *Graph) Silence() *Buffer { return g.silence }

// BlockStartHint returns the timestamp of the start of the block
// currently being processed, as last set by SetBlockStartHint. Objects
// that split their DSP processing around intra-block message arrival
// times use this to convert a message's absolute
// timestamp into a sample offset without needing a reference back to
// the engine that owns the scheduler.
func (g *Graph) BlockStartHint() float64 { return g.blockStartTimestamp }

// SetBlockStartHint records the current block's start timestamp. The
// scheduler calls it on each top-level graph before dispatching a
// block's due messages, and again with the next block's start once the
// block's DSP has run.
func (g *Graph) SetBlockStartHint(ts float64) { g.blockStartTimestamp = ts }

// AddObject appends obj to the graph's object list in creation order.
// Creation order is what breaks ties in the DSP topological sort.
func (g *Graph) AddObject(obj Object) {
	g.objects = append(g.objects, obj)
}

// Objects returns the graph's objects in creation order.
func (g *Graph) Objects() []Object { return g.objects }

// DeclarePath appends an abstraction search path (from "#X declare
// -path P").
func (g *Graph) DeclarePath(p string) { g.declarePaths = append(g.declarePaths, p) }

// DeclarePaths returns the graph's own declared search paths (not
// including any parent's).
func (g *Graph) DeclarePaths() []string { return g.declarePaths }

// AllSearchPaths returns this graph's declared paths followed by its
// ancestors', nearest first.
func (g *Graph) AllSearchPaths() []string {
	var paths []string
	for gg := g; gg != nil; gg = gg.Parent {
		paths = append(paths, gg.declarePaths...)
	}
	return paths
}

// Connect records a connection from (from, outlet) to (to, inlet) and
// wires the live edge: message connections append to the source's edge
// list, signal connections eagerly rebind the destination inlet's
// buffer pointer to the source outlet's buffer.
func (g *Graph) Connect(from Object, outlet int, to Object, inlet int) {
	ct := from.ConnectionType(outlet)
	g.connections = append(g.connections, Connection{From: from, FromOutlet: outlet, To: to, ToInlet: inlet, Type: ct})
	from.AddConnectionFromTo(outlet, to, inlet)
}

// Connections returns the graph's recorded connections.
func (g *Graph) Connections() []Connection { return g.connections }

// DSPOrder returns the most recently computed DSP process order: the
// sequence of audio-processing objects in this graph, producers before
// consumers.
func (g *Graph) DSPOrder() []Object { return g.dspOrder }

// RecomputeDSPOrder clears every audio object's "ordered" flag, then
// does a post-order upstream walk from every leaf/root, emitting
// objects in finish order. Long-range wires
// (objects whose IsRoot is true, e.g. receive~, catch~, delread~,
// inlet~) terminate the upstream walk; their producers (send~, throw~,
// delwrite~) are leaves, reached by this same walk in creation order,
// which breaks feedback cycles introduced through delay lines.
func (g *Graph) RecomputeDSPOrder() {
	for _, o := range g.objects {
		if o.ProcessesAudio() {
			o.setOrdered(false)
		}
	}

	var order []Object
	var visit func(o Object)
	visit = func(o Object) {
		if !o.ProcessesAudio() || o.ordered() {
			return
		}
		o.setOrdered(true)
		if !o.IsRoot() {
			for i := 0; i < o.NumSignalInlets(); i++ {
				if producer := g.producerOf(o, i); producer != nil {
					visit(producer)
				}
			}
		}
		order = append(order, o)
	}

	for _, o := range g.objects {
		if !o.ProcessesAudio() {
			continue
		}
		if o.IsLeaf() || o.IsRoot() || o.NumSignalOutlets() == 0 {
			visit(o)
		}
	}
	// Anything left unordered (disconnected interior audio object) is
	// still emitted so its outlet buffer is defined.
	for _, o := range g.objects {
		if o.ProcessesAudio() {
			visit(o)
		}
	}

	g.dspOrder = order
}

// RunDSP calls ProcessDSP on every object in the cached process order,
// in order: producers before consumers.
func (g *Graph) RunDSP() {
	for _, o := range g.dspOrder {
		o.ProcessDSP()
	}
}

// producerOf finds the object whose signal outlet feeds inletIndex of
// consumer, by scanning recorded connections. Buffer-pointer equality
// would also work but connection records keep the search explicit and
// cheap relative to patch size.
func (g *Graph) producerOf(consumer Object, inletIndex int) Object {
	for _, c := range g.connections {
		if c.Type == Signal && c.To == consumer && c.ToInlet == inletIndex {
			return c.From
		}
	}
	return nil
}
