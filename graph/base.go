package graph

import "github.com/pdrt/pdrt/atom"

// Base is embedded by every concrete object variant in package objects.
// It implements the bookkeeping parts of the Object protocol (inlet/
// outlet counts, edge lists, signal buffer wiring, the topo-sort
// "ordered" flag) so variants only need to implement ProcessMessage and
// (for audio objects) ProcessDSP.
//
// Go has no virtual dispatch through embedding, so Base keeps a "self"
// reference set at construction time; ReceiveMessage and SendMessage
// call through self (the Object interface) rather than through Base's
// own methods, which is what makes a variant's overridden
// ProcessMessage/ProcessDSP actually get invoked.
type Base struct {
	self  Object
	label string
	g     *Graph

	numMessageInlets  int
	numMessageOutlets int
	numSignalInlets   int
	numSignalOutlets  int

	messageOutletEdges [][]Edge

	signalInletBufs  []*Buffer
	signalOutletBufs []*Buffer

	isRootFlag         bool
	isLeafFlag         bool
	processesAudioFlag bool
	orderedFlag        bool
}

// NewBase constructs the shared bookkeeping for an object. self must be
// the concrete variant embedding this Base (used for virtual dispatch).
// One buffer is allocated per signal outlet, and an object with any
// signal inlet or outlet is eligible for the DSP process order.
func NewBase(self Object, label string, g *Graph, numMessageInlets, numMessageOutlets, numSignalInlets, numSignalOutlets int) *Base {
	b := &Base{
		self:               self,
		label:              label,
		g:                  g,
		numMessageInlets:   numMessageInlets,
		numMessageOutlets:  numMessageOutlets,
		numSignalInlets:    numSignalInlets,
		numSignalOutlets:   numSignalOutlets,
		messageOutletEdges: make([][]Edge, numMessageOutlets),
		processesAudioFlag: numSignalOutlets > 0 || numSignalInlets > 0,
	}
	blockSize := 0
	if g != nil {
		blockSize = g.BlockSize()
	}
	b.signalInletBufs = make([]*Buffer, numSignalInlets)
	for i := range b.signalInletBufs {
		b.signalInletBufs[i] = silenceFor(g, blockSize)
	}
	b.signalOutletBufs = make([]*Buffer, numSignalOutlets)
	for i := range b.signalOutletBufs {
		b.signalOutletBufs[i] = NewBuffer(blockSize)
	}
	return b
}

func silenceFor(g *Graph, blockSize int) *Buffer {
	if g != nil {
		return g.Silence()
	}
	return NewBuffer(blockSize)
}

// Graph returns the containing graph.
func (b *Base) Graph() *Graph { return b.g }

// Label implements Object.
func (b *Base) Label() string { return b.label }

// NumMessageInlets implements Object.
func (b *Base) NumMessageInlets() int { return b.numMessageInlets }

// NumMessageOutlets implements Object.
func (b *Base) NumMessageOutlets() int { return b.numMessageOutlets }

// NumSignalInlets implements Object.
func (b *Base) NumSignalInlets() int { return b.numSignalInlets }

// NumSignalOutlets implements Object.
func (b *Base) NumSignalOutlets() int { return b.numSignalOutlets }

// ReceiveMessage is the default entry point: dispatch synchronously to
// self.ProcessMessage. Variants with sample-accurate inlets override
// ReceiveMessage directly instead of using this helper.
func (b *Base) ReceiveMessage(inletIndex int, msg atom.Message) {
	b.self.ProcessMessage(inletIndex, msg)
}

// ProcessMessage is the default no-op message logic; concrete variants
// override it.
func (b *Base) ProcessMessage(inletIndex int, msg atom.Message) {}

// SendMessage delivers msg to every inlet connected to outletIndex, in
// connection order.
func (b *Base) SendMessage(outletIndex int, msg atom.Message) {
	if outletIndex < 0 || outletIndex >= len(b.messageOutletEdges) {
		return
	}
	for _, e := range b.messageOutletEdges[outletIndex] {
		e.To.ReceiveMessage(e.Inlet, msg)
	}
}

// ProcessDSP default is a no-op; audio-processing variants override it.
func (b *Base) ProcessDSP() {}

// ConnectionType reports Signal if outletIndex is a signal outlet
// (signal outlets are numbered after message outlets is NOT assumed;
// variants with both kinds of outlet should override ConnectionType).
// The default assumes an object has either all-message or all-signal
// outlets, which holds for every built-in variant.
func (b *Base) ConnectionType(outletIndex int) ConnType {
	if b.numSignalOutlets > 0 {
		return Signal
	}
	return Message
}

// AddConnectionFromTo implements Object: records a message edge, or
// eagerly rebinds target's signal inlet buffer to this outlet's buffer.
func (b *Base) AddConnectionFromTo(outletIndex int, target Object, inletIndex int) {
	switch b.self.ConnectionType(outletIndex) {
	case Signal:
		target.BindSignalInlet(inletIndex, b.SignalOutletBuffer(outletIndex))
	default:
		if outletIndex >= 0 && outletIndex < len(b.messageOutletEdges) {
			b.messageOutletEdges[outletIndex] = append(b.messageOutletEdges[outletIndex], Edge{To: target, Inlet: inletIndex})
		}
	}
}

// SignalInletBuffer implements Object.
func (b *Base) SignalInletBuffer(inletIndex int) *Buffer {
	if inletIndex < 0 || inletIndex >= len(b.signalInletBufs) {
		return nil
	}
	return b.signalInletBufs[inletIndex]
}

// SignalOutletBuffer implements Object.
func (b *Base) SignalOutletBuffer(outletIndex int) *Buffer {
	if outletIndex < 0 || outletIndex >= len(b.signalOutletBufs) {
		return nil
	}
	return b.signalOutletBufs[outletIndex]
}

// BindSignalInlet implements Object.
func (b *Base) BindSignalInlet(inletIndex int, buf *Buffer) {
	if inletIndex < 0 || inletIndex >= len(b.signalInletBufs) {
		return
	}
	b.signalInletBufs[inletIndex] = buf
}

// IsRoot implements Object.
func (b *Base) IsRoot() bool { return b.isRootFlag }

// IsLeaf implements Object.
func (b *Base) IsLeaf() bool { return b.isLeafFlag }

// ProcessesAudio implements Object.
func (b *Base) ProcessesAudio() bool { return b.processesAudioFlag }

// SetRoot marks the object as a scheduling root (used by constructors of
// adc~, receive~, catch~, delread~, tabread~, loadbang, metro, ...).
func (b *Base) SetRoot(v bool) { b.isRootFlag = v }

// SetLeaf marks the object as a scheduling leaf (dac~, send~, throw~,
// delwrite~, ...).
func (b *Base) SetLeaf(v bool) { b.isLeafFlag = v }

func (b *Base) setOrdered(v bool) { b.orderedFlag = v }
func (b *Base) ordered() bool     { return b.orderedFlag }
