// Package engine is the host-facing facade: the single entry point a
// host program uses to load patches, drive the audio block loop, and
// inject external messages, without ever touching the graph/registry/
// schedule packages directly.
package engine

import (
	"os"
	"sync"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
	"github.com/pdrt/pdrt/internal/diag"
	_ "github.com/pdrt/pdrt/objects" // populates graph.RegisterFactory's table
	"github.com/pdrt/pdrt/registry"
	"github.com/pdrt/pdrt/schedule"
)

// Context is one engine instance: a fixed channel count/block size/
// sample rate, a named registry shared by every graph it owns, a
// message scheduler, and the set of top-level graphs currently
// attached. The zero value is not usable; construct with NewContext.
type Context struct {
	// mu guards the graph list, the named registry, and the message
	// queue. Process holds it for the whole of one block; every
	// dynamic-patching entry point (AddObject, AddConnection, NewObject,
	// SendMessage) takes it too, so a host thread injecting messages or
	// patching concurrently with the audio thread serializes against it
	// rather than racing the DSP pass.
	mu sync.Mutex

	inChannels  int
	outChannels int
	blockSize   int
	sampleRate  float64

	diag *diag.Sink

	registry  *registry.Registry
	scheduler *schedule.Scheduler

	graphs []*graph.Graph
	nextID int64

	adc [][]float32
	dac [][]float32
}

// NewContext allocates an engine with the given channel counts, block
// size and sample rate. diag receives patch-error and print output; if
// nil, a stderr-backed default sink is installed.
func NewContext(inChannels, outChannels, blockSize int, sampleRate float64, sink *diag.Sink) *Context {
	if sink == nil {
		sink = diag.New(os.Stderr)
	}
	c := &Context{
		inChannels:  inChannels,
		outChannels: outChannels,
		blockSize:   blockSize,
		sampleRate:  sampleRate,
		diag:        sink,
		scheduler:   schedule.NewScheduler(blockSize, sampleRate),
	}
	c.registry = registry.New(sink)
	c.adc = make([][]float32, inChannels)
	c.dac = make([][]float32, outChannels)
	for i := range c.adc {
		c.adc[i] = make([]float32, blockSize)
	}
	for i := range c.dac {
		c.dac[i] = make([]float32, blockSize)
	}
	return c
}

func (c *Context) lock()   { c.mu.Lock() }
func (c *Context) unlock() { c.mu.Unlock() }

// ADCChannel implements graph.AudioIO.
func (c *Context) ADCChannel(ch int) []float32 {
	if ch < 0 || ch >= len(c.adc) {
		return nil
	}
	return c.adc[ch]
}

// AccumulateDAC implements graph.AudioIO.
func (c *Context) AccumulateDAC(ch int, samples []float32) {
	if ch < 0 || ch >= len(c.dac) {
		return
	}
	out := c.dac[ch]
	for i, s := range samples {
		if i >= len(out) {
			break
		}
		out[i] += s
	}
}

// NewEmptyGraph allocates an empty graph with its own id, wired to
// this context's registry and audio I/O, but not yet attached as a
// top-level graph.
func (c *Context) NewEmptyGraph(args []string) *graph.Graph {
	c.nextID++
	g := graph.New(c.nextID, nil, args, c.blockSize, c.sampleRate)
	g.SetRegistry(c.registry)
	g.SetAudioIO(c)
	g.SetScheduler(c.scheduler)
	return g
}

// AttachGraph installs g as a top-level graph, recomputes its DSP
// order, and fires each loadbang among g's own objects exactly once;
// loadbangs inside abstractions or subpatches of g are not fired.
func (c *Context) AttachGraph(g *graph.Graph) {
	c.lock()
	defer c.unlock()
	g.RecomputeDSPOrder()
	c.graphs = append(c.graphs, g)
	c.fireLoadbangs(g)
}

func (c *Context) fireLoadbangs(g *graph.Graph) {
	for _, o := range g.Objects() {
		if o.Label() == "loadbang" {
			o.ReceiveMessage(0, atom.NewBangMessage(c.scheduler.BlockStartTimestamp))
		}
	}
}

// NewObject looks up label's factory and constructs it inside g; this
// is the low-level path used by the parser and by dynamic patching.
func (c *Context) NewObject(g *graph.Graph, label string, init atom.Message) (graph.Object, error) {
	c.lock()
	defer c.unlock()
	return graph.NewObject(label, g, init)
}

// AddObject appends obj to g's object list for dynamic patching, with
// the engine locked for the duration.
func (c *Context) AddObject(g *graph.Graph, obj graph.Object) {
	c.lock()
	defer c.unlock()
	g.AddObject(obj)
	g.RecomputeDSPOrder()
}

// AddConnection wires a connection and recomputes DSP order.
func (c *Context) AddConnection(g *graph.Graph, from graph.Object, outlet int, to graph.Object, inlet int) {
	c.lock()
	defer c.unlock()
	g.Connect(from, outlet, to, inlet)
	g.RecomputeDSPOrder()
}

// Diag returns the context's print-callback sink.
func (c *Context) Diag() *diag.Sink { return c.diag }

// BlockSize returns the engine's fixed block size in samples.
func (c *Context) BlockSize() int { return c.blockSize }

// SampleRate returns the engine's sample rate in Hz.
func (c *Context) SampleRate() float64 { return c.sampleRate }
