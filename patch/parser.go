package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
	"github.com/pdrt/pdrt/registry"
)

// guiAtomLabels are the GUI-atom statement heads that construct a
// built-in object of the same factory label, ignoring their
// presentation fields (position, size, range, label strings) since
// pdrt models them purely as numeric/bang sources.
var guiAtomLabels = map[string]bool{
	"floatatom": true, "symbolatom": true, "nbx": true,
	"hsl": true, "vsl": true, "tgl": true, "bng": true,
}

// parser holds the state of one in-progress patch-file parse: the
// canvas stack (current graph plus its ancestors, for "#X restore"),
// the running object list addressable by connect's numeric indices,
// and the search paths available for abstraction loading.
type parser struct {
	blockSize   int
	sampleRate  float64
	diag        registry.Diagnostics
	reg         *registry.Registry
	searchPaths []string

	stack   []*graph.Graph
	objects [][]graph.Object // objects[i] holds stack[i]'s objects, indexed by creation order
	tables  map[string]*registry.Array

	lastTable *registry.Array // most recently declared #X array; #A lines fill it

	sawRoot bool // set once the first "#N canvas" (the root graph itself) is read
}

// Parse reads Pd patch-file text into a new graph: g must already be
// wired to its registry and audio I/O (engine.Context.NewEmptyGraph
// does this), and extraSearchPaths are consulted after any the patch
// itself declares. On return g's object/connection lists are
// populated and its DSP order has been recomputed; the caller still
// owns attaching g to an engine.
func Parse(g *graph.Graph, text string, diag registry.Diagnostics, extraSearchPaths []string) error {
	reg, _ := g.Registry().(*registry.Registry)
	p := &parser{
		blockSize:   g.BlockSize(),
		sampleRate:  g.SampleRate(),
		diag:        diag,
		reg:         reg,
		searchPaths: extraSearchPaths,
		stack:       []*graph.Graph{g},
		objects:     [][]graph.Object{nil},
		tables:      map[string]*registry.Array{},
	}
	for _, stmt := range tokenize(text) {
		if err := p.dispatch(stmt); err != nil {
			return err
		}
	}
	g.RecomputeDSPOrder()
	return nil
}

func (p *parser) current() *graph.Graph { return p.stack[len(p.stack)-1] }

func (p *parser) addObject(o graph.Object) {
	i := len(p.stack) - 1
	p.current().AddObject(o)
	p.objects[i] = append(p.objects[i], o)
}

func (p *parser) objectAt(index int) graph.Object {
	i := len(p.stack) - 1
	list := p.objects[i]
	if index < 0 || index >= len(list) {
		return nil
	}
	return list[index]
}

func (p *parser) dispatch(s statement) error {
	switch s.head() {
	case "#N":
		return p.doCanvas(s)
	case "#X":
		return p.doX(s)
	case "#A":
		return p.doArrayData(s)
	}
	return nil
}

func (p *parser) doCanvas(s statement) error {
	if s.at(1) != "canvas" {
		return nil
	}
	if !p.sawRoot {
		p.sawRoot = true // the first canvas describes g itself
		return nil
	}
	var args []string
	parent := p.current()
	g := graph.New(0, parent, args, p.blockSize, p.sampleRate)
	g.SetRegistry(parent.Registry())
	g.SetAudioIO(parent.AudioIO())
	g.SetScheduler(parent.Scheduler())
	for _, path := range parent.DeclarePaths() {
		g.DeclarePath(path)
	}
	p.stack = append(p.stack, g)
	p.objects = append(p.objects, nil)
	return nil
}

func (p *parser) doX(s statement) error {
	switch s.at(1) {
	case "obj":
		return p.doObj(s)
	case "msg":
		return p.doMsg(s)
	case "connect":
		return p.doConnect(s)
	case "text":
		return nil // inert comment
	case "declare":
		return p.doDeclare(s)
	case "array":
		return p.doArray(s)
	case "restore":
		return p.doRestore(s)
	default:
		if guiAtomLabels[s.at(1)] {
			o, err := graph.NewObject(s.at(1), p.current(), atom.Message{})
			if err != nil {
				return err
			}
			p.addObject(o)
		}
		return nil
	}
}

// doObj implements "#X obj x y label args…": construct via factory,
// falling back to abstraction loading when label has no factory.
func (p *parser) doObj(s statement) error {
	if len(s.fields) < 5 {
		return fmt.Errorf("patch: malformed #X obj statement")
	}
	label := s.at(4)
	rawArgs := s.fields[5:]
	init := atom.Message{Atoms: substitute(rawArgs, p.current().Args)}

	if graph.HasFactory(label) {
		o, err := graph.NewObject(label, p.current(), init)
		if err != nil {
			p.diag.Errorf("patch: %q: %v", label, err)
			return err
		}
		p.addObject(o)
		return nil
	}

	sub, err := p.loadAbstraction(label, argStrings(init))
	if err != nil {
		p.diag.Errorf("patch: unknown object %q and no abstraction found: %v", label, err)
		return err
	}
	p.addObject(sub)
	return nil
}

func (p *parser) doMsg(s statement) error {
	if len(s.fields) < 4 {
		return fmt.Errorf("patch: malformed #X msg statement")
	}
	fields := substituteStrings(s.fields[4:], p.current().Args)
	p.addObject(newMsgBox(p.current(), fields))
	return nil
}

func (p *parser) doConnect(s statement) error {
	if len(s.fields) < 6 {
		return fmt.Errorf("patch: malformed #X connect statement")
	}
	fromIdx, err1 := strconv.Atoi(s.at(2))
	fromOutlet, err2 := strconv.Atoi(s.at(3))
	toIdx, err3 := strconv.Atoi(s.at(4))
	toInlet, err4 := strconv.Atoi(s.at(5))
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return fmt.Errorf("patch: malformed #X connect indices")
	}
	from := p.objectAt(fromIdx)
	to := p.objectAt(toIdx)
	if from == nil || to == nil {
		return fmt.Errorf("patch: connect references unknown object index")
	}
	p.current().Connect(from, fromOutlet, to, toInlet)
	return nil
}

func (p *parser) doDeclare(s statement) error {
	for i := 2; i+1 < len(s.fields); i++ {
		if s.at(i) == "-path" {
			p.current().DeclarePath(s.at(i + 1))
		}
	}
	return nil
}

// doArray implements "#X array name size …": allocate a table, ready
// for #A lines to fill with sample values.
func (p *parser) doArray(s statement) error {
	if len(s.fields) < 4 {
		return fmt.Errorf("patch: malformed #X array statement")
	}
	name := s.at(2)
	size, err := strconv.Atoi(s.at(3))
	if err != nil || size < 0 {
		return fmt.Errorf("patch: malformed #X array size")
	}
	arr := registry.NewArray(name, size)
	p.tables[name] = arr
	p.lastTable = arr
	if p.reg != nil {
		p.reg.RegisterTable(arr)
	}
	return nil
}

// doArrayData implements "#A index v0 v1 …": fill the most recently
// declared array starting at index.
func (p *parser) doArrayData(s statement) error {
	if p.lastTable == nil || len(s.fields) < 2 {
		return nil
	}
	arr := p.lastTable
	idx, err := strconv.Atoi(s.at(1))
	if err != nil {
		return fmt.Errorf("patch: malformed #A index")
	}
	for i, f := range s.fields[2:] {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			continue
		}
		if idx+i < len(arr.Data) {
			arr.Data[idx+i] = float32(v)
		}
	}
	return nil
}

// doRestore implements "#X restore …": pop the current subgraph and add
// it to the enclosing graph as one object, wrapped like an abstraction
// through its inlet/outlet boundary objects, so it takes the next index
// in the enclosing graph's "#X connect" numbering. pdrt does not model
// graph-on-parent subpatch display, since nothing in the built-in
// object set depends on subpatch visual containment.
func (p *parser) doRestore(s statement) error {
	if len(p.stack) <= 1 {
		return fmt.Errorf("patch: #X restore with no open canvas")
	}
	sub := p.current()
	p.stack = p.stack[:len(p.stack)-1]
	p.objects = p.objects[:len(p.objects)-1]
	sub.RecomputeDSPOrder()
	p.addObject(newAbstraction("pd", sub))
	return nil
}

// loadAbstraction searches the current graph's search paths (nearest
// ancestor first) for "<label>.pd", parses it as a fresh graph with
// args bound as $1..$n, and returns it wrapped so the enclosing graph
// can treat it as a single object via its inlet~/outlet~ boundary
// objects.
func (p *parser) loadAbstraction(label string, args []string) (graph.Object, error) {
	for _, dir := range append(p.current().AllSearchPaths(), p.searchPaths...) {
		path := filepath.Join(dir, label+".pd")
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		sub := graph.New(0, p.current(), args, p.blockSize, p.sampleRate)
		sub.SetRegistry(p.current().Registry())
		sub.SetAudioIO(p.current().AudioIO())
		sub.SetScheduler(p.current().Scheduler())
		if err := Parse(sub, string(data), p.diag, p.searchPaths); err != nil {
			return nil, err
		}
		return newAbstraction(label, sub), nil
	}
	return nil, fmt.Errorf("no %s.pd found in search paths", label)
}

func argStrings(m atom.Message) []string {
	out := make([]string, len(m.Atoms))
	for i, a := range m.Atoms {
		out[i] = a.String()
	}
	return out
}

// substitute resolves "$1".."$n" fields against graphArgs before
// parsing the result into typed atoms: substitution happens before the
// factory ever sees the text, so an abstraction's numeric creation
// arguments can drive its children's initial state.
func substitute(fields []string, graphArgs []string) []atom.Atom {
	return parseAtoms(substituteStrings(fields, graphArgs))
}

func substituteStrings(fields []string, graphArgs []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		if strings.HasPrefix(f, "$") {
			if n, err := strconv.Atoi(f[1:]); err == nil && n >= 1 && n <= len(graphArgs) {
				out[i] = graphArgs[n-1]
				continue
			}
		}
		out[i] = f
	}
	return out
}
