package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdrt/pdrt/graph"
	"github.com/pdrt/pdrt/patch"
)

// LoadPatch reads and parses the Pd patch file at path, attaches the
// resulting graph as a new top-level graph (firing each of its
// top-level loadbangs exactly once, see AttachGraph), and returns it. extraSearchPaths are consulted for
// abstraction loading after any the patch itself declares, and are
// always joined with the patch file's own directory so sibling
// abstractions resolve without an explicit declare.
func (c *Context) LoadPatch(path string, args []string, extraSearchPaths ...string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("engine: reading %s: %w", path, err)
	}
	g := c.NewEmptyGraph(args)
	searchPaths := append([]string{filepath.Dir(path)}, extraSearchPaths...)
	if err := patch.Parse(g, string(data), c.diag, searchPaths); err != nil {
		return nil, fmt.Errorf("engine: parsing %s: %w", path, err)
	}
	c.AttachGraph(g)
	return g, nil
}
