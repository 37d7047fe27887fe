// Package objects implements the closed set of built-in object
// variants: every variant embeds *graph.Base for its bookkeeping and
// registers its own constructor with graph.RegisterFactory from an
// init() function, so importing this package for side effects (as
// package engine does) populates the whole object factory table.
package objects

import "github.com/pdrt/pdrt/atom"

// firstSymbol extracts the leading symbol of an init message as a
// label/name argument, defaulting to "" when absent. Used throughout
// this package for "label args..." style constructor arguments (e.g.
// send~'s name).
func firstSymbol(m atom.Message) string {
	if m.IsSymbolAt(0) {
		return m.SymbolAt(0)
	}
	return ""
}

// firstFloat extracts the leading float of an init message, defaulting
// to def when absent or non-float.
func firstFloat(m atom.Message, def float32) float32 {
	if m.IsFloatAt(0) {
		return m.FloatAt(0)
	}
	return def
}
