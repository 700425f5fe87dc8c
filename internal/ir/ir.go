// Package ir bundles the triple spec §3 describes: the original source
// handle, the IR text buffer the transpiler wrote, and the source map
// linking them. Grounded on the teacher's own CompilationJob-style
// immutable pipeline bundle
// (packages/compiler/src/template/pipeline/ir/src/operations/operations.go):
// one short-lived, per-template value that downstream stages read from and
// never mutate after the transpile phase finishes.
package ir

import (
	"erbindent/internal/source"
	"erbindent/internal/sourcemap"
)

// IR is the (original source, IR text, source map) triple. A transpilation
// session produces exactly one IR per template and is discarded after use
// (spec §3 "Lifecycle").
type IR struct {
	Source *source.Buffer
	Text   string
	Map    *sourcemap.Map
}

// New wraps a finished IR text buffer and its source map together with the
// original source they were derived from.
func New(src *source.Buffer, text string, m *sourcemap.Map) *IR {
	return &IR{Source: src, Text: text, Map: m}
}

// Translate maps an IR range back to a range in the original source,
// exposing the single forward operation spec §3/§4.2 defines on the IR.
func (i *IR) Translate(r source.Range) (source.Range, bool) {
	return i.Map.Translate(r)
}
