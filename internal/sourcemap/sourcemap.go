// Package sourcemap implements the append-only (dest, origin) entry log and
// the translate operation described in spec §4.2. It is the bidirectional
// link between IR text the transpiler wrote and the original template
// bytes it was written in lieu of.
//
// Grounded on the teacher's own ParseSourceSpan concept
// (packages/compiler/src/util/parse_util.go) generalized to the spec's own
// (dest, origin) entry shape; the translate fallback chain itself
// (exact -> endpoint -> relative -> spanning) is new, spec-specific logic
// with no direct teacher analogue.
package sourcemap

import "erbindent/internal/source"

// Entry records that IR bytes Dest were emitted in lieu of original bytes
// Origin.
type Entry struct {
	Dest   source.Range
	Origin source.Range
}

// LengthPreserving reports whether this entry supports relative lookup
// (spec §3 "entries are flagged by the fact that they satisfy
// len(dest) == len(origin)").
func (e Entry) LengthPreserving() bool {
	return e.Dest.Len() == e.Origin.Len()
}

// Map is the append-only source map. Entries are kept in non-decreasing
// Dest.Begin order. Dest ranges do not overlap, except that an entry placed
// with InsertAt may cover the entries that follow it (the transpiler's
// whole-span entry for an embedded tag).
type Map struct {
	entries []Entry
}

// New creates an empty Map.
func New() *Map { return &Map{} }

// Add appends an entry mapping dest (in the IR) back to origin (in the
// original source).
func (m *Map) Add(dest, origin source.Range) {
	m.entries = append(m.entries, Entry{Dest: dest, Origin: origin})
}

// Entries returns the entries in insertion order. Callers must not mutate
// the returned slice.
func (m *Map) Entries() []Entry { return m.entries }

// Mark returns the current entry count. Together with InsertAt it lets the
// transpiler record an embedded tag's whole-span entry ahead of the finer
// entries emitted while visiting the tag, so the span entry wins exact and
// endpoint lookups (first-match semantics, spec §4.2).
func (m *Map) Mark() int { return len(m.entries) }

// InsertAt inserts an entry at index i, a value previously returned by
// Mark. The inserted entry's Dest.Begin must equal the Dest.Begin of the
// entry currently at i (or the map's end), preserving the increasing
// Dest.Begin order.
func (m *Map) InsertAt(i int, dest, origin source.Range) {
	m.entries = append(m.entries, Entry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = Entry{Dest: dest, Origin: origin}
}

// Translate maps an IR range back to an original-source range, following
// the fallback order spec §4.2 specifies: exact match, endpoint match,
// empty-insertion, relative (length-preserving containment), spanning
// (relative lookup of both endpoints independently), then None.
//
// Earlier entries win ties, matching the "linear scan in insertion order"
// semantics spec §4.2 requires implementations to preserve even if they add
// an index for speed.
func (m *Map) Translate(r source.Range) (source.Range, bool) {
	// 1. Exact match.
	for _, e := range m.entries {
		if e.Dest == r {
			return e.Origin, true
		}
	}

	// 2/3. Beginning match, with empty-range short-circuit.
	begin, beginOK := m.translateBeginning(r.Begin)
	if r.Empty() && beginOK {
		return source.NewRange(begin, begin), true
	}

	// 4/5. Both endpoints matched by entries sharing that exact endpoint.
	end, endOK := m.translateEnding(r.End)
	if beginOK && endOK {
		return source.NewRange(begin, end), true
	}

	// 6. Relative: a length-preserving entry whose Dest contains r.
	if rel, ok := m.relative(r); ok {
		return rel, true
	}

	// 7. Spanning: resolve each endpoint independently via relative lookup.
	if s, ok := m.relative(source.NewRange(r.Begin, r.Begin)); ok {
		if t, ok2 := m.relative(source.NewRange(r.End, r.End)); ok2 {
			if s.Begin <= t.Begin {
				return source.NewRange(s.Begin, t.Begin), true
			}
		}
	}

	return source.Range{}, false
}

// TranslateBeginning exposes the beginning-only lookup used by the linter
// driver's best-effort fallback for untranslatable diagnostics (spec §4.4
// step 5a).
func (m *Map) TranslateBeginning(offset int) (int, bool) {
	return m.translateBeginning(offset)
}

func (m *Map) translateBeginning(offset int) (int, bool) {
	for _, e := range m.entries {
		if e.Dest.Begin == offset {
			return e.Origin.Begin, true
		}
	}
	return 0, false
}

func (m *Map) translateEnding(offset int) (int, bool) {
	for _, e := range m.entries {
		if e.Dest.End == offset {
			return e.Origin.End, true
		}
	}
	return 0, false
}

// relative finds the first length-preserving entry whose Dest contains r
// and returns r shifted by that entry's origin-begin minus dest-begin.
func (m *Map) relative(r source.Range) (source.Range, bool) {
	for _, e := range m.entries {
		if !e.LengthPreserving() {
			continue
		}
		if e.Dest.Contains(r) {
			delta := e.Origin.Begin - e.Dest.Begin
			return r.Shift(delta), true
		}
	}
	return source.Range{}, false
}
