package lint

import (
	"strings"

	"erbindent/internal/erbast"
	"erbindent/internal/hostlint"
	"erbindent/internal/ir"
	"erbindent/internal/source"
	"erbindent/internal/transpile"
)

// Run implements the linter driver algorithm of spec §4.4: build the IR,
// run the configured team, translate every diagnostic (and, for
// correctable ones, every flattened action) back onto the original
// source, dropping whatever doesn't translate.
func Run(src *source.Buffer, doc *erbast.Document, cfg Config) ([]Offense, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bundle := transpile.Transpile(src, doc)
	team := hostlint.NewTeam()
	diags := team.Run(bundle.Text, cfg.toHostOptions())

	offenses := make([]Offense, 0, len(diags))
	for _, d := range diags {
		d = adaptBlockAlignment(d, bundle)
		off, ok := translateDiagnostic(d, bundle)
		if !ok {
			continue // untranslatable diagnostic (spec §7): dropped silently
		}
		off = filterPreOpaque(off, doc)
		if off == nil {
			continue
		}
		offenses = append(offenses, *off)
	}
	return offenses, nil
}

// translateDiagnostic implements spec §4.4 step 5: translate the
// diagnostic's range, falling back to an empty insertion point at its
// beginning when the full range doesn't translate, and dropping it
// entirely when even that fails.
func translateDiagnostic(d hostlint.Diagnostic, bundle *ir.IR) (*Offense, bool) {
	loc, ok := bundle.Translate(d.Range)
	if !ok {
		if b, beginOK := bundle.Map.TranslateBeginning(d.Range.Begin); beginOK {
			loc = source.NewRange(b, b)
		} else {
			return nil, false
		}
	}

	off := &Offense{
		Location: loc,
		Message:  strings.TrimSpace(d.Message),
		Severity: d.Severity,
		Rule:     d.Rule,
	}

	if d.Actions != nil {
		off.Corrections = translateActions(d.Actions, bundle)
	}
	return off, true
}

// translateActions implements spec §4.4 step 6: flatten and translate
// each correction action, dropping only the actions that don't translate
// rather than the whole correction.
func translateActions(actions []hostlint.Action, bundle *ir.IR) []Correction {
	out := make([]Correction, 0, len(actions))
	for _, a := range actions {
		loc, ok := bundle.Translate(a.Range)
		if !ok {
			continue
		}
		out = append(out, Correction{Kind: a.Kind, Range: loc, Text: a.Text})
	}
	return out
}

// filterPreOpaque drops offenses whose location intersects a <pre> subtree
// (spec §8 invariant 3 "Pre opacity"). The checked range is the <pre> tag's
// whole Rng, from its opening tag through its closing tag, so offenses on
// the <pre> and </pre> tags themselves are dropped too, as would be any
// offense on pre content (the transpiler emits no IR for that content).
func filterPreOpaque(off *Offense, doc *erbast.Document) *Offense {
	if intersectsPre(doc.Children, off.Location) {
		return nil
	}
	return off
}

func intersectsPre(nodes []erbast.Node, loc source.Range) bool {
	for _, n := range nodes {
		tag, ok := n.(*erbast.Tag)
		if !ok {
			if txt, ok := n.(*erbast.Text); ok {
				for _, part := range txt.Parts {
					if part.Child != nil && intersectsPre([]erbast.Node{part.Child}, loc) {
						return true
					}
				}
			}
			continue
		}
		if tag.Name == "pre" && rangesOverlap(tag.Rng, loc) {
			return true
		}
		if intersectsPre(tag.Children, loc) {
			return true
		}
	}
	return false
}

func rangesOverlap(a, b source.Range) bool {
	return a.Begin < b.End && b.Begin < a.End || (a.Begin == b.Begin && a.End == b.End)
}

// Fix applies a slice of already-translated Corrections to src's content
// and returns the corrected text (spec §6 "Auto-correct output": a
// sequence of remove/insert_before/insert_after/replace edits against the
// original buffer). Corrections are applied right-to-left so earlier
// offsets stay valid; overlapping corrections are not merged or detected.
func Fix(src *source.Buffer, corrections []Correction) string {
	type edit struct {
		begin, end int
		text       string
	}
	edits := make([]edit, 0, len(corrections))
	for _, c := range corrections {
		switch c.Kind {
		case hostlint.ActionRemove:
			edits = append(edits, edit{c.Range.Begin, c.Range.End, ""})
		case hostlint.ActionInsertBefore:
			edits = append(edits, edit{c.Range.Begin, c.Range.Begin, c.Text})
		case hostlint.ActionInsertAfter:
			edits = append(edits, edit{c.Range.End, c.Range.End, c.Text})
		case hostlint.ActionReplace:
			edits = append(edits, edit{c.Range.Begin, c.Range.End, c.Text})
		}
	}
	// Stable sort, descending by begin offset, so earlier edits' offsets
	// are unaffected by later (rightward) ones as we apply them in place.
	for i := 1; i < len(edits); i++ {
		for j := i; j > 0 && edits[j-1].begin < edits[j].begin; j-- {
			edits[j-1], edits[j] = edits[j], edits[j-1]
		}
	}

	out := src.Content
	for _, e := range edits {
		out = out[:e.begin] + e.text + out[e.end:]
	}
	return out
}
