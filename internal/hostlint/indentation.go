package hostlint

import (
	"fmt"
	"strings"

	"erbindent/internal/source"
)

// IndentationWidthRule checks that a block's first body line is indented
// exactly Width spaces deeper than the block's base column — the column of
// the line that closes the block, matching the host's own convention of
// re-anchoring the body on the `end` keyword (Layout/IndentationWidth).
// The reported range covers the indentation bytes beyond the base column,
// collapsing to an insertion point when the body is at or left of it.
type IndentationWidthRule struct{}

func (r *IndentationWidthRule) Name() string { return "Layout/IndentationWidth" }

func (r *IndentationWidthRule) Run(text string, opts Options) []Diagnostic {
	lines := splitLines(text)
	blocks, _ := walkBlocks(lines, text)

	var diags []Diagnostic
	for _, b := range blocks {
		if b.CloseLine < 0 {
			continue
		}
		first := firstNonBlank(lines, b.OpenLine+1, b.CloseLine)
		if first < 0 {
			continue
		}
		base := lines[b.CloseLine].Indent()
		expected := base + opts.Width
		actual := lines[first].Indent()
		if actual == expected {
			continue
		}
		lo := base
		if actual < lo {
			lo = actual
		}
		rng := source.NewRange(lines[first].Start+lo, lines[first].IndentEnd)
		diags = append(diags, Diagnostic{
			Rule:     r.Name(),
			Range:    rng,
			Message:  fmt.Sprintf("%s: Use %d (not %d) spaces for indentation.", r.Name(), opts.Width, actual-base),
			Severity: SeverityConvention,
			Actions: []Action{{
				Kind:  ActionReplace,
				Range: rng,
				Text:  strings.Repeat(" ", expected-lo),
			}},
		})
	}
	return diags
}

func firstNonBlank(lines []line, from, to int) int {
	for i := from; i < to; i++ {
		if !lines[i].Blank() {
			return i
		}
	}
	return -1
}

// lineDepths assigns each line its block nesting depth, used by
// IndentationConsistencyRule to compare only true siblings.
func lineDepths(lines []line, text string) []int {
	depths := make([]int, len(lines))
	depth := 0
	for i, l := range lines {
		if l.Blank() {
			depths[i] = depth
			continue
		}
		body := l.Body(text)
		trimmed := strings.TrimSpace(body)
		if closesBlock(body) {
			if depth > 0 {
				depth--
			}
			depths[i] = depth
			continue
		}
		depths[i] = depth
		if opensBlock(body) || opensBareConstruct(trimmed) {
			depth++
		}
	}
	return depths
}

// parenDepthsAtStart tracks, per line, how many call parentheses are open
// when the line begins. Lines starting inside parentheses are argument
// continuations (the IR's one-attribute-per-line emission), which belong to
// ArgumentAlignmentRule, not to statement-level consistency checks.
func parenDepthsAtStart(lines []line, text string) []int {
	depths := make([]int, len(lines))
	depth := 0
	for i, l := range lines {
		depths[i] = depth
		for j := l.Start; j < l.End; j++ {
			switch text[j] {
			case '(':
				depth++
			case ')':
				if depth > 0 {
					depth--
				}
			}
		}
	}
	return depths
}

// IndentationConsistencyRule checks that sibling statements at the same
// nesting depth share the same indentation as each other
// (Layout/IndentationConsistency). The first sibling in a run establishes
// the norm; later siblings that diverge from it are flagged. Block closers
// and argument-continuation lines are exempt: closers belong to the
// alignment family of rules, continuations to ArgumentAlignmentRule.
type IndentationConsistencyRule struct{}

func (r *IndentationConsistencyRule) Name() string { return "Layout/IndentationConsistency" }

func (r *IndentationConsistencyRule) Run(text string, opts Options) []Diagnostic {
	lines := splitLines(text)
	depths := lineDepths(lines, text)
	parens := parenDepthsAtStart(lines, text)

	var diags []Diagnostic
	norm := -1
	normDepth := -1
	for i, l := range lines {
		if l.Blank() || parens[i] > 0 || closesBlock(l.Body(text)) {
			continue
		}
		d := depths[i]
		if d != normDepth {
			normDepth = d
			norm = l.Indent()
			continue
		}
		if l.Indent() != norm {
			diags = append(diags, Diagnostic{
				Rule:     r.Name(),
				Range:    l.IndentRange(),
				Message:  fmt.Sprintf("%s: Inconsistent indentation detected.", r.Name()),
				Severity: SeverityConvention,
				Actions: []Action{{
					Kind:  ActionReplace,
					Range: l.IndentRange(),
					Text:  strings.Repeat(" ", norm),
				}},
			})
		}
	}
	return diags
}
