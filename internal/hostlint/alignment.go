package hostlint

import (
	"fmt"
	"strings"

	"erbindent/internal/source"
)

// BlockAlignmentRule checks that a brace-block or do-block's closer lines
// up with its opener per EnforcedStyleAlignWith (Layout/BlockAlignment).
// Its message is deliberately phrased in IR coordinates and IR text; the
// BlockAlignmentAdapter (internal/lint) rewrites both to the original
// template's coordinates and source line before an Offense is built,
// exactly as spec §4.3 describes.
type BlockAlignmentRule struct{}

func (r *BlockAlignmentRule) Name() string { return "Layout/BlockAlignment" }

func (r *BlockAlignmentRule) Run(text string, opts Options) []Diagnostic {
	lines := splitLines(text)
	blocks, _ := walkBlocks(lines, text)

	var diags []Diagnostic
	for _, b := range blocks {
		if b.CloseLine < 0 || b.Kind == "begin" || b.Kind == "bare" {
			continue
		}
		closeIndent := lines[b.CloseLine].Indent()
		targets := alignmentTargets(lines, b, opts.BlockAlignWith)
		if indentMatches(closeIndent, targets) {
			continue
		}
		closeLn, closeCol := b.CloseLine+1, closeIndent
		openLn, openCol := b.ExprLine+1, lines[b.ExprLine].Indent()
		diags = append(diags, Diagnostic{
			Rule:  r.Name(),
			Range: bodyRange(lines[b.CloseLine]),
			Message: fmt.Sprintf("%s: `%s` at %d, %d is not aligned with `%s` at %d, %d.",
				r.Name(),
				strings.TrimSpace(lines[b.CloseLine].Body(text)), closeLn, closeCol,
				strings.TrimSpace(lines[b.ExprLine].Body(text)), openLn, openCol),
			Severity:    SeverityConvention,
			BlockOpener: bodyRange(lines[b.ExprLine]),
			HasOpener:   true,
			Actions: []Action{{
				Kind:  ActionReplace,
				Range: lines[b.CloseLine].IndentRange(),
				Text:  strings.Repeat(" ", targets[0]),
			}},
		})
	}
	return diags
}

// alignmentTargets resolves an EnforcedStyleAlignWith value to the set of
// closer columns it accepts: the expression-start line's column for
// start_of_line, the opener line's own column for start_of_block, or both
// for either. The two coincide unless the opener ends a multi-line call.
func alignmentTargets(lines []line, b block, style AlignStyle) []int {
	exprIndent := lines[b.ExprLine].Indent()
	openIndent := lines[b.OpenLine].Indent()
	switch style {
	case AlignStartOfBlock:
		return []int{openIndent}
	case AlignStartOfLine:
		return []int{exprIndent}
	default: // AlignEither
		if openIndent == exprIndent {
			return []int{exprIndent}
		}
		return []int{exprIndent, openIndent}
	}
}

func indentMatches(indent int, targets []int) bool {
	for _, t := range targets {
		if indent == t {
			return true
		}
	}
	return false
}

// BeginEndAlignmentRule is BlockAlignmentRule's counterpart for
// begin/end-wrapped multi-line embedded code (spec §4.1 Case B).
type BeginEndAlignmentRule struct{}

func (r *BeginEndAlignmentRule) Name() string { return "Layout/BeginEndAlignment" }

func (r *BeginEndAlignmentRule) Run(text string, opts Options) []Diagnostic {
	lines := splitLines(text)
	blocks, _ := walkBlocks(lines, text)

	var diags []Diagnostic
	for _, b := range blocks {
		if b.CloseLine < 0 || b.Kind != "begin" {
			continue
		}
		closeIndent := lines[b.CloseLine].Indent()
		targets := alignmentTargets(lines, b, opts.BeginEndAlignWith)
		if indentMatches(closeIndent, targets) {
			continue
		}
		diags = append(diags, Diagnostic{
			Rule:     r.Name(),
			Range:    bodyRange(lines[b.CloseLine]),
			Message:  fmt.Sprintf("%s: `end` is not aligned with `begin` opening the block.", r.Name()),
			Severity: SeverityConvention,
			Actions: []Action{{
				Kind:  ActionReplace,
				Range: lines[b.CloseLine].IndentRange(),
				Text:  strings.Repeat(" ", targets[0]),
			}},
		})
	}
	return diags
}

// EndAlignmentRule checks that a bare if/unless/case construct's `end`
// lines up with the keyword that opened it (Layout/EndAlignment). Under
// keyword style the target is the keyword's own line; variable and
// start_of_line both resolve to the line the whole expression starts on.
type EndAlignmentRule struct{}

func (r *EndAlignmentRule) Name() string { return "Layout/EndAlignment" }

func (r *EndAlignmentRule) Run(text string, opts Options) []Diagnostic {
	lines := splitLines(text)
	blocks, _ := walkBlocks(lines, text)

	var diags []Diagnostic
	for _, b := range blocks {
		if b.CloseLine < 0 || b.Kind != "bare" {
			continue
		}
		closeIndent := lines[b.CloseLine].Indent()
		target := lines[b.OpenLine].Indent()
		if opts.EndAlignWith != EndAlignKeyword {
			target = lines[b.ExprLine].Indent()
		}
		if closeIndent == target {
			continue
		}
		keyword := firstWord(lines[b.OpenLine].Body(text))
		diags = append(diags, Diagnostic{
			Rule:     r.Name(),
			Range:    bodyRange(lines[b.CloseLine]),
			Message:  fmt.Sprintf("%s: `end` is not aligned with `%s`.", r.Name(), keyword),
			Severity: SeverityConvention,
			Actions: []Action{{
				Kind:  ActionReplace,
				Range: lines[b.CloseLine].IndentRange(),
				Text:  strings.Repeat(" ", target),
			}},
		})
	}
	return diags
}

func firstWord(body string) string {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// bodyRange is the IR range of a line's content past its indentation: the
// token the diagnostic is really about. Reporting the token rather than the
// whitespace lets the driver's exact-match translation recover the whole
// original tag the token was emitted in lieu of.
func bodyRange(l line) source.Range {
	return source.NewRange(l.IndentEnd, l.End)
}

// ElseAlignmentRule checks that else/elsif lines up with the construct they
// branch inside (Layout/ElseAlignment).
type ElseAlignmentRule struct{}

func (r *ElseAlignmentRule) Name() string { return "Layout/ElseAlignment" }

func (r *ElseAlignmentRule) Run(text string, opts Options) []Diagnostic {
	lines := splitLines(text)
	_, branches := walkBlocks(lines, text)

	var diags []Diagnostic
	for _, br := range branches {
		if !br.HasEnclosing {
			continue
		}
		actual := lines[br.LineIdx].Indent()
		if actual == br.EnclosingOpen {
			continue
		}
		diags = append(diags, Diagnostic{
			Rule:     r.Name(),
			Range:    bodyRange(lines[br.LineIdx]),
			Message:  fmt.Sprintf("%s: `%s` is not aligned with its opening keyword.", r.Name(), strings.TrimSpace(lines[br.LineIdx].Body(text))),
			Severity: SeverityConvention,
			Actions: []Action{{
				Kind:  ActionReplace,
				Range: lines[br.LineIdx].IndentRange(),
				Text:  strings.Repeat(" ", br.EnclosingOpen),
			}},
		})
	}
	return diags
}

// ArgumentAlignmentRule checks that a call's arguments spanning multiple
// IR lines (spec §4.1 "Attributes": one attribute per line) line up either
// with the first argument's column or with a fixed indentation
// (Layout/ArgumentAlignment). It tracks only unnested (depth-1) calls,
// which is exactly what tag-attribute emission and simple embedded-Ruby
// calls produce.
type ArgumentAlignmentRule struct{}

func (r *ArgumentAlignmentRule) Name() string { return "Layout/ArgumentAlignment" }

func (r *ArgumentAlignmentRule) Run(text string, opts Options) []Diagnostic {
	lines := splitLines(text)

	var diags []Diagnostic
	depth := 0
	refCol := 0
	callLineIndent := 0

	for _, l := range lines {
		if depth > 0 {
			actual := l.Indent()
			if !l.Blank() && actual != refCol {
				diags = append(diags, Diagnostic{
					Rule:     r.Name(),
					Range:    l.IndentRange(),
					Message:  fmt.Sprintf("%s: Align the arguments in a method call spanning multiple lines.", r.Name()),
					Severity: SeverityConvention,
					Actions: []Action{{
						Kind:  ActionReplace,
						Range: l.IndentRange(),
						Text:  strings.Repeat(" ", refCol),
					}},
				})
			}
		}

		body := text[l.Start:l.End]
		for i := 0; i < len(body); i++ {
			switch body[i] {
			case '(':
				depth++
				if depth == 1 {
					callLineIndent = l.Indent()
					j := i + 1
					for j < len(body) && (body[j] == ' ' || body[j] == '\t') {
						j++
					}
					if j < len(body) {
						if opts.ArgumentAlignment == ArgumentAlignFixedIndentation {
							refCol = callLineIndent + opts.Width
						} else {
							refCol = j
						}
					} else {
						refCol = callLineIndent + opts.Width
					}
				}
			case ')':
				if depth > 0 {
					depth--
				}
			}
		}
	}
	return diags
}
