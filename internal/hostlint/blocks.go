package hostlint

import "strings"

// block is one opener/closer pair discovered by walkBlocks, keyed by the
// indices (into the []line slice) of its opening and closing lines.
type block struct {
	OpenLine  int    // line carrying the opener token itself
	ExprLine  int    // line the opener's expression starts on; differs from OpenLine when the opener ends a multi-line call
	CloseLine int    // -1 if the block was never closed (malformed input)
	Kind      string // "brace", "do", "begin" or "bare"
}

// branch is an else/elsif line together with the indentation of the block
// it branches inside (its nearest open ancestor at the time it appeared).
type branch struct {
	LineIdx       int
	EnclosingOpen int // indent of the enclosing block's expression-start line
	HasEnclosing  bool
}

// walkBlocks does a single linear pass over lines, pairing block
// openers/closers (braces, do-blocks, begin/end and bare if/unless/case
// constructs, which share Ruby's "end" closer) and recording else/elsif
// branch points relative to their enclosing opener. An opener line that
// begins inside open call parentheses — the IR's one-attribute-per-line
// emission ends a multi-line call with ") {" — is anchored on the line the
// call started on, which is what its closer aligns with under
// start_of_line. Shared by every alignment-family rule so the block-pairing
// logic lives in one place.
func walkBlocks(lines []line, text string) ([]block, []branch) {
	type frame struct {
		lineIdx int
		exprIdx int
		kind    string
	}
	parens := parenDepthsAtStart(lines, text)
	exprStart := func(i int) int {
		for i > 0 && parens[i] > 0 {
			i--
		}
		return i
	}

	var stack []frame
	var blocks []block
	var branches []branch

	for i, l := range lines {
		if l.Blank() {
			continue
		}
		body := l.Body(text)
		trimmed := strings.TrimSpace(body)

		if trimmed == "else" || strings.HasPrefix(trimmed, "elsif ") || trimmed == "elsif" {
			b := branch{LineIdx: i}
			if len(stack) > 0 {
				b.HasEnclosing = true
				b.EnclosingOpen = lines[stack[len(stack)-1].exprIdx].Indent()
			}
			branches = append(branches, b)
			continue
		}

		if closesBlock(body) {
			if len(stack) == 0 {
				continue // stray closer, tolerated (spec §7)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			blocks = append(blocks, block{
				OpenLine:  top.lineIdx,
				ExprLine:  top.exprIdx,
				CloseLine: i,
				Kind:      top.kind,
			})
			continue
		}

		if opensBlock(body) {
			stack = append(stack, frame{lineIdx: i, exprIdx: exprStart(i), kind: blockKind(trimmed)})
			continue
		}
		if opensBareConstruct(trimmed) {
			stack = append(stack, frame{lineIdx: i, exprIdx: exprStart(i), kind: "bare"})
		}
	}

	// Anything still open at EOF is malformed input (spec §7); record it
	// unclosed so callers can skip it rather than crash.
	for _, f := range stack {
		blocks = append(blocks, block{
			OpenLine:  f.lineIdx,
			ExprLine:  f.exprIdx,
			CloseLine: -1,
			Kind:      f.kind,
		})
	}
	return blocks, branches
}

func blockKind(trimmed string) string {
	switch {
	case strings.HasSuffix(trimmed, "{"):
		return "brace"
	case strings.HasSuffix(trimmed, "begin"):
		return "begin"
	default:
		return "do"
	}
}

func opensBareConstruct(trimmed string) bool {
	for _, kw := range []string{"if ", "unless ", "case ", "case"} {
		if trimmed == strings.TrimSpace(kw) || strings.HasPrefix(trimmed, kw) {
			return true
		}
	}
	return false
}
