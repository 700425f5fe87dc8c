package hostlint

import (
	"strings"

	"erbindent/internal/source"
)

// line describes one line of IR text in IR byte coordinates.
type line struct {
	Start     int // offset of the first byte of the line
	End       int // offset one past the last non-newline byte
	IndentEnd int // offset one past the leading whitespace run
}

// Body returns the line's content, excluding its leading whitespace.
func (l line) Body(text string) string { return text[l.IndentEnd:l.End] }

// Indent returns the leading-whitespace byte count.
func (l line) Indent() int { return l.IndentEnd - l.Start }

// Blank reports whether the line has no non-whitespace content.
func (l line) Blank() bool { return l.IndentEnd == l.End }

// IndentRange returns the IR range covering the line's leading whitespace.
func (l line) IndentRange() source.Range {
	return source.NewRange(l.Start, l.IndentEnd)
}

// splitLines indexes text into lines the way hostlint's rules walk IR text.
func splitLines(text string) []line {
	var lines []line
	start := 0
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == '\n' {
			l := line{Start: start, End: i}
			j := start
			for j < i && (text[j] == ' ' || text[j] == '\t') {
				j++
			}
			l.IndentEnd = j
			lines = append(lines, l)
			start = i + 1
		}
	}
	return lines
}

// opensBlock reports whether a line's body ends with a construct that the
// IR represents as opening a block: a brace-block ("{"), a do-block or a
// trailing "begin", including the tag-emission blocks ("... ) {") the
// transpiler writes for every non-void HTML element (spec §4.1 "Opening
// Tag").
func opensBlock(body string) bool {
	b := strings.TrimRight(body, " \t;")
	if strings.HasSuffix(b, "{") {
		return true
	}
	if b == "do" || strings.HasSuffix(b, " do") {
		return true
	}
	if strings.Contains(b, " do |") && strings.HasSuffix(b, "|") {
		return true
	}
	return strings.HasSuffix(b, "begin")
}

// closesBlock reports whether a line's body is (only) a block closer.
func closesBlock(body string) bool {
	b := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(body), ";"))
	return b == "}" || b == "end"
}
