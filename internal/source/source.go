// Package source holds a read-only view of an original template: its raw
// bytes, a line index, and byte-range to line/column conversion.
package source

import "fmt"

// Range is a half-open byte range [Begin, End) into a Buffer. Empty ranges
// [p, p) are valid and mean "insertion point p".
type Range struct {
	Begin int
	End   int
}

// NewRange constructs a Range, asserting Begin <= End.
func NewRange(begin, end int) Range {
	if begin > end {
		panic(fmt.Sprintf("source: invalid range [%d, %d)", begin, end))
	}
	return Range{Begin: begin, End: end}
}

// Len returns the number of bytes the range covers.
func (r Range) Len() int { return r.End - r.Begin }

// Empty reports whether the range is an insertion point.
func (r Range) Empty() bool { return r.Begin == r.End }

// Shift returns r translated by delta bytes.
func (r Range) Shift(delta int) Range {
	return Range{Begin: r.Begin + delta, End: r.End + delta}
}

// Contains reports whether r fully contains other.
func (r Range) Contains(other Range) bool {
	return r.Begin <= other.Begin && other.End <= r.End
}

// Position is a location with a 1-based line and a 0-based byte column.
type Position struct {
	Line   int
	Column int
}

// Buffer is the read-only original source: its filename, raw content and a
// cached line-start index for fast offset->Position conversion.
type Buffer struct {
	Filename string
	Content  string

	lineStarts []int // byte offset of the first byte of each line
}

// NewBuffer builds a Buffer and its line index.
func NewBuffer(filename, content string) *Buffer {
	b := &Buffer{Filename: filename, Content: content}
	b.lineStarts = []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
	return b
}

// Len returns the buffer's byte length.
func (b *Buffer) Len() int { return len(b.Content) }

// Slice returns the bytes covered by r. r must be within [0, Len()].
func (b *Buffer) Slice(r Range) string {
	return b.Content[r.Begin:r.End]
}

// Position converts a byte offset to a 1-based line and a 0-based column.
// Columns are byte offsets from the start of the line, matching the host analyzer's own
// column convention (spec §4.3, §6 message examples).
func (b *Buffer) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.Content) {
		offset = len(b.Content)
	}
	line := upperBound(b.lineStarts, offset) - 1
	col := offset - b.lineStarts[line]
	return Position{Line: line + 1, Column: col}
}

// Line returns the content of the 1-based line n without its trailing
// newline, used by the block-alignment adapter to quote the stripped
// original source line in its rewritten messages (spec §4.3).
func (b *Buffer) Line(n int) string {
	if n < 1 || n > len(b.lineStarts) {
		return ""
	}
	start := b.lineStarts[n-1]
	end := len(b.Content)
	if n < len(b.lineStarts) {
		end = b.lineStarts[n] - 1 // exclude the newline
	}
	if end > 0 && end <= len(b.Content) && end-1 >= start && b.Content[end-1] == '\r' {
		end--
	}
	if end < start {
		end = start
	}
	return b.Content[start:end]
}

// upperBound returns the index of the first element in sorted starts that is
// strictly greater than offset.
func upperBound(starts []int, offset int) int {
	lo, hi := 0, len(starts)
	for lo < hi {
		mid := (lo + hi) / 2
		if starts[mid] <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
