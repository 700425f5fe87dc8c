// Package transpile implements the IRTranspiler of spec §4.1: a visitor
// that walks an erbast.Document and produces IR text whose leading
// whitespace mirrors the template's, plus the source map recording what
// was emitted in lieu of what.
//
// Grounded on the teacher's own AST-to-IR visitor
// (packages/compiler/src/template/pipeline/ingest.go) and its visitor
// composition idiom (packages/compiler/visitor/combined_visitor.go):
// a stateful walker that appends to an output buffer while recording
// provenance for every emission, one visit method per node kind.
package transpile

import (
	"strings"

	"erbindent/internal/erbast"
	"erbindent/internal/ir"
	"erbindent/internal/source"
	"erbindent/internal/sourcemap"
)

// Transpile runs the IRTranspiler over doc and returns the resulting IR.
// It never raises on malformed input (spec §7 "Malformed template"): it is
// a pure, total function of (src, doc).
func Transpile(src *source.Buffer, doc *erbast.Document) *ir.IR {
	t := &transpiler{
		src: src,
		sm:  sourcemap.New(),
	}
	_ = erbast.VisitAll(t, doc.Children)
	return ir.New(src, t.buf.String(), t.sm)
}

type transpiler struct {
	src       *source.Buffer
	buf       strings.Builder
	sm        *sourcemap.Map
	tagStack  []string
	insidePre bool
}

// emit appends irBytes to the IR buffer and records a source-map entry
// linking the new IR range back to originRange (spec §4.1 "Emission
// primitive").
func (t *transpiler) emit(originRange source.Range, irBytes string) {
	start := t.buf.Len()
	t.buf.WriteString(irBytes)
	end := t.buf.Len()
	t.sm.Add(source.NewRange(start, end), originRange)
}

// emitRaw copies bytes verbatim (e.g. leading whitespace runs) from the
// original source, recording a length-preserving entry.
func (t *transpiler) emitRaw(originRange source.Range) {
	t.emit(originRange, t.src.Slice(originRange))
}

// point returns the empty insertion-point range at offset, used as the
// origin for IR bytes with no original counterpart (spec §3 "empty ranges
// ... mean insertion point p").
func point(offset int) source.Range { return source.NewRange(offset, offset) }

// repeatToken builds a string of exactly n bytes by repeating token,
// truncating the final repetition (spec §4.1 "a same-length identifier
// built by repeating the token tag so column positions line up").
func repeatToken(token string, n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(token)
	}
	return b.String()[:n]
}

// --- Visitor implementation -------------------------------------------------

func (t *transpiler) VisitDocument(d *erbast.Document) error {
	return erbast.VisitAll(t, d.Children)
}

func (t *transpiler) VisitTag(tag *erbast.Tag) error {
	if t.insidePre {
		return nil
	}

	t.tagStack = append(t.tagStack, tag.Name)

	// "<name" prefix -> same-length "tag"-repeated identifier, then "(".
	prefixLen := len("<") + len(tag.Name)
	prefixRng := source.NewRange(tag.OpenRng.Begin, tag.OpenRng.Begin+prefixLen)
	t.emit(prefixRng, repeatToken("tag", prefixLen))
	t.emit(point(prefixRng.End), "(")

	t.emitAttributes(tag)

	t.emit(point(tag.OpenRng.End), ")")

	void := tag.Void || tag.SelfClosed
	if void {
		t.emit(point(tag.OpenRng.End), ";")
		t.tagStack = t.tagStack[:len(t.tagStack)-1]
		return nil
	}

	t.emit(point(tag.OpenRng.End), " {")

	if tag.Name == "pre" {
		t.insidePre = true
		// Copy verbatim any leading whitespace on the line following the
		// open tag, so a later `</pre>` line's own leading whitespace
		// check (spec §4.1 "Closing Tag") still lines up; pre's own
		// content stays indentation-opaque (spec §8 invariant 3).
		if ws := leadingWhitespaceAfter(t.src, tag.OpenRng.End); ws.Len() > 0 {
			t.emitRaw(ws)
		}
	} else {
		if err := erbast.VisitAll(t, tag.Children); err != nil {
			return err
		}
	}

	if tag.Name == "pre" {
		t.insidePre = false
	}

	t.tagStack = t.tagStack[:len(t.tagStack)-1]

	if tag.HasClose {
		if tag.Name == "pre" {
			if ws := lineLeadingWhitespace(t.src, tag.CloseRng.Begin); ws.Len() > 0 {
				t.emitRaw(ws)
			}
		}
		t.emit(tag.CloseRng, "}")
		t.emit(point(tag.CloseRng.End), ";")
	}
	return nil
}

// emitAttributes emits one repeated "line" token per attribute, comma
// separated when the source tag spans multiple lines (spec §4.1
// "Attributes").
func (t *transpiler) emitAttributes(tag *erbast.Tag) {
	n := len(tag.Attrs)
	if n == 0 {
		return
	}
	multiline := strings.Contains(
		t.src.Slice(source.NewRange(tag.Attrs[0].Rng.Begin, tag.OpenRng.End)), "\n")

	for i, a := range tag.Attrs {
		t.emit(a.Rng, repeatToken("line", a.Rng.Len()))
		if !multiline || i == n-1 {
			continue
		}
		// Separator: a synthetic "," followed by the original whitespace
		// run between this attribute and the next, copied verbatim so the
		// analyzer sees the real newline/indentation of the next
		// attribute's line.
		next := tag.Attrs[i+1]
		sep := source.NewRange(a.Rng.End, next.Rng.Begin)
		t.emit(point(a.Rng.End), ",")
		t.emitRaw(sep)
	}
}

func (t *transpiler) VisitText(text *erbast.Text) error {
	if t.insidePre {
		return nil
	}
	for _, part := range text.Parts {
		if part.Child != nil {
			if err := part.Child.Visit(t); err != nil {
				return err
			}
			continue
		}
		t.emitTextLiteral(part.Literal, part.Rng)
	}
	return nil
}

// emitTextLiteral splits a literal run into (leading-ws, text, trailing-ws)
// groups, copying whitespace byte-for-byte and emitting a same-length
// `text`-repeated token (plus `;`) for non-whitespace runs of length >= 2,
// or a bare `;` for length-1 runs (spec §4.1 "Text").
func (t *transpiler) emitTextLiteral(lit string, rng source.Range) {
	i := 0
	for i < len(lit) {
		// Leading whitespace run (copied verbatim, newlines included).
		start := i
		for i < len(lit) && isWS(lit[i]) {
			i++
		}
		if i > start {
			t.emitRaw(source.NewRange(rng.Begin+start, rng.Begin+i))
		}
		// Non-whitespace run.
		start = i
		for i < len(lit) && !isWS(lit[i]) {
			i++
		}
		if i == start {
			continue
		}
		chunk := source.NewRange(rng.Begin+start, rng.Begin+i)
		switch chunk.Len() {
		case 0:
			// unreachable
		case 1:
			t.emit(chunk, ";")
		default:
			t.emit(chunk, repeatToken("text", chunk.Len())+";")
		}
	}
}

func isWS(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (t *transpiler) VisitComment(c *erbast.Comment) error {
	if t.insidePre {
		return nil
	}
	if !startsOwnLine(t.src, c.Rng.Begin) {
		return nil
	}
	t.emit(c.Rng, "__comment;")
	return nil
}

func (t *transpiler) VisitEmbedded(e *erbast.Embedded) error {
	if t.insidePre {
		return nil
	}

	// Spec §4.1: "Record two source-map entries per emitted tag: one for
	// the entire <% … %> span (endpoint map) and one for just the code
	// bytes (length-preserving map)." The whole-span entry covers every
	// IR byte this visit emits and is inserted ahead of the finer
	// per-case entries so it wins exact and endpoint lookups; an
	// analyzer offense on the emitted code thereby reports the whole
	// original tag, not just its code bytes.
	mark := t.sm.Mark()
	irStart := t.buf.Len()
	t.emitEmbedded(e)
	t.sm.InsertAt(mark, source.NewRange(irStart, t.buf.Len()), e.Rng)
	return nil
}

func (t *transpiler) emitEmbedded(e *erbast.Embedded) {
	if e.Indicator == erbast.IndicatorComment {
		t.emit(e.Rng, "##{"+e.Code+"}")
		return
	}

	code := e.Code
	startsOnNewline := strings.HasPrefix(code, "\n")
	stripped := strings.TrimSpace(code)
	isMultiline := strings.Contains(stripped, "\n")
	trailingBlock := isTrailingBlockOpener(stripped)
	tagEndsOnNewline := followedByNewline(t.src, e.Rng.End)

	switch {
	case isMultiline && startsOnNewline && trailingBlock:
		// Case A: forego indentation checking for this chunk entirely.
		t.emit(e.CodeRng, "__with_block "+trailingBlockToken(stripped))
		return

	case isMultiline && startsOnNewline:
		// Case B: begin/end wrap exposes the body's indentation to the
		// analyzer, anchored on the <% column. The code's own leading and
		// trailing whitespace runs (newlines included) are copied verbatim
		// so the body keeps its lines and `end` gets the %> line to
		// itself.
		lead := len(code) - len(strings.TrimLeft(code, " \t\r\n"))
		t.emit(point(e.CodeRng.Begin), "begin")
		t.emitRaw(source.NewRange(e.CodeRng.Begin, e.CodeRng.Begin+lead))
		t.emit(strippedCodeRange(e), stripped)
		t.emitRaw(source.NewRange(e.CodeRng.Begin+lead+len(stripped), e.CodeRng.End))
		t.emit(point(e.CodeRng.End), "end")
		return

	case isMultiline:
		// Case C: same-column placeholder reserves <%'s columns so later
		// lines compare against them. The placeholder is one byte short of
		// the opening width so that, with its ";", the code starts at its
		// original column.
		placeholder := repeatToken("x", codeOpeningWidth(e)-1)
		t.emit(point(e.CodeRng.Begin), placeholder)
		t.emit(point(e.CodeRng.Begin), ";")
		t.emit(strippedCodeRange(e), stripped)
		return

	case tagEndsOnNewline:
		// Case D: single line, tag ends the line; no placeholder needed.
		t.emit(strippedCodeRange(e), stripped)
		if !endsOnNewlineInSource(t.src, e.Rng.End) {
			t.emit(point(e.Rng.End), ";")
		}
		return

	default:
		// Case E: single line, more content follows on the same source
		// line; placeholders on both sides keep it from being
		// misinterpreted as starting a new IR line.
		openWidth := codeOpeningWidth(e)
		t.emit(point(e.Rng.Begin), repeatToken("x", openWidth))
		t.emit(point(e.Rng.Begin), ";")
		t.emit(strippedCodeRange(e), stripped)
		if !endsOnNewlineInSource(t.src, e.Rng.End) {
			t.emit(point(e.Rng.End), repeatToken("x", 1))
			t.emit(point(e.Rng.End), ";")
		}
		return
	}
}

// strippedCodeRange narrows e.CodeRng down to the exact bytes
// strings.TrimSpace(e.Code) kept, so the code-bytes entry each case records
// against it stays length-preserving as spec §4.1 requires.
func strippedCodeRange(e *erbast.Embedded) source.Range {
	code := e.Code
	trimmedLeft := strings.TrimLeft(code, " \t\r\n")
	lead := len(code) - len(trimmedLeft)
	trimmed := strings.TrimRight(trimmedLeft, " \t\r\n")
	begin := e.CodeRng.Begin + lead
	return source.NewRange(begin, begin+len(trimmed))
}

// codeOpeningWidth is the column width of "<%" plus its indicator plus the
// code's own leading whitespace -- the columns the placeholder must reserve
// (spec §9 "Placeholder sizing").
func codeOpeningWidth(e *erbast.Embedded) int {
	w := len("<%")
	if e.Indicator == erbast.IndicatorOutput {
		w++
	}
	code := e.Code
	trimmed := strings.TrimLeft(code, " \t")
	w += len(code) - len(trimmed)
	return w
}

// isTrailingBlockOpener reports whether stripped's last non-blank line
// opens a block ("... do |x|" or "... {"), the precondition for spec §4.1
// Case A.
func isTrailingBlockOpener(stripped string) bool {
	lines := strings.Split(stripped, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	return strings.HasSuffix(last, "{") ||
		last == "do" || strings.HasSuffix(last, " do") ||
		(strings.Contains(last, " do |") && strings.HasSuffix(last, "|"))
}

func trailingBlockToken(stripped string) string {
	lines := strings.Split(stripped, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if strings.HasSuffix(last, "{") {
		return "{"
	}
	return "do"
}

func followedByNewline(src *source.Buffer, offset int) bool {
	rest := src.Content[minInt(offset, len(src.Content)):]
	trimmed := strings.TrimLeft(rest, " \t")
	return strings.HasPrefix(trimmed, "\n") || trimmed == ""
}

func endsOnNewlineInSource(src *source.Buffer, offset int) bool {
	if offset >= len(src.Content) {
		return true
	}
	return src.Content[offset] == '\n'
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// leadingWhitespaceAfter returns the leading whitespace run on the line
// that begins right after offset (skips the tag's own trailing newline).
func leadingWhitespaceAfter(src *source.Buffer, offset int) source.Range {
	i := offset
	if i < len(src.Content) && src.Content[i] == '\n' {
		i++
	}
	start := i
	for i < len(src.Content) && (src.Content[i] == ' ' || src.Content[i] == '\t') {
		i++
	}
	return source.NewRange(start, i)
}

// lineLeadingWhitespace returns the leading whitespace of the line
// containing offset, up to offset itself, including the newline that starts
// the line so the emitted run opens a fresh IR line.
func lineLeadingWhitespace(src *source.Buffer, offset int) source.Range {
	lineStart := offset
	for lineStart > 0 && src.Content[lineStart-1] != '\n' {
		lineStart--
	}
	i := lineStart
	for i < offset && (src.Content[i] == ' ' || src.Content[i] == '\t') {
		i++
	}
	if lineStart > 0 {
		lineStart--
	}
	return source.NewRange(lineStart, i)
}

// startsOwnLine reports whether only whitespace precedes offset on its
// line (spec §4.1 "Comments ... outside text: emit __comment; only if the
// comment starts its own line").
func startsOwnLine(src *source.Buffer, offset int) bool {
	i := offset
	for i > 0 && src.Content[i-1] != '\n' {
		i--
		if src.Content[i] != ' ' && src.Content[i] != '\t' {
			return false
		}
	}
	return true
}
