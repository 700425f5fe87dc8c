package transpile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erbindent/internal/erbparse"
	"erbindent/internal/source"
	"erbindent/internal/transpile"
)

func TestTranspileVoidTag(t *testing.T) {
	buf := source.NewBuffer("t.erb", "<br>")
	doc := erbparse.Parse(buf.Content)
	bundle := transpile.Transpile(buf, doc)
	assert.Equal(t, "tag();", bundle.Text)
}

func TestTranspileTextLineKeepsLeadingWhitespace(t *testing.T) {
	buf := source.NewBuffer("t.erb", "<div>\n  hi\n</div>\n")
	doc := erbparse.Parse(buf.Content)
	bundle := transpile.Transpile(buf, doc)

	// column faithfulness (spec §8 invariant 5): the IR's second line
	// still starts with the same 2-space indent as the template's.
	irLines := strings.Split(bundle.Text, "\n")
	require.GreaterOrEqual(t, len(irLines), 2)
	assert.True(t, strings.HasPrefix(irLines[1], "  "))
}

func TestTranspilePreOpacity(t *testing.T) {
	buf := source.NewBuffer("t.erb", "<pre>\n<%= foo %>\n</pre>\n")
	doc := erbparse.Parse(buf.Content)
	bundle := transpile.Transpile(buf, doc)

	// Nothing from inside <pre> makes it into the IR at all (spec §4.1
	// "children are then skipped").
	assert.NotContains(t, bundle.Text, "foo")
}

func TestTranspileSourceMapRoundTripOnVerbatimWhitespace(t *testing.T) {
	buf := source.NewBuffer("t.erb", "<div>\n    hello\n</div>")
	doc := erbparse.Parse(buf.Content)
	bundle := transpile.Transpile(buf, doc)

	// The 4-space indent before "hello" was copied byte for byte into the
	// IR by emitRaw (the word itself becomes a same-length "textt" token),
	// so translating that exact IR sub-range must recover the exact
	// original sub-range (spec §8 invariant 2).
	idx := strings.Index(bundle.Text, "textt")
	require.Greater(t, idx, 3)
	wsIRRange := source.NewRange(idx-4, idx)

	got, ok := bundle.Translate(wsIRRange)
	require.True(t, ok)
	origIdx := strings.Index(buf.Content, "hello")
	assert.Equal(t, source.NewRange(origIdx-4, origIdx), got)
}

func TestTranspileAttributesEmittedInsideParens(t *testing.T) {
	buf := source.NewBuffer("t.erb", `<input a="1" b="2">`)
	doc := erbparse.Parse(buf.Content)
	bundle := transpile.Transpile(buf, doc)
	assert.Contains(t, bundle.Text, "(")
	assert.Contains(t, bundle.Text, ")")
}

func TestTranspileEmbeddedSingleLineCaseD(t *testing.T) {
	buf := source.NewBuffer("t.erb", "<%= foo %>\n")
	doc := erbparse.Parse(buf.Content)
	bundle := transpile.Transpile(buf, doc)
	assert.Equal(t, "foo", strings.TrimSpace(bundle.Text))
}

func TestTranspileColumnFaithfulness(t *testing.T) {
	input := "<div>\n\t<span>\n\t\tbar\n\t</span>\n</div>\n"
	buf := source.NewBuffer("t.erb", input)
	doc := erbparse.Parse(buf.Content)
	bundle := transpile.Transpile(buf, doc)

	srcLines := strings.Split(input, "\n")
	irLines := strings.Split(bundle.Text, "\n")
	require.GreaterOrEqual(t, len(irLines), len(srcLines)-1)
	for i := range srcLines {
		if srcLines[i] == "" {
			continue
		}
		want := srcLines[i][:len(srcLines[i])-len(strings.TrimLeft(srcLines[i], " \t"))]
		got := irLines[i][:len(irLines[i])-len(strings.TrimLeft(irLines[i], " \t"))]
		assert.Equal(t, want, got, "line %d leading whitespace", i+1)
	}
}

func TestTranspileEmbeddedCaseBWrapsInBeginEnd(t *testing.T) {
	input := "<div>\n  <%\n    x = 1\n    y = 2\n  %>\n</div>\n"
	buf := source.NewBuffer("t.erb", input)
	doc := erbparse.Parse(buf.Content)
	bundle := transpile.Transpile(buf, doc)

	irLines := strings.Split(bundle.Text, "\n")
	require.GreaterOrEqual(t, len(irLines), 5)
	assert.Equal(t, "  begin", irLines[1])
	assert.Equal(t, "    x = 1", irLines[2])
	assert.Equal(t, "    y = 2", irLines[3])
	assert.Equal(t, "  end", irLines[4])
}

func TestTranspileEmbeddedCaseAForegoesChecking(t *testing.T) {
	input := "<%\n  x = 1\n  items.each do |i|\n%>\n<%= i %>\n<% end %>\n"
	buf := source.NewBuffer("t.erb", input)
	doc := erbparse.Parse(buf.Content)
	bundle := transpile.Transpile(buf, doc)

	assert.Contains(t, bundle.Text, "__with_block do")
	assert.NotContains(t, bundle.Text, "items.each")
}

func TestTranspileEmbeddedCaseCReservesOpeningColumns(t *testing.T) {
	input := "<% foo.bar(\n     baz) %>\n"
	buf := source.NewBuffer("t.erb", input)
	doc := erbparse.Parse(buf.Content)
	bundle := transpile.Transpile(buf, doc)

	// "<% " is three columns wide; the placeholder plus ";" reserves them
	// so "foo.bar(" starts at the code's original column.
	assert.True(t, strings.HasPrefix(bundle.Text, "xx;foo.bar("))
	assert.Contains(t, bundle.Text, "\n     baz)")
}

func TestTranspileEmbeddedCaseEMidLine(t *testing.T) {
	input := "<span><% x = 1 %>tail</span>\n"
	buf := source.NewBuffer("t.erb", input)
	doc := erbparse.Parse(buf.Content)
	bundle := transpile.Transpile(buf, doc)

	// Placeholders on both sides keep the code from being read as its own
	// line; the trailing text still follows on the same IR line.
	line := strings.Split(bundle.Text, "\n")[0]
	assert.Contains(t, line, ";x = 1")
	assert.Contains(t, line, "text;")
}

func TestTranspileCommentOnOwnLine(t *testing.T) {
	input := "<div>\n  <%# note %>\n</div>\n"
	buf := source.NewBuffer("t.erb", input)
	doc := erbparse.Parse(buf.Content)
	bundle := transpile.Transpile(buf, doc)
	assert.Contains(t, bundle.Text, "  __comment;")
}

func TestTranspileMidLineCommentSuppressed(t *testing.T) {
	input := "<div>text <%# note %></div>\n"
	buf := source.NewBuffer("t.erb", input)
	doc := erbparse.Parse(buf.Content)
	bundle := transpile.Transpile(buf, doc)
	assert.NotContains(t, bundle.Text, "__comment")
}

func TestTranspileEmbeddedWholeSpanTranslation(t *testing.T) {
	input := "<div>\n  <%= greeting %>\n</div>\n"
	buf := source.NewBuffer("t.erb", input)
	doc := erbparse.Parse(buf.Content)
	bundle := transpile.Transpile(buf, doc)

	// The emitted code token translates back to the whole <%= ... %> span
	// (the tag-span entry wins exact lookups), while sub-ranges of the
	// token still resolve relatively through the code-bytes entry.
	idx := strings.Index(bundle.Text, "greeting")
	require.GreaterOrEqual(t, idx, 0)

	whole, ok := bundle.Translate(source.NewRange(idx, idx+len("greeting")))
	require.True(t, ok)
	tagBegin := strings.Index(input, "<%=")
	assert.Equal(t, source.NewRange(tagBegin, tagBegin+len("<%= greeting %>")), whole)

	sub, ok := bundle.Translate(source.NewRange(idx+1, idx+3))
	require.True(t, ok)
	codeBegin := strings.Index(input, "greeting")
	assert.Equal(t, source.NewRange(codeBegin+1, codeBegin+3), sub)
}
