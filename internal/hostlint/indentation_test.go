package hostlint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erbindent/internal/source"
)

func defaultOptions() Options {
	return Options{
		Width:             2,
		BlockAlignWith:    AlignStartOfLine,
		BeginEndAlignWith: AlignStartOfLine,
		EndAlignWith:      EndAlignKeyword,
		ArgumentAlignment: ArgumentAlignWithFirst,
	}
}

func TestIndentationWidthFlagsOverIndentedBody(t *testing.T) {
	text := "tag() {\n   stmt;\n};\n"
	diags := (&IndentationWidthRule{}).Run(text, defaultOptions())
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "Layout/IndentationWidth: Use 2 (not 3) spaces for indentation.", d.Message)
	assert.Equal(t, source.NewRange(8, 11), d.Range)
	require.Len(t, d.Actions, 1)
	assert.Equal(t, ActionReplace, d.Actions[0].Kind)
	assert.Equal(t, "  ", d.Actions[0].Text)
}

func TestIndentationWidthMeasuresAgainstCloserColumn(t *testing.T) {
	// The body sits Width past the opener but the closer was pushed right;
	// the base column is the closer's, so relative indentation is 0.
	text := "do\n  stmt;\n  end\n"
	diags := (&IndentationWidthRule{}).Run(text, defaultOptions())
	require.Len(t, diags, 1)
	assert.Equal(t, "Layout/IndentationWidth: Use 2 (not 0) spaces for indentation.", diags[0].Message)
	assert.True(t, diags[0].Range.Empty())
}

func TestIndentationWidthAcceptsCorrectBody(t *testing.T) {
	text := "tag() {\n  stmt;\n};\n"
	assert.Empty(t, (&IndentationWidthRule{}).Run(text, defaultOptions()))
}

func TestIndentationWidthSkipsUnclosedBlocks(t *testing.T) {
	text := "tag() {\n      stmt;\n"
	assert.Empty(t, (&IndentationWidthRule{}).Run(text, defaultOptions()))
}

func TestIndentationConsistencyFlagsDivergingSibling(t *testing.T) {
	text := "tag() {\n  stmt;\n   stmt;\n};\n"
	diags := (&IndentationConsistencyRule{}).Run(text, defaultOptions())
	require.Len(t, diags, 1)
	assert.Equal(t, "Layout/IndentationConsistency: Inconsistent indentation detected.", diags[0].Message)
	assert.Equal(t, "  ", diags[0].Actions[0].Text)
}

func TestIndentationConsistencySkipsArgumentContinuations(t *testing.T) {
	// Lines starting inside an open call are argument continuations and
	// belong to ArgumentAlignmentRule, not to sibling consistency.
	text := "tag() {\n  call(aaaa,\n      bbbb,\n        cccc) {\n    stmt;\n  };\n};\n"
	assert.Empty(t, (&IndentationConsistencyRule{}).Run(text, defaultOptions()))
}

func TestIndentationConsistencySkipsClosers(t *testing.T) {
	text := "tag() {\n  stmt;\n    };\n"
	assert.Empty(t, (&IndentationConsistencyRule{}).Run(text, defaultOptions()))
}
