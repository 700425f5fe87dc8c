package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erbindent/internal/hostlint"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestValidateEnumeratesEveryOffendingField(t *testing.T) {
	cfg := Config{
		Width:             0,
		BlockAlignWith:    "nope",
		BeginEndAlignWith: "nope",
		EndAlignWith:      "nope",
		ArgumentAlignment: "nope",
	}
	err := cfg.Validate()
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, []string{
		"width",
		"enforced_style_block_align_with",
		"enforced_style_begin_end_align_with",
		"enforced_style_end_align_with",
		"enforced_style_argument_alignment",
	}, cerr.Fields)
	assert.Contains(t, cerr.Error(), "width")
}

func TestValidateAcceptsEveryEnumeratedValue(t *testing.T) {
	for _, align := range []string{"start_of_block", "start_of_line", "either"} {
		for _, end := range []string{"keyword", "variable", "start_of_line"} {
			for _, arg := range []string{"with_first_argument", "with_fixed_indentation"} {
				cfg := Config{
					Width:             4,
					BlockAlignWith:    align,
					BeginEndAlignWith: align,
					EndAlignWith:      end,
					ArgumentAlignment: arg,
				}
				assert.NoError(t, cfg.Validate())
			}
		}
	}
}

func TestToHostOptionsMapping(t *testing.T) {
	cfg := Config{
		Width:             3,
		BlockAlignWith:    "either",
		BeginEndAlignWith: "start_of_block",
		EndAlignWith:      "variable",
		ArgumentAlignment: "with_fixed_indentation",
	}
	require.NoError(t, cfg.Validate())

	opts := cfg.toHostOptions()
	assert.Equal(t, 3, opts.Width)
	assert.Equal(t, hostlint.AlignEither, opts.BlockAlignWith)
	assert.Equal(t, hostlint.AlignStartOfBlock, opts.BeginEndAlignWith)
	assert.Equal(t, hostlint.EndAlignVariable, opts.EndAlignWith)
	assert.Equal(t, hostlint.ArgumentAlignFixedIndentation, opts.ArgumentAlignment)
}
