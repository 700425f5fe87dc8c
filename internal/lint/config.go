// Package lint is the linter driver of spec §4.4: it builds the IR, runs
// the host rule team over it, and translates diagnostics and correction
// actions back onto the original template.
package lint

import (
	"fmt"
	"strings"

	"erbindent/internal/hostlint"
)

// Config mirrors the enumerated option set of spec §6 exactly.
type Config struct {
	Width             int    `koanf:"width"`
	BlockAlignWith    string `koanf:"enforced_style_block_align_with"`
	BeginEndAlignWith string `koanf:"enforced_style_begin_end_align_with"`
	EndAlignWith      string `koanf:"enforced_style_end_align_with"`
	ArgumentAlignment string `koanf:"enforced_style_argument_alignment"`
}

// DefaultConfig returns spec §6's stated defaults, leaving the "default per
// host" fields at this module's own chosen host default of start_of_line.
func DefaultConfig() Config {
	return Config{
		Width:             2,
		BlockAlignWith:    "start_of_line",
		BeginEndAlignWith: "start_of_line",
		EndAlignWith:      "keyword",
		ArgumentAlignment: "with_first_argument",
	}
}

// ConfigError is the typed failure spec §7 "Configuration error" requires:
// construction is rejected with every offending field enumerated; Run is
// never invoked.
type ConfigError struct {
	Fields []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("lint: invalid configuration: %s", strings.Join(e.Fields, ", "))
}

var (
	blockAlignStyles = map[string]hostlint.AlignStyle{
		"start_of_block": hostlint.AlignStartOfBlock,
		"start_of_line":  hostlint.AlignStartOfLine,
		"either":         hostlint.AlignEither,
	}
	endAlignStyles = map[string]hostlint.EndAlignStyle{
		"keyword":       hostlint.EndAlignKeyword,
		"variable":      hostlint.EndAlignVariable,
		"start_of_line": hostlint.EndAlignStartOfLine,
	}
	argumentAlignStyles = map[string]hostlint.ArgumentAlignStyle{
		"with_first_argument":    hostlint.ArgumentAlignWithFirst,
		"with_fixed_indentation": hostlint.ArgumentAlignFixedIndentation,
	}
)

// Validate checks every field against spec §6's enumerated value sets and
// returns a *ConfigError naming every offending field, or nil.
func (c Config) Validate() error {
	var bad []string
	if c.Width < 1 {
		bad = append(bad, "width")
	}
	if _, ok := blockAlignStyles[c.BlockAlignWith]; !ok {
		bad = append(bad, "enforced_style_block_align_with")
	}
	if _, ok := blockAlignStyles[c.BeginEndAlignWith]; !ok {
		bad = append(bad, "enforced_style_begin_end_align_with")
	}
	if _, ok := endAlignStyles[c.EndAlignWith]; !ok {
		bad = append(bad, "enforced_style_end_align_with")
	}
	if _, ok := argumentAlignStyles[c.ArgumentAlignment]; !ok {
		bad = append(bad, "enforced_style_argument_alignment")
	}
	if len(bad) > 0 {
		return &ConfigError{Fields: bad}
	}
	return nil
}

// toHostOptions maps Config onto hostlint.Options per spec §6's exact
// configuration-mapping table. Validate must be called (and return nil)
// before this is used.
func (c Config) toHostOptions() hostlint.Options {
	return hostlint.Options{
		Width:             c.Width,
		BlockAlignWith:    blockAlignStyles[c.BlockAlignWith],
		BeginEndAlignWith: blockAlignStyles[c.BeginEndAlignWith],
		EndAlignWith:      endAlignStyles[c.EndAlignWith],
		ArgumentAlignment: argumentAlignStyles[c.ArgumentAlignment],
	}
}
