// Package hostlint stands in for the host code-style analyzer spec §1 and
// §6 name as an external collaborator: a black-box engine that reports
// offenses with ranges and text-edit actions against source code. No
// library in the retrieved corpus implements RuboCop-style layout cops in
// Go, so this is one of the few places in this module that is built on
// plain string/line scanning rather than a third-party dependency — there
// is no ecosystem stand-in to wire it to (see DESIGN.md).
//
// It implements exactly the seven rules spec §4.4/§6 name, each scanning the
// IR text (never the original template) and reporting diagnostics and
// correction actions in IR coordinates. The linter driver (internal/lint)
// is responsible for translating those back to the original source.
package hostlint

import "erbindent/internal/source"

// Severity mirrors spec §6's enumerated severities.
type Severity string

const (
	SeverityConvention Severity = "convention"
	SeverityWarning    Severity = "warning"
	SeverityRefactor   Severity = "refactor"
	SeverityError      Severity = "error"
	SeverityFatal      Severity = "fatal"
)

// ActionKind is one of the four text-edit primitives spec §6 names.
type ActionKind int

const (
	ActionRemove ActionKind = iota
	ActionInsertBefore
	ActionInsertAfter
	ActionReplace
)

// Action is a single text-edit instruction, in IR coordinates.
type Action struct {
	Kind  ActionKind
	Range source.Range // for InsertBefore/After only its Begin/End (respectively) is used, as the insertion point
	Text  string       // new text for Replace/InsertBefore/InsertAfter
}

// Diagnostic is one rule violation, in IR coordinates, with its rule name,
// human message, severity and (when correctable) the flat action list
// spec §4.4 step 6 describes flattening corrections into.
type Diagnostic struct {
	Rule     string
	Range    source.Range
	Message  string
	Severity Severity
	Actions  []Action // nil if not correctable

	// BlockOpener, when set, is the range of the opening construct this
	// diagnostic is relative to (e.g. the block's opener tag); used by
	// the BlockAlignmentAdapter (spec §4.3) to quote its coordinates too.
	BlockOpener source.Range
	HasOpener   bool
}

// Options mirrors the config fields spec §6 enumerates, already validated.
type Options struct {
	Width             int
	BlockAlignWith    AlignStyle
	BeginEndAlignWith AlignStyle
	EndAlignWith      EndAlignStyle
	ArgumentAlignment ArgumentAlignStyle
}

type AlignStyle int

const (
	AlignStartOfBlock AlignStyle = iota
	AlignStartOfLine
	AlignEither
)

type EndAlignStyle int

const (
	EndAlignKeyword EndAlignStyle = iota
	EndAlignVariable
	EndAlignStartOfLine
)

type ArgumentAlignStyle int

const (
	ArgumentAlignWithFirst ArgumentAlignStyle = iota
	ArgumentAlignFixedIndentation
)

// Rule is one host cop. Each rule is stateless across runs: it is handed
// the IR text once and returns every diagnostic it finds.
type Rule interface {
	Name() string
	Run(text string, opts Options) []Diagnostic
}

// Team runs every enabled rule over a single IR text, in the order the
// rules were registered, matching spec §4.4 step 4 "Invoke the team on the
// IR text, collecting diagnostics". Named Team after RuboCop's own
// Cop::Team concept, which the spec's "team of host rules" phrasing
// describes.
type Team struct {
	rules []Rule
}

// NewTeam builds the team spec §4.4 step 2 requires: indentation-width,
// indentation-consistency, block-alignment, begin-end-alignment,
// end-alignment, else-alignment, argument-alignment, all Enabled=true.
func NewTeam() *Team {
	return &Team{rules: []Rule{
		&IndentationWidthRule{},
		&IndentationConsistencyRule{},
		&BlockAlignmentRule{},
		&BeginEndAlignmentRule{},
		&EndAlignmentRule{},
		&ElseAlignmentRule{},
		&ArgumentAlignmentRule{},
	}}
}

// Run invokes every rule in the team and returns their diagnostics
// concatenated in rule-registration order (spec §7 "offenses are stable
// and diagnostic-ordered").
func (t *Team) Run(text string, opts Options) []Diagnostic {
	var all []Diagnostic
	for _, r := range t.rules {
		all = append(all, r.Run(text, opts)...)
	}
	return all
}
