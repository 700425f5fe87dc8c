package lint

import (
	"erbindent/internal/hostlint"
	"erbindent/internal/source"
)

// Severity re-exports hostlint's severity enum under the driver's own
// external contract (spec §6 "severity in {convention, warning, refactor,
// error, fatal}").
type Severity = hostlint.Severity

// Correction is one translated, ready-to-apply text edit against the
// original buffer (spec §6 "auto-correct output").
type Correction struct {
	Kind  hostlint.ActionKind
	Range source.Range
	Text  string
}

// Offense is one reported style violation against the original template
// (spec §6 "Outputs of run").
type Offense struct {
	Location    source.Range
	Message     string
	Severity    Severity
	Rule        string
	Corrections []Correction // nil if D was not correctable
}

// Correctable reports whether this offense carries a corrector (spec §6
// "optional context enabling auto-correction").
func (o Offense) Correctable() bool { return o.Corrections != nil }
