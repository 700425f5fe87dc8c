package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"erbindent/internal/hostlint"
	"erbindent/internal/lint"
	"erbindent/internal/source"
)

// severityColor maps spec §6's severity set onto a red/yellow/cyan palette
// modelled on praetorian-inc-titus's report.go styles.
func severityColor(s lint.Severity) *color.Color {
	switch s {
	case hostlint.SeverityFatal, hostlint.SeverityError:
		return color.New(color.FgRed, color.Bold)
	case hostlint.SeverityWarning:
		return color.New(color.FgYellow)
	default: // convention, refactor
		return color.New(color.FgCyan)
	}
}

// printOffenses writes one line per offense, file:line:col, severity tag and
// message, in rule-registration order.
func printOffenses(w io.Writer, buf *source.Buffer, offenses []lint.Offense) {
	for _, o := range offenses {
		pos := buf.Position(o.Location.Begin)
		tag := severityColor(o.Severity).Sprintf("%s", o.Severity)
		fmt.Fprintf(w, "%s:%d:%d: %s %s\n", buf.Filename, pos.Line, pos.Column, tag, o.Message)
	}
}
