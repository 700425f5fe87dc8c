package lint

import (
	"fmt"
	"strings"

	"erbindent/internal/hostlint"
	"erbindent/internal/ir"
)

// adaptBlockAlignment implements the BlockAlignmentAdapter of spec §4.3:
// it intercepts the host block-alignment rule's message, translates both
// the offending range and its recorded block-opener range through the IR,
// and rewrites the message to quote the original file's line/column and
// the stripped original source line instead of the IR's. The rule's
// identity (Rule name) is left untouched, preserving it for registry/badge
// purposes as spec §4.3 requires.
func adaptBlockAlignment(d hostlint.Diagnostic, bundle *ir.IR) hostlint.Diagnostic {
	if d.Rule != "Layout/BlockAlignment" || !d.HasOpener {
		return d
	}

	closeSrc, closeOK := bundle.Translate(d.Range)
	openSrc, openOK := bundle.Translate(d.BlockOpener)
	if !closeOK || !openOK {
		return d // leave the IR-coordinate message; translateDiagnostic then falls back to d.Range's beginning and drops the offense only if that fails too
	}

	// d.Range/d.BlockOpener are the closer's/opener's token ranges; once
	// translated they cover the original tags themselves, so the quoted
	// location is each translated range's beginning.
	closePos := bundle.Source.Position(closeSrc.Begin)
	openPos := bundle.Source.Position(openSrc.Begin)
	closeLine := strings.TrimSpace(bundle.Source.Line(closePos.Line))
	openLine := strings.TrimSpace(bundle.Source.Line(openPos.Line))

	d.Message = fmt.Sprintf("%s: `%s` at %d, %d is not aligned with `%s` at %d, %d.",
		d.Rule, closeLine, closePos.Line, closePos.Column, openLine, openPos.Line, openPos.Column)
	return d
}
