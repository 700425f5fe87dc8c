package main

import (
	"os"

	"github.com/spf13/cobra"

	"erbindent/internal/lint"
)

// maxFixPasses bounds the correct-and-relint loop. Corrections are computed
// against the pre-fix buffer, so one round's fixes can shift what the next
// round measures against (a re-aligned `end` changes its block's base
// column); iterating to a fixpoint is how the host analyzer behaves too.
const maxFixPasses = 10

var fixCmd = &cobra.Command{
	Use:   "fix <file.erb> [file.erb...]",
	Short: "Apply auto-corrections in place and report what's left",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFix,
}

func runFix(cmd *cobra.Command, args []string) error {
	anyUncorrectable := false
	for _, path := range args {
		applied := 0
		for pass := 0; pass < maxFixPasses; pass++ {
			buf, offenses, err := lintFile(path)
			if err != nil {
				return err
			}

			var corrections []lint.Correction
			var remaining []lint.Offense
			for _, o := range offenses {
				if o.Correctable() {
					corrections = append(corrections, o.Corrections...)
				} else {
					remaining = append(remaining, o)
				}
			}

			if len(corrections) == 0 {
				if applied > 0 {
					log.Infof("%s: applied %d correction(s)", path, applied)
				}
				printOffenses(os.Stdout, buf, remaining)
				if len(remaining) > 0 {
					anyUncorrectable = true
				}
				break
			}

			fixed := lint.Fix(buf, corrections)
			if err := os.WriteFile(path, []byte(fixed), 0o644); err != nil {
				return err
			}
			applied += len(corrections)
		}
	}
	if anyUncorrectable {
		os.Exit(1)
	}
	return nil
}
