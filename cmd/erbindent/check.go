package main

import (
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.erb> [file.erb...]",
	Short: "Report layout offenses without modifying any file",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	anyOffenses := false
	for _, path := range args {
		buf, offenses, err := lintFile(path)
		if err != nil {
			return err
		}
		printOffenses(os.Stdout, buf, offenses)
		if len(offenses) > 0 {
			anyOffenses = true
		}
	}
	if anyOffenses {
		os.Exit(1)
	}
	return nil
}
