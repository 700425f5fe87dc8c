package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	noColor    bool
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "erbindent",
	Short: "Lint and fix indentation of .erb templates",
	Long: `erbindent transpiles ERB templates to an intermediate Ruby-flavoured
representation, runs a set of layout cops over it, and translates the
resulting offenses and auto-corrections back onto the original template.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized output")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)

	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
