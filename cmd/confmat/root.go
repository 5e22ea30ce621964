package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confmat",
		Short: "confmat - binary classification metrics from a confusion matrix",
		Long: `confmat computes accuracy, precision, sensitivity (recall), specificity
and F-score from the four cells of a binary confusion matrix.

Counts come from flags, a matrix file, an interactive prompt, or the
matrix in .confmat.yaml. An undefined ratio (0/0) is reported as 0.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
