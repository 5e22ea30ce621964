package main

import (
	"fmt"

	"github.com/evalkit/confmat/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <matrix.yaml> [matrix.yaml ...]",
		Short: "Check matrix files against the schema",
		Long: `Check that each file holds a single confusion matrix: integer vp, vn, fp
and fn cells, none negative, plus an optional name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: validateCommandE,
	}
}

func validateCommandE(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	invalid := 0
	for _, path := range args {
		problems, err := validation.ValidateMatrixFile(path)
		if err != nil {
			return fmt.Errorf("failed to validate %s: %w", path, err)
		}
		if len(problems) == 0 {
			fmt.Fprintf(out, "✅ %s\n", path) //nolint:errcheck
			continue
		}
		invalid++
		fmt.Fprintf(out, "❌ %s\n", path) //nolint:errcheck
		for _, p := range problems {
			fmt.Fprintf(out, "   %s\n", p) //nolint:errcheck
		}
	}

	if invalid > 0 {
		return &InvalidInputError{Message: fmt.Sprintf("%d of %d matrix files are invalid", invalid, len(args))}
	}
	return nil
}
