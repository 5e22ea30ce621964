package main

import (
	"fmt"
	"os"

	"github.com/evalkit/confmat/internal/projectconfig"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default .confmat.yaml",
		Long: `Write a .confmat.yaml holding the default matrix and report settings.

If no directory is specified, the current directory is used. An existing
file is left alone unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}

			p, err := projectconfig.Write(dir, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", p) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .confmat.yaml")

	return cmd
}
