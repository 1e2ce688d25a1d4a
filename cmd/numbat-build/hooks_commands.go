package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"numbatbuild/internal/hooks"
)

func newHooksCommand(ctx *commandContext) *cobra.Command {
	hooksCmd := &cobra.Command{
		Use:   "hooks",
		Short: "Run or install the project's pre-commit hooks",
	}

	hooksCmd.AddCommand(newHooksRunCommand(ctx))
	hooksCmd.AddCommand(newHooksInstallCommand(ctx))

	return hooksCmd
}

func newHooksRunCommand(ctx *commandContext) *cobra.Command {
	var allFiles bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured hooks over the staged files",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := ctx.ensureManifest()
			if err != nil {
				return err
			}

			runner := hooks.NewRunner(ctx.logger(), m, os.Environ())
			results, err := runner.Run(cmd.Context(), allFiles)

			out := cmd.OutOrStdout()
			for _, result := range results {
				if result.Skipped {
					fmt.Fprintf(out, "%s: skipped (no files to check)\n", result.ID)
					continue
				}
				fmt.Fprintf(out, "%s: %d files\n", result.ID, result.Files)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&allFiles, "all-files", false, "Run hooks over every project file instead of staged changes")
	return cmd
}

func newHooksInstallCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the git pre-commit hook script",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := ctx.ensureManifest()
			if err != nil {
				return err
			}

			scriptPath, err := hooks.Install(m.Root)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installed pre-commit hook at %s\n", scriptPath)
			return nil
		},
	}
}
