package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"numbatbuild/internal/collect"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var removeGenerated bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the scratch directory (and, with --ui, generated UI modules)",
		Long: "Remove the build scratch directory. With --ui the generated *_ui.py " +
			"modules are removed as well. Published archives in the dist directory " +
			"are never touched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := ctx.ensureManifest()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			workRoot := m.WorkRoot()
			if err := os.RemoveAll(workRoot); err != nil {
				return fmt.Errorf("remove scratch directory: %w", err)
			}
			fmt.Fprintf(out, "Removed %s\n", workRoot)

			if !removeGenerated {
				return nil
			}

			matches, err := filepath.Glob(filepath.Join(m.PackageDir(), "*.py"))
			if err != nil {
				return fmt.Errorf("list generated modules: %w", err)
			}
			for _, path := range matches {
				if !collect.IsGenerated(path) {
					continue
				}
				if err := os.Remove(path); err != nil {
					return fmt.Errorf("remove generated module: %w", err)
				}
				fmt.Fprintf(out, "Removed %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&removeGenerated, "ui", false, "Also remove generated *_ui.py modules")
	return cmd
}
