package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"numbatbuild/internal/collect"
	"numbatbuild/internal/pipeline"
	"numbatbuild/internal/uic"
)

func newCompileUICommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "compile-ui",
		Short: "Compile UI description files into generated Python modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			build, err := ctx.runPipeline(cmd, []pipeline.Step{pipeline.CompileUIStep{}}, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(build.Generated) == 0 {
				fmt.Fprintln(out, "No UI files to compile")
				return nil
			}
			for _, path := range build.Generated {
				fmt.Fprintf(out, "Generated %s\n", path)
			}
			return nil
		},
	}
}

func newCollectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "List the source files that would go into an archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := ctx.ensureManifest()
			if err != nil {
				return err
			}

			uiFiles, err := uic.Discover(m.UIRoot())
			if err != nil {
				return err
			}
			set, err := collect.Sources(m.SrcRoot())
			if err != nil {
				return err
			}
			if err := set.Verify(uiFiles); err != nil {
				return err
			}

			rows := make([][]string, 0, len(set.Files))
			for _, file := range set.Files {
				kind := "source"
				if file.Kind == collect.KindGenerated {
					kind = "generated"
				}
				rows = append(rows, []string{filepath.ToSlash(file.Rel), kind})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"File", "Kind"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d files\n", len(set.Files))
			return nil
		},
	}
}
