package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"numbatbuild/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the project layout and external tools before building",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := ctx.ensureManifest()
			if err != nil {
				return err
			}

			results := preflight.RunAll(m)

			rows := make([][]string, 0, len(results))
			for _, result := range results {
				status := "FAIL"
				switch {
				case result.Passed:
					status = "OK"
				case result.Optional:
					status = "MISSING"
				}
				rows = append(rows, []string{result.Name, status, result.Detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Check", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if !preflight.RequiredPassed(results) {
				return fmt.Errorf("required preflight checks failed")
			}
			fmt.Fprintln(out, "Ready to build")
			return nil
		},
	}
}
