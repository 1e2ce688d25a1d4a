package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent build runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No recorded builds")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				artifacts := "-"
				switch {
				case run.WheelPath != "" && run.SdistPath != "":
					artifacts = fmt.Sprintf("%s, %s", filepath.Base(run.WheelPath), filepath.Base(run.SdistPath))
				case run.WheelPath != "":
					artifacts = filepath.Base(run.WheelPath)
				case run.SdistPath != "":
					artifacts = filepath.Base(run.SdistPath)
				case run.Error != "":
					artifacts = run.Error
				}
				elapsed := "-"
				if !run.FinishedAt.IsZero() {
					elapsed = run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
				}
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					string(run.Status),
					elapsed,
					artifacts,
				})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Started", "Status", "Elapsed", "Artifacts"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
