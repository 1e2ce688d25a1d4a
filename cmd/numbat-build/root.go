package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var manifestFlag string

	ctx := newCommandContext(&manifestFlag)

	rootCmd := &cobra.Command{
		Use:           "numbat-build",
		Short:         "Build tool for the numbat annotation application",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipManifest(cmd) {
				return nil
			}
			_, err := ctx.ensureManifest()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&manifestFlag, "manifest", "m", "", "Path to the project manifest (default ./numbat.toml)")

	rootCmd.AddCommand(newBuildCommand(ctx))
	rootCmd.AddCommand(newWheelCommand(ctx))
	rootCmd.AddCommand(newSdistCommand(ctx))
	rootCmd.AddCommand(newDevelopCommand(ctx))
	rootCmd.AddCommand(newCompileUICommand(ctx))
	rootCmd.AddCommand(newCollectCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newHooksCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newCleanCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
