package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"numbatbuild/internal/pipeline"
)

func (c *commandContext) runPipeline(cmd *cobra.Command, steps []pipeline.Step, configure func(*pipeline.Build)) (*pipeline.Build, error) {
	m, err := c.ensureManifest()
	if err != nil {
		return nil, err
	}

	store, err := c.openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	build := &pipeline.Build{
		Manifest:     m,
		ManifestPath: c.manifestPath,
		Env:          os.Environ(),
	}
	if configure != nil {
		configure(build)
	}

	runner := pipeline.NewRunner(c.logger(), store, steps...)
	if err := runner.Run(cmd.Context(), build); err != nil {
		return nil, err
	}
	return build, nil
}

func printArtifacts(cmd *cobra.Command, build *pipeline.Build) {
	out := cmd.OutOrStdout()
	if build.WheelPath != "" {
		fmt.Fprintf(out, "Built %s\n", build.WheelPath)
	}
	if build.SdistPath != "" {
		fmt.Fprintf(out, "Built %s\n", build.SdistPath)
	}
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile UI files, collect sources, and build wheel and sdist",
		RunE: func(cmd *cobra.Command, args []string) error {
			build, err := ctx.runPipeline(cmd, pipeline.BuildSteps(), nil)
			if err != nil {
				return err
			}
			printArtifacts(cmd, build)
			return nil
		},
	}
}

func newWheelCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "wheel",
		Short: "Build only the wheel archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			build, err := ctx.runPipeline(cmd, pipeline.WheelSteps(), nil)
			if err != nil {
				return err
			}
			printArtifacts(cmd, build)
			return nil
		},
	}
}

func newSdistCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sdist",
		Short: "Build only the source distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			build, err := ctx.runPipeline(cmd, pipeline.SdistSteps(), nil)
			if err != nil {
				return err
			}
			printArtifacts(cmd, build)
			return nil
		},
	}
}

func newDevelopCommand(ctx *commandContext) *cobra.Command {
	var siteDir string

	cmd := &cobra.Command{
		Use:   "develop",
		Short: "Register the package for editable use in a site directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			site := strings.TrimSpace(siteDir)
			if site == "" {
				return fmt.Errorf("--site is required (the site-packages directory to install into)")
			}
			absSite, err := filepath.Abs(site)
			if err != nil {
				return fmt.Errorf("resolve site directory: %w", err)
			}

			build, err := ctx.runPipeline(cmd, pipeline.DevelopSteps(), func(b *pipeline.Build) {
				b.SiteDir = absSite
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installed %s in editable mode into %s\n",
				build.Manifest.Project.Name, absSite)
			return nil
		},
	}

	cmd.Flags().StringVar(&siteDir, "site", "", "Site-packages directory to install into")
	return cmd
}
