package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"numbatbuild/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manifest utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigShowCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample project manifest",
		Annotations: map[string]string{"skipManifestLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = config.ManifestFileName
			}
			absTarget, err := filepath.Abs(target)
			if err != nil {
				return fmt.Errorf("resolve manifest path: %w", err)
			}

			if !overwrite {
				if _, err := os.Stat(absTarget); err == nil {
					return fmt.Errorf("manifest already exists at %s (use --overwrite to replace it)", absTarget)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check manifest path: %w", err)
				}
			}

			if err := config.CreateSample(absTarget); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample manifest to %s\n", absTarget)
			fmt.Fprintln(out, "Edit the project name and version before building.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the manifest file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing manifest")
	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate the project manifest",
		Annotations: map[string]string{"skipManifestLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(cmd.Root().PersistentFlags().Lookup("manifest").Value.String())
			m, resolvedPath, err := config.Load(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Manifest path: %s\n", resolvedPath)
			fmt.Fprintf(out, "Project: %s %s\n", m.Project.Name, m.Project.Version)
			fmt.Fprintln(out, "Manifest valid")
			return nil
		},
	}
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Print the effective manifest with defaults applied",
		Annotations: map[string]string{"skipManifestLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(cmd.Root().PersistentFlags().Lookup("manifest").Value.String())
			m, _, err := config.Load(path)
			if err != nil {
				return err
			}
			encoded, err := toml.Marshal(m)
			if err != nil {
				return fmt.Errorf("encode manifest: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(encoded)
			return err
		},
	}
}
