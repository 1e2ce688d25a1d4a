package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"numbatbuild/internal/buildlog"
	"numbatbuild/internal/config"
	"numbatbuild/internal/logging"
)

type commandContext struct {
	manifestFlag *string

	manifestOnce sync.Once
	manifest     *config.Manifest
	manifestPath string
	manifestErr  error
}

func newCommandContext(manifestFlag *string) *commandContext {
	return &commandContext{manifestFlag: manifestFlag}
}

func (c *commandContext) ensureManifest() (*config.Manifest, error) {
	c.manifestOnce.Do(func() {
		var path string
		if c.manifestFlag != nil {
			path = strings.TrimSpace(*c.manifestFlag)
		}
		m, resolvedPath, err := config.Load(path)
		if err != nil {
			c.manifestErr = err
			return
		}
		c.manifest = m
		c.manifestPath = resolvedPath
	})
	return c.manifest, c.manifestErr
}

// logger builds the invocation logger from the manifest's logging settings.
// Falls back to defaults when the manifest is unavailable so error paths
// still log.
func (c *commandContext) logger() *slog.Logger {
	opts := logging.Options{Output: os.Stderr}
	if m, err := c.ensureManifest(); err == nil {
		opts.Level = m.Logging.Level
		opts.Format = m.Logging.Format
	}
	logger, err := logging.New(opts)
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

// openStore opens the build history database in the project scratch
// directory.
func (c *commandContext) openStore() (*buildlog.Store, error) {
	m, err := c.ensureManifest()
	if err != nil {
		return nil, err
	}
	return buildlog.Open(m.WorkRoot())
}

func shouldSkipManifest(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipManifestLoad"] == "true" {
			return true
		}
	}
	return false
}
