package uic

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"numbatbuild/internal/errkind"
)

var commandContext = exec.CommandContext

// Client defines UI compilation behaviour.
type Client interface {
	Compile(ctx context.Context, inv Invocation, uiPath, outPath string) error
}

// CLI wraps the external UI compiler executable.
type CLI struct{}

// NewCLI constructs a CLI client.
func NewCLI() *CLI {
	return &CLI{}
}

// Compile invokes the compiler once for a single UI description file. The
// call blocks until the compiler exits; a non-zero exit is a fatal
// compilation error that halts the remaining pipeline.
func (c *CLI) Compile(ctx context.Context, inv Invocation, uiPath, outPath string) error {
	if strings.TrimSpace(inv.Executable) == "" {
		return errkind.Wrap(errkind.ErrToolNotFound, "compile-ui", "invoke", "compiler executable not resolved", nil)
	}
	if uiPath == "" {
		return errkind.Wrap(errkind.ErrCompilation, "compile-ui", "invoke", "input path required", nil)
	}

	cmd := commandContext(ctx, inv.Executable, "-o", outPath, uiPath) //nolint:gosec
	cmd.Dir = inv.WorkDir
	cmd.Env = inv.Env

	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = err.Error()
		}
		return errkind.Wrap(errkind.ErrCompilation, "compile-ui", filepath.Base(uiPath), detail, err)
	}
	return nil
}

// OutputName derives the generated module name from a UI description file:
// mainwindow.ui becomes mainwindow_ui.py. The mapping is deterministic so
// repeated builds regenerate the same modules.
func OutputName(uiPath string) string {
	base := filepath.Base(uiPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return stem + "_ui.py"
}

// Discover returns the UI description files under root in sorted order. A
// missing directory yields an empty list; projects without declarative UI
// still build.
func Discover(root string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*.ui"))
	if err != nil {
		return nil, fmt.Errorf("glob ui files: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// CompileAll compiles every UI file into outDir and returns the generated
// module paths. Compilation stops at the first failure; already-written
// modules are left in place (no rollback).
func CompileAll(ctx context.Context, client Client, inv Invocation, uiFiles []string, outDir string) ([]string, error) {
	generated := make([]string, 0, len(uiFiles))
	for _, uiPath := range uiFiles {
		outPath := filepath.Join(outDir, OutputName(uiPath))
		if err := client.Compile(ctx, inv, uiPath, outPath); err != nil {
			return generated, err
		}
		generated = append(generated, outPath)
	}
	return generated, nil
}

var _ Client = (*CLI)(nil)
