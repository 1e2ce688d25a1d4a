package hooks

import (
	"fmt"
	"os"
	"path/filepath"

	"numbatbuild/internal/errkind"
)

const hookScript = `#!/bin/sh
# Installed by numbat-build. Runs the manifest's pre-commit hooks over the
# staged files; a failing hook aborts the commit.
exec numbat-build hooks run
`

// Install writes the git pre-commit hook script for the repository at root
// and returns the script path. The project must be a git work tree.
func Install(root string) (string, error) {
	gitDir := filepath.Join(root, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return "", errkind.Wrap(errkind.ErrConfiguration, "hooks", "install",
			fmt.Sprintf("%s is not a git work tree", root), nil)
	}

	hooksDir := filepath.Join(gitDir, "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", fmt.Errorf("create hooks directory: %w", err)
	}

	scriptPath := filepath.Join(hooksDir, "pre-commit")
	if err := os.WriteFile(scriptPath, []byte(hookScript), 0o755); err != nil {
		return "", fmt.Errorf("write pre-commit hook: %w", err)
	}
	return scriptPath, nil
}
