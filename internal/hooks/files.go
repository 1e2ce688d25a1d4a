package hooks

import (
	"context"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"numbatbuild/internal/config"
	"numbatbuild/internal/errkind"
)

// StagedFiles returns the paths staged for the next commit, relative to the
// project root. The list comes from git, so running outside a repository is
// an error.
func StagedFiles(ctx context.Context, root string, env []string) ([]string, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, errkind.Wrap(errkind.ErrToolNotFound, "hooks", "resolve",
			"unable to locate git on PATH", err)
	}

	cmd := commandContext(ctx, gitPath, "diff", "--cached", "--name-only", "--diff-filter=ACMR")
	cmd.Dir = root
	cmd.Env = env
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("list staged files: %w", err)
	}

	var files []string
	for _, line := range strings.Split(string(output), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, filepath.FromSlash(line))
		}
	}
	sort.Strings(files)
	return files, nil
}

// AllFiles walks the project tree and returns every regular file relative to
// the root, skipping version control metadata, caches, and build output.
func AllFiles(m *config.Manifest) ([]string, error) {
	skipDirs := map[string]struct{}{
		m.Build.DistDir: {},
		m.Build.WorkDir: {},
		"__pycache__":   {},
	}

	var files []string
	err := filepath.WalkDir(m.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(m.Root, path)
		if relErr != nil {
			return relErr
		}
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if _, skip := skipDirs[rel]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk project files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}
