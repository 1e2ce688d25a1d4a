package hooks

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"numbatbuild/internal/config"
	"numbatbuild/internal/errkind"
	"numbatbuild/internal/logging"
)

var commandContext = exec.CommandContext

// Result summarizes one executed hook.
type Result struct {
	ID      string
	Files   int
	Skipped bool
	Elapsed time.Duration
}

// Runner executes pre-commit hooks for one project tree.
type Runner struct {
	logger   *slog.Logger
	manifest *config.Manifest
	env      []string
}

// NewRunner constructs a hook runner. env is the base environment passed to
// every hook process; nil inherits nothing.
func NewRunner(logger *slog.Logger, m *config.Manifest, env []string) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{logger: logger, manifest: m, env: env}
}

// Run executes every configured hook over the candidate files. With allFiles
// set the whole tracked tree is checked instead of the staged changes. The
// first failing hook aborts the remainder.
func (r *Runner) Run(ctx context.Context, allFiles bool) ([]Result, error) {
	entries := r.manifest.Tool.Precommit.Hooks
	if len(entries) == 0 {
		entries = Defaults()
	}

	var candidates []string
	var err error
	if allFiles {
		candidates, err = AllFiles(r.manifest)
	} else {
		candidates, err = StagedFiles(ctx, r.manifest.Root, r.env)
	}
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		hookCtx := logging.WithStep(ctx, "hook:"+entry.ID)
		res, err := r.runOne(hookCtx, entry, candidates)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, entry config.HookEntry, candidates []string) (Result, error) {
	logger := logging.WithContext(ctx, r.logger)
	res := Result{ID: entry.ID}

	matched, err := matchFiles(entry, candidates)
	if err != nil {
		return res, err
	}
	res.Files = len(matched)

	// Filename-driven hooks with nothing to check are skipped, matching
	// pre-commit's behaviour. Hooks that run once per invocation always run.
	if entry.PassesFilenames() && len(matched) == 0 {
		res.Skipped = true
		logger.Info("hook skipped", slog.String("reason", "no files to check"))
		return res, nil
	}

	command := entry.Entry
	if strings.TrimSpace(command) == "" {
		command = entry.ID
	}
	parts := strings.Fields(command)
	args := append(parts[1:], entry.Args...)
	if entry.PassesFilenames() {
		args = append(args, matched...)
	}

	executable, err := exec.LookPath(parts[0])
	if err != nil {
		return res, errkind.Wrap(errkind.ErrToolNotFound, "hook:"+entry.ID, "resolve",
			fmt.Sprintf("unable to locate hook command %q on PATH", parts[0]), err)
	}

	logger.Info("hook started", slog.Int("files", len(matched)))
	start := time.Now()

	cmd := commandContext(ctx, executable, args...) //nolint:gosec
	cmd.Dir = r.manifest.Root
	cmd.Env = r.env
	output, err := cmd.CombinedOutput()
	res.Elapsed = time.Since(start)
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = err.Error()
		}
		logger.Error("hook failed", slog.String("detail", detail))
		return res, fmt.Errorf("hook %s failed: %s", entry.ID, detail)
	}

	logger.Info("hook finished", slog.Duration("elapsed", res.Elapsed))
	return res, nil
}

func matchFiles(entry config.HookEntry, candidates []string) ([]string, error) {
	if entry.Files == "" {
		return candidates, nil
	}
	pattern, err := regexp.Compile(entry.Files)
	if err != nil {
		return nil, errkind.Wrap(errkind.ErrConfiguration, "hook:"+entry.ID, "compile-pattern",
			fmt.Sprintf("invalid files pattern %q", entry.Files), err)
	}
	matched := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if pattern.MatchString(candidate) {
			matched = append(matched, candidate)
		}
	}
	return matched, nil
}

// Defaults returns the built-in hook set used when the manifest declares
// none: whitespace and line-ending normalization, lint, format, docstring
// style, import order, and docstring coverage.
func Defaults() []config.HookEntry {
	runOnce := false
	return []config.HookEntry{
		{ID: "trailing-whitespace", Entry: "trailing-whitespace-fixer"},
		{ID: "end-of-file-fixer"},
		{ID: "mixed-line-ending", Args: []string{"--fix=lf"}},
		{ID: "lint", Entry: "flake8", Files: `\.py$`},
		{ID: "format", Entry: "black", Args: []string{"--check"}, Files: `\.py$`},
		{ID: "docstring-style", Entry: "pydocstyle", Files: `\.py$`},
		{ID: "import-order", Entry: "isort", Args: []string{"--check-only"}, Files: `\.py$`},
		// The coverage checker only supports one invocation per run, so the
		// hook never receives the matched file list.
		{ID: "docstring-coverage", Entry: "interrogate", PassFilenames: &runOnce},
	}
}
