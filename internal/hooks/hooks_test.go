package hooks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"numbatbuild/internal/config"
	"numbatbuild/internal/errkind"
	"numbatbuild/internal/logging"
	"numbatbuild/internal/testsupport"
)

// recordingHook installs a hook command that appends its arguments to a log
// file, one invocation per line.
func recordingHook(t *testing.T, dir, name string) string {
	t.Helper()
	logPath := filepath.Join(dir, name+".log")
	testsupport.WriteScript(t, dir, name, fmt.Sprintf(`
echo "$@" >> %q
`, logPath))
	return logPath
}

func invocations(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestRunAllFilesPassesMatchedFiles(t *testing.T) {
	m, _ := testsupport.NewProject(t)
	toolDir := t.TempDir()
	logPath := recordingHook(t, toolDir, "check-style")
	testsupport.StubPath(t, toolDir)

	m.Tool.Precommit.Hooks = []config.HookEntry{
		{ID: "style", Entry: "check-style", Args: []string{"--strict"}, Files: `\.py$`},
	}

	runner := NewRunner(logging.NewNop(), m, os.Environ())
	results, err := runner.Run(context.Background(), true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 || results[0].Skipped {
		t.Fatalf("unexpected results: %+v", results)
	}

	lines := invocations(t, logPath)
	if len(lines) != 1 {
		t.Fatalf("hook should run once, got %d invocations", len(lines))
	}
	if !strings.HasPrefix(lines[0], "--strict ") {
		t.Fatalf("declared args must come first: %q", lines[0])
	}
	if !strings.Contains(lines[0], filepath.Join("src", "numbat", "mainwindow.py")) {
		t.Fatalf("matched files missing from argv: %q", lines[0])
	}
	if strings.Contains(lines[0], "numbat.toml") {
		t.Fatalf("non-matching files must be filtered out: %q", lines[0])
	}
}

func TestRunSkipsHookWithoutMatches(t *testing.T) {
	m, _ := testsupport.NewProject(t)
	toolDir := t.TempDir()
	logPath := recordingHook(t, toolDir, "check-rst")
	testsupport.StubPath(t, toolDir)

	m.Tool.Precommit.Hooks = []config.HookEntry{
		{ID: "rst", Entry: "check-rst", Files: `\.rst$`},
	}

	runner := NewRunner(logging.NewNop(), m, os.Environ())
	results, err := runner.Run(context.Background(), true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !results[0].Skipped {
		t.Fatalf("hook should be skipped: %+v", results[0])
	}
	if lines := invocations(t, logPath); lines != nil {
		t.Fatalf("skipped hook must not execute, got %v", lines)
	}
}

func TestRunOncePerInvocationHook(t *testing.T) {
	m, _ := testsupport.NewProject(t)
	toolDir := t.TempDir()
	logPath := recordingHook(t, toolDir, "coverage-check")
	testsupport.StubPath(t, toolDir)

	runOnce := false
	m.Tool.Precommit.Hooks = []config.HookEntry{
		{ID: "docstring-coverage", Entry: "coverage-check", Args: []string{"--fail-under", "80"}, PassFilenames: &runOnce},
	}

	runner := NewRunner(logging.NewNop(), m, os.Environ())
	if _, err := runner.Run(context.Background(), true); err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := invocations(t, logPath)
	if len(lines) != 1 {
		t.Fatalf("hook should run exactly once, got %d invocations", len(lines))
	}
	if strings.TrimSpace(lines[0]) != "--fail-under 80" {
		t.Fatalf("hook must not receive file arguments: %q", lines[0])
	}
}

func TestFirstFailureAbortsRemainingHooks(t *testing.T) {
	m, _ := testsupport.NewProject(t)
	toolDir := t.TempDir()
	testsupport.WriteScript(t, toolDir, "always-fail", `
echo "style violations found" >&2
exit 1
`)
	logPath := recordingHook(t, toolDir, "never-reached")
	testsupport.StubPath(t, toolDir)

	m.Tool.Precommit.Hooks = []config.HookEntry{
		{ID: "fail", Entry: "always-fail"},
		{ID: "later", Entry: "never-reached"},
	}

	runner := NewRunner(logging.NewNop(), m, os.Environ())
	results, err := runner.Run(context.Background(), true)
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "style violations found") {
		t.Fatalf("error should carry hook output: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("later hooks must not run after a failure: %+v", results)
	}
	if lines := invocations(t, logPath); lines != nil {
		t.Fatalf("later hook executed after failure: %v", lines)
	}
}

func TestMissingHookCommand(t *testing.T) {
	m, _ := testsupport.NewProject(t)
	testsupport.EmptyPath(t)

	m.Tool.Precommit.Hooks = []config.HookEntry{
		{ID: "ghost", Entry: "no-such-tool"},
	}

	runner := NewRunner(logging.NewNop(), m, os.Environ())
	_, err := runner.Run(context.Background(), true)
	if !errors.Is(err, errkind.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}

func TestInvalidFilesPattern(t *testing.T) {
	m, _ := testsupport.NewProject(t)

	m.Tool.Precommit.Hooks = []config.HookEntry{
		{ID: "broken", Entry: "true", Files: `([unclosed`},
	}

	runner := NewRunner(logging.NewNop(), m, os.Environ())
	_, err := runner.Run(context.Background(), true)
	if !errors.Is(err, errkind.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestStagedFilesFromGit(t *testing.T) {
	m, _ := testsupport.NewProject(t)
	toolDir := t.TempDir()
	testsupport.WriteScript(t, toolDir, "git", `
printf 'src/numbat/mainwindow.py\nui/mainwindow.ui\n'
`)
	testsupport.StubPath(t, toolDir)

	files, err := StagedFiles(context.Background(), m.Root, os.Environ())
	if err != nil {
		t.Fatalf("StagedFiles: %v", err)
	}
	want := []string{
		filepath.Join("src", "numbat", "mainwindow.py"),
		filepath.Join("ui", "mainwindow.ui"),
	}
	if len(files) != len(want) || files[0] != want[0] || files[1] != want[1] {
		t.Fatalf("staged files = %v, want %v", files, want)
	}
}

func TestAllFilesSkipsBuildOutput(t *testing.T) {
	m, _ := testsupport.NewProject(t)
	for _, dir := range []string{m.DistRoot(), m.WorkRoot(), filepath.Join(m.PackageDir(), "__pycache__")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "junk.bin"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := AllFiles(m)
	if err != nil {
		t.Fatalf("AllFiles: %v", err)
	}
	for _, rel := range files {
		if strings.Contains(rel, "junk.bin") {
			t.Fatalf("build output leaked into file list: %v", files)
		}
	}
	found := false
	for _, rel := range files {
		if rel == filepath.Join("src", "numbat", "decoder.py") {
			found = true
		}
	}
	if !found {
		t.Fatalf("source files missing from list: %v", files)
	}
}

func TestInstallWritesPreCommitScript(t *testing.T) {
	_, root := testsupport.NewProject(t)
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	path, err := Install(root)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if path != filepath.Join(root, ".git", "hooks", "pre-commit") {
		t.Fatalf("script path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "numbat-build hooks run") {
		t.Fatalf("script should invoke the hook runner: %q", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Fatalf("script must be executable, mode %v", info.Mode())
	}
}

func TestInstallOutsideGitWorkTree(t *testing.T) {
	_, root := testsupport.NewProject(t)

	_, err := Install(root)
	if !errors.Is(err, errkind.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestDefaultsCoverageHookRunsOnce(t *testing.T) {
	for _, entry := range Defaults() {
		if entry.ID == "docstring-coverage" {
			if entry.PassesFilenames() {
				t.Fatal("coverage hook must not receive filenames")
			}
			return
		}
	}
	t.Fatal("docstring-coverage missing from default hook set")
}
