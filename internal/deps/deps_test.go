package deps

import (
	"errors"
	"fmt"
	"testing"

	"numbatbuild/internal/config"
	"numbatbuild/internal/errkind"
)

func stubLookPath(t *testing.T, available map[string]string) {
	t.Helper()
	orig := lookPath
	lookPath = func(name string) (string, error) {
		if path, ok := available[name]; ok {
			return path, nil
		}
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	t.Cleanup(func() { lookPath = orig })
}

func TestCheckBinaries(t *testing.T) {
	stubLookPath(t, map[string]string{"pyside6-uic": "/usr/bin/pyside6-uic"})

	statuses := CheckBinaries([]Requirement{
		{Name: "UI compiler", Command: "pyside6-uic"},
		{Name: "git", Command: "git", Optional: true},
		{Name: "empty", Command: "  "},
	})

	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available || statuses[0].Path != "/usr/bin/pyside6-uic" {
		t.Fatalf("compiler status: %+v", statuses[0])
	}
	if statuses[1].Available {
		t.Fatalf("git should be unavailable: %+v", statuses[1])
	}
	if statuses[2].Detail != "command not configured" {
		t.Fatalf("empty command detail: %+v", statuses[2])
	}
}

func TestResolveCompilerMissing(t *testing.T) {
	stubLookPath(t, nil)

	_, err := ResolveCompiler("pyside6-uic")
	if !errors.Is(err, errkind.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}

func TestResolveCompilerFound(t *testing.T) {
	stubLookPath(t, map[string]string{"uic": "/opt/qt/bin/uic"})

	path, err := ResolveCompiler("uic")
	if err != nil {
		t.Fatalf("ResolveCompiler: %v", err)
	}
	if path != "/opt/qt/bin/uic" {
		t.Fatalf("path mismatch: %q", path)
	}
}

func TestForManifestDeduplicatesHookEntries(t *testing.T) {
	m := config.Default()
	m.Project.Name = "numbat"
	m.Tool.Precommit.Hooks = []config.HookEntry{
		{ID: "lint", Name: "lint", Entry: "ruff"},
		{ID: "format", Name: "format", Entry: "ruff"},
		{ID: "docstrings", Name: "docstrings", Entry: "interrogate"},
	}

	reqs := ForManifest(&m)
	// compiler + git + ruff + interrogate
	if len(reqs) != 4 {
		t.Fatalf("expected 4 requirements, got %d: %+v", len(reqs), reqs)
	}
	if reqs[0].Optional {
		t.Fatal("UI compiler must not be optional")
	}
}
