package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"numbatbuild/internal/errkind"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMinimalManifest(t *testing.T) {
	path := writeManifest(t, `
[project]
name = "numbat"
version = "0.0.1"
`)

	m, resolved, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if resolved != path {
		t.Fatalf("resolved path mismatch: %q", resolved)
	}
	if m.Project.Name != "numbat" || m.Project.Version != "0.0.1" {
		t.Fatalf("unexpected metadata: %+v", m.Project)
	}
	if m.Build.Compiler != "pyside6-uic" {
		t.Fatalf("expected default compiler, got %q", m.Build.Compiler)
	}
	if m.Build.Package != "numbat" {
		t.Fatalf("expected package derived from name, got %q", m.Build.Package)
	}
	if m.Root != filepath.Dir(path) {
		t.Fatalf("root mismatch: %q", m.Root)
	}
}

func TestLoadMissingName(t *testing.T) {
	path := writeManifest(t, `
[project]
version = "0.0.1"
`)
	_, _, err := Load(path)
	if !errors.Is(err, errkind.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "project.name") {
		t.Fatalf("message should name the missing key: %v", err)
	}
}

func TestLoadMissingVersion(t *testing.T) {
	path := writeManifest(t, `
[project]
name = "numbat"
`)
	_, _, err := Load(path)
	if !errors.Is(err, errkind.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadMalformedManifest(t *testing.T) {
	path := writeManifest(t, `[project
name = numbat`)
	_, _, err := Load(path)
	if !errors.Is(err, errkind.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errkind.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadRejectsInvalidVersion(t *testing.T) {
	path := writeManifest(t, `
[project]
name = "numbat"
version = "one.two"
`)
	_, _, err := Load(path)
	if !errors.Is(err, errkind.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadRejectsAbsoluteDistDir(t *testing.T) {
	path := writeManifest(t, `
[project]
name = "numbat"
version = "0.0.1"

[build]
dist_dir = "/tmp/dist"
`)
	_, _, err := Load(path)
	if !errors.Is(err, errkind.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadRejectsBadScriptTarget(t *testing.T) {
	path := writeManifest(t, `
[project]
name = "numbat"
version = "0.0.1"

[project.scripts]
numbat = "numbat.mainwindow"
`)
	_, _, err := Load(path)
	if !errors.Is(err, errkind.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadFullManifest(t *testing.T) {
	path := writeManifest(t, `
[project]
name = "numbat"
version = "0.0.1"
description = "Video annotation tool"
license = "MIT"
authors = [{ name = "Ada", email = "ada@example.com" }]
dependencies = ["PySide6>=6.5"]

[project.optional-dependencies]
dev = ["pytest"]

[project.scripts]
numbat = "numbat.mainwindow:main"

[[tool.precommit.hooks]]
id = "docstring-coverage"
entry = "interrogate"
pass_filenames = false
`)

	m, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := m.Project.OptionalDependencies["dev"]; len(got) != 1 || got[0] != "pytest" {
		t.Fatalf("optional dependencies mismatch: %v", got)
	}
	if m.Project.Scripts["numbat"] != "numbat.mainwindow:main" {
		t.Fatalf("scripts mismatch: %v", m.Project.Scripts)
	}
	hooks := m.Tool.Precommit.Hooks
	if len(hooks) != 1 || hooks[0].PassesFilenames() {
		t.Fatalf("hook normalization mismatch: %+v", hooks)
	}
	if hooks[0].Name != "docstring-coverage" {
		t.Fatalf("hook name should default to id, got %q", hooks[0].Name)
	}
}

func TestDuplicateHookIDsRejected(t *testing.T) {
	path := writeManifest(t, `
[project]
name = "numbat"
version = "0.0.1"

[[tool.precommit.hooks]]
id = "lint"

[[tool.precommit.hooks]]
id = "lint"
`)
	_, _, err := Load(path)
	if !errors.Is(err, errkind.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"numbat":          "numbat",
		"Numbat":          "numbat",
		"labeling_tool":   "labeling-tool",
		"labeling.._tool": "labeling-tool",
		"A--B":            "a-b",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDistName(t *testing.T) {
	m := Default()
	m.Project.Name = "Labeling-Tool"
	if got := m.DistName(); got != "labeling_tool" {
		t.Fatalf("DistName = %q", got)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, ManifestFileName)
	if err := CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	m, _, err := Load(target)
	if err != nil {
		t.Fatalf("sample manifest should load: %v", err)
	}
	if m.Project.Name != "numbat" || m.Project.Version != "0.0.1" {
		t.Fatalf("sample metadata mismatch: %+v", m.Project)
	}
}
