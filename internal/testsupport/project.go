package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"numbatbuild/internal/config"
)

// ProjectOption customizes the fixture project tree.
type ProjectOption func(*projectSpec)

type projectSpec struct {
	name     string
	version  string
	uiFiles  []string
	pyFiles  []string
	manifest string
}

// WithUIFiles adds UI description files (base names) under ui/.
func WithUIFiles(names ...string) ProjectOption {
	return func(s *projectSpec) { s.uiFiles = append(s.uiFiles, names...) }
}

// WithSourceFiles adds Python modules (relative to the package dir).
func WithSourceFiles(names ...string) ProjectOption {
	return func(s *projectSpec) { s.pyFiles = append(s.pyFiles, names...) }
}

// WithManifest replaces the generated manifest content entirely.
func WithManifest(content string) ProjectOption {
	return func(s *projectSpec) { s.manifest = content }
}

// WithVersion overrides the fixture project version.
func WithVersion(version string) ProjectOption {
	return func(s *projectSpec) { s.version = version }
}

// NewProject lays out a minimal annotated-video project tree in a temp
// directory: numbat.toml, src/numbat/*.py, ui/*.ui. It returns the loaded
// manifest and the project root.
func NewProject(t testing.TB, opts ...ProjectOption) (*config.Manifest, string) {
	t.Helper()

	spec := projectSpec{
		name:    "numbat",
		version: "0.0.1",
		pyFiles: []string{"__init__.py", "mainwindow.py", "decoder.py", "widgets.py"},
		uiFiles: []string{"mainwindow.ui", "aboutdialog.ui"},
	}
	for _, opt := range opts {
		opt(&spec)
	}

	root := t.TempDir()

	manifest := spec.manifest
	if manifest == "" {
		manifest = fmt.Sprintf(`
[project]
name = %q
version = %q
description = "Annotate multiple synchronized videos"
license = "MIT"
authors = [{ name = "Ada Lovelace", email = "ada@example.com" }]
dependencies = ["PySide6>=6.5"]

[project.scripts]
numbat = "numbat.mainwindow:main"
`, spec.name, spec.version)
	}
	manifestPath := filepath.Join(root, config.ManifestFileName)
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	pkgDir := filepath.Join(root, "src", spec.name)
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		t.Fatalf("mkdir package: %v", err)
	}
	for _, name := range spec.pyFiles {
		path := filepath.Join(pkgDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		body := fmt.Sprintf("\"\"\"Module %s.\"\"\"\n", name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	if len(spec.uiFiles) > 0 {
		uiDir := filepath.Join(root, "ui")
		if err := os.MkdirAll(uiDir, 0o755); err != nil {
			t.Fatalf("mkdir ui: %v", err)
		}
		for _, name := range spec.uiFiles {
			body := fmt.Sprintf("<ui version=\"4.0\"><class>%s</class></ui>\n", name)
			if err := os.WriteFile(filepath.Join(uiDir, name), []byte(body), 0o644); err != nil {
				t.Fatalf("write %s: %v", name, err)
			}
		}
	}

	m, _, err := config.Load(manifestPath)
	if err != nil {
		t.Fatalf("load fixture manifest: %v", err)
	}
	return m, root
}
