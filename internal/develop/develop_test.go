package develop

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"numbatbuild/internal/collect"
	"numbatbuild/internal/config"
)

func fixture(t *testing.T) (*config.Manifest, *collect.Set) {
	t.Helper()
	m := config.Default()
	m.Project.Name = "numbat"
	m.Project.Version = "0.0.1"
	m.Project.Scripts = map[string]string{"numbat": "numbat.mainwindow:main"}
	m.Build.Package = "numbat"
	m.Root = t.TempDir()

	srcRoot := filepath.Join(m.Root, "src")
	pkgDir := filepath.Join(srcRoot, "numbat")
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pkgDir, "__init__.py"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	set, err := collect.Sources(srcRoot)
	if err != nil {
		t.Fatal(err)
	}
	return &m, set
}

func TestInstallWritesPthAndDistInfo(t *testing.T) {
	m, set := fixture(t)
	siteDir := filepath.Join(t.TempDir(), "site-packages")

	result, err := Install(m, set, siteDir)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}

	pth, err := os.ReadFile(result.PthPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(pth)) != set.Root {
		t.Fatalf("pth should point at source root: %q", pth)
	}

	metadata, err := os.ReadFile(filepath.Join(result.DistInfoDir, "METADATA"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(metadata), "Name: numbat") {
		t.Fatalf("METADATA mismatch:\n%s", metadata)
	}

	installer, err := os.ReadFile(filepath.Join(result.DistInfoDir, "INSTALLER"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(installer)) != "numbat-build" {
		t.Fatalf("INSTALLER mismatch: %q", installer)
	}

	directURL, err := os.ReadFile(filepath.Join(result.DistInfoDir, "direct_url.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(directURL), `"editable": true`) {
		t.Fatalf("direct_url should mark editable:\n%s", directURL)
	}

	if _, err := os.Stat(filepath.Join(result.DistInfoDir, "RECORD")); err != nil {
		t.Fatalf("RECORD missing: %v", err)
	}
}

func TestInstallProducesNoArchive(t *testing.T) {
	m, set := fixture(t)
	siteDir := t.TempDir()

	if _, err := Install(m, set, siteDir); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(siteDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".whl") || strings.HasSuffix(name, ".tar.gz") {
			t.Fatalf("editable install must not produce archives, found %s", name)
		}
	}
}

func TestInstallEntryPoints(t *testing.T) {
	m, set := fixture(t)
	result, err := Install(m, set, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	eps, err := os.ReadFile(filepath.Join(result.DistInfoDir, "entry_points.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(eps), "numbat = numbat.mainwindow:main") {
		t.Fatalf("entry points mismatch:\n%s", eps)
	}
}
