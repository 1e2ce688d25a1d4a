package dist

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sdistMembers(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open sdist: %v", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	tr := tar.NewReader(gz)

	var names []string
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar next: %v", err)
		}
		names = append(names, header.Name)
	}
	return names
}

func TestBuildSdistLayout(t *testing.T) {
	m := fixtureManifest(t)
	set := fixtureSet(t)

	manifestPath := filepath.Join(t.TempDir(), "numbat.toml")
	if err := os.WriteFile(manifestPath, []byte("[project]\nname = \"numbat\"\nversion = \"0.0.1\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sdistPath, err := BuildSdist(m, set, manifestPath, t.TempDir())
	if err != nil {
		t.Fatalf("BuildSdist: %v", err)
	}
	if got := filepath.Base(sdistPath); got != "numbat-0.0.1.tar.gz" {
		t.Fatalf("sdist name = %q", got)
	}

	members := sdistMembers(t, sdistPath)
	want := []string{
		"numbat-0.0.1/PKG-INFO",
		"numbat-0.0.1/numbat.toml",
		"numbat-0.0.1/src/numbat/__init__.py",
		"numbat-0.0.1/src/numbat/mainwindow.py",
		"numbat-0.0.1/src/numbat/mainwindow_ui.py",
	}
	if len(members) != len(want) {
		t.Fatalf("member list mismatch:\n got %v\nwant %v", members, want)
	}
	for i := range want {
		if members[i] != want[i] {
			t.Fatalf("member order mismatch at %d:\n got %v\nwant %v", i, members, want)
		}
	}
}

func TestBuildSdistIdempotentMembership(t *testing.T) {
	m := fixtureManifest(t)
	set := fixtureSet(t)

	manifestPath := filepath.Join(t.TempDir(), "numbat.toml")
	if err := os.WriteFile(manifestPath, []byte("[project]\nname = \"numbat\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := BuildSdist(m, set, manifestPath, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	second, err := BuildSdist(m, set, manifestPath, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	a := sdistMembers(t, first)
	b := sdistMembers(t, second)
	if strings.Join(a, "\n") != strings.Join(b, "\n") {
		t.Fatalf("member lists differ:\n%v\n%v", a, b)
	}

	rawA, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	rawB, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(rawA, rawB) {
		t.Fatal("repeated sdist builds should be byte-identical")
	}
}

func TestBuildSdistContainsMetadata(t *testing.T) {
	m := fixtureManifest(t)
	set := fixtureSet(t)

	manifestPath := filepath.Join(t.TempDir(), "numbat.toml")
	if err := os.WriteFile(manifestPath, []byte("[project]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sdistPath, err := BuildSdist(m, set, manifestPath, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(sdistPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			t.Fatal("PKG-INFO not found")
		}
		if err != nil {
			t.Fatal(err)
		}
		if strings.HasSuffix(header.Name, "PKG-INFO") {
			data, err := io.ReadAll(tr)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), "Name: numbat") {
				t.Fatalf("PKG-INFO missing name:\n%s", data)
			}
			return
		}
	}
}
