package collect

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"numbatbuild/internal/errkind"
)

// Kind classifies a collected file.
type Kind int

const (
	// KindSource is a hand-written application module.
	KindSource Kind = iota
	// KindGenerated is a module produced by the UI compiler.
	KindGenerated
)

func (k Kind) String() string {
	if k == KindGenerated {
		return "generated"
	}
	return "source"
}

// File is one member of the package's file set.
type File struct {
	// Path is the absolute location on disk.
	Path string
	// Rel is the path relative to the source root, always slash-separated.
	Rel string
	// Kind distinguishes hand-written sources from generated UI modules.
	Kind Kind
}

// Set is the ordered, deduplicated file set consumed by the builders.
// Constructed fresh for each build; never persisted.
type Set struct {
	Root  string
	Files []File
}

// Sources walks the source root and gathers the package's Python modules.
// Test files are excluded from the distributable set and *_ui.py modules are
// classified as generated rather than hand-written. The result is sorted by
// relative path and free of duplicates.
func Sources(root string) (*Set, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errkind.Wrap(errkind.ErrConfiguration, "collect", "stat",
			fmt.Sprintf("source root %s unavailable", root), err)
	}
	if !info.IsDir() {
		return nil, errkind.Wrap(errkind.ErrConfiguration, "collect", "stat",
			fmt.Sprintf("source root %s is not a directory", root), nil)
	}

	seen := make(map[string]struct{})
	var files []File
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") || entry.Name() == "__pycache__" {
				return filepath.SkipDir
			}
			return nil
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".py") {
			return nil
		}
		if IsTestFile(name) {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if _, dup := seen[rel]; dup {
			return nil
		}
		seen[rel] = struct{}{}

		kind := KindSource
		if IsGenerated(name) {
			kind = KindGenerated
		}
		files = append(files, File{Path: path, Rel: rel, Kind: kind})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk source root: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Rel < files[j].Rel })
	return &Set{Root: root, Files: files}, nil
}

// Verify checks the invariant that every UI description file has its
// generated module present in the set. The set must not be handed to a
// builder before this passes.
func (s *Set) Verify(uiFiles []string) error {
	generated := make(map[string]struct{})
	for _, f := range s.Files {
		if f.Kind == KindGenerated {
			generated[filepath.Base(f.Rel)] = struct{}{}
		}
	}
	for _, uiPath := range uiFiles {
		base := filepath.Base(uiPath)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		want := stem + "_ui.py"
		if _, ok := generated[want]; !ok {
			return errkind.Wrap(errkind.ErrCompilation, "collect", "verify",
				fmt.Sprintf("UI file %s has no generated module %s", base, want), nil)
		}
	}
	return nil
}

// SourcePaths returns the relative paths of every member, in order.
func (s *Set) SourcePaths() []string {
	paths := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		paths = append(paths, f.Rel)
	}
	return paths
}

// Generated returns the generated members only.
func (s *Set) Generated() []File {
	var out []File
	for _, f := range s.Files {
		if f.Kind == KindGenerated {
			out = append(out, f)
		}
	}
	return out
}

// IsTestFile reports whether the file name matches the test naming patterns
// excluded from distributions.
func IsTestFile(name string) bool {
	return strings.HasPrefix(name, "test_") || strings.HasSuffix(name, "_test.py")
}

// IsGenerated reports whether the file name matches the generated-artifact
// naming pattern.
func IsGenerated(name string) bool {
	return strings.HasSuffix(name, "_ui.py")
}
