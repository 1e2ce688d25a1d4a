package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"numbatbuild/internal/errkind"
)

//go:embed sample_manifest.toml
var sampleManifest string

// ManifestFileName is the manifest the tool looks for in the project root.
const ManifestFileName = "numbat.toml"

// Author identifies a project author or maintainer.
type Author struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// Project carries the package metadata written into wheel and sdist metadata
// files. Name and Version are the only required fields.
type Project struct {
	Name                 string              `toml:"name"`
	Version              string              `toml:"version"`
	Description          string              `toml:"description"`
	License              string              `toml:"license"`
	RequiresPython       string              `toml:"requires-python"`
	Authors              []Author            `toml:"authors"`
	Dependencies         []string            `toml:"dependencies"`
	OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	Scripts              map[string]string   `toml:"scripts"`
	URLs                 map[string]string   `toml:"urls"`
}

// Build contains the pipeline layout settings.
type Build struct {
	Backend  string `toml:"backend"`
	SrcDir   string `toml:"src_dir"`
	Package  string `toml:"package"`
	UIDir    string `toml:"ui_dir"`
	DistDir  string `toml:"dist_dir"`
	WorkDir  string `toml:"work_dir"`
	Compiler string `toml:"compiler"`
}

// Docstrings contains docstring-coverage settings.
type Docstrings struct {
	FailUnder float64  `toml:"fail_under"`
	Style     string   `toml:"style"`
	Exclude   []string `toml:"exclude"`
}

// Lint contains lint-check settings.
type Lint struct {
	LineLength int      `toml:"line_length"`
	Exclude    []string `toml:"exclude"`
}

// Format contains code-formatting settings.
type Format struct {
	Profile    string `toml:"profile"`
	LineLength int    `toml:"line_length"`
}

// HookEntry declares one pre-commit hook: where it comes from and how to run it.
type HookEntry struct {
	ID    string   `toml:"id"`
	Name  string   `toml:"name"`
	Repo  string   `toml:"repo"`
	Rev   string   `toml:"rev"`
	Entry string   `toml:"entry"`
	Args  []string `toml:"args"`
	Files string   `toml:"files"`
	// PassFilenames defaults to true; docstring coverage sets it to false
	// because its checker only supports one invocation per run.
	PassFilenames *bool `toml:"pass_filenames"`
}

// PassesFilenames reports whether matched file paths are appended to the
// hook's argument list.
func (h HookEntry) PassesFilenames() bool {
	return h.PassFilenames == nil || *h.PassFilenames
}

// Precommit holds the declarative hook list run before each commit.
type Precommit struct {
	Hooks []HookEntry `toml:"hooks"`
}

// Tool groups developer-process settings.
type Tool struct {
	Docstrings Docstrings `toml:"docstrings"`
	Lint       Lint       `toml:"lint"`
	Format     Format     `toml:"format"`
	Precommit  Precommit  `toml:"precommit"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Manifest encapsulates all configuration for one build invocation. Loaded
// once per invocation and treated as immutable afterwards.
type Manifest struct {
	Project Project `toml:"project"`
	Build   Build   `toml:"build"`
	Tool    Tool    `toml:"tool"`
	Logging Logging `toml:"logging"`

	// Root is the directory containing the manifest. Set by Load.
	Root string `toml:"-"`
}

// Load locates, parses, and validates a manifest file. When path is empty the
// manifest is looked up in the working directory. The returned manifest has
// all path fields normalized relative to the manifest's directory.
func Load(path string) (*Manifest, string, error) {
	resolvedPath, err := resolveManifestPath(path)
	if err != nil {
		return nil, "", err
	}

	file, err := os.Open(resolvedPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", errkind.Wrap(errkind.ErrConfiguration, "manifest", "open",
				fmt.Sprintf("no manifest at %s (create one with 'numbat-build config init')", resolvedPath), nil)
		}
		return nil, "", fmt.Errorf("open manifest: %w", err)
	}
	defer file.Close()

	manifest := Default()
	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(&manifest); err != nil {
		return nil, "", errkind.Wrap(errkind.ErrConfiguration, "manifest", "parse", resolvedPath, err)
	}

	manifest.Root = filepath.Dir(resolvedPath)

	if err := manifest.normalize(); err != nil {
		return nil, "", err
	}
	if err := manifest.Validate(); err != nil {
		return nil, "", err
	}

	return &manifest, resolvedPath, nil
}

func resolveManifestPath(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		return filepath.Abs(strings.TrimSpace(path))
	}
	return filepath.Abs(ManifestFileName)
}

// SrcRoot returns the absolute source directory.
func (m *Manifest) SrcRoot() string {
	return filepath.Join(m.Root, m.Build.SrcDir)
}

// PackageDir returns the absolute directory of the Python package being built.
func (m *Manifest) PackageDir() string {
	return filepath.Join(m.SrcRoot(), m.Build.Package)
}

// UIRoot returns the absolute directory holding the declarative UI files.
func (m *Manifest) UIRoot() string {
	return filepath.Join(m.Root, m.Build.UIDir)
}

// DistRoot returns the absolute artifact output directory.
func (m *Manifest) DistRoot() string {
	return filepath.Join(m.Root, m.Build.DistDir)
}

// WorkRoot returns the absolute scratch directory used during builds.
func (m *Manifest) WorkRoot() string {
	return filepath.Join(m.Root, m.Build.WorkDir)
}

// EnsureDirectories creates the directories a build needs to write into.
func (m *Manifest) EnsureDirectories() error {
	for _, dir := range []string{m.DistRoot(), m.WorkRoot()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// NormalizedName returns the project name normalized the way package indexes
// expect: lowercase with runs of '-', '_' and '.' collapsed to '-'.
func (m *Manifest) NormalizedName() string {
	return NormalizeName(m.Project.Name)
}

// DistName returns the normalized name with '-' replaced by '_', as used in
// wheel and sdist file names.
func (m *Manifest) DistName() string {
	return strings.ReplaceAll(m.NormalizedName(), "-", "_")
}

// NormalizeName applies index-style package name normalization.
func NormalizeName(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(lower))
	prevSep := false
	for _, r := range lower {
		if r == '-' || r == '_' || r == '.' {
			if !prevSep {
				b.WriteByte('-')
			}
			prevSep = true
			continue
		}
		prevSep = false
		b.WriteRune(r)
	}
	return b.String()
}

// CreateSample writes a sample manifest to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create manifest directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		return fmt.Errorf("write sample manifest: %w", err)
	}
	return nil
}
