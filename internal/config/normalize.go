package config

import (
	"path/filepath"
	"strings"
)

func (m *Manifest) normalize() error {
	m.Project.Name = strings.TrimSpace(m.Project.Name)
	m.Project.Version = strings.TrimSpace(m.Project.Version)
	m.Project.Description = strings.TrimSpace(m.Project.Description)
	m.Project.License = strings.TrimSpace(m.Project.License)

	m.normalizeBuild()
	m.normalizeLogging()
	m.normalizeHooks()
	return nil
}

func (m *Manifest) normalizeBuild() {
	if strings.TrimSpace(m.Build.Backend) == "" {
		m.Build.Backend = defaultBackend
	}
	if strings.TrimSpace(m.Build.SrcDir) == "" {
		m.Build.SrcDir = defaultSrcDir
	}
	if strings.TrimSpace(m.Build.UIDir) == "" {
		m.Build.UIDir = defaultUIDir
	}
	if strings.TrimSpace(m.Build.DistDir) == "" {
		m.Build.DistDir = defaultDistDir
	}
	if strings.TrimSpace(m.Build.WorkDir) == "" {
		m.Build.WorkDir = defaultWorkDir
	}
	if strings.TrimSpace(m.Build.Compiler) == "" {
		m.Build.Compiler = defaultCompiler
	}
	// Directory settings are kept relative to the manifest root; clean them
	// so joins stay predictable.
	m.Build.SrcDir = filepath.Clean(strings.TrimSpace(m.Build.SrcDir))
	m.Build.UIDir = filepath.Clean(strings.TrimSpace(m.Build.UIDir))
	m.Build.DistDir = filepath.Clean(strings.TrimSpace(m.Build.DistDir))
	m.Build.WorkDir = filepath.Clean(strings.TrimSpace(m.Build.WorkDir))

	if strings.TrimSpace(m.Build.Package) == "" {
		m.Build.Package = strings.ReplaceAll(NormalizeName(m.Project.Name), "-", "_")
	}
}

func (m *Manifest) normalizeLogging() {
	m.Logging.Format = strings.ToLower(strings.TrimSpace(m.Logging.Format))
	if m.Logging.Format == "" {
		m.Logging.Format = defaultLogFormat
	}
	m.Logging.Level = strings.ToLower(strings.TrimSpace(m.Logging.Level))
	if m.Logging.Level == "" {
		m.Logging.Level = defaultLogLevel
	}
}

func (m *Manifest) normalizeHooks() {
	for i := range m.Tool.Precommit.Hooks {
		hook := &m.Tool.Precommit.Hooks[i]
		hook.ID = strings.TrimSpace(hook.ID)
		if strings.TrimSpace(hook.Name) == "" {
			hook.Name = hook.ID
		}
		if strings.TrimSpace(hook.Entry) == "" {
			hook.Entry = hook.ID
		}
	}
}
