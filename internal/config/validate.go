package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"numbatbuild/internal/errkind"
)

var versionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*((a|b|rc)[0-9]+)?(\.post[0-9]+)?(\.dev[0-9]+)?$`)

// Validate ensures the manifest is usable for a build.
func (m *Manifest) Validate() error {
	if err := m.validateProject(); err != nil {
		return err
	}
	if err := m.validateBuild(); err != nil {
		return err
	}
	if err := m.validateTool(); err != nil {
		return err
	}
	return m.validateHooks()
}

func (m *Manifest) validateProject() error {
	if m.Project.Name == "" {
		return errkind.Wrap(errkind.ErrConfiguration, "manifest", "validate", "project.name is required", nil)
	}
	if m.Project.Version == "" {
		return errkind.Wrap(errkind.ErrConfiguration, "manifest", "validate", "project.version is required", nil)
	}
	if !versionPattern.MatchString(m.Project.Version) {
		return errkind.Wrap(errkind.ErrConfiguration, "manifest", "validate",
			fmt.Sprintf("project.version %q is not a valid version", m.Project.Version), nil)
	}
	for name, target := range m.Project.Scripts {
		if !strings.Contains(target, ":") {
			return errkind.Wrap(errkind.ErrConfiguration, "manifest", "validate",
				fmt.Sprintf("project.scripts.%s must look like \"module:function\", got %q", name, target), nil)
		}
	}
	return nil
}

func (m *Manifest) validateBuild() error {
	for field, value := range map[string]string{
		"build.src_dir":  m.Build.SrcDir,
		"build.ui_dir":   m.Build.UIDir,
		"build.dist_dir": m.Build.DistDir,
		"build.work_dir": m.Build.WorkDir,
	} {
		if filepath.IsAbs(value) {
			return errkind.Wrap(errkind.ErrConfiguration, "manifest", "validate",
				fmt.Sprintf("%s must be relative to the project root, got %q", field, value), nil)
		}
		if value == ".." || strings.HasPrefix(value, ".."+string(filepath.Separator)) {
			return errkind.Wrap(errkind.ErrConfiguration, "manifest", "validate",
				fmt.Sprintf("%s must stay inside the project root, got %q", field, value), nil)
		}
	}
	if strings.TrimSpace(m.Build.Compiler) == "" {
		return errkind.Wrap(errkind.ErrConfiguration, "manifest", "validate", "build.compiler must be set", nil)
	}
	return nil
}

func (m *Manifest) validateTool() error {
	if m.Tool.Docstrings.FailUnder < 0 || m.Tool.Docstrings.FailUnder > 100 {
		return errkind.Wrap(errkind.ErrConfiguration, "manifest", "validate",
			"tool.docstrings.fail_under must be between 0 and 100", nil)
	}
	if m.Tool.Lint.LineLength <= 0 {
		return errkind.Wrap(errkind.ErrConfiguration, "manifest", "validate",
			"tool.lint.line_length must be positive", nil)
	}
	if m.Tool.Format.LineLength <= 0 {
		return errkind.Wrap(errkind.ErrConfiguration, "manifest", "validate",
			"tool.format.line_length must be positive", nil)
	}
	return nil
}

func (m *Manifest) validateHooks() error {
	seen := make(map[string]struct{}, len(m.Tool.Precommit.Hooks))
	for _, hook := range m.Tool.Precommit.Hooks {
		if hook.ID == "" {
			return errkind.Wrap(errkind.ErrConfiguration, "manifest", "validate",
				"tool.precommit.hooks entries require an id", nil)
		}
		if _, dup := seen[hook.ID]; dup {
			return errkind.Wrap(errkind.ErrConfiguration, "manifest", "validate",
				fmt.Sprintf("duplicate hook id %q", hook.ID), nil)
		}
		seen[hook.ID] = struct{}{}
	}
	return nil
}
