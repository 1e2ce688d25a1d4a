package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"numbatbuild/internal/config"
	"numbatbuild/internal/errkind"
)

var lookPath = exec.LookPath

// Requirement defines an external executable the build pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// ForManifest returns the requirements implied by the manifest: the UI
// compiler is mandatory, git and the hook entries are optional conveniences.
func ForManifest(m *config.Manifest) []Requirement {
	requirements := []Requirement{
		{
			Name:        "UI compiler",
			Command:     m.Build.Compiler,
			Description: "Compiles .ui descriptions into Python modules",
		},
		{
			Name:        "git",
			Command:     "git",
			Description: "Required for hook installation and changed-file discovery",
			Optional:    true,
		},
	}
	seen := map[string]struct{}{m.Build.Compiler: {}, "git": {}}
	for _, hook := range m.Tool.Precommit.Hooks {
		cmd := strings.TrimSpace(hook.Entry)
		if cmd == "" {
			continue
		}
		if _, dup := seen[cmd]; dup {
			continue
		}
		seen[cmd] = struct{}{}
		requirements = append(requirements, Requirement{
			Name:        hook.Name,
			Command:     cmd,
			Description: fmt.Sprintf("Pre-commit hook %q", hook.ID),
			Optional:    true,
		})
	}
	return requirements
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := lookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// ResolveCompiler locates the UI compiler on the search path. Absence is a
// fatal tool-not-found error; the build must stop before any artifact is
// produced.
func ResolveCompiler(binary string) (string, error) {
	cmd := strings.TrimSpace(binary)
	if cmd == "" {
		return "", errkind.Wrap(errkind.ErrConfiguration, "compile-ui", "resolve", "build.compiler not configured", nil)
	}
	path, err := lookPath(cmd)
	if err != nil {
		return "", errkind.Wrap(errkind.ErrToolNotFound, "compile-ui", "resolve",
			fmt.Sprintf("unable to locate UI compiler %q on PATH", cmd), err)
	}
	return path, nil
}
