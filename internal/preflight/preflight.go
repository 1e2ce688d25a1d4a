package preflight

import (
	"fmt"

	"numbatbuild/internal/config"
	"numbatbuild/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes every applicable check for the manifest: directory access
// for the tree layout, the UI compiler, and the optional tooling the hook
// runner relies on.
func RunAll(m *config.Manifest) []Result {
	if m == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Project root", m.Root),
		CheckDirectoryAccess("Source directory", m.SrcRoot()),
		CheckUIDirectory(m),
		CheckGitWorkTree(m.Root),
	}

	for _, status := range deps.CheckBinaries(deps.ForManifest(m)) {
		results = append(results, resultFromStatus(status))
	}
	return results
}

// RequiredPassed reports whether every non-optional check passed.
func RequiredPassed(results []Result) bool {
	for _, result := range results {
		if !result.Optional && !result.Passed {
			return false
		}
	}
	return true
}

func resultFromStatus(status deps.Status) Result {
	result := Result{
		Name:     status.Name,
		Passed:   status.Available,
		Optional: status.Optional,
	}
	if status.Available {
		result.Detail = status.Path
	} else {
		result.Detail = status.Detail
		if status.Description != "" {
			result.Detail = fmt.Sprintf("%s (%s)", status.Detail, status.Description)
		}
	}
	return result
}
