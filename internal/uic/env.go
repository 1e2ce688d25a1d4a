package uic

import (
	"path/filepath"
	"strings"
)

// Invocation carries the resolved compiler executable and the exact
// environment it runs with. Passing this explicitly keeps search-path
// adjustments scoped to the compiler process instead of mutating the
// build tool's own environment.
type Invocation struct {
	Executable string
	WorkDir    string
	Env        []string
}

// NewInvocation derives an invocation for the resolved executable. The
// compiler's directory is prepended to PATH and its parent's lib directory
// to PYTHONPATH so compilers shipped inside interpreter prefixes resolve
// their own runtime.
func NewInvocation(executable, workDir string, baseEnv []string) Invocation {
	return Invocation{
		Executable: executable,
		WorkDir:    workDir,
		Env:        Environment(baseEnv, executable),
	}
}

// Environment returns base with PATH and PYTHONPATH extended for the
// compiler at executable. base is never modified.
func Environment(base []string, executable string) []string {
	binDir := filepath.Dir(executable)
	libDir := filepath.Join(filepath.Dir(binDir), "lib")

	env := make([]string, 0, len(base)+2)
	pathSeen := false
	pythonPathSeen := false
	for _, entry := range base {
		switch {
		case strings.HasPrefix(entry, "PATH="):
			pathSeen = true
			env = append(env, "PATH="+prependList(binDir, strings.TrimPrefix(entry, "PATH=")))
		case strings.HasPrefix(entry, "PYTHONPATH="):
			pythonPathSeen = true
			env = append(env, "PYTHONPATH="+prependList(libDir, strings.TrimPrefix(entry, "PYTHONPATH=")))
		default:
			env = append(env, entry)
		}
	}
	if !pathSeen {
		env = append(env, "PATH="+binDir)
	}
	if !pythonPathSeen {
		env = append(env, "PYTHONPATH="+libDir)
	}
	return env
}

func prependList(dir, list string) string {
	if strings.TrimSpace(list) == "" {
		return dir
	}
	for _, existing := range filepath.SplitList(list) {
		if existing == dir {
			return list
		}
	}
	return dir + string(filepath.ListSeparator) + list
}
