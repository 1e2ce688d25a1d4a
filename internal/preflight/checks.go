package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"numbatbuild/internal/config"
	"numbatbuild/internal/uic"
)

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckUIDirectory reports the UI directory state. A missing directory is
// not a failure; projects without declarative UI still build.
func CheckUIDirectory(m *config.Manifest) Result {
	const name = "UI directory"
	root := m.UIRoot()

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return Result{Name: name, Passed: true, Optional: true, Detail: fmt.Sprintf("%s (absent, nothing to compile)", root)}
	}
	if err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: stat: %v)", root, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: is not a directory)", root)}
	}

	uiFiles, err := uic.Discover(root)
	if err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: %v)", root, err)}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: fmt.Sprintf("%s (%d UI files)", root, len(uiFiles))}
}

// CheckGitWorkTree reports whether hook installation would succeed.
func CheckGitWorkTree(root string) Result {
	const name = "Git work tree"

	info, err := os.Stat(filepath.Join(root, ".git"))
	if err != nil || !info.IsDir() {
		return Result{Name: name, Optional: true, Detail: "not a git work tree (hook installation unavailable)"}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: "hook installation available"}
}
