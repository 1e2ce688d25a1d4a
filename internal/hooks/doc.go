// Package hooks runs the manifest's declarative pre-commit hooks and
// installs the git hook script that triggers them. Hooks run strictly in
// declaration order over the staged (or all) project files; the first
// non-zero exit aborts the rest.
package hooks
