package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteScript writes an executable shell script and returns its path.
func WriteScript(t testing.TB, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write script %s: %v", name, err)
	}
	return path
}

// FakeCompiler installs a stand-in UI compiler that accepts
// "-o <out> <input>" and writes a deterministic generated module.
func FakeCompiler(t testing.TB, dir string) string {
	t.Helper()
	return WriteScript(t, dir, "pyside6-uic", `
out=""
while [ $# -gt 0 ]; do
  case "$1" in
    -o) out="$2"; shift 2 ;;
    *) input="$1"; shift ;;
  esac
done
if [ -z "$out" ] || [ -z "$input" ]; then
  echo "usage: pyside6-uic -o OUT INPUT" >&2
  exit 2
fi
printf '# generated from %s\nclass Ui_Form:\n    pass\n' "$(basename "$input")" > "$out"
`)
}

// FailingCompiler installs a stand-in compiler that always fails with the
// given diagnostic.
func FailingCompiler(t testing.TB, dir, message string) string {
	t.Helper()
	return WriteScript(t, dir, "pyside6-uic", fmt.Sprintf(`
echo %q >&2
exit 1
`, message))
}

// FakeCompilerFailingOn installs a compiler that succeeds except for the
// named input file.
func FakeCompilerFailingOn(t testing.TB, dir, failBase string) string {
	t.Helper()
	return WriteScript(t, dir, "pyside6-uic", fmt.Sprintf(`
out=""
while [ $# -gt 0 ]; do
  case "$1" in
    -o) out="$2"; shift 2 ;;
    *) input="$1"; shift ;;
  esac
done
if [ "$(basename "$input")" = %q ]; then
  echo "Unable to parse $input" >&2
  exit 1
fi
printf '# generated\n' > "$out"
`, failBase))
}

// StubPath prepends dir to PATH for the duration of the test so stand-in
// tools resolve ahead of real ones.
func StubPath(t testing.TB, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// EmptyPath points PATH at an empty directory so no external tool resolves.
func EmptyPath(t testing.TB) {
	t.Helper()
	t.Setenv("PATH", t.TempDir())
}
