// Package uic invokes the external UI compiler that turns declarative .ui
// descriptions into generated Python modules. One compiler invocation per
// input file, blocking, fail-fast: a missing compiler or a failed conversion
// aborts the build before any archive is produced.
package uic
