// Package buildlog records every pipeline invocation in a small SQLite
// database under the scratch directory, giving the history command something
// to show and failed builds a paper trail.
package buildlog
