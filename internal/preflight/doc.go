// Package preflight provides readiness checks for the external tools and
// filesystem paths a build depends on.
//
// The CLI "numbat-build check" command runs RunAll and renders the results;
// a failing required check means the next build would abort, so surfacing it
// up front saves a doomed run.
package preflight
