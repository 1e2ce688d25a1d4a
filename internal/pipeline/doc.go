// Package pipeline sequences the build steps: manifest-driven UI
// compilation, source collection, archive assembly, and publication. Steps
// run strictly in order and the first failure aborts the rest; archives are
// staged in the scratch directory and only moved into dist/ once every step
// has succeeded.
package pipeline
