// Command numbat-build is the build front end for the numbat project: it
// compiles declarative UI files, collects the package sources, and produces
// wheel and sdist archives driven by the numbat.toml manifest.
package main
