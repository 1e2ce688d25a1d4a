// Package config loads and validates the project manifest (numbat.toml).
// The manifest supplies package metadata, pipeline layout, tool settings,
// and the pre-commit hook list. It is loaded once per invocation and is
// immutable for the lifetime of that invocation.
package config
