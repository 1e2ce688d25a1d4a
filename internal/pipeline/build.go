package pipeline

import (
	"numbatbuild/internal/collect"
	"numbatbuild/internal/config"
)

// Build carries the state threaded through the pipeline steps for one
// invocation. Steps fill in their outputs; later steps consume them.
type Build struct {
	Manifest     *config.Manifest
	ManifestPath string

	// Env is the base environment used for external tool invocations.
	Env []string

	// UIFiles are the discovered UI description files.
	UIFiles []string
	// Generated are the modules the UI compiler produced this run.
	Generated []string

	// Sources is the finalized file set, populated by the collect step.
	Sources *collect.Set

	// WheelPath and SdistPath are the published artifact locations. They
	// stay empty until the publish step succeeds; a failed build never
	// exposes artifacts.
	WheelPath string
	SdistPath string

	// SiteDir is the editable-install target for the develop step.
	SiteDir string

	stagedWheel string
	stagedSdist string
}
