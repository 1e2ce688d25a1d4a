package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"numbatbuild/internal/collect"
	"numbatbuild/internal/deps"
	"numbatbuild/internal/develop"
	"numbatbuild/internal/dist"
	"numbatbuild/internal/fileutil"
	"numbatbuild/internal/uic"
)

// CompileUIStep resolves the UI compiler and converts every UI description
// into a generated module inside the package directory.
type CompileUIStep struct {
	Client uic.Client
}

func (CompileUIStep) Name() string { return "compile-ui" }

func (s CompileUIStep) Run(ctx context.Context, b *Build) error {
	compilerPath, err := deps.ResolveCompiler(b.Manifest.Build.Compiler)
	if err != nil {
		return err
	}

	uiFiles, err := uic.Discover(b.Manifest.UIRoot())
	if err != nil {
		return err
	}
	b.UIFiles = uiFiles
	if len(uiFiles) == 0 {
		return nil
	}

	env := b.Env
	if env == nil {
		env = os.Environ()
	}
	inv := uic.NewInvocation(compilerPath, b.Manifest.Root, env)

	client := s.Client
	if client == nil {
		client = uic.NewCLI()
	}
	generated, err := uic.CompileAll(ctx, client, inv, uiFiles, b.Manifest.PackageDir())
	b.Generated = generated
	return err
}

// CollectStep gathers the source file set and enforces the generated-module
// invariant before any builder runs.
type CollectStep struct{}

func (CollectStep) Name() string { return "collect" }

func (CollectStep) Run(_ context.Context, b *Build) error {
	set, err := collect.Sources(b.Manifest.SrcRoot())
	if err != nil {
		return err
	}
	if err := set.Verify(b.UIFiles); err != nil {
		return err
	}
	b.Sources = set
	return nil
}

// WheelStep builds the wheel into the scratch directory. Publication into
// the dist directory happens only after every builder succeeded.
type WheelStep struct{}

func (WheelStep) Name() string { return "wheel" }

func (WheelStep) Run(_ context.Context, b *Build) error {
	staged, err := dist.BuildWheel(b.Manifest, b.Sources, b.Manifest.WorkRoot())
	if err != nil {
		return err
	}
	b.stagedWheel = staged
	return nil
}

// SdistStep builds the source distribution into the scratch directory.
type SdistStep struct{}

func (SdistStep) Name() string { return "sdist" }

func (SdistStep) Run(_ context.Context, b *Build) error {
	staged, err := dist.BuildSdist(b.Manifest, b.Sources, b.ManifestPath, b.Manifest.WorkRoot())
	if err != nil {
		return err
	}
	b.stagedSdist = staged
	return nil
}

// PublishStep moves staged archives into the dist directory. Running last
// keeps failed builds from leaving partial artifacts behind.
type PublishStep struct{}

func (PublishStep) Name() string { return "publish" }

func (PublishStep) Run(_ context.Context, b *Build) error {
	distRoot := b.Manifest.DistRoot()
	if b.stagedWheel != "" {
		target := filepath.Join(distRoot, filepath.Base(b.stagedWheel))
		if err := fileutil.MoveFile(b.stagedWheel, target); err != nil {
			return err
		}
		b.WheelPath = target
	}
	if b.stagedSdist != "" {
		target := filepath.Join(distRoot, filepath.Base(b.stagedSdist))
		if err := fileutil.MoveFile(b.stagedSdist, target); err != nil {
			return err
		}
		b.SdistPath = target
	}
	return nil
}

// DevelopStep registers the package for editable use instead of producing
// archives.
type DevelopStep struct{}

func (DevelopStep) Name() string { return "develop" }

func (DevelopStep) Run(_ context.Context, b *Build) error {
	_, err := develop.Install(b.Manifest, b.Sources, b.SiteDir)
	return err
}

// BuildSteps returns the step sequence for a full build: both archive
// formats plus publication.
func BuildSteps() []Step {
	return []Step{CompileUIStep{}, CollectStep{}, WheelStep{}, SdistStep{}, PublishStep{}}
}

// WheelSteps returns the step sequence producing only a wheel.
func WheelSteps() []Step {
	return []Step{CompileUIStep{}, CollectStep{}, WheelStep{}, PublishStep{}}
}

// SdistSteps returns the step sequence producing only a source distribution.
func SdistSteps() []Step {
	return []Step{CompileUIStep{}, CollectStep{}, SdistStep{}, PublishStep{}}
}

// DevelopSteps returns the step sequence for an editable install.
func DevelopSteps() []Step {
	return []Step{CompileUIStep{}, CollectStep{}, DevelopStep{}}
}
