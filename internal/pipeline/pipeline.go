package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"numbatbuild/internal/buildlog"
	"numbatbuild/internal/logging"
)

// Step is one sequential stage of a build invocation.
type Step interface {
	Name() string
	Run(ctx context.Context, b *Build) error
}

// Runner executes steps strictly in order, failing fast. A filesystem lock
// serializes concurrent invocations in the same tree, and every run is
// recorded in the build history when a store is provided.
type Runner struct {
	logger *slog.Logger
	store  *buildlog.Store
	steps  []Step
}

// NewRunner constructs a runner. store may be nil to skip history recording.
func NewRunner(logger *slog.Logger, store *buildlog.Store, steps ...Step) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{logger: logger, store: store, steps: steps}
}

// Run executes the pipeline for the given build state. The first failing
// step aborts the remainder; no artifact reaches the dist directory on
// failure.
func (r *Runner) Run(ctx context.Context, b *Build) error {
	if b == nil || b.Manifest == nil {
		return fmt.Errorf("build manifest is required")
	}
	if err := b.Manifest.EnsureDirectories(); err != nil {
		return err
	}

	lock := flock.New(filepath.Join(b.Manifest.WorkRoot(), "build.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire build lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another build is already running in %s", b.Manifest.Root)
	}
	defer func() { _ = lock.Unlock() }()

	runID := uuid.NewString()
	started := time.Now()
	if r.store != nil {
		if err := r.store.Begin(ctx, runID); err != nil {
			return err
		}
	}

	r.logger.Info("build started",
		slog.String("run_id", runID),
		slog.String("project", b.Manifest.Project.Name),
		slog.String("version", b.Manifest.Project.Version),
	)

	for _, step := range r.steps {
		stepCtx := logging.WithStep(ctx, step.Name())
		stepLogger := logging.WithContext(stepCtx, r.logger)

		stepLogger.Info("step started")
		stepStart := time.Now()
		if err := step.Run(stepCtx, b); err != nil {
			stepLogger.Error("step failed", slog.Any("error", err))
			if r.store != nil {
				_ = r.store.Finish(ctx, runID, buildlog.StatusFailed, "", "", err.Error())
			}
			return err
		}
		stepLogger.Info("step finished", slog.Duration("elapsed", time.Since(stepStart)))
	}

	if r.store != nil {
		if err := r.store.Finish(ctx, runID, buildlog.StatusSucceeded, b.WheelPath, b.SdistPath, ""); err != nil {
			return err
		}
	}

	r.logger.Info("build finished",
		slog.String("run_id", runID),
		slog.Duration("elapsed", time.Since(started)),
	)
	return nil
}
