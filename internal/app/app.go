// Package app implements the application layer for otto.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/otto/internal/core/domain"
	"go.trai.ch/otto/internal/core/ports"
	"go.trai.ch/otto/internal/engine/planner"
)

// configLogTail bounds how much of config.log is surfaced after a
// configure failure.
const configLogTail = 100

// App drives a spec through the reconfigure, configure, and build phases.
type App struct {
	planner      *planner.Planner
	executor     ports.Executor
	fingerprints ports.FingerprintStore
	probe        ports.Probe
	logger       ports.Logger
	telemetry    ports.Telemetry

	// declarations receives the `root=<dir>` line emitted after a
	// successful build; nil suppresses it.
	declarations io.Writer
}

// New creates a new App instance.
func New(
	pl *planner.Planner,
	executor ports.Executor,
	fingerprints ports.FingerprintStore,
	probe ports.Probe,
	logger ports.Logger,
	telemetry ports.Telemetry,
	declarations io.Writer,
) *App {
	return &App{
		planner:      pl,
		executor:     executor,
		fingerprints: fingerprints,
		probe:        probe,
		logger:       logger,
		telemetry:    telemetry,
		declarations: declarations,
	}
}

// Build runs the full pipeline for the spec and returns the install
// directory on success.
func (a *App) Build(ctx context.Context, spec *domain.BuildSpec) (string, error) {
	return a.run(ctx, spec, false)
}

// Configure runs the pipeline up to and including the configure phase
// and returns the install directory on success.
func (a *App) Configure(ctx context.Context, spec *domain.BuildSpec) (string, error) {
	return a.run(ctx, spec, true)
}

func (a *App) run(ctx context.Context, spec *domain.BuildSpec, configureOnly bool) (string, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}
	if err := a.probe.Check(ctx); err != nil {
		return "", err
	}

	plan, err := a.planner.Plan(ctx, spec)
	if err != nil {
		return "", err
	}

	if err := a.prepareBuildDir(spec, plan); err != nil {
		return "", err
	}

	machine := domain.NewPhaseMachine()

	if plan.Reconfigure != nil {
		if err := a.reconfigure(ctx, machine, plan); err != nil {
			return "", err
		}
	}

	if err := a.configure(ctx, machine, spec, plan); err != nil {
		return "", err
	}
	if configureOnly {
		return plan.InstallDir, nil
	}

	if err := a.build(ctx, machine, plan); err != nil {
		return "", err
	}

	if a.declarations != nil {
		fmt.Fprintf(a.declarations, "root=%s\n", plan.InstallDir)
	}
	return plan.InstallDir, nil
}

// prepareBuildDir materializes the build directory for out-of-source
// builds. In-source builds configure where the sources live, so nothing
// is created or cleaned there.
func (a *App) prepareBuildDir(spec *domain.BuildSpec, plan *planner.Plan) error {
	if spec.InSource {
		return nil
	}
	if spec.CleanBuildDir != nil {
		if err := spec.CleanBuildDir(plan.BuildDir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to clean build directory"), "dir", plan.BuildDir)
		}
	}
	if err := os.MkdirAll(plan.BuildDir, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create build directory"), "dir", plan.BuildDir)
	}
	return nil
}

func (a *App) reconfigure(ctx context.Context, machine *domain.PhaseMachine, plan *planner.Plan) error {
	if err := machine.Advance(domain.PhaseReconfiguring); err != nil {
		return err
	}

	ctx, vertex := a.telemetry.Record(ctx, "autoreconf")
	err := a.executor.Run(ctx, *plan.Reconfigure, vertex.Stdout())
	vertex.Done(err)
	if err != nil {
		_ = machine.Fail()
		return zerr.Wrap(err, domain.ErrReconfigureFailed.Error())
	}
	return nil
}

func (a *App) configure(ctx context.Context, machine *domain.PhaseMachine, spec *domain.BuildSpec, plan *planner.Plan) error {
	if err := machine.Advance(domain.PhaseConfiguring); err != nil {
		return err
	}

	ctx, vertex := a.telemetry.Record(ctx, "configure")

	if spec.FastBuild {
		match, err := a.fingerprints.Match(plan.BuildDir, plan.ConfigureRendered)
		if err != nil {
			a.logger.Warn("fingerprint check failed: " + err.Error())
		}
		if match {
			a.logger.Info("configure unchanged (fingerprint " + domain.FingerprintDigest(plan.ConfigureRendered) + "), skipping")
			vertex.Cached()
			vertex.Done(nil)
			return machine.Advance(domain.PhaseConfigured)
		}
		if err := a.fingerprints.Write(plan.BuildDir, plan.ConfigureRendered); err != nil {
			a.logger.Warn("fingerprint write failed: " + err.Error())
		}
	}

	err := a.executor.Run(ctx, plan.Configure, vertex.Stdout())
	vertex.Done(err)
	if err != nil {
		a.dumpConfigLog(plan.BuildDir)
		_ = machine.Fail()
		return zerr.Wrap(err, domain.ErrConfigureFailed.Error())
	}
	return machine.Advance(domain.PhaseConfigured)
}

func (a *App) build(ctx context.Context, machine *domain.PhaseMachine, plan *planner.Plan) error {
	if err := machine.Advance(domain.PhaseBuilding); err != nil {
		return err
	}

	ctx, vertex := a.telemetry.Record(ctx, "make")
	err := a.executor.Run(ctx, plan.Build, vertex.Stdout())
	vertex.Done(err)
	if err != nil {
		_ = machine.Fail()
		return zerr.Wrap(err, domain.ErrBuildFailed.Error())
	}
	return machine.Advance(domain.PhaseBuilt)
}

// dumpConfigLog surfaces the tail of config.log after a configure
// failure. A missing or unreadable log is only warned about so the
// original failure stays the returned error.
func (a *App) dumpConfigLog(buildDir string) {
	path := filepath.Join(buildDir, "config.log")
	data, err := os.ReadFile(path) //nolint:gosec // path is the engine's own build dir
	if err != nil {
		a.logger.Warn("could not read " + path + ": " + err.Error())
		return
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) > configLogTail {
		lines = lines[len(lines)-configLogTail:]
	}
	a.logger.Info("tail of " + path + ":")
	for _, line := range lines {
		a.logger.Info(line)
	}
}
