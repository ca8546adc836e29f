// Package planner turns a build spec into the concrete command sequence
// for one build: optional autoreconf, configure, and make.
package planner

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/otto/internal/core/domain"
	"go.trai.ch/otto/internal/core/ports"
)

// Environment variable names consumed during planning.
const (
	envTarget    = "TARGET"
	envHost      = "HOST"
	envOutDir    = "OUT_DIR"
	envMake      = "MAKE"
	envNumJobs   = "NUM_JOBS"
	envJobserver = "OTTO_MAKEFLAGS"
	envCFlags    = "CFLAGS"
	envCXXFlags  = "CXXFLAGS"
	envLDFlags   = "LDFLAGS"
)

// Plan is the fully-resolved command sequence for one build.
type Plan struct {
	InstallDir string
	BuildDir   string
	Target     string
	Host       string

	// Reconfigure is nil unless the spec requests an autoreconf run.
	Reconfigure *domain.Command
	Configure   domain.Command
	Build       domain.Command

	// ConfigureRendered is the canonical rendering of the configure
	// invocation, used as the fingerprint body.
	ConfigureRendered string
}

// Planner resolves specs against the toolchain and environment.
type Planner struct {
	toolchain ports.Toolchain
	env       ports.Environment
}

// New creates a Planner.
func New(toolchain ports.Toolchain, env ports.Environment) *Planner {
	return &Planner{toolchain: toolchain, env: env}
}

// Plan resolves the spec into commands. It performs no filesystem writes
// and launches no processes; directory preparation is the caller's job.
func (p *Planner) Plan(ctx context.Context, spec *domain.BuildSpec) (*Plan, error) {
	target, err := p.resolveVar(spec.Target, envTarget)
	if err != nil {
		return nil, err
	}
	host, err := p.resolveVar(spec.Host, envHost)
	if err != nil {
		return nil, err
	}

	installDir, buildDir, err := p.resolveDirs(spec)
	if err != nil {
		return nil, err
	}

	cc, cxx, err := p.toolchain.Resolve(ctx, target, host)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve toolchain"), "target", target)
	}

	plan := &Plan{
		InstallDir: installDir,
		BuildDir:   buildDir,
		Target:     target,
		Host:       host,
	}

	if spec.ReconfFlags != nil {
		plan.Reconfigure = &domain.Command{
			Program: "autoreconf",
			Args:    strings.Fields(*spec.ReconfFlags),
			Dir:     spec.SourceDir,
		}
	}

	plan.Configure = p.configureCommand(spec, target, installDir, buildDir, cc, cxx)
	plan.ConfigureRendered = Render(plan.Configure)
	plan.Build = p.buildCommand(spec, target, buildDir)

	return plan, nil
}

func (p *Planner) resolveVar(override, key string) (string, error) {
	if override != "" {
		return override, nil
	}
	if v, ok := p.env.Lookup(key); ok {
		return v, nil
	}
	return "", zerr.With(domain.ErrMissingEnvironment, "name", key)
}

func (p *Planner) resolveDirs(spec *domain.BuildSpec) (install, build string, err error) {
	if spec.InSource {
		return spec.SourceDir, spec.SourceDir, nil
	}
	out := spec.OutDir
	if out == "" {
		v, ok := p.env.Lookup(envOutDir)
		if !ok {
			return "", "", zerr.With(domain.ErrMissingEnvironment, "name", envOutDir)
		}
		out = v
	}
	return out, filepath.Join(out, "build"), nil
}

func (p *Planner) configureCommand(spec *domain.BuildSpec, target, installDir, buildDir string, cc, cxx ports.Compiler) domain.Command {
	script := filepath.Join(spec.SourceDir, "configure")

	program := script
	var args []string
	if emscripten(target) {
		program = "emconfigure"
		args = append(args, script)
	}

	args = append(args, "--prefix="+translatePath(installDir))
	if runtime.GOOS == "windows" {
		// The MSYS configure resolves its own script path poorly when
		// invoked with a native srcdir.
		args = append(args, "--srcdir="+translatePath(spec.SourceDir))
	}

	if spec.SharedLib {
		args = append(args, "--enable-shared")
	} else {
		args = append(args, "--disable-shared")
	}
	if spec.StaticLib {
		args = append(args, "--enable-static")
	} else {
		args = append(args, "--disable-static")
	}
	for _, opt := range spec.Options {
		args = append(args, opt.Token())
	}
	if _, explicit := spec.ExplicitHost(); !explicit {
		if triple, ok := domain.DeriveHostTriple(cc.Path); ok {
			args = append(args, "--host="+triple)
		}
	}

	args = domain.FilterForbidden(args, spec.Forbidden)

	env := make([]domain.EnvVar, 0, 5+len(cc.Env)+len(cxx.Env)+len(spec.Env))

	ambientC, _ := p.env.Lookup(envCFlags)
	env = append(env, domain.EnvVar{Key: envCFlags, Value: domain.AssembleFlags(cc.Flags, ambientC, spec.CFlags)})

	ambientCXX, _ := p.env.Lookup(envCXXFlags)
	env = append(env, domain.EnvVar{Key: envCXXFlags, Value: domain.AssembleFlags(cxx.Flags, ambientCXX, spec.CXXFlags)})

	ambientLD, ldSet := p.env.Lookup(envLDFlags)
	if v, emit := domain.AssembleLinkerFlags(ambientLD, ldSet, spec.LDFlags); emit {
		env = append(env, domain.EnvVar{Key: envLDFlags, Value: v})
	}

	env = append(env, domain.EnvVar{Key: "CC", Value: cc.Path})
	env = append(env, domain.EnvVar{Key: "CXX", Value: cxx.Path})
	env = append(env, cc.Env...)
	env = append(env, cxx.Env...)
	env = append(env, spec.Env...)

	return domain.Command{
		Program: program,
		Args:    args,
		Dir:     buildDir,
		Env:     env,
	}
}

func (p *Planner) buildCommand(spec *domain.BuildSpec, target, buildDir string) domain.Command {
	makeProg := "make"
	if v, ok := p.env.Lookup(envMake); ok && v != "" {
		makeProg = v
	}

	program := makeProg
	var args []string
	if emscripten(target) {
		program = "emmake"
		args = append(args, makeProg)
	}

	args = append(args, spec.EffectiveMakeTargets()...)
	args = append(args, spec.MakeArgs...)

	var env []domain.EnvVar
	if jobs, ok := p.env.Lookup(envNumJobs); ok && jobs != "" {
		if flags, ok := p.env.Lookup(envJobserver); ok && jobserverUsable() {
			env = append(env, domain.EnvVar{Key: "MAKEFLAGS", Value: flags})
		} else {
			args = append(args, "-j"+jobs)
		}
	}
	env = append(env, spec.Env...)

	return domain.Command{
		Program: program,
		Args:    args,
		Dir:     buildDir,
		Env:     env,
	}
}

// Render produces the canonical single-string form of a command for
// fingerprinting: the working directory, the collapsed environment in
// sorted order, and the argv, one token per line.
func Render(cmd domain.Command) string {
	env := cmd.EffectiveEnv()
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, 2+len(keys)+len(cmd.Args))
	lines = append(lines, "dir "+cmd.Dir)
	for _, k := range keys {
		lines = append(lines, "env "+k+"="+env[k])
	}
	lines = append(lines, cmd.Program)
	lines = append(lines, cmd.Args...)
	return strings.Join(lines, "\n")
}

func emscripten(target string) bool {
	return strings.Contains(target, "emscripten")
}

// The BSDs ship a make whose jobserver protocol is incompatible with the
// flags GNU make passes down, and Windows command handling breaks on the
// fd list, so those platforms fall back to an explicit -j.
func jobserverUsable() bool {
	switch runtime.GOOS {
	case "windows", "openbsd", "netbsd", "freebsd", "dragonfly":
		return false
	}
	return true
}

// translatePath converts installDir for the configure script. On Windows
// the MSYS configure only understands unix-style paths, so the path is
// routed through cygpath; anywhere else, and whenever cygpath itself
// fails, the path passes through untouched.
var translatePath = func(path string) string {
	if runtime.GOOS != "windows" {
		return path
	}
	out, err := exec.Command("cygpath", "--unix", "--codepage=UTF8", path).Output()
	if err != nil {
		return path
	}
	return strings.TrimRight(string(out), "\r\n")
}
