// Package otto drives configure/make based builds of native source trees.
//
// The entry point is Config: describe the build with chained calls, then
// run it with Build or Configure. Every operation has a panicking form
// for build scripts that treat failure as fatal and a Try form that
// returns the error.
package otto

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"go.trai.ch/otto/internal/adapters/fs"
	"go.trai.ch/otto/internal/adapters/logger"
	"go.trai.ch/otto/internal/adapters/osenv"
	"go.trai.ch/otto/internal/adapters/shell"
	"go.trai.ch/otto/internal/adapters/telemetry"
	"go.trai.ch/otto/internal/adapters/toolchain"
	"go.trai.ch/otto/internal/app"
	"go.trai.ch/otto/internal/core/domain"
	"go.trai.ch/otto/internal/engine/planner"
)

// Build runs ./configure && make install for the source tree at srcDir
// with default settings and returns the install directory. It panics on
// failure; build scripts that want the error use TryBuild.
func Build(srcDir string) string {
	return NewConfig(srcDir).Build()
}

// TryBuild is Build returning the error instead of panicking.
func TryBuild(srcDir string) (string, error) {
	cfg, err := TryNewConfig(srcDir)
	if err != nil {
		return "", err
	}
	return cfg.TryBuild()
}

// Config accumulates the description of one build. The zero value is not
// usable; construct with NewConfig or TryNewConfig.
type Config struct {
	spec *domain.BuildSpec
}

// NewConfig creates a Config for the source tree at srcDir, panicking
// when the path cannot be resolved.
func NewConfig(srcDir string) *Config {
	cfg, err := TryNewConfig(srcDir)
	if err != nil {
		panic(fmt.Sprintf("otto: %+v", err))
	}
	return cfg
}

// TryNewConfig is NewConfig returning the error instead of panicking.
func TryNewConfig(srcDir string) (*Config, error) {
	abs, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve source directory"), "dir", srcDir)
	}
	return &Config{spec: domain.NewBuildSpec(abs)}, nil
}

// EnableShared builds shared libraries.
func (c *Config) EnableShared() *Config {
	c.spec.SharedLib = true
	return c
}

// DisableShared does not build shared libraries (the default).
func (c *Config) DisableShared() *Config {
	c.spec.SharedLib = false
	return c
}

// EnableStatic builds static libraries (the default).
func (c *Config) EnableStatic() *Config {
	c.spec.StaticLib = true
	return c
}

// DisableStatic does not build static libraries.
func (c *Config) DisableStatic() *Config {
	c.spec.StaticLib = false
	return c
}

// Enable passes --enable-<name>[=<value>] to configure. A nil value
// renders the switch without a value.
func (c *Config) Enable(name string, value *string) *Config {
	c.spec.Options = append(c.spec.Options, domain.NewOption(domain.OptionEnable, name, value))
	return c
}

// Disable passes --disable-<name>[=<value>] to configure.
func (c *Config) Disable(name string, value *string) *Config {
	c.spec.Options = append(c.spec.Options, domain.NewOption(domain.OptionDisable, name, value))
	return c
}

// With passes --with-<name>[=<value>] to configure.
func (c *Config) With(name string, value *string) *Config {
	c.spec.Options = append(c.spec.Options, domain.NewOption(domain.OptionWith, name, value))
	return c
}

// Without passes --without-<name>[=<value>] to configure.
func (c *Config) Without(name string, value *string) *Config {
	c.spec.Options = append(c.spec.Options, domain.NewOption(domain.OptionWithout, name, value))
	return c
}

// Option passes --<name>[=<value>] to configure with no kind prefix.
// Setting "host" this way disables the automatic --host derivation.
func (c *Config) Option(name string, value *string) *Config {
	c.spec.Options = append(c.spec.Options, domain.NewOption(domain.OptionArbitrary, name, value))
	return c
}

// CFlag appends flag to the C compiler flags.
func (c *Config) CFlag(flag string) *Config {
	c.spec.CFlags = append(c.spec.CFlags, flag)
	return c
}

// CXXFlag appends flag to the C++ compiler flags.
func (c *Config) CXXFlag(flag string) *Config {
	c.spec.CXXFlags = append(c.spec.CXXFlags, flag)
	return c
}

// LDFlag appends flag to the linker flags. Appending any flag, even
// later removed, makes the build export LDFLAGS.
func (c *Config) LDFlag(flag string) *Config {
	c.spec.LDFlags = append(c.spec.LDFlags, flag)
	return c
}

// Target overrides the TARGET environment value.
func (c *Config) Target(target string) *Config {
	c.spec.Target = target
	return c
}

// Host overrides the HOST environment value.
func (c *Config) Host(host string) *Config {
	c.spec.Host = host
	return c
}

// OutDir overrides the OUT_DIR environment value.
func (c *Config) OutDir(dir string) *Config {
	c.spec.OutDir = dir
	return c
}

// Env sets an environment variable for the configure and make processes.
// Later entries win over earlier ones with the same key.
func (c *Config) Env(key, value string) *Config {
	c.spec.Env = append(c.spec.Env, domain.EnvVar{Key: key, Value: value})
	return c
}

// Reconf runs autoreconf with the given whitespace-separated flags
// before configuring.
func (c *Config) Reconf(flags string) *Config {
	c.spec.ReconfFlags = &flags
	return c
}

// MakeTarget adds a make goal, replacing the default "install".
func (c *Config) MakeTarget(target string) *Config {
	c.spec.MakeTargets = append(c.spec.MakeTargets, target)
	return c
}

// MakeArgs appends extra arguments to the make command line.
func (c *Config) MakeArgs(args ...string) *Config {
	c.spec.MakeArgs = append(c.spec.MakeArgs, args...)
	return c
}

// Insource builds inside the source tree instead of <out>/build.
func (c *Config) Insource(insource bool) *Config {
	c.spec.InSource = insource
	return c
}

// Forbid drops the named argument from the final configure command line.
// The name is matched against the part of each token before any "=", so
// forbidding "--with-sysroot" drops "--with-sysroot=/x" but not
// "--with-sysroot2".
func (c *Config) Forbid(name string) *Config {
	c.spec.Forbid(name)
	return c
}

// FastBuild skips the configure phase when an identical invocation
// already ran in the same build directory.
func (c *Config) FastBuild(fast bool) *Config {
	c.spec.FastBuild = fast
	return c
}

// CleanWith installs a hook invoked with the build directory before an
// out-of-source build directory is created.
func (c *Config) CleanWith(clean func(dir string) error) *Config {
	c.spec.CleanBuildDir = clean
	return c
}

// Build runs the full pipeline and returns the install directory,
// panicking on failure.
func (c *Config) Build() string {
	dir, err := c.TryBuild()
	if err != nil {
		panic(fmt.Sprintf("otto: %+v", err))
	}
	return dir
}

// TryBuild is Build returning the error instead of panicking.
func (c *Config) TryBuild() (string, error) {
	return c.newApp().Build(context.Background(), c.spec)
}

// Configure runs the pipeline up to and including the configure phase
// and returns the install directory, panicking on failure.
func (c *Config) Configure() string {
	dir, err := c.TryConfigure()
	if err != nil {
		panic(fmt.Sprintf("otto: %+v", err))
	}
	return dir
}

// TryConfigure is Configure returning the error instead of panicking.
func (c *Config) TryConfigure() (string, error) {
	return c.newApp().Configure(context.Background(), c.spec)
}

// newApp assembles the engine for library use: real adapters, quiet
// telemetry, declarations to stdout for build-script consumption.
func (c *Config) newApp() *app.App {
	log := logger.New()
	env := osenv.New()
	return app.New(
		planner.New(toolchain.NewDiscovery(env), env),
		shell.NewRunner(log),
		fs.NewStore(),
		shell.NewProbe(log),
		log,
		telemetry.NewNoOp(),
		os.Stdout,
	)
}
