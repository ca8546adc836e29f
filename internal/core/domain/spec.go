// Package domain contains the core types describing a pending native build.
package domain

// EnvVar is a single environment override. Overrides are kept in insertion
// order; when two entries share a key, the later one wins at apply time.
type EnvVar struct {
	Key   string
	Value string
}

// BuildSpec is the full description of one configure/make build. It is
// owned by the caller; the engine reads it during a build call and retains
// no reference afterwards.
type BuildSpec struct {
	// SourceDir is the absolute path of the source tree containing the
	// configure script.
	SourceDir string

	// SharedLib and StaticLib control --enable/--disable-shared and
	// --enable/--disable-static. Defaults: static on, shared off.
	SharedLib bool
	StaticLib bool

	// Flag accumulators, one per flag class. Token order is preserved.
	CFlags   []string
	CXXFlags []string
	LDFlags  []string

	// Options are rendered onto the configure command line in order.
	Options []Option

	// Host and Target override the HOST and TARGET environment values.
	// Both use the calling-system vocabulary: host is where the compiler
	// runs, target is where the built artifact runs.
	Host   string
	Target string

	// OutDir overrides the OUT_DIR environment value.
	OutDir string

	// Env holds environment overrides for the configure and make
	// processes, applied after the toolchain-provided entries.
	Env []EnvVar

	// ReconfFlags, when non-nil, triggers an autoreconf run in the source
	// directory before configuring. The string is split on whitespace.
	ReconfFlags *string

	// MakeTargets are the make goals to build; empty means "install".
	MakeTargets []string

	// MakeArgs are extra arguments appended to the make command line
	// after the targets.
	MakeArgs []string

	// InSource builds inside the source tree instead of <out>/build.
	InSource bool

	// Forbidden names argument tokens to drop from the configure command
	// line, matched on the part before any "=".
	Forbidden map[string]struct{}

	// FastBuild skips the configure phase when an identical invocation
	// already ran in the same build directory.
	FastBuild bool

	// CleanBuildDir, when set, is invoked with the build directory before
	// it is (re)created for an out-of-source build.
	CleanBuildDir func(dir string) error
}

// NewBuildSpec returns a BuildSpec for the source tree at sourceDir with
// the default linkage (static on, shared off).
func NewBuildSpec(sourceDir string) *BuildSpec {
	return &BuildSpec{
		SourceDir: sourceDir,
		StaticLib: true,
		Forbidden: make(map[string]struct{}),
	}
}

// Forbid excludes the named argument from the final configure command.
func (s *BuildSpec) Forbid(name string) {
	if s.Forbidden == nil {
		s.Forbidden = make(map[string]struct{})
	}
	s.Forbidden[name] = struct{}{}
}

// ExplicitHost reports the value of an Arbitrary "host" option, if the
// caller supplied one. Such an option disables host-triple derivation.
func (s *BuildSpec) ExplicitHost() (string, bool) {
	for _, opt := range s.Options {
		if opt.Kind == OptionArbitrary && opt.Name == "host" {
			return opt.Value, true
		}
	}
	return "", false
}

// EffectiveMakeTargets returns the configured make targets, defaulting to
// a single "install" target.
func (s *BuildSpec) EffectiveMakeTargets() []string {
	if len(s.MakeTargets) == 0 {
		return []string{"install"}
	}
	return s.MakeTargets
}

// Validate checks the parts of the spec that are enforced at the API
// boundary, currently the shell-token safety of option names.
func (s *BuildSpec) Validate() error {
	for _, opt := range s.Options {
		if err := ValidateOptionName(opt.Name); err != nil {
			return err
		}
	}
	return nil
}
