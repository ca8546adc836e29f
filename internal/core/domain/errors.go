package domain

import "go.trai.ch/zerr"

var (
	// ErrShellUnavailable is returned when no `sh` can be spawned at all.
	ErrShellUnavailable = zerr.New("`sh` is required to run `configure`")

	// ErrShellBroken is returned when `sh` exists but fails the capability probe.
	ErrShellBroken = zerr.New("`sh` is not standard or is otherwise broken")

	// ErrShebangUnsupported is returned when `sh` runs but cannot execute a
	// shebang-bearing script, which configure and autoreconf both are.
	ErrShebangUnsupported = zerr.New("`sh` does not parse shebangs")

	// ErrMissingEnvironment is returned when a required externally-injected
	// value (TARGET, HOST, OUT_DIR) is absent and no override was supplied.
	ErrMissingEnvironment = zerr.New("environment variable not defined")

	// ErrExecutableNotFound is returned when a phase's program cannot be found.
	ErrExecutableNotFound = zerr.New("program not installed")

	// ErrNonZeroExit is returned when a phase's process reports failure.
	ErrNonZeroExit = zerr.New("command did not execute successfully")

	// ErrConfigureFailed wraps a configure phase failure after the
	// config.log dump has been attempted.
	ErrConfigureFailed = zerr.New("failed to run configure")

	// ErrBuildFailed wraps a make phase failure.
	ErrBuildFailed = zerr.New("failed to run make")

	// ErrReconfigureFailed wraps an autoreconf phase failure.
	ErrReconfigureFailed = zerr.New("failed to run autoreconf")

	// ErrInvalidOptionName is returned when an option name contains
	// characters unsafe for shell-token construction.
	ErrInvalidOptionName = zerr.New("option name contains shell-unsafe characters")

	// ErrInvalidOptionToken is returned when a configure token cannot be
	// parsed back into an option.
	ErrInvalidOptionToken = zerr.New("malformed configure option token")

	// ErrInvalidPhaseTransition is returned on an illegal phase machine move.
	ErrInvalidPhaseTransition = zerr.New("invalid build phase transition")
)
