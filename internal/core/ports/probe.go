package ports

import "context"

// Probe is the pre-flight capability check for the shell indirection
// layer. It must pass before any phase runs; it is pluggable so tests can
// stub it without spawning real shells.
//
//go:generate mockgen -source=probe.go -destination=mocks/mock_probe.go -package=mocks
type Probe interface {
	// Check verifies that `sh` exists and can execute shebang-bearing
	// scripts, returning domain.ErrShellUnavailable,
	// domain.ErrShebangUnsupported, or domain.ErrShellBroken otherwise.
	Check(ctx context.Context) error
}
