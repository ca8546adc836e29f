package ports

// Environment is read access to the externally-injected build variables
// (TARGET, HOST, OUT_DIR, MAKE, NUM_JOBS, OTTO_MAKEFLAGS, CFLAGS, ...).
// It exists as a seam so planning is testable without mutating the
// process environment.
//
//go:generate mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type Environment interface {
	// Lookup returns the value of key and whether it is set, preserving
	// the unset/empty distinction.
	Lookup(key string) (string, bool)
}
