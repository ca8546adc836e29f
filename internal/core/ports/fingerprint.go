package ports

// FingerprintStore persists the canonical rendering of the configure
// command inside a build directory and answers whether an identical
// invocation already ran there.
//
//go:generate mockgen -source=fingerprint.go -destination=mocks/mock_fingerprint.go -package=mocks
type FingerprintStore interface {
	// Match reports whether configure may be skipped: the build directory
	// must hold the configure status file, the generated Makefile, and a
	// fingerprint record byte-identical to rendered.
	Match(buildDir, rendered string) (bool, error)

	// Write records rendered as the build directory's fingerprint,
	// replacing any previous record.
	Write(buildDir, rendered string) error
}
