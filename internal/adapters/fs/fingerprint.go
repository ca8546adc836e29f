// Package fs implements the build-directory fingerprint store.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/otto/internal/core/domain"
)

const (
	// fingerprintFile holds the canonical rendering of the previous
	// configure invocation.
	fingerprintFile = "configure.prev"
	// statusFile is configure's own success artifact.
	statusFile = "config.status"
	// makefileFile is the generated top-level makefile.
	makefileFile = "Makefile"

	digestPrefix = "xxh64:"
)

// Store implements ports.FingerprintStore on the filesystem.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Match reports whether a configure run with the given rendering can be
// skipped. All three artifacts must be present: a missing status file or
// makefile means the previous configure never finished writing its
// outputs, whatever the fingerprint says.
func (s *Store) Match(buildDir, rendered string) (bool, error) {
	for _, name := range []string{statusFile, fingerprintFile, makefileFile} {
		if _, err := os.Stat(filepath.Join(buildDir, name)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return false, nil
			}
			return false, zerr.With(zerr.Wrap(err, "failed to stat cache artifact"), "path", filepath.Join(buildDir, name))
		}
	}

	data, err := os.ReadFile(filepath.Join(buildDir, fingerprintFile)) //nolint:gosec // path is the engine's own build dir
	if err != nil {
		return false, zerr.Wrap(err, "failed to read fingerprint record")
	}

	digestLine, body, ok := strings.Cut(string(data), "\n")
	if !ok || digestLine != digestPrefix+domain.FingerprintDigest(rendered) {
		return false, nil
	}
	return body == rendered, nil
}

// Write replaces the build directory's fingerprint record.
func (s *Store) Write(buildDir, rendered string) error {
	record := digestPrefix + domain.FingerprintDigest(rendered) + "\n" + rendered
	path := filepath.Join(buildDir, fingerprintFile)
	if err := os.WriteFile(path, []byte(record), 0o644); err != nil { //nolint:gosec // record is not sensitive
		return zerr.With(zerr.Wrap(err, "failed to write fingerprint record"), "path", path)
	}
	return nil
}
