package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// FingerprintDigest returns the short id of a canonical configure
// rendering, used as the record's quick-mismatch line and in log lines.
func FingerprintDigest(rendered string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(rendered))
}
