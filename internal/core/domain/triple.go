package domain

import (
	"path/filepath"
	"strings"
)

// DeriveHostTriple infers the autotools --host triple from the discovered
// C compiler. Cross-compiler executables conventionally embed the triple
// as a name prefix (i686-pc-windows-gnu-gcc), and configure has no other
// reliable way to learn it.
//
// The musl wrapper is excluded: "musl-gcc" is not a triple. A compiler
// name with no -cc/-gcc suffix (plain "cc", "gcc") yields nothing and
// leaves configure to its own auto-detection.
func DeriveHostTriple(ccPath string) (string, bool) {
	name := filepath.Base(ccPath)
	if name == "musl-gcc" {
		return "", false
	}
	for _, suffix := range []string{"-cc", "-gcc"} {
		if triple, ok := strings.CutSuffix(name, suffix); ok && triple != "" {
			return triple, true
		}
	}
	return "", false
}
