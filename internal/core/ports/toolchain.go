package ports

import (
	"context"

	"go.trai.ch/otto/internal/core/domain"
)

// Compiler is the discovery result for one language: the executable to
// export as CC/CXX, the default flags that seed the flag class, and any
// environment the compiler needs at configure time.
type Compiler struct {
	Path  string
	Flags []string
	Env   []domain.EnvVar
}

// Toolchain resolves the native compilers for a target/host pair. It is
// an opaque external provider; the engine only consumes its results.
//
//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// Resolve returns the C and C++ compilers for the given triples
	// (calling-system vocabulary: host runs the compiler, target runs the
	// artifact).
	Resolve(ctx context.Context, target, host string) (cc, cxx Compiler, err error)
}
