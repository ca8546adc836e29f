// Package toolchain discovers the native compilers for a target/host
// pair. It is the engine's stand-in for a full compiler-discovery
// service: environment conventions first, conventional cross-compiler
// names as fallback.
package toolchain

import (
	"context"
	"strings"

	"go.trai.ch/otto/internal/core/domain"
	"go.trai.ch/otto/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Discovery implements ports.Toolchain from environment conventions.
//
// Resolution order per language: `CC_<target>` (dashes and dots replaced
// with underscores), then `CC`, then the conventional default:
// `<target>-gcc` when cross-compiling, plain `cc` otherwise. Same scheme
// with CXX/g++/c++ for C++.
type Discovery struct {
	env ports.Environment
}

// NewDiscovery creates a new Discovery.
func NewDiscovery(env ports.Environment) *Discovery {
	return &Discovery{env: env}
}

// Resolve returns the C and C++ compilers for the given triples. The two
// lookups are independent and run concurrently.
func (d *Discovery) Resolve(ctx context.Context, target, host string) (ports.Compiler, ports.Compiler, error) {
	var cc, cxx ports.Compiler

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(2)
	g.Go(func() error {
		cc = d.resolve(target, host, false)
		return nil
	})
	g.Go(func() error {
		cxx = d.resolve(target, host, true)
		return nil
	})
	if err := g.Wait(); err != nil {
		return ports.Compiler{}, ports.Compiler{}, err
	}
	return cc, cxx, nil
}

func (d *Discovery) resolve(target, host string, cplusplus bool) ports.Compiler {
	prefix := "CC"
	if cplusplus {
		prefix = "CXX"
	}

	path := ""
	if v, ok := d.env.Lookup(prefix + "_" + sanitizeTriple(target)); ok && v != "" {
		path = v
	} else if v, ok := d.env.Lookup(prefix); ok && v != "" {
		path = v
	} else {
		path = defaultCompiler(target, host, cplusplus)
	}

	return ports.Compiler{
		Path:  path,
		Flags: defaultFlags(target),
		Env:   []domain.EnvVar{},
	}
}

func defaultCompiler(target, host string, cplusplus bool) string {
	if target != host {
		// Cross-compiler executables conventionally carry the target
		// triple as a name prefix.
		if cplusplus {
			return target + "-g++"
		}
		return target + "-gcc"
	}
	if cplusplus {
		return "c++"
	}
	return "cc"
}

func defaultFlags(target string) []string {
	flags := []string{"-O2", "-ffunction-sections", "-fdata-sections"}
	if !strings.Contains(target, "windows") && !strings.Contains(target, "msvc") {
		flags = append(flags, "-fPIC")
	}
	return flags
}

func sanitizeTriple(triple string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(triple)
}
