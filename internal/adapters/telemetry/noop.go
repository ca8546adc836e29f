// Package telemetry provides phase-recording implementations.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/otto/internal/core/ports"
)

// NoOp is a no-op implementation of ports.Telemetry, the default for
// library embedding where the caller owns all output.
type NoOp struct{}

// NewNoOp creates a new NoOp.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a vertex that discards everything.
func (t *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, &noopVertex{}
}

// Close does nothing.
func (t *NoOp) Close() error { return nil }

type noopVertex struct{}

func (v *noopVertex) Stdout() io.Writer { return io.Discard }
func (v *noopVertex) Done(error)        {}
func (v *noopVertex) Cached()           {}
