package ports

import (
	"context"
	"io"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records build phases as vertices for progress rendering.
type Telemetry interface {
	// Record starts recording a new vertex for the named phase.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded phase.
type Vertex interface {
	// Stdout returns a writer capturing the phase's process output.
	Stdout() io.Writer
	// Done marks the vertex finished, successfully when err is nil.
	Done(err error)
	// Cached marks the vertex as skipped by the fingerprint gate.
	Cached()
}
