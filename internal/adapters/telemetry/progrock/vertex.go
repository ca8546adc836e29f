package progrock

import (
	"io"

	"github.com/vito/progrock"
)

// Vertex wraps a progrock vertex recorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Stdout returns the writer that process output should be streamed to.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Done marks the vertex as finished, carrying the error if there was one.
func (v *Vertex) Done(err error) {
	v.vertex.Done(err)
}

// Cached flags the vertex as satisfied without running anything.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
