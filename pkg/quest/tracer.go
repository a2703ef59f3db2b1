package quest

import (
	"fmt"
	"io"
)

// SearchPosition describes a node at the moment the engine classified it.
type SearchPosition[C any] interface {
	Candidate() Candidate[C]
	Depth() int
	Verdict() Verdict
}

// Tracer implementations observe every node the engine visits, in
// visit order. Tracing must not influence the search.
type Tracer[C any] interface {
	Trace(p SearchPosition[C])
}

// DefaultTracer discards all positions.
type DefaultTracer[C any] struct{}

func (DefaultTracer[C]) Trace(_ SearchPosition[C]) {
}

// LoggingTracer writes one line per visited node, useful for debugging
// a misbehaving problem implementation.
type LoggingTracer[C any] struct {
	Writer io.Writer
}

func (t LoggingTracer[C]) Trace(p SearchPosition[C]) {
	fmt.Fprintf(t.Writer, "%s at depth %d: %v\n", p.Verdict(), p.Depth(), p.Candidate())
}
