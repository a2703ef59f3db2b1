package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/quest-framework/quest/pkg/quest"
	"github.com/quest-framework/quest/pkg/quest/predicate"
)

var (
	ErrNoExpander = errors.New("search: no expander provided")
	ErrNoAcceptor = errors.New("search: no acceptor provided")
)

const (
	opReject = "reject"
	opAccept = "accept"
	opExpand = "expand"
)

// visitFunc receives each accepted candidate in depth-first,
// left-to-right order. Returning false halts the walk; the halt
// propagates through every pending sibling iteration.
type visitFunc[C any] func(solution quest.Candidate[C]) bool

// Walker drives a depth-first traversal over the implicit tree of
// candidates spanned by an expander, classifying each node with the
// pruner and acceptor. A Walker is not safe for concurrent use.
type Walker[C any] struct {
	expand quest.Expander[C]
	prune  quest.Pruner[C]
	accept quest.Acceptor[C]
	tracer quest.Tracer[C]

	// op names the user-supplied operation currently running, so a
	// panic out of one can be attributed when it is recovered.
	op string
}

func New[C any](options ...Option[C]) (*Walker[C], error) {
	w := &Walker[C]{}
	for _, option := range append(options, defaults[C]()...) {
		if err := option(w); err != nil {
			return nil, err
		}
	}
	if w.expand == nil {
		return nil, ErrNoExpander
	}
	if w.accept == nil {
		return nil, ErrNoAcceptor
	}
	return w, nil
}

type Option[C any] func(w *Walker[C]) error

func WithExpander[C any](e quest.Expander[C]) Option[C] {
	return func(w *Walker[C]) error {
		w.expand = e
		return nil
	}
}

func WithPruner[C any](p quest.Pruner[C]) Option[C] {
	return func(w *Walker[C]) error {
		w.prune = p
		return nil
	}
}

func WithAcceptor[C any](a quest.Acceptor[C]) Option[C] {
	return func(w *Walker[C]) error {
		w.accept = a
		return nil
	}
}

func WithTracer[C any](t quest.Tracer[C]) Option[C] {
	return func(w *Walker[C]) error {
		w.tracer = t
		return nil
	}
}

func defaults[C any]() []Option[C] {
	return []Option[C]{
		func(w *Walker[C]) error {
			if w.prune == nil {
				w.prune = predicate.Never[C]()
			}
			return nil
		},
		func(w *Walker[C]) error {
			if w.tracer == nil {
				w.tracer = quest.DefaultTracer[C]{}
			}
			return nil
		},
	}
}

// position is the SearchPosition handed to tracers.
type position[C any] struct {
	candidate quest.Candidate[C]
	verdict   quest.Verdict
}

func (p position[C]) Candidate() quest.Candidate[C] {
	return p.candidate
}

func (p position[C]) Depth() int {
	return p.candidate.Len()
}

func (p position[C]) Verdict() quest.Verdict {
	return p.verdict
}

// Walk traverses the tree rooted at root recursively, reporting every
// accepted candidate to visit. It returns nil once the tree is
// exhausted or visit halts the walk, ErrIncomplete if ctx is cancelled
// first, and an ExecutionError if an operation breaks its contract.
func (w *Walker[C]) Walk(ctx context.Context, root quest.Candidate[C], visit visitFunc[C]) (err error) {
	defer w.recoverContract(&err)
	_, err = w.walk(ctx, root, visit)
	return err
}

func (w *Walker[C]) walk(ctx context.Context, candidate quest.Candidate[C], visit visitFunc[C]) (bool, error) {
	if ctx.Err() != nil {
		return true, quest.ErrIncomplete
	}
	switch w.classify(candidate) {
	case quest.VerdictRejected:
		return false, nil
	case quest.VerdictAccepted:
		// Solutions are leaves: an accepted candidate is never expanded.
		return !visit(candidate), nil
	}
	w.op = opExpand
	for child := range w.expand.Expand(candidate) {
		if err := checkChild(candidate, child); err != nil {
			return true, err
		}
		halt, err := w.walk(ctx, child, visit)
		if err != nil {
			return true, err
		}
		if halt {
			return true, nil
		}
		// The child sequence resumes after this iteration.
		w.op = opExpand
	}
	return false, nil
}

// classify applies the pruner and acceptor to a node and traces the
// verdict. Rejection is checked first; acceptance is only consulted on
// candidates that survived it.
func (w *Walker[C]) classify(candidate quest.Candidate[C]) quest.Verdict {
	verdict := quest.VerdictExpanded
	w.op = opReject
	if w.prune.Reject(candidate) {
		verdict = quest.VerdictRejected
	} else {
		w.op = opAccept
		if w.accept.Accept(candidate) {
			verdict = quest.VerdictAccepted
		}
	}
	w.tracer.Trace(position[C]{candidate: candidate, verdict: verdict})
	return verdict
}

func checkChild[C any](parent, child quest.Candidate[C]) error {
	if child.Len() != parent.Len()+1 {
		return &quest.ExecutionError{
			Op:    opExpand,
			Cause: fmt.Errorf("candidate of length %d expanded to a child of length %d", parent.Len(), child.Len()),
		}
	}
	return nil
}

// recoverContract converts a panic out of a user-supplied operation
// into an ExecutionError naming the operation that was running.
func (w *Walker[C]) recoverContract(err *error) {
	if r := recover(); r != nil {
		cause, ok := r.(error)
		if !ok {
			cause = fmt.Errorf("panic: %v", r)
		}
		*err = &quest.ExecutionError{Op: w.op, Cause: cause}
	}
}
