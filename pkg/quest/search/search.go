package search

import (
	"context"

	"github.com/quest-framework/quest/internal/search"
	"github.com/quest-framework/quest/pkg/quest"
)

// Result is returned by a Search when a walk ran to completion. A
// completed walk can still hold no solutions when every branch of the
// candidate tree was rejected or exhausted.
type Result[C any] struct {
	solutions []quest.Candidate[C]
}

// Solutions returns every accepted candidate in the order the walk
// reached them.
func (r *Result[C]) Solutions() []quest.Candidate[C] {
	return r.solutions
}

// First returns the first accepted candidate, if any.
func (r *Result[C]) First() (quest.Candidate[C], bool) {
	if len(r.solutions) == 0 {
		return nil, false
	}
	return r.solutions[0], true
}

// Count returns the number of accepted candidates.
func (r *Result[C]) Count() int {
	return len(r.solutions)
}

type solveOptions struct {
	firstMatch    bool
	explicitStack bool
}

func (s *solveOptions) apply(options ...SolveOption) *solveOptions {
	for _, applyOption := range options {
		applyOption(s)
	}
	return s
}

func defaultSolveOptions() *solveOptions {
	return &solveOptions{
		firstMatch:    false,
		explicitStack: false,
	}
}

type SolveOption func(solveOptions *solveOptions)

// FirstMatch is a Solve option that halts the walk at the first
// accepted candidate instead of exhausting the tree.
func FirstMatch() SolveOption {
	return func(solveOptions *solveOptions) {
		solveOptions.firstMatch = true
	}
}

// ExplicitStack is a Solve option that drives the walk with an
// explicit frame stack, keeping the tree depth off the goroutine
// stack. Solutions and traces are identical to the recursive walk.
func ExplicitStack() SolveOption {
	return func(solveOptions *solveOptions) {
		solveOptions.explicitStack = true
	}
}

type config[C any] struct {
	expand quest.Expander[C]
	prune  quest.Pruner[C]
	accept quest.Acceptor[C]
	tracer quest.Tracer[C]
	root   quest.Candidate[C]
}

type Option[C any] func(c *config[C])

// WithProblem configures the search with the expansion, pruning, and
// acceptance operations of a single problem value. Individual options
// applied after it override the corresponding operation.
func WithProblem[C any](p quest.Problem[C]) Option[C] {
	return func(c *config[C]) {
		c.expand = p
		c.prune = p
		c.accept = p
	}
}

func WithExpander[C any](e quest.Expander[C]) Option[C] {
	return func(c *config[C]) {
		c.expand = e
	}
}

// WithPruner sets the pruner consulted on every candidate. The pruner
// must be prefix-closed: once it rejects a candidate it must reject
// every extension of it. Without this option no candidate is ever
// rejected.
func WithPruner[C any](p quest.Pruner[C]) Option[C] {
	return func(c *config[C]) {
		c.prune = p
	}
}

func WithAcceptor[C any](a quest.Acceptor[C]) Option[C] {
	return func(c *config[C]) {
		c.accept = a
	}
}

// WithTracer registers a tracer that observes every node the walk
// classifies.
func WithTracer[C any](t quest.Tracer[C]) Option[C] {
	return func(c *config[C]) {
		c.tracer = t
	}
}

// WithRoot starts the walk from the given candidate instead of the
// empty one, searching only the subtree below it.
func WithRoot[C any](root quest.Candidate[C]) Option[C] {
	return func(c *config[C]) {
		c.root = root
	}
}

// Search walks the implicit candidate tree spanned by an expander
// depth-first, pruning rejected subtrees and collecting accepted
// candidates. A Search is built once and may be solved any number of
// times.
type Search[C any] struct {
	walker *search.Walker[C]
	root   quest.Candidate[C]
}

// New builds a Search from the given options. An expander and an
// acceptor are required.
func New[C any](options ...Option[C]) (*Search[C], error) {
	cfg := &config[C]{}
	for _, applyOption := range options {
		applyOption(cfg)
	}

	walker, err := search.New(
		search.WithExpander[C](cfg.expand),
		search.WithPruner[C](cfg.prune),
		search.WithAcceptor[C](cfg.accept),
		search.WithTracer[C](cfg.tracer),
	)
	if err != nil {
		return nil, err
	}

	root := cfg.root
	if root == nil {
		root = quest.NewCandidate[C]()
	}
	return &Search[C]{walker: walker, root: root}, nil
}

// Solve walks the candidate tree and returns the accepted candidates.
// It returns ErrIncomplete when ctx is cancelled before the walk
// finishes and an ExecutionError when an operation breaks its
// contract; in both cases any partially collected solutions are
// discarded.
func (s *Search[C]) Solve(ctx context.Context, options ...SolveOption) (*Result[C], error) {
	solveOpts := defaultSolveOptions().apply(options...)

	walk := s.walker.Walk
	if solveOpts.explicitStack {
		walk = s.walker.WalkStack
	}

	var solutions []quest.Candidate[C]
	err := walk(ctx, s.root, func(solution quest.Candidate[C]) bool {
		solutions = append(solutions, solution)
		return !solveOpts.firstMatch
	})
	if err != nil {
		return nil, err
	}
	return &Result[C]{solutions: solutions}, nil
}
