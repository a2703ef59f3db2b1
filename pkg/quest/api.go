package quest

import (
	"errors"
	"fmt"
	"iter"
)

// ErrIncomplete is returned when a search is cancelled before the
// candidate tree has been exhausted. No partial results accompany it.
var ErrIncomplete = errors.New("cancelled before the search could complete")

// ExecutionError reports that one of the three search operations broke
// its contract: an operation panicked, or an expansion produced a child
// that is not exactly one choice longer than its parent. The search is
// aborted and whatever results were collected so far are discarded.
type ExecutionError struct {
	// Op names the operation that failed: "expand", "reject" or "accept".
	Op    string
	Cause error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("search aborted: %s operation failed: %v", e.Op, e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Candidate values are the basic unit of problems and solutions
// understood by this package: an ordered sequence of choices, where the
// choice at position i is the decision taken at tree depth i. A
// Candidate is immutable once constructed; Extend returns a fresh
// Candidate and never aliases the receiver's backing array.
type Candidate[C any] []C

// NewCandidate returns a Candidate made of the given choices.
func NewCandidate[C any](choices ...C) Candidate[C] {
	c := make(Candidate[C], len(choices))
	copy(c, choices)
	return c
}

// Extend returns a new Candidate holding the receiver's choices
// followed by choice. The receiver is left untouched and shares no
// storage with the result, so sibling extensions can never interfere.
func (c Candidate[C]) Extend(choice C) Candidate[C] {
	child := make(Candidate[C], len(c)+1)
	copy(child, c)
	child[len(c)] = choice
	return child
}

// Len returns the number of choices in the candidate, which is also its
// depth in the search tree.
func (c Candidate[C]) Len() int {
	return len(c)
}

// Choices returns a copy of the candidate's choices.
func (c Candidate[C]) Choices() []C {
	out := make([]C, len(c))
	copy(out, c)
	return out
}

// Expander implementations produce the next-level candidates reachable
// from a given candidate. Each yielded child must be exactly one choice
// longer than its parent. Expand returns a freshly constructed, finite
// sequence on every call; invoking it twice on the same candidate must
// regenerate the same children in the same order.
type Expander[C any] interface {
	Expand(candidate Candidate[C]) iter.Seq[Candidate[C]]
}

// ExpandFunc adapts an ordinary function to the Expander interface.
type ExpandFunc[C any] func(candidate Candidate[C]) iter.Seq[Candidate[C]]

func (f ExpandFunc[C]) Expand(candidate Candidate[C]) iter.Seq[Candidate[C]] {
	return f(candidate)
}

// Pruner implementations decide whether a partial candidate is
// infeasible and its subtree must not be explored. Reject is required
// to be pure, total over every candidate the engine can construct, and
// prefix-closed: once a candidate is rejected, every extension of it
// must be rejected too. Prefix-closure is what makes skipping a subtree
// safe; a pruner without it will lose solutions.
type Pruner[C any] interface {
	Reject(candidate Candidate[C]) bool
}

// RejectFunc adapts an ordinary function to the Pruner interface.
type RejectFunc[C any] func(candidate Candidate[C]) bool

func (f RejectFunc[C]) Reject(candidate Candidate[C]) bool {
	return f(candidate)
}

// Acceptor implementations decide whether a candidate is a complete,
// feasible solution. Accepted candidates are leaves: the engine records
// them and does not expand them further.
type Acceptor[C any] interface {
	Accept(candidate Candidate[C]) bool
}

// AcceptFunc adapts an ordinary function to the Acceptor interface.
type AcceptFunc[C any] func(candidate Candidate[C]) bool

func (f AcceptFunc[C]) Accept(candidate Candidate[C]) bool {
	return f(candidate)
}

// Problem bundles the three operations that define a backtracking
// search instance. Adapters such as the queens package implement it.
type Problem[C any] interface {
	Expander[C]
	Pruner[C]
	Acceptor[C]
}

// Verdict is the engine's classification of a visited node.
type Verdict int

const (
	// VerdictRejected marks a node whose subtree was abandoned.
	VerdictRejected Verdict = iota
	// VerdictAccepted marks a node recorded as a solution.
	VerdictAccepted
	// VerdictExpanded marks an interior node whose children were visited.
	VerdictExpanded
)

func (v Verdict) String() string {
	switch v {
	case VerdictRejected:
		return "rejected"
	case VerdictAccepted:
		return "accepted"
	case VerdictExpanded:
		return "expanded"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}
