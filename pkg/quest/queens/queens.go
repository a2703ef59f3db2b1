// Package queens adapts the n-queens puzzle to the search contracts.
// A candidate assigns one column per row from the top of the board
// down, so a complete candidate for an n-sized board has length n.
package queens

import (
	"fmt"
	"iter"
	"slices"

	"github.com/quest-framework/quest/pkg/quest"
	"github.com/quest-framework/quest/pkg/quest/predicate"
)

// InvalidSizeError is returned by New for a negative board size.
type InvalidSizeError int

func (e InvalidSizeError) Error() string {
	return fmt.Sprintf("invalid board size %d", int(e))
}

// ColumnClash rejects candidates that place two queens in the same
// column.
func ColumnClash() quest.Pruner[int] {
	return quest.RejectFunc[int](func(candidate quest.Candidate[int]) bool {
		columns := candidate.Choices()
		for i := 1; i < len(columns); i++ {
			for j := 0; j < i; j++ {
				if columns[i] == columns[j] {
					return true
				}
			}
		}
		return false
	})
}

// DiagonalClash rejects candidates that place two queens on a shared
// diagonal.
func DiagonalClash() quest.Pruner[int] {
	return quest.RejectFunc[int](func(candidate quest.Candidate[int]) bool {
		columns := candidate.Choices()
		for i := 1; i < len(columns); i++ {
			for j := 0; j < i; j++ {
				if i-columns[i] == j-columns[j] || i+columns[i] == j+columns[j] {
					return true
				}
			}
		}
		return false
	})
}

type Option func(p *Problem)

// WithColumnFilter makes expansion skip columns already holding a
// queen, so the pruner only has to watch the diagonals.
func WithColumnFilter() Option {
	return func(p *Problem) {
		p.filter = true
	}
}

// WithoutPruning disables subtree pruning entirely, degenerating the
// search into a filtered enumeration of the whole board. Acceptance
// still requires a conflict-free placement.
func WithoutPruning() Option {
	return func(p *Problem) {
		p.brute = true
	}
}

// Problem places n queens on an n by n board so that no two share a
// row, column, or diagonal. It implements the search contracts over
// int choices; rows are spanned in order and columns ascend within
// each expansion, so solutions arrive in a deterministic order.
type Problem struct {
	size   int
	filter bool
	brute  bool
	prune  quest.Pruner[int]
	accept quest.Acceptor[int]
}

func New(size int, options ...Option) (*Problem, error) {
	if size < 0 {
		return nil, InvalidSizeError(size)
	}
	p := &Problem{size: size}
	for _, applyOption := range options {
		applyOption(p)
	}

	feasible := predicate.Or[int](ColumnClash(), DiagonalClash())
	switch {
	case p.brute:
		p.prune = predicate.Never[int]()
	case p.filter:
		p.prune = DiagonalClash()
	default:
		p.prune = feasible
	}
	p.accept = predicate.Complete[int](feasible, size)
	return p, nil
}

// Size returns the board size the problem was built for.
func (p *Problem) Size() int {
	return p.size
}

// Expand yields the placements for the next row, one column at a
// time in ascending order. Complete boards have no children.
func (p *Problem) Expand(candidate quest.Candidate[int]) iter.Seq[quest.Candidate[int]] {
	return func(yield func(quest.Candidate[int]) bool) {
		if candidate.Len() >= p.size {
			return
		}
		taken := candidate.Choices()
		for column := 0; column < p.size; column++ {
			if p.filter && slices.Contains(taken, column) {
				continue
			}
			if !yield(candidate.Extend(column)) {
				return
			}
		}
	}
}

func (p *Problem) Reject(candidate quest.Candidate[int]) bool {
	return p.prune.Reject(candidate)
}

func (p *Problem) Accept(candidate quest.Candidate[int]) bool {
	return p.accept.Accept(candidate)
}

var _ quest.Problem[int] = &Problem{}
