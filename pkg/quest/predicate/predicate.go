// Package predicate provides canned pruners, combinators over them,
// and the standard acceptor built from a pruner and a target depth.
package predicate

import (
	"github.com/quest-framework/quest/pkg/quest"
)

// Never returns a Pruner that rejects no candidate. An engine driven by
// Never degenerates to full enumeration: every candidate reachable
// through expansion is visited and filtered by the acceptor alone.
func Never[C any]() quest.Pruner[C] {
	return quest.RejectFunc[C](func(_ quest.Candidate[C]) bool {
		return false
	})
}

// Always returns a Pruner that rejects every candidate, the empty root
// included. It is trivially prefix-closed.
func Always[C any]() quest.Pruner[C] {
	return quest.RejectFunc[C](func(_ quest.Candidate[C]) bool {
		return true
	})
}

// Or returns a Pruner that rejects a candidate when any of the given
// pruners rejects it. If every operand is prefix-closed, so is the
// combination.
func Or[C any](pruners ...quest.Pruner[C]) quest.Pruner[C] {
	return quest.RejectFunc[C](func(candidate quest.Candidate[C]) bool {
		for _, p := range pruners {
			if p.Reject(candidate) {
				return true
			}
		}
		return false
	})
}

// And returns a Pruner that rejects a candidate only when all of the
// given pruners reject it. If every operand is prefix-closed, so is the
// combination. And of no pruners rejects everything.
func And[C any](pruners ...quest.Pruner[C]) quest.Pruner[C] {
	return quest.RejectFunc[C](func(candidate quest.Candidate[C]) bool {
		for _, p := range pruners {
			if !p.Reject(candidate) {
				return false
			}
		}
		return true
	})
}

// Not returns a Pruner that inverts p. It rounds out the combinator
// set alongside Or and And. The result is generally not prefix-closed
// even when p is, so it is only safe as an engine pruner for problems
// that re-establish closure some other way.
func Not[C any](p quest.Pruner[C]) quest.Pruner[C] {
	return quest.RejectFunc[C](func(candidate quest.Candidate[C]) bool {
		return !p.Reject(candidate)
	})
}

// Complete returns the standard Acceptor for a search of the given
// target depth: a candidate is accepted when the pruner does not reject
// it and it holds exactly depth choices. Building acceptance on top of
// the pruner keeps the two predicates from drifting apart; adapters
// should compose rather than restate their feasibility check.
func Complete[C any](p quest.Pruner[C], depth int) quest.Acceptor[C] {
	return quest.AcceptFunc[C](func(candidate quest.Candidate[C]) bool {
		return candidate.Len() == depth && !p.Reject(candidate)
	})
}
