package search

import (
	"context"
	"iter"

	"github.com/quest-framework/quest/pkg/quest"
)

// frame holds a partially consumed child sequence. The stack of frames
// mirrors the call stack of the recursive walker.
type frame[C any] struct {
	parent quest.Candidate[C]
	next   func() (quest.Candidate[C], bool)
	stop   func()
}

// WalkStack traverses the tree rooted at root with an explicit frame
// stack instead of recursion. Visit order, traces, and error behavior
// are identical to Walk.
func (w *Walker[C]) WalkStack(ctx context.Context, root quest.Candidate[C], visit visitFunc[C]) (err error) {
	defer w.recoverContract(&err)

	var stack []frame[C]
	defer func() {
		for _, f := range stack {
			f.stop()
		}
	}()

	enter := func(candidate quest.Candidate[C]) (bool, error) {
		if ctx.Err() != nil {
			return true, quest.ErrIncomplete
		}
		switch w.classify(candidate) {
		case quest.VerdictRejected:
			return false, nil
		case quest.VerdictAccepted:
			return !visit(candidate), nil
		}
		w.op = opExpand
		next, stop := iter.Pull(w.expand.Expand(candidate))
		stack = append(stack, frame[C]{parent: candidate, next: next, stop: stop})
		return false, nil
	}

	halt, err := enter(root)
	for err == nil && !halt && len(stack) > 0 {
		f := stack[len(stack)-1]
		w.op = opExpand
		child, ok := f.next()
		if !ok {
			f.stop()
			stack = stack[:len(stack)-1]
			continue
		}
		if err = checkChild(f.parent, child); err != nil {
			break
		}
		halt, err = enter(child)
	}
	return err
}
