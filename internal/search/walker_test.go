package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quest-framework/quest/pkg/quest"
)

// drivers lists both traversal strategies so every scenario runs
// against each of them.
var drivers = []struct {
	Name string
	Walk func(w *Walker[int], ctx context.Context, root quest.Candidate[int], visit visitFunc[int]) error
}{
	{Name: "recursive", Walk: (*Walker[int]).Walk},
	{Name: "explicit stack", Walk: (*Walker[int]).WalkStack},
}

// binary spans the complete tree of 0/1 choices down to the given depth.
func binary(depth int) quest.ExpandFunc[int] {
	return func(candidate quest.Candidate[int]) iter.Seq[quest.Candidate[int]] {
		return func(yield func(quest.Candidate[int]) bool) {
			if candidate.Len() >= depth {
				return
			}
			for choice := 0; choice <= 1; choice++ {
				if !yield(candidate.Extend(choice)) {
					return
				}
			}
		}
	}
}

func depth(n int) quest.AcceptFunc[int] {
	return func(candidate quest.Candidate[int]) bool {
		return candidate.Len() == n
	}
}

type recorder struct {
	events []string
}

func (r *recorder) Trace(p quest.SearchPosition[int]) {
	r.events = append(r.events, fmt.Sprintf("%v %s", p.Candidate(), p.Verdict()))
}

func TestWalk(t *testing.T) {
	type tc struct {
		Name      string
		Options   []Option[int]
		Solutions [][]int
	}

	for _, tt := range []tc{
		{
			Name: "exhausts the tree in depth-first order",
			Options: []Option[int]{
				WithExpander[int](binary(2)),
				WithAcceptor[int](depth(2)),
			},
			Solutions: [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		},
		{
			Name: "skips pruned subtrees",
			Options: []Option[int]{
				WithExpander[int](binary(2)),
				WithPruner[int](quest.RejectFunc[int](func(c quest.Candidate[int]) bool {
					return c.Len() > 0 && c.Choices()[0] == 0
				})),
				WithAcceptor[int](depth(2)),
			},
			Solutions: [][]int{{1, 0}, {1, 1}},
		},
		{
			Name: "accepts an empty root",
			Options: []Option[int]{
				WithExpander[int](binary(0)),
				WithAcceptor[int](depth(0)),
			},
			Solutions: [][]int{{}},
		},
		{
			Name: "finds nothing when the root is rejected",
			Options: []Option[int]{
				WithExpander[int](binary(2)),
				WithPruner[int](quest.RejectFunc[int](func(quest.Candidate[int]) bool { return true })),
				WithAcceptor[int](depth(2)),
			},
			Solutions: nil,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			for _, d := range drivers {
				t.Run(d.Name, func(t *testing.T) {
					var traces bytes.Buffer
					w, err := New(append(tt.Options, WithTracer[int](quest.LoggingTracer[int]{Writer: &traces}))...)
					if err != nil {
						t.Fatalf("failed to initialize walker: %s", err)
					}

					var solutions [][]int
					err = d.Walk(w, context.TODO(), quest.NewCandidate[int](), func(solution quest.Candidate[int]) bool {
						solutions = append(solutions, solution.Choices())
						return true
					})
					require.NoError(t, err)
					assert.Equal(t, tt.Solutions, solutions)

					if t.Failed() {
						t.Logf("\n%s", traces.String())
					}
				})
			}
		})
	}
}

func TestWalkTracesEveryVerdict(t *testing.T) {
	for _, d := range drivers {
		t.Run(d.Name, func(t *testing.T) {
			rec := &recorder{}
			w, err := New(
				WithExpander[int](binary(2)),
				WithPruner[int](quest.RejectFunc[int](func(c quest.Candidate[int]) bool {
					return c.Len() > 0 && c.Choices()[0] == 0
				})),
				WithAcceptor[int](depth(2)),
				WithTracer[int](rec),
			)
			require.NoError(t, err)

			err = d.Walk(w, context.TODO(), quest.NewCandidate[int](), func(quest.Candidate[int]) bool { return true })
			require.NoError(t, err)
			assert.Equal(t, []string{
				"[] expanded",
				"[0] rejected",
				"[1] expanded",
				"[1 0] accepted",
				"[1 1] accepted",
			}, rec.events)
		})
	}
}

func TestWalkHaltPropagates(t *testing.T) {
	for _, d := range drivers {
		t.Run(d.Name, func(t *testing.T) {
			rec := &recorder{}
			w, err := New(
				WithExpander[int](binary(3)),
				WithAcceptor[int](depth(3)),
				WithTracer[int](rec),
			)
			require.NoError(t, err)

			var solutions [][]int
			err = d.Walk(w, context.TODO(), quest.NewCandidate[int](), func(solution quest.Candidate[int]) bool {
				solutions = append(solutions, solution.Choices())
				return false
			})
			require.NoError(t, err)
			assert.Equal(t, [][]int{{0, 0, 0}}, solutions)

			// Nothing past the first accepted leaf may be touched,
			// through all three levels of pending siblings.
			assert.Equal(t, []string{
				"[] expanded",
				"[0] expanded",
				"[0 0] expanded",
				"[0 0 0] accepted",
			}, rec.events)
		})
	}
}

func TestWalkCancellation(t *testing.T) {
	t.Run("before the walk starts", func(t *testing.T) {
		for _, d := range drivers {
			t.Run(d.Name, func(t *testing.T) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()

				w, err := New(WithExpander[int](binary(2)), WithAcceptor[int](depth(2)))
				require.NoError(t, err)

				err = d.Walk(w, ctx, quest.NewCandidate[int](), func(quest.Candidate[int]) bool { return true })
				assert.ErrorIs(t, err, quest.ErrIncomplete)
			})
		}
	})

	t.Run("between nodes", func(t *testing.T) {
		for _, d := range drivers {
			t.Run(d.Name, func(t *testing.T) {
				ctx, cancel := context.WithCancel(context.Background())
				defer cancel()

				rec := &recorder{}
				w, err := New(WithExpander[int](binary(2)), WithAcceptor[int](depth(2)), WithTracer[int](rec))
				require.NoError(t, err)

				err = d.Walk(w, ctx, quest.NewCandidate[int](), func(quest.Candidate[int]) bool {
					cancel()
					return true
				})
				assert.ErrorIs(t, err, quest.ErrIncomplete)
				assert.Equal(t, []string{
					"[] expanded",
					"[0] expanded",
					"[0 0] accepted",
				}, rec.events)
			})
		}
	})
}

func TestWalkContractViolations(t *testing.T) {
	boom := errors.New("boom")

	type tc struct {
		Name    string
		Options []Option[int]
		Op      string
		Cause   string
	}

	for _, tt := range []tc{
		{
			Name: "panic in the pruner",
			Options: []Option[int]{
				WithExpander[int](binary(2)),
				WithPruner[int](quest.RejectFunc[int](func(quest.Candidate[int]) bool { panic(boom) })),
				WithAcceptor[int](depth(2)),
			},
			Op: "reject",
		},
		{
			Name: "panic in the acceptor",
			Options: []Option[int]{
				WithExpander[int](binary(2)),
				WithAcceptor[int](quest.AcceptFunc[int](func(quest.Candidate[int]) bool { panic(boom) })),
			},
			Op: "accept",
		},
		{
			Name: "panic starting an expansion",
			Options: []Option[int]{
				WithExpander[int](quest.ExpandFunc[int](func(quest.Candidate[int]) iter.Seq[quest.Candidate[int]] {
					return func(func(quest.Candidate[int]) bool) { panic(boom) }
				})),
				WithAcceptor[int](depth(2)),
			},
			Op: "expand",
		},
		{
			Name: "panic resuming an expansion",
			Options: []Option[int]{
				WithExpander[int](quest.ExpandFunc[int](func(c quest.Candidate[int]) iter.Seq[quest.Candidate[int]] {
					return func(yield func(quest.Candidate[int]) bool) {
						if !yield(c.Extend(0)) {
							return
						}
						panic(boom)
					}
				})),
				WithAcceptor[int](depth(1)),
			},
			Op: "expand",
		},
		{
			Name: "expansion skips a level",
			Options: []Option[int]{
				WithExpander[int](quest.ExpandFunc[int](func(c quest.Candidate[int]) iter.Seq[quest.Candidate[int]] {
					return func(yield func(quest.Candidate[int]) bool) {
						yield(c.Extend(0).Extend(0))
					}
				})),
				WithAcceptor[int](depth(2)),
			},
			Op:    "expand",
			Cause: "candidate of length 0 expanded to a child of length 2",
		},
		{
			Name: "expansion repeats the parent",
			Options: []Option[int]{
				WithExpander[int](quest.ExpandFunc[int](func(c quest.Candidate[int]) iter.Seq[quest.Candidate[int]] {
					return func(yield func(quest.Candidate[int]) bool) {
						yield(c)
					}
				})),
				WithAcceptor[int](depth(2)),
			},
			Op:    "expand",
			Cause: "candidate of length 0 expanded to a child of length 0",
		},
		{
			Name: "panic with a bare value",
			Options: []Option[int]{
				WithExpander[int](binary(2)),
				WithAcceptor[int](quest.AcceptFunc[int](func(quest.Candidate[int]) bool { panic("kaboom") })),
			},
			Op:    "accept",
			Cause: "panic: kaboom",
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			for _, d := range drivers {
				t.Run(d.Name, func(t *testing.T) {
					w, err := New(tt.Options...)
					require.NoError(t, err)

					err = d.Walk(w, context.TODO(), quest.NewCandidate[int](), func(quest.Candidate[int]) bool { return true })

					var e *quest.ExecutionError
					require.ErrorAs(t, err, &e)
					assert.Equal(t, tt.Op, e.Op)
					if tt.Cause != "" {
						assert.ErrorContains(t, err, tt.Cause)
					} else {
						assert.ErrorIs(t, err, boom)
					}
				})
			}
		})
	}
}

func TestNewRequiresOperations(t *testing.T) {
	type tc struct {
		Name    string
		Options []Option[int]
		Err     error
	}

	for _, tt := range []tc{
		{
			Name:    "no expander",
			Options: []Option[int]{WithAcceptor[int](depth(1))},
			Err:     ErrNoExpander,
		},
		{
			Name:    "no acceptor",
			Options: []Option[int]{WithExpander[int](binary(1))},
			Err:     ErrNoAcceptor,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := New(tt.Options...)
			assert.ErrorIs(t, err, tt.Err)
		})
	}
}

func TestWalkersAgree(t *testing.T) {
	alternating := quest.RejectFunc[int](func(c quest.Candidate[int]) bool {
		choices := c.Choices()
		for i := 1; i < len(choices); i++ {
			if choices[i] == choices[i-1] {
				return true
			}
		}
		return false
	})

	run := func(walk func(*Walker[int], context.Context, quest.Candidate[int], visitFunc[int]) error) ([][]int, []string) {
		rec := &recorder{}
		w, err := New(
			WithExpander[int](binary(4)),
			WithPruner[int](alternating),
			WithAcceptor[int](depth(4)),
			WithTracer[int](rec),
		)
		require.NoError(t, err)

		var solutions [][]int
		err = walk(w, context.TODO(), quest.NewCandidate[int](), func(solution quest.Candidate[int]) bool {
			solutions = append(solutions, solution.Choices())
			return true
		})
		require.NoError(t, err)
		return solutions, rec.events
	}

	recursive, recursiveTrace := run((*Walker[int]).Walk)
	stack, stackTrace := run((*Walker[int]).WalkStack)

	assert.Equal(t, [][]int{{0, 1, 0, 1}, {1, 0, 1, 0}}, recursive)
	assert.Equal(t, recursive, stack)
	assert.Equal(t, recursiveTrace, stackTrace)
}
