// Package sat solves the n-queens board with a CNF encoding instead
// of a tree walk. One literal stands for each square; clauses demand a
// queen in every row and forbid attacking pairs. Enumeration blocks
// each model as it is found.
package sat

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/quest-framework/quest/pkg/quest/queens"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// board maps squares onto SAT literals.
type board struct {
	size int
}

func (b board) lit(row, column int) z.Lit {
	return z.Var(row*b.size + column + 1).Pos()
}

func (b board) addClauses(g inter.S) {
	for row := 0; row < b.size; row++ {
		for column := 0; column < b.size; column++ {
			g.Add(b.lit(row, column))
		}
		g.Add(z.LitNull)
	}
	for row := 0; row < b.size; row++ {
		for column := 0; column < b.size; column++ {
			for other := row; other < b.size; other++ {
				start := 0
				if other == row {
					start = column + 1
				}
				for target := start; target < b.size; target++ {
					if !attacks(row, column, other, target) {
						continue
					}
					g.Add(b.lit(row, column).Not())
					g.Add(b.lit(other, target).Not())
					g.Add(z.LitNull)
				}
			}
		}
	}
}

func attacks(row, column, other, target int) bool {
	return row == other || column == target ||
		row-column == other-target || row+column == other+target
}

// placement reads the model into one column per row. The pairwise
// clauses leave at most one true literal in each row.
func (b board) placement(g inter.S) []int {
	placement := make([]int, b.size)
	for row := 0; row < b.size; row++ {
		for column := 0; column < b.size; column++ {
			if g.Value(b.lit(row, column)) {
				placement[row] = column
				break
			}
		}
	}
	return placement
}

func (b board) block(g inter.S, placement []int) {
	for row, column := range placement {
		g.Add(b.lit(row, column).Not())
	}
	g.Add(z.LitNull)
}

// Solutions returns every conflict-free placement of size queens. The
// placements arrive in solver order, not in the depth-first order of
// the walk.
func Solutions(size int) ([][]int, error) {
	if size < 0 {
		return nil, queens.InvalidSizeError(size)
	}
	if size == 0 {
		return [][]int{{}}, nil
	}

	g := gini.New()
	b := board{size: size}
	b.addClauses(g)

	var placements [][]int
	for {
		switch g.Solve() {
		case satisfiable:
			placement := b.placement(g)
			placements = append(placements, placement)
			b.block(g, placement)
		case unsatisfiable:
			return placements, nil
		default:
			return nil, fmt.Errorf("unexpected outcome from the sat solver")
		}
	}
}

// First returns one conflict-free placement, reporting false when the
// board has none.
func First(size int) ([]int, bool, error) {
	if size < 0 {
		return nil, false, queens.InvalidSizeError(size)
	}
	if size == 0 {
		return []int{}, true, nil
	}

	g := gini.New()
	b := board{size: size}
	b.addClauses(g)

	switch g.Solve() {
	case satisfiable:
		return b.placement(g), true, nil
	case unsatisfiable:
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("unexpected outcome from the sat solver")
}
