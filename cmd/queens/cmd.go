package queens

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quest-framework/quest/internal/sat"
	"github.com/quest-framework/quest/pkg/quest/queens"
	"github.com/quest-framework/quest/pkg/quest/search"
)

func NewQueensCommand() *cobra.Command {
	var all bool
	var filtered bool
	var brute bool
	var engine string

	cmd := &cobra.Command{
		Use:   "queens <size>",
		Short: "Places queens on a board so that none attack each other",
		Long: `Places queens on a square board so that no two share a row, column,
or diagonal. The size argument gives the board dimension and the number
of queens; by default only the first placement is printed.
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid board size (%s)", args[0])
			}
			if engine != "walk" && engine != "sat" {
				return fmt.Errorf("unknown engine (%s), expected walk or sat", engine)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			if engine == "sat" {
				return solveCNF(size, all)
			}
			return solve(size, all, filtered, brute)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "enumerate every placement instead of the first")
	cmd.Flags().BoolVar(&filtered, "filtered", false, "expand only columns that are still free")
	cmd.Flags().BoolVar(&brute, "brute", false, "disable subtree pruning")
	cmd.Flags().StringVar(&engine, "engine", "walk", "solving engine, walk or sat")
	return cmd
}

func solve(size int, all, filtered, brute bool) error {
	var options []queens.Option
	if filtered {
		options = append(options, queens.WithColumnFilter())
	}
	if brute {
		options = append(options, queens.WithoutPruning())
	}

	problem, err := queens.New(size, options...)
	if err != nil {
		return err
	}

	s, err := search.New[int](search.WithProblem[int](problem))
	if err != nil {
		return err
	}

	solveOptions := []search.SolveOption{search.ExplicitStack()}
	if !all {
		solveOptions = append(solveOptions, search.FirstMatch())
	}

	result, err := s.Solve(context.Background(), solveOptions...)
	if err != nil {
		return err
	}

	placements := make([][]int, 0, result.Count())
	for _, solution := range result.Solutions() {
		placements = append(placements, solution.Choices())
	}
	printPlacements(size, placements, all)
	return nil
}

func solveCNF(size int, all bool) error {
	if all {
		placements, err := sat.Solutions(size)
		if err != nil {
			return err
		}
		printPlacements(size, placements, all)
		return nil
	}

	placement, ok, err := sat.First(size)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("no solution found")
		return nil
	}
	printPlacements(size, [][]int{placement}, all)
	return nil
}
