package root

import (
	"github.com/spf13/cobra"

	"github.com/quest-framework/quest/cmd/queens"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quest",
		Short: "Quest is an open-source backtracking search framework",
		Long: `An open-source backtracking search framework written in Go.
For more information visit https://github.com/quest-framework/quest`,
	}

	// add sub-commands
	rootCmd.AddCommand(queens.NewQueensCommand())

	return rootCmd
}
