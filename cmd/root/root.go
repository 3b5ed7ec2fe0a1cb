package root

import (
	"github.com/spf13/cobra"

	"github.com/csp-framework/csolve/cmd/solve"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "csolve",
		Short: "Csolve is a binary constraint-satisfaction solver",
		Long: `A backtracking solver for binary constraint-satisfaction problems,
with most-constrained-variable and least-constraining-value ordering
and optional forward checking.`,
	}

	// add sub-commands
	rootCmd.AddCommand(solve.NewSolveCommand())

	return rootCmd
}
