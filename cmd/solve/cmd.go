package solve

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/csp-framework/csolve/pkg/csp"
	"github.com/csp-framework/csolve/pkg/csp/solver"
)

func NewSolveCommand() *cobra.Command {
	var forwardChecking bool
	var allSolutions bool
	var trace bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Solves a binary constraint-satisfaction problem given as a text file",
		Long: `Solves a binary constraint-satisfaction problem given as a text file.
For instance:
c
c this is a comment
c variable lines: <identifier>: <value> <value> ...
A: 1 2 3
B: 1 2 3
c constraint lines: <identifier> <operator> <identifier>
c operators: = != < <= > >=
A != B
A < B
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return run(args[0], forwardChecking, allSolutions, trace)
		},
	}

	cmd.Flags().BoolVarP(&forwardChecking, "forward-checking", "f", false, "prune neighbor domains after every assignment")
	cmd.Flags().BoolVar(&allSolutions, "all", false, "enumerate every solution instead of stopping at the first")
	cmd.Flags().BoolVar(&trace, "trace", false, "log abandoned branches to stderr")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(path string, forwardChecking, allSolutions, trace bool) error {
	problemFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening problem file (%s): %w", path, err)
	}
	defer problemFile.Close()

	problem, err := ParseProblem(problemFile)
	if err != nil {
		return fmt.Errorf("error parsing problem file (%s): %w", path, err)
	}
	logrus.WithFields(logrus.Fields{
		"variables":   len(problem.Variables),
		"constraints": len(problem.Constraints),
	}).Debug("problem loaded")

	options := []solver.Option{}
	if forwardChecking {
		options = append(options, solver.WithForwardChecking())
	}
	if trace {
		options = append(options, solver.WithTracer(csp.LoggingTracer{Writer: os.Stderr}))
	}
	so := solver.New(options...)

	if allSolutions {
		solutions, err := so.SolveAll(context.Background(), problem)
		if err != nil {
			return report(err)
		}
		for _, solution := range solutions {
			fmt.Println(solution)
		}
		return nil
	}

	solution, err := so.Solve(context.Background(), problem)
	if err != nil {
		return report(err)
	}
	fmt.Println(solution)
	return nil
}

// report prints exhaustion as a result line rather than surfacing it
// as a command error; anything else is a real failure.
func report(err error) error {
	var unsat csp.NotSatisfiable
	if errors.As(err, &unsat) {
		logrus.Debug(unsat.Error())
		fmt.Println("  failure")
		return nil
	}
	return err
}
