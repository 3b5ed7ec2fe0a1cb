package solver

import (
	"context"

	"github.com/csp-framework/csolve/internal/search"
	"github.com/csp-framework/csolve/pkg/csp"
)

// Solver is the public entry point to the backtracking engine. It
// holds the search configuration; each Solve call builds a fresh
// internal searcher, so a Solver can be reused across problems.
type Solver struct {
	forwardChecking bool
	tracer          csp.Tracer
}

type Option func(s *Solver)

// WithForwardChecking enables eager domain pruning after every
// assignment.
func WithForwardChecking() Option {
	return func(s *Solver) {
		s.forwardChecking = true
	}
}

// WithTracer registers a tracer that is notified of every abandoned
// branch.
func WithTracer(t csp.Tracer) Option {
	return func(s *Solver) {
		s.tracer = t
	}
}

func New(options ...Option) *Solver {
	s := &Solver{}
	for _, option := range options {
		option(s)
	}
	return s
}

// Solve returns the first solution of the problem, csp.NotSatisfiable
// if there is none, or search.ErrIncomplete if ctx was cancelled
// before the search finished.
func (s *Solver) Solve(ctx context.Context, p csp.Problem) (csp.Solution, error) {
	searcher, err := s.searcher()
	if err != nil {
		return csp.Solution{}, err
	}
	return searcher.Solve(ctx, p)
}

// SolveAll returns every solution of the problem, in the order the
// search discovers them.
func (s *Solver) SolveAll(ctx context.Context, p csp.Problem) ([]csp.Solution, error) {
	searcher, err := s.searcher()
	if err != nil {
		return nil, err
	}
	return searcher.SolveAll(ctx, p)
}

func (s *Solver) searcher() (*search.Solver, error) {
	options := []search.Option{
		search.WithForwardChecking(s.forwardChecking),
	}
	if s.tracer != nil {
		options = append(options, search.WithTracer(s.tracer))
	}
	return search.NewSolver(options...)
}
