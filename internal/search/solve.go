package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/csp-framework/csolve/pkg/csp"
)

var ErrIncomplete = errors.New("cancelled before a solution could be found")

// Solver runs depth-first backtracking search over a problem. Each
// candidate value is tried on a clone of the current state, so
// abandoning a branch is a matter of dropping the clone.
type Solver struct {
	forwardChecking bool
	tracer          csp.Tracer
}

func NewSolver(options ...Option) (*Solver, error) {
	s := &Solver{}
	for _, option := range append(options, defaults...) {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

type Option func(s *Solver) error

// WithForwardChecking makes every assignment eagerly prune the
// domains of unassigned neighbors, so dead branches surface as domain
// wipe-outs instead of downstream inconsistencies.
func WithForwardChecking(enabled bool) Option {
	return func(s *Solver) error {
		s.forwardChecking = enabled
		return nil
	}
}

func WithTracer(t csp.Tracer) Option {
	return func(s *Solver) error {
		s.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.tracer == nil {
			s.tracer = csp.DefaultTracer{}
		}
		return nil
	},
}

// Solve returns the first solution found. It returns
// csp.NotSatisfiable when the whole tree is exhausted without one,
// and ErrIncomplete if ctx is cancelled mid-search.
func (s *Solver) Solve(ctx context.Context, p csp.Problem) (csp.Solution, error) {
	solutions, err := s.solve(ctx, p, 1)
	if err != nil {
		return csp.Solution{}, err
	}
	if len(solutions) == 0 {
		return csp.Solution{}, csp.NotSatisfiable(p.Constraints)
	}
	return solutions[0], nil
}

// SolveAll returns every solution of the problem, in the
// deterministic order the search discovers them.
func (s *Solver) SolveAll(ctx context.Context, p csp.Problem) ([]csp.Solution, error) {
	solutions, err := s.solve(ctx, p, 0)
	if err != nil {
		return nil, err
	}
	if len(solutions) == 0 {
		return nil, csp.NotSatisfiable(p.Constraints)
	}
	return solutions, nil
}

func (s *Solver) solve(ctx context.Context, p csp.Problem, limit int) ([]csp.Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var solutions []csp.Solution
	emit := func(st *State) bool {
		solutions = append(solutions, st.Solution())
		return limit <= 0 || len(solutions) < limit
	}

	root := NewState(p, s.forwardChecking)
	if root.UnassignedCount() == 0 {
		if root.IsSolved() {
			emit(root)
		}
		return solutions, nil
	}
	root.SelectNext()
	if _, err := s.branch(ctx, root, emit); err != nil {
		return nil, err
	}
	return solutions, nil
}

// branch tries every candidate value of st's first unassigned
// variable on a fresh clone. It expects st to be non-empty and
// sorted. The emit callback reports a solved clone and returns
// whether the search should keep going; branch returns true once emit
// asked it to stop.
func (s *Solver) branch(ctx context.Context, st *State, emit func(*State) bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, ErrIncomplete
	}

	for _, value := range st.OrderedValues() {
		child := st.Clone()
		child.Apply(value)

		if child.UnassignedCount() == 0 {
			if child.IsSolved() {
				if !emit(child) {
					return true, nil
				}
			} else {
				s.trace(child)
			}
			continue
		}

		if s.forwardChecking {
			// Sorting first makes a wiped-out domain, wherever it
			// is, the first variable.
			child.SelectNext()
			if child.HasEmptyDomain() {
				s.trace(child)
				continue
			}
		} else {
			if !child.IsConsistent() {
				s.trace(child)
				continue
			}
			child.SelectNext()
		}

		stop, err := s.branch(ctx, child, emit)
		if stop || err != nil {
			return stop, err
		}
	}
	return false, nil
}

func (s *Solver) trace(st *State) {
	s.tracer.Trace(position{st: st, conflict: st.conflict()})
}

// conflict describes why a state is dead, for tracing.
func (s *State) conflict() string {
	if len(s.unassigned) > 0 && len(s.unassigned[0].domain) == 0 {
		return fmt.Sprintf("domain wipe-out for %s", s.unassigned[0].id)
	}
	if c, ok := s.firstViolated(); ok {
		return c.String()
	}
	return "unknown"
}

var _ csp.SearchPosition = position{}

type position struct {
	st       *State
	conflict string
}

func (p position) Assigned() []csp.Identifier {
	return p.st.assignedOrder
}

func (p position) Assignment(id csp.Identifier) (int, bool) {
	value, ok := p.st.assignment[id]
	return value, ok
}

func (p position) Conflict() string {
	return p.conflict
}
