package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/csp-framework/csolve/pkg/csp"
)

// State is the mutable search state backtracking operates on: the
// variables still awaiting a value, the assignments made so far, and
// the order they were made in. Constraints are shared read-only by
// every State derived from the same problem; everything else is owned
// by the individual State, so a cloned branch can never corrupt its
// parent.
type State struct {
	unassigned      []*Variable
	constraints     []csp.Constraint
	assignment      map[csp.Identifier]int
	assignedOrder   []csp.Identifier
	forwardChecking bool
}

// NewState builds the root state for a problem. Each variable starts
// with its full domain and a degree equal to the number of
// constraints linking it to the rest of the problem.
func NewState(p csp.Problem, forwardChecking bool) *State {
	unassigned := make([]*Variable, 0, len(p.Variables))
	for _, v := range p.Variables {
		degree := 0
		for _, c := range p.Constraints {
			if c.Touches(v.ID) {
				degree++
			}
		}
		unassigned = append(unassigned, newVariable(v, degree))
	}
	return &State{
		unassigned:      unassigned,
		constraints:     p.Constraints,
		assignment:      make(map[csp.Identifier]int, len(p.Variables)),
		assignedOrder:   make([]csp.Identifier, 0, len(p.Variables)),
		forwardChecking: forwardChecking,
	}
}

// SelectNext reorders the unassigned variables so that the first one
// is the variable the search should branch on next: smallest domain
// first, ties broken by degree. The sort is stable, so residual ties
// keep their prior relative order.
func (s *State) SelectNext() {
	sort.SliceStable(s.unassigned, func(i, j int) bool {
		return s.unassigned[i].less(s.unassigned[j])
	})
}

// UnassignedCount returns the number of variables still awaiting a
// value.
func (s *State) UnassignedCount() int {
	return len(s.unassigned)
}

// HasEmptyDomain reports whether the first unassigned variable has no
// candidate values left. After SelectNext a wiped-out variable sorts
// first, so this detects forward-checking failure anywhere in the
// state.
func (s *State) HasEmptyDomain() bool {
	return len(s.unassigned[0].domain) == 0
}

// OrderedValues returns the candidate values of the first unassigned
// variable, least-constraining first: sorted ascending by the number
// of values each would eliminate from the domains of unassigned
// neighbors. The sort is stable, so tied values keep domain order.
func (s *State) OrderedValues() []int {
	next := s.unassigned[0]
	type scored struct {
		value    int
		affected int
	}
	pairs := make([]scored, len(next.domain))
	for i, value := range next.domain {
		pairs[i] = scored{value: value, affected: s.affectedValues(next, value)}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].affected < pairs[j].affected
	})
	ordered := make([]int, len(pairs))
	for i, p := range pairs {
		ordered[i] = p.value
	}
	return ordered
}

// affectedValues counts how many values choosing value for next would
// eliminate from the domains of its unassigned neighbors. Assigned
// neighbors no longer contribute; a pair linked by several
// constraints is counted once per constraint.
func (s *State) affectedValues(next *Variable, value int) int {
	affected := 0
	for _, c := range s.constraints {
		switch next.id {
		case c.Var1():
			if neighbor := s.find(c.Var2()); neighbor != nil {
				for _, v := range neighbor.domain {
					if !c.Matches(value, v) {
						affected++
					}
				}
			}
		case c.Var2():
			if neighbor := s.find(c.Var1()); neighbor != nil {
				for _, v := range neighbor.domain {
					if !c.Matches(v, value) {
						affected++
					}
				}
			}
		}
	}
	return affected
}

// find returns the unassigned variable with the given identifier, or
// nil if it has already been assigned.
func (s *State) find(id csp.Identifier) *Variable {
	for _, v := range s.unassigned {
		if v.id == id {
			return v
		}
	}
	return nil
}

// Apply commits value as the assignment for the first unassigned
// variable: it records the assignment, prunes the domains of
// unassigned neighbors when forward checking is on, drops the
// neighbors' degrees, and removes the variable from the unassigned
// set.
func (s *State) Apply(value int) {
	next := s.unassigned[0]
	s.assignment[next.id] = value
	s.assignedOrder = append(s.assignedOrder, next.id)

	if s.forwardChecking {
		for _, c := range s.constraints {
			switch next.id {
			case c.Var1():
				if neighbor := s.find(c.Var2()); neighbor != nil {
					neighbor.prune(func(v int) bool { return c.Matches(value, v) })
				}
			case c.Var2():
				if neighbor := s.find(c.Var1()); neighbor != nil {
					neighbor.prune(func(v int) bool { return c.Matches(v, value) })
				}
			}
		}
	}

	for _, c := range s.constraints {
		if other, ok := c.Other(next.id); ok {
			if neighbor := s.find(other); neighbor != nil {
				neighbor.degree--
			}
		}
	}

	s.unassigned = s.unassigned[1:]
}

// IsConsistent reports whether every constraint with both endpoints
// assigned is satisfied. Constraints with an unassigned endpoint are
// ignored.
func (s *State) IsConsistent() bool {
	_, ok := s.firstViolated()
	return !ok
}

// IsSolved reports whether every constraint has both endpoints
// assigned and is satisfied. Safe to call on partial assignments.
func (s *State) IsSolved() bool {
	for _, c := range s.constraints {
		v1, ok1 := s.assignment[c.Var1()]
		v2, ok2 := s.assignment[c.Var2()]
		if !ok1 || !ok2 {
			return false
		}
		if !c.Matches(v1, v2) {
			return false
		}
	}
	return true
}

// firstViolated returns the first constraint whose two assigned
// endpoints violate it, if any.
func (s *State) firstViolated() (csp.Constraint, bool) {
	for _, c := range s.constraints {
		v1, ok1 := s.assignment[c.Var1()]
		v2, ok2 := s.assignment[c.Var2()]
		if !ok1 || !ok2 {
			continue
		}
		if !c.Matches(v1, v2) {
			return c, true
		}
	}
	return csp.Constraint{}, false
}

// Clone returns an independent copy of the state: variables and
// bookkeeping are deep-copied, constraints stay shared.
func (s *State) Clone() *State {
	unassigned := make([]*Variable, len(s.unassigned))
	for i, v := range s.unassigned {
		unassigned[i] = v.clone()
	}
	assignment := make(map[csp.Identifier]int, len(s.assignment))
	for id, value := range s.assignment {
		assignment[id] = value
	}
	assignedOrder := make([]csp.Identifier, len(s.assignedOrder))
	copy(assignedOrder, s.assignedOrder)
	return &State{
		unassigned:      unassigned,
		constraints:     s.constraints,
		assignment:      assignment,
		assignedOrder:   assignedOrder,
		forwardChecking: s.forwardChecking,
	}
}

// Solution captures the state's assignment as an immutable value.
func (s *State) Solution() csp.Solution {
	assignment := make(map[csp.Identifier]int, len(s.assignment))
	for id, value := range s.assignment {
		assignment[id] = value
	}
	order := make([]csp.Identifier, len(s.assignedOrder))
	copy(order, s.assignedOrder)
	return csp.NewSolution(assignment, order)
}

// String renders the assignments in the order they were made,
// followed by a marker telling whether the state is a solution.
func (s *State) String() string {
	var sb strings.Builder
	for i, id := range s.assignedOrder {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%d", id, s.assignment[id])
	}
	sb.WriteString("  ")
	if s.IsSolved() {
		sb.WriteString("solution")
	} else {
		sb.WriteString("failure")
	}
	return sb.String()
}
