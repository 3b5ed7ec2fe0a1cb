package csp

import (
	"fmt"
	"strings"
)

// Solution is a complete consistent assignment of one value to every
// variable of a problem. Order records the sequence in which the
// search assigned the variables.
type Solution struct {
	assignment map[Identifier]int
	order      []Identifier
}

// NewSolution returns a Solution over the given assignment, recording
// order as the sequence the variables were assigned in.
func NewSolution(assignment map[Identifier]int, order []Identifier) Solution {
	return Solution{
		assignment: assignment,
		order:      order,
	}
}

// Value returns the value assigned to id, and whether id was assigned
// at all.
func (s Solution) Value(id Identifier) (int, bool) {
	v, ok := s.assignment[id]
	return v, ok
}

// Order returns the variables in the order they were assigned.
func (s Solution) Order() []Identifier {
	return s.order
}

// String renders the solution as id=value pairs in assignment order,
// followed by the solution marker.
func (s Solution) String() string {
	var sb strings.Builder
	for i, id := range s.order {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%d", id, s.assignment[id])
	}
	sb.WriteString("  solution")
	return sb.String()
}
