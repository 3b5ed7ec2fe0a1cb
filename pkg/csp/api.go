package csp

import (
	"fmt"
	"strings"
)

// NotSatisfiable is an error reported when the search has exhausted
// every branch without finding a complete consistent assignment.
type NotSatisfiable []Constraint

func (e NotSatisfiable) Error() string {
	const msg = "constraints not satisfiable"
	if len(e) == 0 {
		return msg
	}
	s := make([]string, len(e))
	for i, c := range e {
		s[i] = c.String()
	}
	return fmt.Sprintf("%s:\n%s", msg, strings.Join(s, "\n"))
}

// Identifier values uniquely identify particular Variables within
// the input to a single call to Solve.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// IdentifierFromString returns an Identifier based on a provided
// string.
func IdentifierFromString(s string) Identifier {
	return Identifier(s)
}

// Relation is the binary predicate of a Constraint: it reports
// whether an ordered pair of values may co-occur. Relations must be
// pure and total over the domains they are applied to.
type Relation func(v1, v2 int) bool

// Variable describes a problem variable: an identifier plus the
// ordered set of integer values it may take.
type Variable struct {
	ID     Identifier
	Domain []int
}

// NewVariable returns a Variable with the given identifier and
// candidate values, in the order provided.
func NewVariable(id Identifier, domain ...int) Variable {
	return Variable{ID: id, Domain: domain}
}

// Constraint is an immutable binary relation between two variables.
// A single Constraint value is shared by every search state derived
// from the same problem; it is never copied.
type Constraint struct {
	var1, var2 Identifier
	relation   Relation
	operator   string
}

// NewConstraint returns a Constraint restricting var1 and var2 to
// value pairs permitted by relation. The operator string is used
// only for rendering the constraint back to the user.
func NewConstraint(var1, var2 Identifier, operator string, relation Relation) Constraint {
	return Constraint{
		var1:     var1,
		var2:     var2,
		relation: relation,
		operator: operator,
	}
}

// Var1 returns the identifier on the left-hand side of the constraint.
func (c Constraint) Var1() Identifier {
	return c.var1
}

// Var2 returns the identifier on the right-hand side of the constraint.
func (c Constraint) Var2() Identifier {
	return c.var2
}

// Matches reports whether the ordered value pair (v1 for Var1, v2 for
// Var2) satisfies the constraint.
func (c Constraint) Matches(v1, v2 int) bool {
	return c.relation(v1, v2)
}

// Touches reports whether id is one of the constraint's endpoints.
func (c Constraint) Touches(id Identifier) bool {
	return c.var1 == id || c.var2 == id
}

// Other returns the endpoint opposite to id, and whether id is an
// endpoint at all.
func (c Constraint) Other(id Identifier) (Identifier, bool) {
	switch id {
	case c.var1:
		return c.var2, true
	case c.var2:
		return c.var1, true
	}
	return "", false
}

// String implements fmt.Stringer and returns a human-readable message
// representing the receiver.
func (c Constraint) String() string {
	return fmt.Sprintf("%s %s %s", c.var1, c.operator, c.var2)
}
