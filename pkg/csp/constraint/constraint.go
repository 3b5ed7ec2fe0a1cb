package constraint

import (
	"fmt"

	"github.com/csp-framework/csolve/pkg/csp"
)

// Equal returns a Constraint permitting only assignments where var1
// and var2 take the same value.
func Equal(var1, var2 csp.Identifier) csp.Constraint {
	return csp.NewConstraint(var1, var2, "=", func(v1, v2 int) bool {
		return v1 == v2
	})
}

// NotEqual returns a Constraint permitting only assignments where
// var1 and var2 take different values.
func NotEqual(var1, var2 csp.Identifier) csp.Constraint {
	return csp.NewConstraint(var1, var2, "!=", func(v1, v2 int) bool {
		return v1 != v2
	})
}

// LessThan returns a Constraint requiring var1's value to be strictly
// below var2's.
func LessThan(var1, var2 csp.Identifier) csp.Constraint {
	return csp.NewConstraint(var1, var2, "<", func(v1, v2 int) bool {
		return v1 < v2
	})
}

// LessThanOrEqual returns a Constraint requiring var1's value to be
// at most var2's.
func LessThanOrEqual(var1, var2 csp.Identifier) csp.Constraint {
	return csp.NewConstraint(var1, var2, "<=", func(v1, v2 int) bool {
		return v1 <= v2
	})
}

// GreaterThan returns a Constraint requiring var1's value to be
// strictly above var2's.
func GreaterThan(var1, var2 csp.Identifier) csp.Constraint {
	return csp.NewConstraint(var1, var2, ">", func(v1, v2 int) bool {
		return v1 > v2
	})
}

// GreaterThanOrEqual returns a Constraint requiring var1's value to
// be at least var2's.
func GreaterThanOrEqual(var1, var2 csp.Identifier) csp.Constraint {
	return csp.NewConstraint(var1, var2, ">=", func(v1, v2 int) bool {
		return v1 >= v2
	})
}

// AbsDifferenceNotEqual returns a Constraint rejecting assignments
// where the two values are exactly d apart. Two of these plus a
// NotEqual encode the diagonal attacks of an n-queens column pair.
func AbsDifferenceNotEqual(var1, var2 csp.Identifier, d int) csp.Constraint {
	return csp.NewConstraint(var1, var2, fmt.Sprintf("|-|!=%d", d), func(v1, v2 int) bool {
		diff := v1 - v2
		if diff < 0 {
			diff = -diff
		}
		return diff != d
	})
}

// Relation returns a Constraint over an arbitrary predicate. The
// operator string is used when the constraint is rendered back to the
// user.
func Relation(var1, var2 csp.Identifier, operator string, relation csp.Relation) csp.Constraint {
	return csp.NewConstraint(var1, var2, operator, relation)
}
