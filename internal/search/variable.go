package search

import (
	"github.com/csp-framework/csolve/pkg/csp"
)

// Variable is the search-time view of a problem variable: the values
// still open to it and the number of constraints linking it to other
// unassigned variables. Domains shrink under forward checking; the
// degree drops as neighbors become assigned.
type Variable struct {
	id     csp.Identifier
	domain []int
	degree int
}

func newVariable(v csp.Variable, degree int) *Variable {
	domain := make([]int, len(v.Domain))
	copy(domain, v.Domain)
	return &Variable{
		id:     v.ID,
		domain: domain,
		degree: degree,
	}
}

func (v *Variable) Identifier() csp.Identifier {
	return v.id
}

// Domain returns the values still open to the variable, in order.
func (v *Variable) Domain() []int {
	return v.domain
}

// clone returns an independently mutable copy of the variable.
func (v *Variable) clone() *Variable {
	domain := make([]int, len(v.domain))
	copy(domain, v.domain)
	return &Variable{
		id:     v.id,
		domain: domain,
		degree: v.degree,
	}
}

// prune removes every domain value the keep predicate rejects.
func (v *Variable) prune(keep func(value int) bool) {
	kept := v.domain[:0]
	for _, value := range v.domain {
		if keep(value) {
			kept = append(kept, value)
		}
	}
	v.domain = kept
}

// less orders variables for branching: fewest remaining values first
// (most constrained), ties broken by the higher degree (most
// constraining). Further ties are left to the stable sort.
func (v *Variable) less(other *Variable) bool {
	if len(v.domain) != len(other.domain) {
		return len(v.domain) < len(other.domain)
	}
	return v.degree > other.degree
}
