package csp

import "fmt"

// DuplicateIdentifier is returned when a problem declares the same
// variable more than once.
type DuplicateIdentifier Identifier

func (e DuplicateIdentifier) Error() string {
	return fmt.Sprintf("duplicate identifier %q in input", Identifier(e))
}

// Problem is the complete input to a solve: the variables with their
// initial domains, and the binary constraints between them.
type Problem struct {
	Variables   []Variable
	Constraints []Constraint
}

// NewProblem returns a validated Problem over the given variables and
// constraints.
func NewProblem(variables []Variable, constraints []Constraint) (Problem, error) {
	p := Problem{
		Variables:   variables,
		Constraints: constraints,
	}
	if err := p.Validate(); err != nil {
		return Problem{}, err
	}
	return p, nil
}

// Validate checks the structural well-formedness of the problem:
// variable identifiers are unique, and every constraint links two
// distinct declared variables.
func (p Problem) Validate() error {
	ids := make(map[Identifier]struct{}, len(p.Variables))
	for _, v := range p.Variables {
		if _, ok := ids[v.ID]; ok {
			return DuplicateIdentifier(v.ID)
		}
		ids[v.ID] = struct{}{}
	}
	for _, c := range p.Constraints {
		if _, ok := ids[c.Var1()]; !ok {
			return fmt.Errorf("constraint (%s) references undeclared variable %q", c, c.Var1())
		}
		if _, ok := ids[c.Var2()]; !ok {
			return fmt.Errorf("constraint (%s) references undeclared variable %q", c, c.Var2())
		}
		if c.Var1() == c.Var2() {
			return fmt.Errorf("constraint (%s) links variable %q to itself", c, c.Var1())
		}
	}
	return nil
}
