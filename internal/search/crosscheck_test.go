package search

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/assert"

	"github.com/csp-framework/csolve/pkg/csp"
	"github.com/csp-framework/csolve/pkg/csp/constraint"
)

const satisfiable = 1

// satOracle encodes a binary problem as CNF and asks gini whether it
// is satisfiable: one literal per variable/value pair, an exactly-one
// clause group per variable, and a conflict clause per value pair a
// constraint rejects.
func satOracle(p csp.Problem) int {
	g := gini.New()

	lits := map[csp.Identifier]map[int]z.Lit{}
	next := uint32(1)
	for _, v := range p.Variables {
		lits[v.ID] = make(map[int]z.Lit, len(v.Domain))
		for _, value := range v.Domain {
			lits[v.ID][value] = z.Var(next).Pos()
			next++
		}
	}

	for _, v := range p.Variables {
		// at least one value
		for _, value := range v.Domain {
			g.Add(lits[v.ID][value])
		}
		g.Add(z.LitNull)
		// at most one value
		for i := 0; i < len(v.Domain); i++ {
			for j := i + 1; j < len(v.Domain); j++ {
				g.Add(lits[v.ID][v.Domain[i]].Not())
				g.Add(lits[v.ID][v.Domain[j]].Not())
				g.Add(z.LitNull)
			}
		}
	}

	domains := map[csp.Identifier][]int{}
	for _, v := range p.Variables {
		domains[v.ID] = v.Domain
	}
	for _, c := range p.Constraints {
		for _, v1 := range domains[c.Var1()] {
			for _, v2 := range domains[c.Var2()] {
				if c.Matches(v1, v2) {
					continue
				}
				g.Add(lits[c.Var1()][v1].Not())
				g.Add(lits[c.Var2()][v2].Not())
				g.Add(z.LitNull)
			}
		}
	}

	return g.Solve()
}

func solves(t *testing.T, p csp.Problem, forwardChecking bool) (csp.Solution, bool) {
	t.Helper()
	s, err := NewSolver(WithForwardChecking(forwardChecking))
	if err != nil {
		t.Fatalf("failed to initialize solver: %s", err)
	}
	solution, err := s.Solve(context.Background(), p)
	if err != nil {
		var ns csp.NotSatisfiable
		if !errors.As(err, &ns) {
			t.Fatalf("solve failed: %s", err)
		}
		return csp.Solution{}, false
	}
	return solution, true
}

func assertSatisfies(t *testing.T, p csp.Problem, solution csp.Solution) {
	t.Helper()
	for _, c := range p.Constraints {
		v1, ok1 := solution.Value(c.Var1())
		v2, ok2 := solution.Value(c.Var2())
		if !ok1 || !ok2 {
			t.Fatalf("constraint (%s) has an unassigned endpoint", c)
		}
		if !c.Matches(v1, v2) {
			t.Fatalf("constraint (%s) violated by %d, %d", c, v1, v2)
		}
	}
}

func TestAgainstSatOracleKnownInstances(t *testing.T) {
	for _, tt := range []struct {
		Name    string
		Problem csp.Problem
	}{
		{
			Name:    "five queens",
			Problem: benchmarkQueens(5),
		},
		{
			Name: "triangle two coloring",
			Problem: csp.Problem{
				Variables: []csp.Variable{
					csp.NewVariable("a", 1, 2),
					csp.NewVariable("b", 1, 2),
					csp.NewVariable("c", 1, 2),
				},
				Constraints: []csp.Constraint{
					constraint.NotEqual("a", "b"),
					constraint.NotEqual("b", "c"),
					constraint.NotEqual("c", "a"),
				},
			},
		},
		{
			Name: "triangle three coloring",
			Problem: csp.Problem{
				Variables: []csp.Variable{
					csp.NewVariable("a", 1, 2, 3),
					csp.NewVariable("b", 1, 2, 3),
					csp.NewVariable("c", 1, 2, 3),
				},
				Constraints: []csp.Constraint{
					constraint.NotEqual("a", "b"),
					constraint.NotEqual("b", "c"),
					constraint.NotEqual("c", "a"),
				},
			},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert := assert.New(t)

			expected := satOracle(tt.Problem) == satisfiable
			solution, found := solves(t, tt.Problem, true)
			assert.Equal(expected, found)
			if found {
				assertSatisfies(t, tt.Problem, solution)
			}
		})
	}
}

func TestAgainstSatOracleRandomInstances(t *testing.T) {
	const (
		instances = 50
		seed      = 9
		nVars     = 6
		nValues   = 3
		pEdge     = .5
	)

	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < instances; i++ {
		variables := make([]csp.Variable, nVars)
		for v := 0; v < nVars; v++ {
			domain := make([]int, nValues)
			for d := range domain {
				domain[d] = d + 1
			}
			variables[v] = csp.NewVariable(csp.Identifier(fmt.Sprintf("v%d", v)), domain...)
		}
		var constraints []csp.Constraint
		for a := 0; a < nVars; a++ {
			for b := a + 1; b < nVars; b++ {
				if rng.Float64() >= pEdge {
					continue
				}
				ida := csp.Identifier(fmt.Sprintf("v%d", a))
				idb := csp.Identifier(fmt.Sprintf("v%d", b))
				switch rng.Intn(3) {
				case 0:
					constraints = append(constraints, constraint.NotEqual(ida, idb))
				case 1:
					constraints = append(constraints, constraint.LessThan(ida, idb))
				default:
					constraints = append(constraints, constraint.Equal(ida, idb))
				}
			}
		}
		p := csp.Problem{Variables: variables, Constraints: constraints}

		expected := satOracle(p) == satisfiable
		for _, forwardChecking := range []bool{false, true} {
			solution, found := solves(t, p, forwardChecking)
			if found != expected {
				t.Fatalf("instance %d (forward checking %t): oracle says satisfiable=%t, search says %t",
					i, forwardChecking, expected, found)
			}
			if found {
				assertSatisfies(t, p, solution)
			}
		}
	}
}
