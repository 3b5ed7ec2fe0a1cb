package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/csp-framework/csolve/pkg/csp"
	"github.com/csp-framework/csolve/pkg/csp/constraint"
)

func benchmarkQueens(n int) csp.Problem {
	variables := make([]csp.Variable, n)
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i + 1
	}
	for col := 0; col < n; col++ {
		variables[col] = csp.NewVariable(csp.Identifier(fmt.Sprintf("q%d", col)), rows...)
	}
	var constraints []csp.Constraint
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			ida := csp.Identifier(fmt.Sprintf("q%d", a))
			idb := csp.Identifier(fmt.Sprintf("q%d", b))
			constraints = append(constraints,
				constraint.NotEqual(ida, idb),
				constraint.AbsDifferenceNotEqual(ida, idb, b-a),
			)
		}
	}
	return csp.Problem{Variables: variables, Constraints: constraints}
}

func BenchmarkSolveQueens(b *testing.B) {
	p := benchmarkQueens(8)
	s, err := NewSolver()
	if err != nil {
		b.Fatalf("failed to initialize solver: %s", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Solve(context.Background(), p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolveQueensForwardChecking(b *testing.B) {
	p := benchmarkQueens(8)
	s, err := NewSolver(WithForwardChecking(true))
	if err != nil {
		b.Fatalf("failed to initialize solver: %s", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Solve(context.Background(), p); err != nil {
			b.Fatal(err)
		}
	}
}
