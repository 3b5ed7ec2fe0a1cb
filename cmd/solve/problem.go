package solve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/csp-framework/csolve/pkg/csp"
	"github.com/csp-framework/csolve/pkg/csp/constraint"
)

var relations = map[string]func(var1, var2 csp.Identifier) csp.Constraint{
	"=":  constraint.Equal,
	"!=": constraint.NotEqual,
	"<":  constraint.LessThan,
	"<=": constraint.LessThanOrEqual,
	">":  constraint.GreaterThan,
	">=": constraint.GreaterThanOrEqual,
}

var (
	commentLine    = regexp.MustCompile(`^c(\s.*)?$`)
	variableLine   = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)\s*:\s*((?:-?\d+\s*)+)$`)
	constraintLine = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)\s*(!=|<=|>=|=|<|>)\s*([A-Za-z][A-Za-z0-9_]*)$`)
	whitespace     = regexp.MustCompile(`\s+`)
)

// ParseProblem reads a problem description from r: `c`-prefixed
// comments, variable lines declaring an identifier and its domain
// (`A: 1 2 3`), and constraint lines relating two identifiers with a
// comparison operator (`A != B`).
func ParseProblem(r io.Reader) (csp.Problem, error) {
	reader := bufio.NewReader(r)

	seen := map[csp.Identifier]struct{}{}
	var variables []csp.Variable
	var constraints []csp.Constraint

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return csp.Problem{}, fmt.Errorf("error reading problem data: %w", err)
		}
		done := errors.Is(err, io.EOF)
		line = strings.TrimSpace(line)

		switch {
		case line == "" || commentLine.MatchString(line):
			// skip

		case variableLine.MatchString(line):
			groups := variableLine.FindStringSubmatch(line)
			id := csp.Identifier(groups[1])
			if _, ok := seen[id]; ok {
				return csp.Problem{}, csp.DuplicateIdentifier(id)
			}
			seen[id] = struct{}{}
			fields := whitespace.Split(strings.TrimSpace(groups[2]), -1)
			domain := make([]int, 0, len(fields))
			for _, field := range fields {
				value, err := strconv.Atoi(field)
				if err != nil {
					return csp.Problem{}, fmt.Errorf("invalid value (%s) in variable line (%s)", field, line)
				}
				domain = append(domain, value)
			}
			variables = append(variables, csp.NewVariable(id, domain...))

		case constraintLine.MatchString(line):
			groups := constraintLine.FindStringSubmatch(line)
			relation, ok := relations[groups[2]]
			if !ok {
				return csp.Problem{}, fmt.Errorf("unsupported operator (%s) in constraint line (%s)", groups[2], line)
			}
			constraints = append(constraints, relation(csp.Identifier(groups[1]), csp.Identifier(groups[3])))

		default:
			return csp.Problem{}, fmt.Errorf("invalid problem statement: %s", line)
		}

		if done {
			break
		}
	}

	if len(variables) == 0 {
		return csp.Problem{}, fmt.Errorf("invalid format: no variables found")
	}

	return csp.NewProblem(variables, constraints)
}
