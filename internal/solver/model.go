// Package solver hosts the integer assignment solver behind the optimize
// package. The model shape is deliberately narrow: boolean choice variables
// grouped into exactly-one groups, linear constraints over those variables,
// and a single linear objective. Callers describe the model; the solver owns
// the search.
package solver

// Sense is the objective direction.
type Sense int

const (
	Maximize Sense = iota
	Minimize
)

// Op is a linear constraint comparison operator.
type Op int

const (
	// LE constrains the expression to be ≤ RHS.
	LE Op = iota
	// GE constrains the expression to be ≥ RHS.
	GE
)

// LinExpr assigns an integer coefficient to every boolean variable,
// addressed as expr[group][option]. Group and option counts must match the
// model's variable layout exactly.
type LinExpr [][]int64

// Constraint is a linear inequality over the model's boolean variables.
type Constraint struct {
	Expr LinExpr
	Op   Op
	RHS  int64
}

// Model describes an assignment problem: for each group exactly one option
// is chosen, subject to the constraints, optimizing the objective.
type Model struct {
	// OptionCounts gives the number of options per group. Every group must
	// have at least one option.
	OptionCounts []int

	Objective LinExpr
	Sense     Sense

	Constraints []Constraint
}

// Result is a concrete assignment. Selection[g] is the chosen option index
// for group g. Optimal is false when the solver hit its deadline before
// proving optimality; the assignment is still feasible and Objective is its
// true value.
type Result struct {
	Objective int64
	Selection []int
	Optimal   bool
}

// Validate checks that the model's coefficient layouts match OptionCounts.
func (m *Model) Validate() error {
	if len(m.OptionCounts) == 0 {
		return ErrEmptyModel
	}
	for g, n := range m.OptionCounts {
		if n <= 0 {
			return errGroup(g, ErrEmptyGroup)
		}
	}
	if err := m.checkExpr(m.Objective); err != nil {
		return err
	}
	for _, c := range m.Constraints {
		if err := m.checkExpr(c.Expr); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) checkExpr(e LinExpr) error {
	if len(e) != len(m.OptionCounts) {
		return ErrShapeMismatch
	}
	for g, coeffs := range e {
		if len(coeffs) != m.OptionCounts[g] {
			return errGroup(g, ErrShapeMismatch)
		}
	}
	return nil
}
