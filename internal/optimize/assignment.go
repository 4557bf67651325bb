package optimize

import (
	"context"
	"fmt"
	"time"

	"github.com/landmix/landmix/internal/solver"
)

// Config bounds each individual solver call.
type Config struct {
	// TimeLimit is the wall-clock budget per solve. Zero uses the solver
	// default.
	TimeLimit time.Duration

	// Workers is the solver parallelism hint. Zero uses the solver default.
	Workers int
}

func (c Config) solverOptions() solver.Options {
	opts := solver.Options{TimeLimit: c.TimeLimit, Workers: c.Workers}
	if opts.Workers <= 0 {
		opts.Workers = solver.DefaultWorkers
	}
	return opts
}

// Solution is one optimizer outcome: realized integer totals plus the chosen
// option index per block. Optimal is false when the solver's deadline fired
// before proof of optimality; the totals still describe a feasible
// assignment.
type Solution struct {
	CostInt   int64
	CO2Int    int64
	Selection []int
	Optimal   bool
}

// validateBlockOptions rejects shapes the model cannot express before any
// solver work happens.
func validateBlockOptions(blockOpts [][]IntPoint) error {
	if len(blockOpts) == 0 {
		return ErrNoBlocks
	}
	for i, opts := range blockOpts {
		if len(opts) == 0 {
			return fmt.Errorf("block %d: %w", i, ErrNoOptions)
		}
	}
	return nil
}

// buildModel translates per-block option points into the solver's grouped
// boolean form: one exactly-one group per block, cost and CO2 as linear
// expressions over the choice variables.
func buildModel(blockOpts [][]IntPoint) (m *solver.Model, costExpr, co2Expr solver.LinExpr) {
	counts := make([]int, len(blockOpts))
	costExpr = make(solver.LinExpr, len(blockOpts))
	co2Expr = make(solver.LinExpr, len(blockOpts))
	for b, opts := range blockOpts {
		counts[b] = len(opts)
		costExpr[b] = make([]int64, len(opts))
		co2Expr[b] = make([]int64, len(opts))
		for o, p := range opts {
			costExpr[b][o] = p.Cost
			co2Expr[b][o] = p.CO2
		}
	}
	return &solver.Model{OptionCounts: counts}, costExpr, co2Expr
}

// totalsFor recomputes realized integer totals from a selection. The solver
// reports only its objective value; both totals are derived from the option
// points so they always match the assignment exactly.
func totalsFor(blockOpts [][]IntPoint, selection []int) (cost, co2 int64) {
	for b, o := range selection {
		cost += blockOpts[b][o].Cost
		co2 += blockOpts[b][o].CO2
	}
	return cost, co2
}

func runSolve(ctx context.Context, m *solver.Model, blockOpts [][]IntPoint, cfg Config) (*Solution, error) {
	res, err := solver.Solve(ctx, m, cfg.solverOptions())
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	cost, co2 := totalsFor(blockOpts, res.Selection)
	return &Solution{CostInt: cost, CO2Int: co2, Selection: res.Selection, Optimal: res.Optimal}, nil
}

// MaxCO2UnderBudget maximizes total CO2 subject to total cost ≤ budget.
// A nil Solution with nil error means the budget admits no assignment.
func MaxCO2UnderBudget(ctx context.Context, blockOpts [][]IntPoint, budget int64, cfg Config) (*Solution, error) {
	if err := validateBlockOptions(blockOpts); err != nil {
		return nil, err
	}
	m, costExpr, co2Expr := buildModel(blockOpts)
	m.Objective = co2Expr
	m.Sense = solver.Maximize
	m.Constraints = []solver.Constraint{{Expr: costExpr, Op: solver.LE, RHS: budget}}
	return runSolve(ctx, m, blockOpts, cfg)
}

// MinCostAboveCO2 minimizes total cost subject to total CO2 ≥ floor.
func MinCostAboveCO2(ctx context.Context, blockOpts [][]IntPoint, co2Floor int64, cfg Config) (*Solution, error) {
	if err := validateBlockOptions(blockOpts); err != nil {
		return nil, err
	}
	m, costExpr, co2Expr := buildModel(blockOpts)
	m.Objective = costExpr
	m.Sense = solver.Minimize
	m.Constraints = []solver.Constraint{{Expr: co2Expr, Op: solver.GE, RHS: co2Floor}}
	return runSolve(ctx, m, blockOpts, cfg)
}

// MaxCO2WithFloor maximizes total CO2 subject to both a budget ceiling and a
// CO2 floor.
func MaxCO2WithFloor(ctx context.Context, blockOpts [][]IntPoint, budget, co2Floor int64, cfg Config) (*Solution, error) {
	if err := validateBlockOptions(blockOpts); err != nil {
		return nil, err
	}
	m, costExpr, co2Expr := buildModel(blockOpts)
	m.Objective = co2Expr
	m.Sense = solver.Maximize
	m.Constraints = []solver.Constraint{
		{Expr: costExpr, Op: solver.LE, RHS: budget},
		{Expr: co2Expr, Op: solver.GE, RHS: co2Floor},
	}
	return runSolve(ctx, m, blockOpts, cfg)
}

// BudgetBounds returns the cheapest and costliest achievable total costs:
// the sums of each block's minimum and maximum cost options.
func BudgetBounds(blockOpts [][]IntPoint) (minBudget, maxBudget int64) {
	for _, opts := range blockOpts {
		if len(opts) == 0 {
			continue
		}
		lo, hi := opts[0].Cost, opts[0].Cost
		for _, p := range opts[1:] {
			if p.Cost < lo {
				lo = p.Cost
			}
			if p.Cost > hi {
				hi = p.Cost
			}
		}
		minBudget += lo
		maxBudget += hi
	}
	return minBudget, maxBudget
}
