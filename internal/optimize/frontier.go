package optimize

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/landmix/landmix/internal/logging"
)

// FrontierPoint is one achievable (cost, CO2) outcome with the selection
// that realizes it.
type FrontierPoint struct {
	CostInt   int64
	CO2Int    int64
	Selection []int
}

// Auto step-count heuristic bounds.
const (
	autoStepsPerOption = 3
	autoStepsMin       = 20
	autoStepsMax       = 300
)

// AutoSteps derives a uniform-sweep step count from the total option count:
// more options per block warrants finer budget sampling to resolve distinct
// achievable points. The result is clamped to [20, 300].
func AutoSteps(blockOpts [][]IntPoint) int {
	total := 0
	for _, opts := range blockOpts {
		total += len(opts)
	}
	steps := autoStepsPerOption * total
	if steps < autoStepsMin {
		return autoStepsMin
	}
	if steps > autoStepsMax {
		return autoStepsMax
	}
	return steps
}

// SweepUniform samples steps budgets evenly spaced across
// [minBudget, maxBudget] (inclusive of both ends), solves max-CO2-under-
// budget at each, and collects the outcomes in solve order, dropping exact
// (cost, co2) duplicates. Infeasible samples are skipped. Step counts below
// 2 are raised to 2.
func SweepUniform(ctx context.Context, blockOpts [][]IntPoint, minBudget, maxBudget int64, steps int, cfg Config) ([]FrontierPoint, error) {
	if err := validateBlockOptions(blockOpts); err != nil {
		return nil, err
	}
	if steps < 2 {
		steps = 2
	}
	log := logging.FromContext(ctx)

	budgets := floats.Span(make([]float64, steps), float64(minBudget), float64(maxBudget))

	seen := make(map[[2]int64]struct{})
	var out []FrontierPoint
	for i, b := range budgets {
		budget := int64(math.Round(b))
		sol, err := MaxCO2UnderBudget(ctx, blockOpts, budget, cfg)
		if err != nil {
			return nil, err
		}
		if sol == nil {
			log.Debug().Int("sample", i).Int64("budget", budget).Msg("budget sample infeasible")
			continue
		}
		key := [2]int64{sol.CostInt, sol.CO2Int}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, FrontierPoint{CostInt: sol.CostInt, CO2Int: sol.CO2Int, Selection: sol.Selection})
		log.Debug().Int("sample", i).Int64("budget", budget).
			Int64("cost", sol.CostInt).Int64("co2", sol.CO2Int).Msg("frontier point")
	}
	return out, nil
}

// SweepTight starts at maxBudget and, after each solve achieving cost c,
// re-solves at budget c − 1 until the problem turns infeasible or the budget
// stops strictly decreasing. This discovers every cost level at which the
// achievable CO2 changes, at the price of many more solver calls.
func SweepTight(ctx context.Context, blockOpts [][]IntPoint, maxBudget int64, cfg Config) ([]FrontierPoint, error) {
	if err := validateBlockOptions(blockOpts); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)

	seen := make(map[[2]int64]struct{})
	var out []FrontierPoint
	budget := maxBudget
	for {
		sol, err := MaxCO2UnderBudget(ctx, blockOpts, budget, cfg)
		if err != nil {
			return nil, err
		}
		if sol == nil {
			break
		}
		key := [2]int64{sol.CostInt, sol.CO2Int}
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			out = append(out, FrontierPoint{CostInt: sol.CostInt, CO2Int: sol.CO2Int, Selection: sol.Selection})
		}
		next := sol.CostInt - 1
		if next >= budget {
			log.Debug().Int64("budget", budget).Int64("next", next).Msg("tight sweep budget did not decrease, stopping")
			break
		}
		budget = next
	}
	return out, nil
}

// PruneDominated filters a frontier to its monotone non-dominated subset:
// points sorted by cost ascending, keeping a point only when its CO2
// strictly exceeds every cheaper-or-equal point's CO2. The input is not
// mutated.
func PruneDominated(points []FrontierPoint) []FrontierPoint {
	if len(points) <= 1 {
		return append([]FrontierPoint(nil), points...)
	}
	sorted := append([]FrontierPoint(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CostInt != sorted[j].CostInt {
			return sorted[i].CostInt < sorted[j].CostInt
		}
		return sorted[i].CO2Int > sorted[j].CO2Int
	})

	out := sorted[:0:0]
	bestCO2 := int64(math.MinInt64)
	for _, p := range sorted {
		if p.CO2Int > bestCO2 {
			out = append(out, p)
			bestCO2 = p.CO2Int
		}
	}
	return out
}
