// Package optimize builds block/mix assignment problems over integer-scaled
// option points and sweeps them across budget ranges to trace cost/CO2
// frontiers. The integer search itself lives in the solver package.
package optimize

import (
	"math"

	"github.com/landmix/landmix/internal/metrics"
)

// IntPoint is an option point in fixed-precision integer units, enabling
// exact-integer arithmetic in the solver.
type IntPoint struct {
	Cost int64
	CO2  int64
}

// Scale holds the per-axis factors used to integerize option points. One
// Scale applies uniformly to every block and mix within a run so integer
// totals stay additive.
type Scale struct {
	Cost int64 `yaml:"cost" json:"cost"`
	CO2  int64 `yaml:"co2" json:"co2"`
}

// DefaultScale keeps two decimal places on both axes (euros to cents,
// kg to 10 g).
func DefaultScale() Scale { return Scale{Cost: 100, CO2: 100} }

// Validate rejects non-positive factors before any solve is attempted.
func (s Scale) Validate() error {
	if s.Cost <= 0 || s.CO2 <= 0 {
		return ErrInvalidScale
	}
	return nil
}

// ScalePoints converts option points to integer units. Each component is
// round(value × factor) using round-half-away-from-zero.
func ScalePoints(points []metrics.OptionPoint, s Scale) []IntPoint {
	out := make([]IntPoint, len(points))
	for i, p := range points {
		out[i] = IntPoint{
			Cost: int64(math.Round(p.Cost * float64(s.Cost))),
			CO2:  int64(math.Round(p.CO2 * float64(s.CO2))),
		}
	}
	return out
}

// ScaleBlocks applies ScalePoints to every block's option list.
func ScaleBlocks(blocks [][]metrics.OptionPoint, s Scale) [][]IntPoint {
	out := make([][]IntPoint, len(blocks))
	for i, pts := range blocks {
		out[i] = ScalePoints(pts, s)
	}
	return out
}

// Unscale converts integer totals back to float units.
func (s Scale) Unscale(cost, co2 int64) (float64, float64) {
	return float64(cost) / float64(s.Cost), float64(co2) / float64(s.CO2)
}

// ScaleBudget converts a float budget to integer cost units.
func (s Scale) ScaleBudget(budget float64) int64 {
	return int64(math.Round(budget * float64(s.Cost)))
}

// ScaleCO2 converts a float CO2 quantity to integer units.
func (s Scale) ScaleCO2(co2 float64) int64 {
	return int64(math.Round(co2 * float64(s.CO2)))
}
