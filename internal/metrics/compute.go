package metrics

import "math"

// epsilon guards the tree footprint division so a zero footprint reads as
// "effectively infinite footprint, zero trees" rather than a crash.
const epsilon = 1e-9

// Breakdown carries the intermediate quantities behind one option point.
// Selection post-processing reuses it so report rows are bit-for-bit
// consistent with the optimizer's inputs.
type Breakdown struct {
	ResAreaM2 float64
	EffNbsM2  float64
	Trees     int64
	ResCost   float64
	ResCO2    float64
	NbsCost   float64
	NbsCO2    float64
	TotalCost float64
	TotalCO2  float64
}

// ComputeBreakdown evaluates one (block, mix) combination. Inputs are assumed
// pre-validated upstream; negative percentages and areas are clamped to zero
// rather than rejected.
func ComputeBreakdown(areaM2, resPct, nbsPct float64, cell CellType, p Params) Breakdown {
	cov := p.Coverage(cell)

	resArea := math.Max(0, areaM2*cov*math.Max(0, resPct))
	effNbs := math.Max(0, areaM2*cov*math.Max(0, nbsPct))

	trees := int64(math.Floor(effNbs / math.Max(epsilon, p.TreeCoverArea)))
	if cell == CellRoof && p.TreeWeight > 0 {
		loadCap := int64(math.Floor(effNbs * p.MaxRoofLoad / p.TreeWeight))
		if trees > loadCap {
			trees = loadCap
		}
	}

	b := Breakdown{
		ResAreaM2: resArea,
		EffNbsM2:  effNbs,
		Trees:     trees,
		ResCost:   resArea * p.CostRES,
		ResCO2:    resArea * p.CO2RES,
		NbsCost:   float64(trees) * p.CostNBS,
		NbsCO2:    float64(trees) * p.CO2NBS,
	}
	b.TotalCost = b.ResCost + b.NbsCost
	b.TotalCO2 = b.ResCO2 + b.NbsCO2
	return b
}

// ComputeOption returns the (cost, co2) point for one block under one mix.
func ComputeOption(areaM2, resPct, nbsPct float64, cell CellType, p Params) OptionPoint {
	b := ComputeBreakdown(areaM2, resPct, nbsPct, cell, p)
	return OptionPoint{Cost: b.TotalCost, CO2: b.TotalCO2}
}

// BlockOptions evaluates every applicable mix for every block, preserving
// block order. The returned mix index slice records, per block, which catalog
// mixes produced the option points (mixes not applicable to a block's cell
// type are skipped).
func BlockOptions(blocks []Block, mixes []Mix, p Params) (points [][]OptionPoint, mixIdx [][]int) {
	points = make([][]OptionPoint, len(blocks))
	mixIdx = make([][]int, len(blocks))
	for i, blk := range blocks {
		for j, mix := range mixes {
			if !mix.AppliesTo(blk.CellType) {
				continue
			}
			points[i] = append(points[i], ComputeOption(blk.AreaM2, mix.ResPct, mix.NbsPct, blk.CellType, p))
			mixIdx[i] = append(mixIdx[i], j)
		}
	}
	return points, mixIdx
}

// DiscountFactor is the economies-of-scale multiplier for a unit count n
// against a discount threshold units and a cost floor fraction. The factor
// decreases linearly from 1.0 toward floor as n grows, saturating at
// n = units. units ≤ 0 disables the discount entirely.
func DiscountFactor(floor, n, units float64) float64 {
	if units <= 0 {
		return 1.0
	}
	f := clamp(floor, 0, 1)
	frac := math.Min(math.Max(0, n)/units, 1)
	return 1 - (1-f)*frac
}
