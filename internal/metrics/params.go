package metrics

// Params bundles the tunable constants shared by every block in one run.
// Cost units are euros, CO2 units are kg.
type Params struct {
	// RES intensities, per m² of installed area.
	CostRES float64 `yaml:"cost_res" json:"cost_res"`
	CO2RES  float64 `yaml:"co2_res" json:"co2_res"`

	// NBS intensities, per planted tree.
	CostNBS float64 `yaml:"cost_nbs" json:"cost_nbs"`
	CO2NBS  float64 `yaml:"co2_nbs" json:"co2_nbs"`

	// PctCovered is the fallback coverage percentage (0..100): the share of
	// a block's area eligible for allocation at all.
	PctCovered float64 `yaml:"pct_covered" json:"pct_covered"`

	// Per-cell-type coverage overrides (0..100). Negative means "use
	// PctCovered".
	PctCoveredGround float64 `yaml:"pct_covered_ground" json:"pct_covered_ground"`
	PctCoveredRoof   float64 `yaml:"pct_covered_roof" json:"pct_covered_roof"`

	// TreeCoverArea is the footprint of one tree in m².
	TreeCoverArea float64 `yaml:"tree_cover_area" json:"tree_cover_area"`

	// TreeWeight (kg per tree) and MaxRoofLoad (kg per m²) bound how many
	// trees a roof can structurally bear.
	TreeWeight  float64 `yaml:"tree_weight" json:"tree_weight"`
	MaxRoofLoad float64 `yaml:"max_roof_load" json:"max_roof_load"`

	// RESCellArea is the area of one PV unit cell in m², used to derive the
	// portfolio RES unit count for reporting and discounting.
	RESCellArea float64 `yaml:"res_cell_area" json:"res_cell_area"`

	// Economies of scale: reported cost is scaled by
	// 1 − (1−floor) × min(n/units, 1) once the portfolio unit count n is
	// known. A floor of 1 or units ≤ 0 disables the discount.
	RESCostFloor     float64 `yaml:"res_cost_floor" json:"res_cost_floor"`
	RESDiscountUnits float64 `yaml:"res_discount_units" json:"res_discount_units"`
	NBSCostFloor     float64 `yaml:"nbs_cost_floor" json:"nbs_cost_floor"`
	NBSDiscountUnits float64 `yaml:"nbs_discount_units" json:"nbs_discount_units"`
}

// DefaultParams returns the standard parameter set.
func DefaultParams() Params {
	return Params{
		CostRES:          240.0,
		CO2RES:           48.0,
		CostNBS:          600.0,
		CO2NBS:           25.0,
		PctCovered:       50.0,
		PctCoveredGround: -1,
		PctCoveredRoof:   -1,
		TreeCoverArea:    5.0,
		TreeWeight:       400.0,
		MaxRoofLoad:      100.0,
		RESCellArea:      2.0,
		RESCostFloor:     1.0,
		RESDiscountUnits: 0,
		NBSCostFloor:     1.0,
		NBSDiscountUnits: 0,
	}
}

// Coverage resolves the coverage fraction for a cell type, applying the
// per-cell-type override when non-negative and clamping to [0,1].
func (p Params) Coverage(cell CellType) float64 {
	pct := p.PctCovered
	switch cell {
	case CellGround:
		if p.PctCoveredGround >= 0 {
			pct = p.PctCoveredGround
		}
	case CellRoof:
		if p.PctCoveredRoof >= 0 {
			pct = p.PctCoveredRoof
		}
	}
	return clamp(pct, 0, 100) / 100.0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
