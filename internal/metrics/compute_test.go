package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioParams pins the worked scenario used across these tests: 50%
// coverage, 240/48 per m² RES, 600/25 per tree NBS, 5 m² tree footprint.
func scenarioParams() Params {
	p := DefaultParams()
	p.PctCovered = 50
	return p
}

func TestComputeOptionGroundScenario(t *testing.T) {
	// 100 m² ground block at 50% coverage with a 60/40 mix:
	// res_area=30, eff_nbs_area=20, trees=4.
	p := scenarioParams()
	got := ComputeOption(100, 0.6, 0.4, CellGround, p)

	assert.InDelta(t, 30*240+4*600, got.Cost, 1e-9) // 9600
	assert.InDelta(t, 30*48+4*25, got.CO2, 1e-9)    // 1540
}

func TestComputeOptionRoofBelowLoadCap(t *testing.T) {
	// Same geometry on a roof: load_cap = floor(20*100/400) = 5, trees
	// stay at 4, so the result matches the ground case exactly.
	p := scenarioParams()
	ground := ComputeOption(100, 0.6, 0.4, CellGround, p)
	roof := ComputeOption(100, 0.6, 0.4, CellRoof, p)

	assert.Equal(t, ground, roof)
}

func TestComputeBreakdownRoofLoadCapBinds(t *testing.T) {
	p := scenarioParams()
	p.TreeWeight = 2000 // heavy trees: cap = floor(20*100/2000) = 1

	b := ComputeBreakdown(100, 0.6, 0.4, CellRoof, p)
	assert.Equal(t, int64(1), b.Trees)

	// Ground is uncapped.
	g := ComputeBreakdown(100, 0.6, 0.4, CellGround, p)
	assert.Equal(t, int64(4), g.Trees)
}

func TestComputeOptionNonNegative(t *testing.T) {
	p := scenarioParams()
	tests := []struct {
		name           string
		area, res, nbs float64
		cell           CellType
	}{
		{"zero area", 0, 0.5, 0.5, CellGround},
		{"negative percentages clamped", 100, -0.3, -0.7, CellGround},
		{"roof with zero weight", 100, 0.2, 0.8, CellRoof},
		{"full allocation", 1e6, 1, 1, CellGround},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeOption(tc.area, tc.res, tc.nbs, tc.cell, p)
			assert.GreaterOrEqual(t, got.Cost, 0.0)
			assert.GreaterOrEqual(t, got.CO2, 0.0)
		})
	}
}

func TestComputeOptionDeterministic(t *testing.T) {
	p := scenarioParams()
	first := ComputeOption(123.456, 0.37, 0.51, CellRoof, p)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeOption(123.456, 0.37, 0.51, CellRoof, p))
	}
}

func TestTreeCountMonotoneWithRoofPlateau(t *testing.T) {
	p := scenarioParams()
	p.TreeWeight = 500 // cap = floor(effNbs * 100 / 500) = floor(effNbs/5)

	prev := int64(-1)
	for area := 10.0; area <= 400; area += 10 {
		b := ComputeBreakdown(area, 0, 1, CellRoof, p)
		require.GreaterOrEqual(t, b.Trees, prev, "trees must not decrease as area grows")
		prev = b.Trees

		// Roof load cap always holds.
		loadCap := int64(b.EffNbsM2 * p.MaxRoofLoad / p.TreeWeight)
		assert.LessOrEqual(t, b.Trees, loadCap)
	}
}

func TestComputeBreakdownZeroTreeFootprint(t *testing.T) {
	// A zero footprint reads as effectively infinite footprint: zero
	// trees, not a division by zero.
	p := scenarioParams()
	p.TreeCoverArea = 0

	b := ComputeBreakdown(100, 0, 1, CellGround, p)
	assert.Equal(t, int64(0), b.Trees)
	assert.Zero(t, b.NbsCost)
}

func TestCoverageOverrides(t *testing.T) {
	p := DefaultParams()
	p.PctCovered = 50
	p.PctCoveredGround = 80
	p.PctCoveredRoof = -1 // fallback

	assert.InDelta(t, 0.8, p.Coverage(CellGround), 1e-12)
	assert.InDelta(t, 0.5, p.Coverage(CellRoof), 1e-12)
}

func TestCoverageClamped(t *testing.T) {
	p := DefaultParams()
	p.PctCovered = 150
	assert.InDelta(t, 1.0, p.Coverage(CellGround), 1e-12)

	p.PctCovered = 50
	p.PctCoveredRoof = 500
	assert.InDelta(t, 1.0, p.Coverage(CellRoof), 1e-12)
}

func TestDiscountFactor(t *testing.T) {
	tests := []struct {
		name            string
		floor, n, units float64
		want            float64
	}{
		{"no units consumed", 0.5, 0, 100, 1.0},
		{"at threshold hits floor", 0.5, 100, 100, 0.5},
		{"beyond threshold stays at floor", 0.5, 250, 100, 0.5},
		{"halfway", 0.5, 50, 100, 0.75},
		{"disabled when units non-positive", 0.5, 50, 0, 1.0},
		{"disabled when units negative", 0.5, 50, -3, 1.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, DiscountFactor(tc.floor, tc.n, tc.units), 1e-12)
		})
	}
}

func TestBlockOptionsFiltersByCellType(t *testing.T) {
	p := scenarioParams()
	blocks := []Block{
		{ID: "g1", AreaM2: 100, CellType: CellGround},
		{ID: "r1", AreaM2: 80, CellType: CellRoof},
	}
	mixes := []Mix{
		{MixID: "any", ResPct: 0.5, NbsPct: 0.5, CellType: CellAny},
		{MixID: "ground-only", ResPct: 1, NbsPct: 0, CellType: CellGround},
		{MixID: "roof-only", ResPct: 0, NbsPct: 1, CellType: CellRoof},
	}

	points, mixIdx := BlockOptions(blocks, mixes, p)
	require.Len(t, points, 2)
	assert.Equal(t, []int{0, 1}, mixIdx[0])
	assert.Equal(t, []int{0, 2}, mixIdx[1])
	assert.Len(t, points[0], 2)
	assert.Len(t, points[1], 2)
}
