package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landmix/landmix/internal/metrics"
)

func testBlocks() []metrics.Block {
	return []metrics.Block{
		{ID: "b1", AreaM2: 100, CellType: metrics.CellGround},
		{ID: "b2", AreaM2: 200, CellType: metrics.CellGround},
	}
}

func testMixes() []metrics.Mix {
	return []metrics.Mix{
		{MixID: "m0", ResPct: 0, NbsPct: 0, CellType: metrics.CellAny},
		{MixID: "m1", ResPct: 0.4, NbsPct: 0.6, CellType: metrics.CellAny},
	}
}

func testMixIdx() [][]int {
	return [][]int{{0, 1}, {0, 1}}
}

func TestBuildRows(t *testing.T) {
	p := metrics.DefaultParams()
	rep, err := Build(testBlocks(), testMixes(), testMixIdx(), []int{1, 0}, p)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 2)

	// Block b1 with mix m1 at 50% coverage: RES area 20 m², 6 trees.
	r := rep.Rows[0]
	assert.Equal(t, "b1", r.BlockID)
	assert.Equal(t, "m1", r.MixID)
	assert.InDelta(t, 20.0, r.ResAreaM2, 1e-9)
	assert.Equal(t, int64(6), r.Trees)
	assert.InDelta(t, 4800.0, r.ResCost, 1e-9)
	assert.InDelta(t, 960.0, r.ResCO2, 1e-9)
	assert.InDelta(t, 3600.0, r.NbsCost, 1e-9)
	assert.InDelta(t, 150.0, r.NbsCO2, 1e-9)
	assert.InDelta(t, 8400.0, r.TotalCost, 1e-9)
	assert.InDelta(t, 1110.0, r.TotalCO2, 1e-9)

	// Block b2 with the do-nothing mix contributes nothing.
	z := rep.Rows[1]
	assert.Zero(t, z.Trees)
	assert.Zero(t, z.TotalCost)
	assert.Zero(t, z.TotalCO2)
}

func TestBuildTotalsConsistent(t *testing.T) {
	p := metrics.DefaultParams()
	rep, err := Build(testBlocks(), testMixes(), testMixIdx(), []int{1, 1}, p)
	require.NoError(t, err)

	var cost, co2, resArea float64
	var trees int64
	for _, r := range rep.Rows {
		cost += r.TotalCost
		co2 += r.TotalCO2
		resArea += r.ResAreaM2
		trees += r.Trees
	}
	assert.InDelta(t, cost, rep.Totals.TotalCost, 1e-9)
	assert.InDelta(t, co2, rep.Totals.TotalCO2, 1e-9)
	assert.InDelta(t, resArea, rep.Totals.ResAreaM2, 1e-9)
	assert.Equal(t, trees, rep.Totals.Trees)
	assert.InDelta(t, 300.0, rep.Totals.AreaM2, 1e-9)
	assert.InDelta(t, 40.0, rep.Totals.AvgResPct, 1e-9)
	assert.InDelta(t, 60.0, rep.Totals.AvgNbsPct, 1e-9)
}

func TestBuildNoDiscountByDefault(t *testing.T) {
	rep, err := Build(testBlocks(), testMixes(), testMixIdx(), []int{1, 1}, metrics.DefaultParams())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rep.ResDiscount, 1e-12)
	assert.InDelta(t, 1.0, rep.NbsDiscount, 1e-12)
	assert.InDelta(t, rep.Totals.TotalCost, rep.Totals.DiscountedCost, 1e-9)
}

func TestBuildEconomiesOfScale(t *testing.T) {
	p := metrics.DefaultParams()
	p.RESCostFloor = 0.5
	p.RESDiscountUnits = 100
	p.NBSCostFloor = 0.5
	p.NBSDiscountUnits = 12

	blocks := testBlocks()[:1]
	rep, err := Build(blocks, testMixes(), testMixIdx()[:1], []int{1}, p)
	require.NoError(t, err)

	// RES: 20 m² / 2 m² per cell = 10 units, 10 of 100 towards the floor.
	assert.Equal(t, int64(10), rep.Totals.RESUnits)
	assert.InDelta(t, 0.95, rep.ResDiscount, 1e-12)

	// NBS: 6 trees, halfway to 12, so halfway down to the 0.5 floor.
	assert.InDelta(t, 0.75, rep.NbsDiscount, 1e-12)

	want := 4800.0*0.95 + 3600.0*0.75
	assert.InDelta(t, want, rep.Rows[0].DiscountedCost, 1e-9)
	assert.InDelta(t, want, rep.Totals.DiscountedCost, 1e-9)
	assert.Less(t, rep.Totals.DiscountedCost, rep.Totals.TotalCost)
}

func TestBuildRESUnitsFloor(t *testing.T) {
	p := metrics.DefaultParams()
	p.RESCellArea = 3.0

	blocks := testBlocks()[:1]
	rep, err := Build(blocks, testMixes(), testMixIdx()[:1], []int{1}, p)
	require.NoError(t, err)

	// 20 m² / 3 m² = 6.67, floored to 6 whole units.
	assert.Equal(t, int64(6), rep.Totals.RESUnits)
}

func TestBuildSelectionErrors(t *testing.T) {
	p := metrics.DefaultParams()

	_, err := Build(testBlocks(), testMixes(), testMixIdx(), []int{1}, p)
	require.Error(t, err)

	_, err = Build(testBlocks(), testMixes(), testMixIdx(), []int{1, 5}, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b2")
}
