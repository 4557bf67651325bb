package optimize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBlockOpts is the shared two-block fixture. Each block has a cheap and
// an expensive option; the expensive one always reduces more CO2.
func testBlockOpts() [][]IntPoint {
	return [][]IntPoint{
		{{Cost: 400, CO2: 40}, {Cost: 2000, CO2: 200}},
		{{Cost: 600, CO2: 50}, {Cost: 3000, CO2: 300}},
	}
}

func TestMaxCO2UnderBudget(t *testing.T) {
	tests := []struct {
		name     string
		budget   int64
		wantCost int64
		wantCO2  int64
	}{
		{"cheapest only", 1000, 1000, 90},
		{"second block upgraded", 3400, 3400, 340},
		{"first block upgraded", 2600, 2600, 250},
		{"no constraint binds", 10000, 5000, 500},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sol, err := MaxCO2UnderBudget(context.Background(), testBlockOpts(), tc.budget, Config{})
			require.NoError(t, err)
			require.NotNil(t, sol)
			assert.True(t, sol.Optimal)
			assert.Equal(t, tc.wantCost, sol.CostInt)
			assert.Equal(t, tc.wantCO2, sol.CO2Int)
			assert.Len(t, sol.Selection, 2)
		})
	}
}

func TestMaxCO2UnderBudgetInfeasible(t *testing.T) {
	sol, err := MaxCO2UnderBudget(context.Background(), testBlockOpts(), 999, Config{})
	require.NoError(t, err)
	assert.Nil(t, sol)
}

func TestMinCostAboveCO2(t *testing.T) {
	// The cheapest way to reach 250 kg-units is to upgrade the first block.
	sol, err := MinCostAboveCO2(context.Background(), testBlockOpts(), 250, Config{})
	require.NoError(t, err)
	require.NotNil(t, sol)
	assert.Equal(t, int64(2600), sol.CostInt)
	assert.Equal(t, int64(250), sol.CO2Int)
}

func TestMinCostAboveCO2Infeasible(t *testing.T) {
	// 500 is the maximum achievable CO2; a floor above it has no solution.
	sol, err := MinCostAboveCO2(context.Background(), testBlockOpts(), 501, Config{})
	require.NoError(t, err)
	assert.Nil(t, sol)
}

func TestMaxCO2WithFloor(t *testing.T) {
	// Budget 3400 with a floor of 300 forces the second-block upgrade.
	sol, err := MaxCO2WithFloor(context.Background(), testBlockOpts(), 3400, 300, Config{})
	require.NoError(t, err)
	require.NotNil(t, sol)
	assert.Equal(t, int64(3400), sol.CostInt)
	assert.Equal(t, int64(340), sol.CO2Int)

	// An incompatible pair of bounds has no solution.
	sol, err = MaxCO2WithFloor(context.Background(), testBlockOpts(), 1000, 300, Config{})
	require.NoError(t, err)
	assert.Nil(t, sol)
}

func TestSolveInputValidation(t *testing.T) {
	_, err := MaxCO2UnderBudget(context.Background(), nil, 100, Config{})
	assert.ErrorIs(t, err, ErrNoBlocks)

	_, err = MinCostAboveCO2(context.Background(), [][]IntPoint{{{Cost: 1, CO2: 1}}, {}}, 0, Config{})
	assert.ErrorIs(t, err, ErrNoOptions)
}

func TestBudgetBounds(t *testing.T) {
	min, max := BudgetBounds(testBlockOpts())
	assert.Equal(t, int64(1000), min)
	assert.Equal(t, int64(5000), max)

	min, max = BudgetBounds(nil)
	assert.Zero(t, min)
	assert.Zero(t, max)
}
