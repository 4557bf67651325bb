package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landmix/landmix/internal/metrics"
)

func TestScaleValidate(t *testing.T) {
	assert.NoError(t, DefaultScale().Validate())
	assert.ErrorIs(t, Scale{Cost: 0, CO2: 100}.Validate(), ErrInvalidScale)
	assert.ErrorIs(t, Scale{Cost: 100, CO2: -1}.Validate(), ErrInvalidScale)
}

func TestScalePointsRounding(t *testing.T) {
	s := DefaultScale()
	// Inputs chosen to be exact in binary so the half cases are true
	// halves after scaling: 0.125*100 = 12.5 and 0.375*100 = 37.5.
	points := []metrics.OptionPoint{
		{Cost: 0.125, CO2: 0.375},
		{Cost: 2.6, CO2: 0.004},
		{Cost: 0, CO2: 0},
	}
	got := ScalePoints(points, s)
	require.Len(t, got, 3)

	// Halves round away from zero: 12.5 -> 13, 37.5 -> 38.
	assert.Equal(t, IntPoint{Cost: 13, CO2: 38}, got[0])
	assert.Equal(t, IntPoint{Cost: 260, CO2: 0}, got[1])
	assert.Equal(t, IntPoint{Cost: 0, CO2: 0}, got[2])
}

func TestScaleRoundTrip(t *testing.T) {
	s := DefaultScale()
	points := []metrics.OptionPoint{
		{Cost: 9600, CO2: 1540},
		{Cost: 1234.56, CO2: 78.91},
	}
	// Round-trip error is bounded by half a unit on each axis.
	for i, p := range ScalePoints(points, s) {
		cost, co2 := s.Unscale(p.Cost, p.CO2)
		assert.InDelta(t, points[i].Cost, cost, 0.5/float64(s.Cost))
		assert.InDelta(t, points[i].CO2, co2, 0.5/float64(s.CO2))
	}
}

func TestScaleBlocks(t *testing.T) {
	blocks := [][]metrics.OptionPoint{
		{{Cost: 10, CO2: 1}},
		{{Cost: 20, CO2: 2}, {Cost: 30, CO2: 3}},
	}
	got := ScaleBlocks(blocks, Scale{Cost: 10, CO2: 10})
	require.Len(t, got, 2)
	assert.Equal(t, []IntPoint{{Cost: 100, CO2: 10}}, got[0])
	assert.Equal(t, []IntPoint{{Cost: 200, CO2: 20}, {Cost: 300, CO2: 30}}, got[1])
}

func TestScaleBudgetAndCO2(t *testing.T) {
	s := DefaultScale()
	assert.Equal(t, int64(123456), s.ScaleBudget(1234.56))
	assert.Equal(t, int64(5000), s.ScaleCO2(50.0))
}
