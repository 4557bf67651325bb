package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landmix/landmix/internal/metrics"
	"github.com/landmix/landmix/internal/optimize"
)

func TestNewRunID(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestWritePortfolioJSON(t *testing.T) {
	budget := 3400.0
	meta := RunMeta{
		RunID:       NewRunID(),
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Mode:        "solve",
		NBlocks:     2,
		BudgetLimit: &budget,
		MinBudget:   1000,
		MaxBudget:   5000,
		Params:      metrics.DefaultParams(),
		Scale:       optimize.DefaultScale(),
		Blocks: []metrics.Block{
			{ID: "b1", AreaM2: 100, CellType: metrics.CellGround},
		},
		Mixes: []metrics.Mix{
			{MixID: "m1", ResPct: 0.4, NbsPct: 0.6, CellType: metrics.CellAny},
		},
		Selections: [][]int{{0}},
	}

	var sb strings.Builder
	require.NoError(t, WritePortfolioJSON(&sb, meta))

	var got RunMeta
	require.NoError(t, json.Unmarshal([]byte(sb.String()), &got))
	assert.Equal(t, meta, got)

	// Omitted optional fields stay out of the document entirely.
	assert.NotContains(t, sb.String(), "co2_target")
	assert.Contains(t, sb.String(), "\"budget_limit\": 3400")
}

func TestWriteFrontierChart(t *testing.T) {
	var sb strings.Builder
	points := []Point{{Cost: 1000, CO2: 90}, {Cost: 5000, CO2: 500}}
	require.NoError(t, WriteFrontierChart(&sb, points, "frontier"))

	html := sb.String()
	assert.Contains(t, html, "frontier")
	assert.Contains(t, html, "Cost (EUR)")
	assert.Contains(t, html, "CO2 reduction (kg)")
}
