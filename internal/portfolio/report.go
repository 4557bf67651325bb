// Package portfolio recomputes per-block reporting quantities for a
// finalized selection and applies portfolio-level economies-of-scale
// discounting. All per-block figures come from the same metrics formulas the
// optimizer's option points were built from, so report rows always agree
// with the solved totals.
package portfolio

import (
	"fmt"
	"math"

	"github.com/landmix/landmix/internal/metrics"
)

// Row is one block's contribution under the chosen selection.
type Row struct {
	BlockID        string  `json:"block_id"`
	AreaM2         float64 `json:"area_m2"`
	MixID          string  `json:"mix_id"`
	ResPct         float64 `json:"res_pct"`
	NbsPct         float64 `json:"nbs_pct"`
	Trees          int64   `json:"trees"`
	ResAreaM2      float64 `json:"res_area_m2"`
	NbsCO2         float64 `json:"nbs_co2_kg"`
	NbsCost        float64 `json:"nbs_cost"`
	ResCO2         float64 `json:"res_co2_kg"`
	ResCost        float64 `json:"res_cost"`
	TotalCO2       float64 `json:"total_co2_kg"`
	TotalCost      float64 `json:"total_cost"`
	DiscountedCost float64 `json:"discounted_cost"`
}

// Totals aggregates the rows, with the portfolio-wide derived quantities.
type Totals struct {
	AreaM2         float64 `json:"area_m2"`
	ResAreaM2      float64 `json:"res_area_m2"`
	Trees          int64   `json:"trees"`
	RESUnits       int64   `json:"res_units"`
	NbsCO2         float64 `json:"nbs_co2_kg"`
	NbsCost        float64 `json:"nbs_cost"`
	ResCO2         float64 `json:"res_co2_kg"`
	ResCost        float64 `json:"res_cost"`
	TotalCO2       float64 `json:"total_co2_kg"`
	TotalCost      float64 `json:"total_cost"`
	DiscountedCost float64 `json:"discounted_cost"`
	AvgResPct      float64 `json:"avg_res_pct"`
	AvgNbsPct      float64 `json:"avg_nbs_pct"`
}

// Report is the post-processed view of one selection.
type Report struct {
	Rows   []Row  `json:"rows"`
	Totals Totals `json:"totals"`

	// ResDiscount and NbsDiscount are the economies-of-scale factors
	// derived from the portfolio's RES unit and tree totals. They apply
	// uniformly to every row's reported cost contributions.
	ResDiscount float64 `json:"res_discount"`
	NbsDiscount float64 `json:"nbs_discount"`
}

// resUnitEpsilon guards the RES cell area division; a zero cell area reads
// as zero countable units rather than a crash.
const resUnitEpsilon = 1e-9

// Build derives the report for one selection. selection[i] indexes block i's
// applicable-option list; mixIdx maps those indices back to catalog mixes
// (as produced by metrics.BlockOptions).
//
// Discounting is two-pass: the first pass accumulates portfolio totals, the
// second applies the resulting scalar factors to each row. Folding the
// discount into the per-block computation would make it a per-block discount,
// which it is not.
func Build(blocks []metrics.Block, mixes []metrics.Mix, mixIdx [][]int, selection []int, p metrics.Params) (*Report, error) {
	if len(selection) != len(blocks) {
		return nil, fmt.Errorf("selection length %d does not match %d blocks", len(selection), len(blocks))
	}

	r := &Report{Rows: make([]Row, 0, len(blocks))}
	var resPctSum, nbsPctSum float64

	for i, blk := range blocks {
		if selection[i] < 0 || selection[i] >= len(mixIdx[i]) {
			return nil, fmt.Errorf("block %q: selection index %d out of range", blk.ID, selection[i])
		}
		mix := mixes[mixIdx[i][selection[i]]]
		b := metrics.ComputeBreakdown(blk.AreaM2, mix.ResPct, mix.NbsPct, blk.CellType, p)

		row := Row{
			BlockID:   blk.ID,
			AreaM2:    blk.AreaM2,
			MixID:     mix.MixID,
			ResPct:    math.Max(0, mix.ResPct),
			NbsPct:    math.Max(0, mix.NbsPct),
			Trees:     b.Trees,
			ResAreaM2: b.ResAreaM2,
			NbsCO2:    b.NbsCO2,
			NbsCost:   b.NbsCost,
			ResCO2:    b.ResCO2,
			ResCost:   b.ResCost,
			TotalCO2:  b.TotalCO2,
			TotalCost: b.TotalCost,
		}
		r.Rows = append(r.Rows, row)

		r.Totals.AreaM2 += blk.AreaM2
		r.Totals.ResAreaM2 += b.ResAreaM2
		r.Totals.Trees += b.Trees
		r.Totals.NbsCO2 += b.NbsCO2
		r.Totals.NbsCost += b.NbsCost
		r.Totals.ResCO2 += b.ResCO2
		r.Totals.ResCost += b.ResCost
		r.Totals.TotalCO2 += b.TotalCO2
		r.Totals.TotalCost += b.TotalCost
		resPctSum += row.ResPct * 100
		nbsPctSum += row.NbsPct * 100
	}

	r.Totals.RESUnits = int64(math.Floor(r.Totals.ResAreaM2 / math.Max(resUnitEpsilon, p.RESCellArea)))
	if n := len(blocks); n > 0 {
		r.Totals.AvgResPct = resPctSum / float64(n)
		r.Totals.AvgNbsPct = nbsPctSum / float64(n)
	}

	r.ResDiscount = metrics.DiscountFactor(p.RESCostFloor, float64(r.Totals.RESUnits), p.RESDiscountUnits)
	r.NbsDiscount = metrics.DiscountFactor(p.NBSCostFloor, float64(r.Totals.Trees), p.NBSDiscountUnits)

	for i := range r.Rows {
		r.Rows[i].DiscountedCost = r.Rows[i].ResCost*r.ResDiscount + r.Rows[i].NbsCost*r.NbsDiscount
		r.Totals.DiscountedCost += r.Rows[i].DiscountedCost
	}
	return r, nil
}
