// Package report serializes run results: frontier and selection CSVs, the
// per-block table with its TOTAL row, portfolio JSON metadata, an HTML
// frontier chart, and the styled terminal summary.
package report

import (
	"fmt"
	"io"

	"github.com/landmix/landmix/internal/metrics"
	"github.com/landmix/landmix/internal/portfolio"
)

// Point is one frontier outcome in float units.
type Point struct {
	Cost float64 `json:"cost"`
	CO2  float64 `json:"co2"`
}

// WriteFrontierCSV writes frontier points as cost,co2,n_blocks rows. An
// empty point list still produces the header, which is how "no solution"
// reads downstream.
func WriteFrontierCSV(w io.Writer, points []Point, nBlocks int) error {
	if _, err := fmt.Fprintln(w, "cost,co2,n_blocks"); err != nil {
		return err
	}
	for _, p := range points {
		if _, err := fmt.Fprintf(w, "%.6f,%.6f,%d\n", p.Cost, p.CO2, nBlocks); err != nil {
			return err
		}
	}
	return nil
}

// WriteSelectionsCSV writes the per-block choice rows for a single solution.
func WriteSelectionsCSV(
	w io.Writer,
	blocks []metrics.Block,
	mixes []metrics.Mix,
	mixIdx [][]int,
	selection []int,
	totalCost, totalCO2 float64,
) error {
	if _, err := fmt.Fprintln(w,
		"solution_id,total_cost,total_co2,block_index,block_id,area_m2,mix_id,res_pct,nbs_pct"); err != nil {
		return err
	}
	for i, choice := range selection {
		mix := mixes[mixIdx[i][choice]]
		if _, err := fmt.Fprintf(w, "0,%.6f,%.6f,%d,%s,%.6f,%s,%.6f,%.6f\n",
			totalCost, totalCO2, i, blocks[i].ID, blocks[i].AreaM2,
			mix.MixID, mix.ResPct, mix.NbsPct); err != nil {
			return err
		}
	}
	return nil
}

// WriteTableCSV writes the per-block metrics table with a trailing TOTAL
// row. The discounted cost column reflects the portfolio-level
// economies-of-scale factors.
func WriteTableCSV(w io.Writer, r *portfolio.Report) error {
	if _, err := fmt.Fprintln(w,
		"id,area_m2,res_pct,nbs_pct,trees,res_m2,nbs_co2_kg,nbs_cost,res_co2_kg,res_cost,total_co2_kg,total_cost,discounted_cost"); err != nil {
		return err
	}
	for _, row := range r.Rows {
		if _, err := fmt.Fprintf(w, "%s,%.6f,%.2f,%.2f,%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f\n",
			row.BlockID, row.AreaM2, row.ResPct*100, row.NbsPct*100, row.Trees, row.ResAreaM2,
			row.NbsCO2, row.NbsCost, row.ResCO2, row.ResCost,
			row.TotalCO2, row.TotalCost, row.DiscountedCost); err != nil {
			return err
		}
	}
	t := r.Totals
	_, err := fmt.Fprintf(w, "TOTAL,%.2f,%.2f,%.2f,%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f\n",
		t.AreaM2, t.AvgResPct, t.AvgNbsPct, t.Trees, t.ResAreaM2,
		t.NbsCO2, t.NbsCost, t.ResCO2, t.ResCost, t.TotalCO2, t.TotalCost, t.DiscountedCost)
	return err
}
