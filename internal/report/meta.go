package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/landmix/landmix/internal/metrics"
	"github.com/landmix/landmix/internal/optimize"
)

// RunMeta is the portfolio metadata artifact written alongside results so a
// run can be reproduced and audited.
type RunMeta struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Mode        string          `json:"mode"`
	NBlocks     int             `json:"n_blocks"`
	BudgetSteps int             `json:"budget_steps,omitempty"`
	BudgetLimit *float64        `json:"budget_limit,omitempty"`
	CO2Target   *float64        `json:"co2_target,omitempty"`
	MinBudget   float64         `json:"min_budget"`
	MaxBudget   float64         `json:"max_budget"`
	Params      metrics.Params  `json:"params"`
	Scale       optimize.Scale  `json:"scale"`
	Blocks      []metrics.Block `json:"blocks"`
	Mixes       []metrics.Mix   `json:"mixes"`
	Selections  [][]int         `json:"selections"`
}

// NewRunID returns a fresh ULID for stamping artifacts.
func NewRunID() string {
	return ulid.Make().String()
}

// WritePortfolioJSON serializes the run metadata with stable indentation.
func WritePortfolioJSON(w io.Writer, meta RunMeta) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
