// Package metrics computes per-block cost and CO2 reduction for land-use
// allocation mixes: RES (renewable energy, costed per m²) and NBS (tree
// planting, costed per discrete tree). All functions are pure; the only
// portfolio-level quantity is the economies-of-scale discount factor, which
// callers compute once from portfolio totals.
package metrics

import (
	"fmt"
	"strings"
)

// CellType classifies the surface a block offers for allocation.
type CellType string

const (
	// CellGround is open ground — no structural constraints apply.
	CellGround CellType = "ground"

	// CellRoof is a rooftop — tree count is capped by structural load.
	CellRoof CellType = "roof"

	// CellAny is only valid on a Mix and marks it applicable to every
	// cell type. Blocks are always ground or roof.
	CellAny CellType = "any"
)

// ParseCellType normalizes a cell type string. Matching is case-insensitive.
func ParseCellType(s string) (CellType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ground":
		return CellGround, nil
	case "roof":
		return CellRoof, nil
	case "any", "":
		return CellAny, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCellType, s)
	}
}

// Block is a land parcel with a fixed uncovered area. Identity is the ID;
// area and cell type determine mix applicability and load capping.
type Block struct {
	ID       string   `json:"id"`
	AreaM2   float64  `json:"area_m2"`
	CellType CellType `json:"cell_type"`
}

// Mix is a named percentage split between RES and NBS allocation. ResPct and
// NbsPct are fractions in [0,1] of the covered area; they are independent and
// need not sum to 1.
type Mix struct {
	MixID    string   `json:"mix_id"`
	ResPct   float64  `json:"res_pct"`
	NbsPct   float64  `json:"nbs_pct"`
	CellType CellType `json:"cell_type"`
	Label    string   `json:"label,omitempty"`
}

// AppliesTo reports whether the mix may be assigned to a block of the given
// cell type.
func (m Mix) AppliesTo(cell CellType) bool {
	return m.CellType == CellAny || m.CellType == cell
}

// OptionPoint is the derived (cost, co2) pair for one (block, mix)
// combination. Both components are non-negative by construction.
type OptionPoint struct {
	Cost float64 `json:"cost"`
	CO2  float64 `json:"co2"`
}
