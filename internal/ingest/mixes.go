package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/landmix/landmix/internal/metrics"
)

// MixFilter caps the allowed RES and NBS percentages (fractions in [0,1])
// when loading the catalog. Mixes above either ceiling are dropped.
type MixFilter struct {
	MaxResPct float64
	MaxNbsPct float64
}

// NoMixFilter admits every catalog entry.
func NoMixFilter() MixFilter { return MixFilter{MaxResPct: 1, MaxNbsPct: 1} }

// LoadMixesCSV reads the mix catalog from a CSV file with a header row
// containing at least mix_id, res_pct, nbs_pct and cell_type columns
// (label is optional). Percentages may be given as fractions (0..1) or
// percent values (0..100); values above 1 are treated as percent. An empty
// catalog after filtering is a fatal configuration error.
func LoadMixesCSV(path string, filter MixFilter) ([]metrics.Mix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mixes file: %w", err)
	}
	defer f.Close()
	return ReadMixes(f, filter)
}

// ReadMixes parses and filters mix catalog entries from CSV content.
func ReadMixes(r io.Reader, filter MixFilter) ([]metrics.Mix, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read mixes header: %w", err)
	}
	col, err := columnIndex(header, "mix_id", "res_pct", "nbs_pct", "cell_type")
	if err != nil {
		return nil, err
	}
	labelIdx, hasLabel := col["label"]

	var mixes []metrics.Mix
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read mixes line %d: %w", line, err)
		}

		cell, err := metrics.ParseCellType(rec[col["cell_type"]])
		if err != nil {
			return nil, fmt.Errorf("mixes line %d: %w", line, err)
		}

		mix := metrics.Mix{
			MixID:    strings.TrimSpace(rec[col["mix_id"]]),
			ResPct:   normalizePct(rec[col["res_pct"]]),
			NbsPct:   normalizePct(rec[col["nbs_pct"]]),
			CellType: cell,
		}
		if hasLabel {
			mix.Label = strings.TrimSpace(rec[labelIdx])
		}
		if mix.ResPct > filter.MaxResPct || mix.NbsPct > filter.MaxNbsPct {
			continue
		}
		mixes = append(mixes, mix)
	}
	if len(mixes) == 0 {
		return nil, ErrEmptyCatalog
	}
	return mixes, nil
}

// normalizePct parses a percentage cell. Values above 1 are read as 0..100
// percent; unparseable values read as 0.
func normalizePct(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	if v > 1 {
		return v / 100.0
	}
	return v
}
