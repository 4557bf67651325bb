// Package ingest loads block records and the mix catalog from file sources
// and normalizes them at the boundary. Everything downstream assumes
// pre-validated, non-negative inputs.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/landmix/landmix/internal/metrics"
)

// LoadBlocksCSV reads block records from a CSV file with a header row
// containing at least id, area_m2 and cell_type columns. Rows with
// non-positive areas or unknown cell types are rejected.
func LoadBlocksCSV(path string) ([]metrics.Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open blocks file: %w", err)
	}
	defer f.Close()
	return ReadBlocks(f)
}

// ReadBlocks parses block records from CSV content.
func ReadBlocks(r io.Reader) ([]metrics.Block, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read blocks header: %w", err)
	}
	col, err := columnIndex(header, "id", "area_m2", "cell_type")
	if err != nil {
		return nil, err
	}

	var blocks []metrics.Block
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read blocks line %d: %w", line, err)
		}

		area, err := strconv.ParseFloat(strings.TrimSpace(rec[col["area_m2"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("blocks line %d: bad area_m2 %q", line, rec[col["area_m2"]])
		}
		if area <= 0 {
			return nil, fmt.Errorf("blocks line %d: %w", line, metrics.ErrNonPositiveArea)
		}

		cell, err := metrics.ParseCellType(rec[col["cell_type"]])
		if err != nil {
			return nil, fmt.Errorf("blocks line %d: %w", line, err)
		}
		if cell == metrics.CellAny {
			return nil, fmt.Errorf("blocks line %d: block cell type must be ground or roof", line)
		}

		blocks = append(blocks, metrics.Block{
			ID:       strings.TrimSpace(rec[col["id"]]),
			AreaM2:   area,
			CellType: cell,
		})
	}
	if len(blocks) == 0 {
		return nil, ErrNoBlocks
	}
	return blocks, nil
}

// geoFeature is the subset of a GeoJSON feature we read: uncovered ground
// area and roof area per (Id, B_Number) pair.
type geoFeature struct {
	Properties struct {
		ID      json.Number `json:"Id"`
		BNumber json.Number `json:"B_Number"`
		AreaUM2 *float64    `json:"Area_U_m2"`
		AreaRM2 *float64    `json:"Area_R_m2"`
	} `json:"properties"`
}

type geoCollection struct {
	Features []geoFeature `json:"features"`
}

// LoadBlocksGeoJSON reads a unified GeoJSON feature collection where each
// feature carries an uncovered ground area (Area_U_m2) or a roof area
// (Area_R_m2). Areas are aggregated per (Id, B_Number, cell type) key and
// the resulting blocks are returned in key order, so repeated loads of the
// same collection produce the same block sequence.
func LoadBlocksGeoJSON(path string) ([]metrics.Block, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open geojson file: %w", err)
	}
	var coll geoCollection
	if err := json.Unmarshal(raw, &coll); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	type key struct {
		id   string
		cell metrics.CellType
	}
	accum := make(map[key]float64)
	for _, feat := range coll.Features {
		p := feat.Properties
		var area float64
		var cell metrics.CellType
		switch {
		case p.AreaUM2 != nil:
			area, cell = *p.AreaUM2, metrics.CellGround
		case p.AreaRM2 != nil:
			area, cell = *p.AreaRM2, metrics.CellRoof
		default:
			continue
		}
		if area <= 0 {
			continue
		}
		id := fmt.Sprintf("%s.%s", p.ID.String(), p.BNumber.String())
		accum[key{id: id, cell: cell}] += area
	}
	if len(accum) == 0 {
		return nil, ErrNoBlocks
	}

	blocks := make([]metrics.Block, 0, len(accum))
	for k, area := range accum {
		blocks = append(blocks, metrics.Block{
			ID:       fmt.Sprintf("%s:%s", k.id, k.cell),
			AreaM2:   area,
			CellType: k.cell,
		})
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].ID < blocks[j].ID })
	return blocks, nil
}

// columnIndex maps required column names to their positions in a header row.
// Matching is case-insensitive.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return col, nil
}
