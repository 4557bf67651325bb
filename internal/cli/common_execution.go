package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/landmix/landmix/internal/config"
	"github.com/landmix/landmix/internal/ingest"
	"github.com/landmix/landmix/internal/metrics"
	"github.com/landmix/landmix/internal/optimize"
)

// inputFlags holds the input-source flags shared by frontier and solve.
type inputFlags struct {
	blocksPath  string
	geojsonPath string
	mixesPath   string
	maxPctRes   float64
	maxPctNbs   float64
}

// registerInputFlags wires the shared input flags onto a command.
func registerInputFlags(cmd *cobra.Command, in *inputFlags) {
	cmd.Flags().StringVar(&in.blocksPath, "blocks", "", "path to block records CSV (id,area_m2,cell_type)")
	cmd.Flags().StringVar(&in.geojsonPath, "geojson", "", "path to unified GeoJSON block source (alternative to --blocks)")
	cmd.Flags().StringVar(&in.mixesPath, "mixes", "", "path to mix catalog CSV")
	cmd.Flags().Float64Var(&in.maxPctRes, "max-pct-res", -1, "max RES percentage allowed for catalog mixes, 0..100 (-1 = config default)")
	cmd.Flags().Float64Var(&in.maxPctNbs, "max-pct-nbs", -1, "max NBS percentage allowed for catalog mixes, 0..100 (-1 = config default)")
	_ = cmd.MarkFlagRequired("mixes")
}

// registerParamFlags exposes the metric parameters as flags mirroring the
// configuration file.
func registerParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("cost-res", 0, "RES cost per m2 (overrides config)")
	cmd.Flags().Float64("co2-res", 0, "RES CO2 reduction per m2 (overrides config)")
	cmd.Flags().Float64("cost-nbs", 0, "NBS cost per tree (overrides config)")
	cmd.Flags().Float64("co2-nbs", 0, "NBS CO2 reduction per tree (overrides config)")
	cmd.Flags().Float64("pct-covered", 0, "coverage percentage 0..100 (overrides config)")
	cmd.Flags().Float64("tree-cover-area", 0, "tree footprint in m2 (overrides config)")
}

// applyParamFlags copies explicitly set parameter flags over the loaded
// configuration. Flags never override silently: only Changed flags apply.
func applyParamFlags(cmd *cobra.Command, p *metrics.Params) {
	set := func(name string, dst *float64) {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetFloat64(name)
			*dst = v
		}
	}
	set("cost-res", &p.CostRES)
	set("co2-res", &p.CO2RES)
	set("cost-nbs", &p.CostNBS)
	set("co2-nbs", &p.CO2NBS)
	set("pct-covered", &p.PctCovered)
	set("tree-cover-area", &p.TreeCoverArea)
}

// runSetup is everything a solve or sweep needs, assembled once per command.
type runSetup struct {
	cfg      *config.Config
	blocks   []metrics.Block
	mixes    []metrics.Mix
	points   [][]metrics.OptionPoint
	mixIdx   [][]int
	intOpts  [][]optimize.IntPoint
	solveCfg optimize.Config
}

// prepareRun loads configuration and inputs, applies flag overrides,
// computes option points, and integerizes them. All fail-fast validation
// happens here, before any solver call.
func prepareRun(cmd *cobra.Command, in inputFlags) (*runSetup, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	applyParamFlags(cmd, &cfg.Params)
	if in.maxPctRes >= 0 {
		cfg.Sweep.MaxPctRes = in.maxPctRes
	}
	if in.maxPctNbs >= 0 {
		cfg.Sweep.MaxPctNbs = in.maxPctNbs
	}
	if v, _ := cmd.Flags().GetFloat64("time-limit"); v > 0 {
		cfg.Solver.TimeLimitSeconds = v
	}
	if v, _ := cmd.Flags().GetInt("workers"); v > 0 {
		cfg.Solver.Workers = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var blocks []metrics.Block
	switch {
	case in.blocksPath != "" && in.geojsonPath != "":
		return nil, fmt.Errorf("--blocks and --geojson are mutually exclusive")
	case in.blocksPath != "":
		blocks, err = ingest.LoadBlocksCSV(in.blocksPath)
	case in.geojsonPath != "":
		blocks, err = ingest.LoadBlocksGeoJSON(in.geojsonPath)
	default:
		return nil, fmt.Errorf("one of --blocks or --geojson is required")
	}
	if err != nil {
		return nil, err
	}

	mixes, err := ingest.LoadMixesCSV(in.mixesPath, ingest.MixFilter{
		MaxResPct: cfg.Sweep.MaxPctRes / 100.0,
		MaxNbsPct: cfg.Sweep.MaxPctNbs / 100.0,
	})
	if err != nil {
		return nil, err
	}

	points, mixIdx := metrics.BlockOptions(blocks, mixes, cfg.Params)
	for i := range points {
		if len(points[i]) == 0 {
			return nil, fmt.Errorf("block %q: %w", blocks[i].ID, optimize.ErrNoOptions)
		}
	}

	logger.Info().
		Int("blocks", len(blocks)).
		Int("mixes", len(mixes)).
		Msg("inputs loaded")

	return &runSetup{
		cfg:     cfg,
		blocks:  blocks,
		mixes:   mixes,
		points:  points,
		mixIdx:  mixIdx,
		intOpts: optimize.ScaleBlocks(points, cfg.Scale),
		solveCfg: optimize.Config{
			TimeLimit: cfg.Solver.TimeLimit(),
			Workers:   cfg.Solver.Workers,
		},
	}, nil
}

// writeArtifact creates path (including parent directories) and hands the
// open file to fn.
func writeArtifact(path string, fn func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
