package cli

import (
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/landmix/landmix/internal/optimize"
	"github.com/landmix/landmix/internal/report"
	"github.com/landmix/landmix/internal/tui"
)

// frontierParams holds the flags specific to the frontier command.
type frontierParams struct {
	inputs        inputFlags
	outPath       string
	budgetSteps   int
	tight         bool
	prune         bool
	plotOut       string
	portfoliosOut string
	interactive   bool
}

// NewFrontierCmd creates the "frontier" command: sweep budgets between the
// minimum and maximum achievable totals and collect the distinct (cost, CO2)
// outcomes.
func NewFrontierCmd() *cobra.Command {
	var params frontierParams

	cmd := &cobra.Command{
		Use:   "frontier",
		Short: "Trace the cost/CO2 frontier across a budget range",
		Long: `Trace the frontier of achievable (total cost, total CO2) outcomes by
repeatedly maximizing CO2 under a swept budget ceiling.

The default sweep samples budgets uniformly between the cheapest and
costliest achievable totals. --tight instead re-solves at one unit below
each achieved cost until infeasible, discovering every distinct cost level
at the price of many more solver calls.`,
		Example: frontierExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeFrontier(cmd, params)
		},
	}

	registerInputFlags(cmd, &params.inputs)
	registerParamFlags(cmd)
	cmd.Flags().StringVar(&params.outPath, "out", "", "output CSV path for frontier points")
	cmd.Flags().IntVar(&params.budgetSteps, "budget-steps", -1,
		"number of uniform budget samples, >=2 (0 = auto heuristic, -1 = config default)")
	cmd.Flags().BoolVar(&params.tight, "tight", false, "adaptive budget-tightening sweep instead of uniform steps")
	cmd.Flags().BoolVar(&params.prune, "prune", false, "drop dominated points from the collected frontier")
	cmd.Flags().StringVar(&params.plotOut, "plot-out", "", "optional HTML chart output path")
	cmd.Flags().StringVar(&params.portfoliosOut, "portfolios-out", "", "optional JSON run metadata output path")
	cmd.Flags().BoolVar(&params.interactive, "interactive", false, "browse the frontier in an interactive terminal view")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

const frontierExample = `  # Uniform sweep with the configured step count
  landmix frontier --blocks blocks.csv --mixes mixes.csv --out frontier.csv

  # Auto-derived step count, pruned to the non-dominated subset
  landmix frontier --blocks blocks.csv --mixes mixes.csv --out frontier.csv --budget-steps 0 --prune

  # Tight sweep, HTML chart, run metadata
  landmix frontier --geojson city.geojson --mixes mixes.csv --out frontier.csv --tight --plot-out chart.html --portfolios-out run.json`

func executeFrontier(cmd *cobra.Command, params frontierParams) error {
	ctx := cmd.Context()

	setup, err := prepareRun(cmd, params.inputs)
	if err != nil {
		return err
	}
	cfg := setup.cfg
	if params.budgetSteps >= 0 {
		cfg.Sweep.BudgetSteps = params.budgetSteps
	}
	if cmd.Flags().Changed("tight") {
		cfg.Sweep.Tight = params.tight
	}
	if cmd.Flags().Changed("prune") {
		cfg.Sweep.Prune = params.prune
	}

	minBudget, maxBudget := optimize.BudgetBounds(setup.intOpts)

	var points []optimize.FrontierPoint
	if cfg.Sweep.Tight {
		points, err = optimize.SweepTight(ctx, setup.intOpts, maxBudget, setup.solveCfg)
	} else {
		steps := cfg.Sweep.BudgetSteps
		if steps == 0 {
			steps = optimize.AutoSteps(setup.intOpts)
			logger.Info().Int("steps", steps).Msg("derived budget step count")
		}
		points, err = optimize.SweepUniform(ctx, setup.intOpts, minBudget, maxBudget, steps, setup.solveCfg)
	}
	if err != nil {
		return err
	}
	if cfg.Sweep.Prune {
		points = optimize.PruneDominated(points)
	}

	floatPoints := make([]report.Point, len(points))
	selections := make([][]int, len(points))
	for i, p := range points {
		cost, co2 := cfg.Scale.Unscale(p.CostInt, p.CO2Int)
		floatPoints[i] = report.Point{Cost: cost, CO2: co2}
		selections[i] = p.Selection
	}

	if err := writeArtifact(params.outPath, func(w io.Writer) error {
		return report.WriteFrontierCSV(w, floatPoints, len(setup.blocks))
	}); err != nil {
		return err
	}

	if params.plotOut != "" {
		if err := writeArtifact(params.plotOut, func(w io.Writer) error {
			return report.WriteFrontierChart(w, floatPoints, "Cost vs CO2 Frontier")
		}); err != nil {
			return err
		}
	}

	minB, _ := cfg.Scale.Unscale(minBudget, 0)
	maxB, _ := cfg.Scale.Unscale(maxBudget, 0)
	if params.portfoliosOut != "" {
		meta := report.RunMeta{
			RunID:       report.NewRunID(),
			GeneratedAt: time.Now().UTC(),
			Mode:        sweepModeName(cfg.Sweep.Tight),
			NBlocks:     len(setup.blocks),
			BudgetSteps: cfg.Sweep.BudgetSteps,
			MinBudget:   minB,
			MaxBudget:   maxB,
			Params:      cfg.Params,
			Scale:       cfg.Scale,
			Blocks:      setup.blocks,
			Mixes:       setup.mixes,
			Selections:  selections,
		}
		if err := writeArtifact(params.portfoliosOut, func(w io.Writer) error {
			return report.WritePortfolioJSON(w, meta)
		}); err != nil {
			return err
		}
	}

	logger.Info().Int("points", len(floatPoints)).Str("out", params.outPath).Msg("frontier written")

	if params.interactive && isTerminal(os.Stdout) {
		model := tui.NewFrontierModel(points, cfg.Scale, setup.blocks, setup.mixes, setup.mixIdx)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return err
		}
		return nil
	}

	if isTerminal(os.Stdout) {
		cmd.Println(report.RenderFrontierSummary(floatPoints, len(setup.blocks), minB, maxB))
	} else {
		cmd.Printf("frontier points: %d (budget range %.2f - %.2f)\n", len(floatPoints), minB, maxB)
	}
	return nil
}

func sweepModeName(tight bool) string {
	if tight {
		return "frontier-tight"
	}
	return "frontier-steps"
}
