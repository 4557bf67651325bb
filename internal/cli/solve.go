package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/landmix/landmix/internal/optimize"
	"github.com/landmix/landmix/internal/portfolio"
	"github.com/landmix/landmix/internal/report"
)

// solveParams holds the flags specific to the solve command.
type solveParams struct {
	inputs        inputFlags
	outPath       string
	budgetLimit   float64
	co2Target     float64
	selectionsOut string
	tableOut      string
	portfoliosOut string
}

// NewSolveCmd creates the "solve" command: a single constrained assignment.
// The constraint flags select the mode: a budget cap maximizes CO2, a CO2
// target minimizes cost, and both together maximize CO2 under both bounds.
func NewSolveCmd() *cobra.Command {
	var params solveParams

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a single constrained mix assignment",
		Long: `Choose exactly one mix per block under linear constraints.

Modes, chosen by which constraint flags are present:
  --budget-limit            maximize total CO2 with total cost <= budget
  --co2-target              minimize total cost with total CO2 >= target
  both                      maximize total CO2 under both bounds

An infeasible problem is not an error: the output artifacts are written
empty and the command reports "no solution".`,
		Example: solveExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeSolve(cmd, params)
		},
	}

	registerInputFlags(cmd, &params.inputs)
	registerParamFlags(cmd)
	cmd.Flags().StringVar(&params.outPath, "out", "", "output CSV path for the solution point")
	cmd.Flags().Float64Var(&params.budgetLimit, "budget-limit", 0, "budget ceiling in euros")
	cmd.Flags().Float64Var(&params.co2Target, "co2-target", 0, "CO2 reduction floor in kg")
	cmd.Flags().StringVar(&params.selectionsOut, "selections-out", "", "optional CSV with per-block selections")
	cmd.Flags().StringVar(&params.tableOut, "table-out", "", "optional CSV table with per-block metrics and a TOTAL row")
	cmd.Flags().StringVar(&params.portfoliosOut, "portfolios-out", "", "optional JSON run metadata output path")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

const solveExample = `  # Maximize CO2 reduction under a 250k budget
  landmix solve --blocks blocks.csv --mixes mixes.csv --budget-limit 250000 --out solution.csv --table-out table.csv

  # Cheapest portfolio reaching 120t of CO2 reduction
  landmix solve --blocks blocks.csv --mixes mixes.csv --co2-target 120000 --out solution.csv

  # Both constraints together
  landmix solve --blocks blocks.csv --mixes mixes.csv --budget-limit 250000 --co2-target 80000 --out solution.csv`

//nolint:gocognit // Mode dispatch plus artifact writing reads best as one sequence.
func executeSolve(cmd *cobra.Command, params solveParams) error {
	ctx := cmd.Context()

	hasBudget := cmd.Flags().Changed("budget-limit")
	hasTarget := cmd.Flags().Changed("co2-target")
	if !hasBudget && !hasTarget {
		return fmt.Errorf("at least one of --budget-limit or --co2-target is required")
	}

	setup, err := prepareRun(cmd, params.inputs)
	if err != nil {
		return err
	}
	cfg := setup.cfg

	var (
		sol  *optimize.Solution
		mode string
	)
	switch {
	case hasBudget && hasTarget:
		mode = "max-co2-with-floor"
		sol, err = optimize.MaxCO2WithFloor(ctx, setup.intOpts,
			cfg.Scale.ScaleBudget(params.budgetLimit), cfg.Scale.ScaleCO2(params.co2Target), setup.solveCfg)
	case hasBudget:
		mode = "max-co2-under-budget"
		sol, err = optimize.MaxCO2UnderBudget(ctx, setup.intOpts,
			cfg.Scale.ScaleBudget(params.budgetLimit), setup.solveCfg)
	default:
		mode = "min-cost-above-co2"
		sol, err = optimize.MinCostAboveCO2(ctx, setup.intOpts,
			cfg.Scale.ScaleCO2(params.co2Target), setup.solveCfg)
	}
	if err != nil {
		return err
	}

	if sol == nil {
		logger.Warn().Str("mode", mode).Msg("no feasible assignment")
		if err := writeArtifact(params.outPath, func(w io.Writer) error {
			return report.WriteFrontierCSV(w, nil, len(setup.blocks))
		}); err != nil {
			return err
		}
		cmd.Println("no solution")
		return nil
	}
	if !sol.Optimal {
		logger.Warn().Str("mode", mode).Msg("time limit reached before proof of optimality; result may be suboptimal")
	}

	cost, co2 := cfg.Scale.Unscale(sol.CostInt, sol.CO2Int)
	if err := writeArtifact(params.outPath, func(w io.Writer) error {
		return report.WriteFrontierCSV(w, []report.Point{{Cost: cost, CO2: co2}}, len(setup.blocks))
	}); err != nil {
		return err
	}

	if params.selectionsOut != "" {
		if err := writeArtifact(params.selectionsOut, func(w io.Writer) error {
			return report.WriteSelectionsCSV(w, setup.blocks, setup.mixes, setup.mixIdx, sol.Selection, cost, co2)
		}); err != nil {
			return err
		}
	}

	rep, err := portfolio.Build(setup.blocks, setup.mixes, setup.mixIdx, sol.Selection, cfg.Params)
	if err != nil {
		return err
	}
	if params.tableOut != "" {
		if err := writeArtifact(params.tableOut, func(w io.Writer) error {
			return report.WriteTableCSV(w, rep)
		}); err != nil {
			return err
		}
	}

	if params.portfoliosOut != "" {
		minBudget, maxBudget := optimize.BudgetBounds(setup.intOpts)
		minB, _ := cfg.Scale.Unscale(minBudget, 0)
		maxB, _ := cfg.Scale.Unscale(maxBudget, 0)
		meta := report.RunMeta{
			RunID:       report.NewRunID(),
			GeneratedAt: time.Now().UTC(),
			Mode:        mode,
			NBlocks:     len(setup.blocks),
			MinBudget:   minB,
			MaxBudget:   maxB,
			Params:      cfg.Params,
			Scale:       cfg.Scale,
			Blocks:      setup.blocks,
			Mixes:       setup.mixes,
			Selections:  [][]int{sol.Selection},
		}
		if hasBudget {
			meta.BudgetLimit = &params.budgetLimit
		}
		if hasTarget {
			meta.CO2Target = &params.co2Target
		}
		if err := writeArtifact(params.portfoliosOut, func(w io.Writer) error {
			return report.WritePortfolioJSON(w, meta)
		}); err != nil {
			return err
		}
	}

	logger.Info().Str("mode", mode).
		Float64("cost", cost).Float64("co2", co2).
		Bool("optimal", sol.Optimal).
		Msg("solution written")

	if isTerminal(os.Stdout) {
		cmd.Println(report.RenderSolveSummary(rep, sol.Optimal))
	} else {
		cmd.Printf("cost=%.2f co2=%.2f optimal=%v\n", cost, co2, sol.Optimal)
	}
	return nil
}
