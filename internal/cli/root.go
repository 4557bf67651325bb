// Package cli wires the landmix command tree: frontier sweeps, single
// solves, and configuration management.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger

// NewRootCmd creates the root Cobra command for the landmix CLI.
// It wires up logging and the frontier, solve, and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "landmix",
		Short: "Cost/CO2 trade-off optimizer for land-use allocation",
		Long: `landmix selects one RES/NBS allocation mix per land block, either tracing
the Pareto frontier of total cost vs total CO2 across a budget range or
solving a single constrained assignment.`,
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to landmix.yaml (defaults apply when omitted)")
	cmd.PersistentFlags().Float64("time-limit", 0, "solver wall-clock limit per solve, in seconds (0 = config default)")
	cmd.PersistentFlags().Int("workers", 0, "solver worker hint (0 = config default)")

	cmd.AddCommand(NewFrontierCmd(), NewSolveCmd(), newConfigCmd())
	return cmd
}

const rootCmdExample = `  # Trace the cost/CO2 frontier across 41 budget samples
  landmix frontier --blocks blocks.csv --mixes mixes.csv --out frontier.csv

  # Adaptive tight sweep with dominance pruning and an HTML chart
  landmix frontier --blocks blocks.csv --mixes mixes.csv --out frontier.csv --tight --prune --plot-out frontier.html

  # Maximize CO2 under a budget cap
  landmix solve --blocks blocks.csv --mixes mixes.csv --budget-limit 250000 --out solution.csv

  # Minimize cost to reach a CO2 target
  landmix solve --blocks blocks.csv --mixes mixes.csv --co2-target 120000 --out solution.csv

  # Write a starter configuration
  landmix config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd())
	return cmd
}
