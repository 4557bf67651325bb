// Command landmix computes cost/CO2 trade-off solutions for allocating
// RES and NBS interventions across land blocks.
package main

import (
	"os"

	"github.com/landmix/landmix/internal/cli"
	"github.com/landmix/landmix/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps errors to the process exit code.
// Split from main for testability.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
