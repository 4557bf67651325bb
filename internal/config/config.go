// Package config loads and validates the landmix run configuration. The
// configuration file is YAML; CLI flags override individual values after
// loading. Validation fails fast, before any solver work begins.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/landmix/landmix/internal/metrics"
	"github.com/landmix/landmix/internal/optimize"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrBudgetStepsNegative indicates a negative uniform-sweep step count.
	ErrBudgetStepsNegative = constError("budget steps must be >= 0 (0 selects the auto heuristic)")

	// ErrPctOutOfRange indicates a percentage ceiling outside [0,100].
	ErrPctOutOfRange = constError("percentage ceilings must lie in [0,100]")
)

// SolverConfig bounds each solver invocation.
type SolverConfig struct {
	// TimeLimitSeconds is the wall-clock budget per solve call.
	TimeLimitSeconds float64 `yaml:"time_limit_seconds"`
	// Workers is the solver parallelism hint.
	Workers int `yaml:"workers"`
}

// TimeLimit converts the configured seconds to a duration.
func (s SolverConfig) TimeLimit() time.Duration {
	return time.Duration(s.TimeLimitSeconds * float64(time.Second))
}

// SweepConfig shapes the frontier sweep.
type SweepConfig struct {
	// BudgetSteps is the uniform sample count; 0 selects the auto
	// heuristic derived from the total option count.
	BudgetSteps int `yaml:"budget_steps"`
	// Tight switches to the adaptive budget-tightening sweep.
	Tight bool `yaml:"tight"`
	// Prune filters the collected points to the non-dominated subset.
	Prune bool `yaml:"prune"`
	// MaxPctRes and MaxPctNbs cap catalog mixes, in percent (0..100).
	MaxPctRes float64 `yaml:"max_pct_res"`
	MaxPctNbs float64 `yaml:"max_pct_nbs"`
}

// LoggingConfig mirrors the logging package's construction knobs.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Config is the full run configuration.
type Config struct {
	Params  metrics.Params `yaml:"params"`
	Scale   optimize.Scale `yaml:"scale"`
	Solver  SolverConfig   `yaml:"solver"`
	Sweep   SweepConfig    `yaml:"sweep"`
	Logging LoggingConfig  `yaml:"logging"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Params: metrics.DefaultParams(),
		Scale:  optimize.DefaultScale(),
		Solver: SolverConfig{TimeLimitSeconds: 10, Workers: 8},
		Sweep: SweepConfig{
			BudgetSteps: 41,
			MaxPctRes:   100,
			MaxPctNbs:   100,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// Load reads a YAML configuration file over the defaults. An empty path
// returns the defaults unchanged; an explicit path that cannot be read is an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations that cannot produce a well-formed run.
func (c *Config) Validate() error {
	if err := c.Scale.Validate(); err != nil {
		return err
	}
	if c.Sweep.BudgetSteps < 0 {
		return ErrBudgetStepsNegative
	}
	if c.Sweep.MaxPctRes < 0 || c.Sweep.MaxPctRes > 100 ||
		c.Sweep.MaxPctNbs < 0 || c.Sweep.MaxPctNbs > 100 {
		return ErrPctOutOfRange
	}
	if c.Solver.TimeLimitSeconds < 0 {
		return fmt.Errorf("solver time limit must be >= 0, got %v", c.Solver.TimeLimitSeconds)
	}
	if c.Solver.Workers < 0 {
		return fmt.Errorf("solver workers must be >= 0, got %d", c.Solver.Workers)
	}
	return nil
}

// Write serializes the configuration to path, used by "config init".
func (c *Config) Write(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, raw, 0600)
}
