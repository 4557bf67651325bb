package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/landmix/landmix/internal/config"
	"github.com/landmix/landmix/internal/logging"
)

// setupLogging configures logging from the config file, environment, and
// CLI flags, attaches the logger to the command context, and installs the
// package-level CLI logger.
func setupLogging(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: "stderr",
		File:   cfg.Logging.File,
	}
	if cfg.Logging.File != "" {
		logCfg.Output = "file"
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		logCfg.Level = "debug"
		logCfg.Format = "console"
		logCfg.Output = "stderr"
	}
	if envLevel := os.Getenv("LANDMIX_LOG_LEVEL"); envLevel != "" && !debug {
		logCfg.Level = envLevel
	}

	root := logging.New(logCfg)
	logger = logging.ComponentLogger(root, "cli")

	ctx := root.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}
