package commands

import (
	"fmt"

	"forelegg/internal/config"
	"forelegg/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "forelegg",
		Short:        "Customs fine calculator for travelers over their duty-free quota",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			logger, err = logging.New(cfg.Logging, verbose)
			if err != nil {
				return err
			}
			logger.Debug("config loaded", zap.String("path", configPath), zap.String("strategy", cfg.Optimizer.Strategy))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(assessCmd(), rulesCmd(), serveCmd())
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}

func checkTravelers(n int) error {
	if cfg != nil && n > cfg.Limits.MaxTravelers {
		return fmt.Errorf("at most %d travelers per assessment", cfg.Limits.MaxTravelers)
	}
	return nil
}
