package main

import (
	"context"
	"fmt"
	"os"

	"people-monitor-go/internal/config"
	"people-monitor-go/pkg/logger"

	"github.com/spf13/cobra"
)

const programName = "people-monitor"

type configKey struct{}

func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFromContext(ctx context.Context) (config.Config, bool) {
	cfg, ok := ctx.Value(configKey{}).(config.Config)
	return cfg, ok
}

// commonRun returns the configured logger and config for a subcommand.
func commonRun(cmd *cobra.Command) (config.Config, logger.Logger, error) {
	cfg, ok := configFromContext(cmd.Context())
	if !ok {
		return config.Config{}, nil, fmt.Errorf("no config found in context")
	}
	log := logger.New(logger.Options{
		Output: os.Stdout,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Env:    cfg.Env,
	})
	return cfg, log, nil
}

func main() {
	bootstrap := logger.NewFromEnv()

	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Safety status rosters and check-in responses",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd)
		},
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(bootstrap)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cmd.SetContext(withConfig(cmd.Context(), cfg))
		return nil
	}

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(migrateCommand())
	rootCmd.AddCommand(importCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		bootstrap.Critical("app: command failed", "err", err)
		os.Exit(1)
	}
}
