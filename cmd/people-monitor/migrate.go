package main

import (
	"people-monitor-go/internal/app"

	"github.com/spf13/cobra"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := commonRun(cmd)
			if err != nil {
				return err
			}
			return app.Migrate(cfg.Store, log)
		},
	}
}
