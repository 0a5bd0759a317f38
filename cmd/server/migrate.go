package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	pg "resaleops/internal/adapters/postgres"
	"resaleops/internal/config"
)

func newMigrateCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or inspect the jobs schema migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is required for migrations")
			}
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			db, err := pg.Connect(ctx, cfg.DatabaseURL, cfg.NewLogger())
			if err != nil {
				return err
			}
			defer db.Close()
			return db.Migrate(ctx, command)
		},
	}
}
