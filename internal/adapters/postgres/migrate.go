package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"resaleops/internal/adapters/postgres/migrations"
)

// Migrate runs a goose command ("up", "down" or "status") against the
// embedded migrations, sharing the pool's connection settings.
func (db *DB) Migrate(ctx context.Context, command string) error {
	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		for _, r := range results {
			db.Log.WithField("migration", r.Source.Path).WithField("duration", r.Duration).Info("migration applied")
		}
		return err
	case "down":
		r, err := provider.Down(ctx)
		if r != nil {
			db.Log.WithField("migration", r.Source.Path).Info("migration rolled back")
		}
		return err
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			db.Log.WithField("migration", s.Source.Path).WithField("state", s.State).Info("migration status")
		}
		return nil
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
}
