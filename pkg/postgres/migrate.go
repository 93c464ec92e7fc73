package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"nomad-nest/internal/migrations"
	"nomad-nest/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies the embedded goose migrations. It opens its own short-lived
// database/sql connection because goose does not speak pgxpool.
func Migrate(ctx context.Context, cfg *config.DatabaseConfig) error {
	db, err := sql.Open("pgx", dsn(cfg))
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
