package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"stpaul-crime/core/utils"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ApplyMigrations brings the schema up to date and seeds the read-only
// reference tables. Safe to call on every start.
func ApplyMigrations(ctx context.Context, db *sql.DB, logger *utils.Logger) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	logger.Infof("schema at version %d", version)
	return nil
}
