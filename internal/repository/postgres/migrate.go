package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// migration source
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Migrate applies pending schema migrations from the given source
// directory, e.g. "file://migrations".
func Migrate(pool *pgxpool.Pool, sourceURL string) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("postgres: failed to prepare migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "cropdoctor", driver)
	if err != nil {
		return fmt.Errorf("postgres: failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: failed to run migrations: %w", err)
	}

	return nil
}
