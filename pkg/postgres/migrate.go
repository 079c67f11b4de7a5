package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations applies all pending migrations from sourceURL (a
// golang-migrate source, e.g. "file://./migrations"). A database already at
// the latest version is not an error.
func RunMigrations(dsn string, sourceURL string) error {
	return runMigration(dsn, sourceURL, func(m *migrate.Migrate) error { return m.Up() })
}

// RunMigrationsDown rolls every migration back. Intended for test databases.
func RunMigrationsDown(dsn string, sourceURL string) error {
	return runMigration(dsn, sourceURL, func(m *migrate.Migrate) error { return m.Down() })
}

func runMigration(dsn, sourceURL string, apply func(*migrate.Migrate) error) error {
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := apply(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: apply migrations: %w", err)
	}
	return nil
}
