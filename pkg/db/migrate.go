// pkg/db/migrate.go
package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// RunMigrations brings the schema selected by cfg.Driver up to date. It uses
// its own connection so closing the migrator leaves the application pool alone.
func RunMigrations(cfg Config) error {
	var dsn string
	switch cfg.Driver {
	case DriverPostgres:
		dsn = postgresDSN(cfg)
	case DriverSQLite:
		dsn = sqliteDSN(cfg.SQLitePath)
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	migrateDB, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	var target database.Driver
	if cfg.Driver == DriverPostgres {
		target, err = postgres.WithInstance(migrateDB, &postgres.Config{})
	} else {
		target, err = sqlite.WithInstance(migrateDB, &sqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("create %s migration driver: %w", cfg.Driver, err)
	}

	src, err := iofs.New(migrationsFS, "migrations/"+cfg.Driver)
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, cfg.Driver, target)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
