package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

// Migrate applies the embedded schema migrations for dialect to the store at
// dsn. It runs on a dedicated pool that is closed before returning, so the
// application pool never loses a connection to the migrator.
func Migrate(dialect Dialect, dsn string) error {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return fmt.Errorf("error opening migration connection: %w", err)
	}

	var driver migratedb.Driver
	switch dialect {
	case Postgres:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	case SQLite:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		err = fmt.Errorf("%w: dialect %q", ErrUnsupportedURL, dialect)
	}
	if err != nil {
		db.Close()
		return fmt.Errorf("error preparing migrations: %w", err)
	}

	src, err := iofs.New(migrations, "migrations/"+string(dialect))
	if err != nil {
		driver.Close()
		return fmt.Errorf("error reading migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dialect), driver)
	if err != nil {
		src.Close()
		driver.Close()
		return fmt.Errorf("error preparing migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading schema version: %w", err)
	}
	log.Infow("schema up to date", "dialect", dialect, "version", version, "dirty", dirty)
	return nil
}
