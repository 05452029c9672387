// Package migrations applies the versioned SQL schema with golang-migrate.
// The SQL ships inside the binary; Config.Dir overrides it with a directory.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var embeddedSQL embed.FS

const defaultMigrationsTable = "schema_migrations"

type migrator interface {
	Up() error
	Steps(n int) error
	Version() (version uint, dirty bool, err error)
	Close() (sourceErr error, databaseErr error)
}

// Swapped in tests.
var (
	driverFactory = func(db *sql.DB, table string) (database.Driver, error) {
		return postgres.WithInstance(db, &postgres.Config{MigrationsTable: table})
	}
	migratorFactory = func(src source.Driver, driver database.Driver) (migrator, error) {
		return migrate.NewWithInstance("iofs", src, "postgres", driver)
	}
)

type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Config struct {
	// Dir, when set, replaces the embedded SQL.
	Dir string
	// MigrationsTable defaults to schema_migrations.
	MigrationsTable string
	Logger          Logger
}

func (c Config) info(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Info(msg, args...)
	}
}

func (c Config) warn(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Warn(msg, args...)
	}
}

// Status is the schema version recorded in the migrations table.
type Status struct {
	Version uint
	Dirty   bool
	// Applied is false when no migration has run yet.
	Applied bool
}

// Up applies every pending migration. Nothing pending is not an error.
func Up(ctx context.Context, db *sql.DB, cfg Config) error {
	return run(ctx, db, cfg, "up", func(m migrator) error { return m.Up() })
}

// Down rolls back steps migrations.
func Down(ctx context.Context, db *sql.DB, cfg Config, steps int) error {
	if steps < 1 {
		return fmt.Errorf("migrations: down steps must be positive, got %d", steps)
	}
	return run(ctx, db, cfg, "down", func(m migrator) error { return m.Steps(-steps) })
}

func Version(ctx context.Context, db *sql.DB, cfg Config) (Status, error) {
	var status Status
	err := run(ctx, db, cfg, "version", func(m migrator) error {
		v, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			return nil
		case err != nil:
			return err
		}
		status = Status{Version: v, Dirty: dirty, Applied: true}
		return nil
	})
	return status, err
}

// sourceFS returns the SQL files and a description for logs.
func sourceFS(dir string) (fs.FS, string, error) {
	if dir == "" {
		sub, err := fs.Sub(embeddedSQL, "sql")
		return sub, "embedded", err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolve dir: %w", err)
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return nil, "", fmt.Errorf("migrations dir %s is not readable", abs)
	}
	return os.DirFS(abs), abs, nil
}

func run(ctx context.Context, db *sql.DB, cfg Config, op string, fn func(migrator) error) error {
	if db == nil {
		return errors.New("migrations: db is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if cfg.MigrationsTable == "" {
		cfg.MigrationsTable = defaultMigrationsTable
	}

	fsys, origin, err := sourceFS(cfg.Dir)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	src, err := iofs.New(fsys, ".")
	if err != nil {
		return fmt.Errorf("migrations: source: %w", err)
	}

	driver, err := driverFactory(db, cfg.MigrationsTable)
	if err != nil {
		return fmt.Errorf("migrations: postgres driver: %w", err)
	}

	m, err := migratorFactory(src, driver)
	if err != nil {
		return fmt.Errorf("migrations: init: %w", err)
	}

	var closeOnce sync.Once
	closeMigrator := func() {
		closeOnce.Do(func() {
			srcErr, dbErr := m.Close()
			if err := errors.Join(srcErr, dbErr); err != nil {
				cfg.warn("Failed to close migrator", "error", err)
			}
		})
	}
	defer closeMigrator()

	cfg.info("Running SQL migrations", "op", op, "source", origin, "table", cfg.MigrationsTable)

	done := make(chan error, 1)
	go func() { done <- fn(m) }()

	select {
	case <-ctx.Done():
		// migrate takes no context; closing interrupts it.
		closeMigrator()
		return ctx.Err()
	case err := <-done:
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			cfg.info("No migrations to apply", "op", op)
			return nil
		case err != nil:
			if cfg.Logger != nil {
				cfg.Logger.Error("Migrations failed", "op", op, "error", err)
			}
			return fmt.Errorf("migrations: %s: %w", op, err)
		}
	}

	cfg.info("Migrations applied successfully", "op", op)
	return nil
}
