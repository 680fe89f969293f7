package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator applies the SQL files under migrations/ to a Postgres database.
// The schema version is tracked by golang-migrate in its schema_migrations
// table, independent of the GORM auto-migration used in development.
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

func New(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}

	return &Migrator{
		migrate: m,
		logger:  logger,
	}, nil
}

// Up applies all pending migrations
func (m *Migrator) Up() error {
	m.logger.Info("Applying pending migrations")

	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, dirty, err := m.migrate.Version()
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}

	m.logger.Info("Migrations applied",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// Down rolls back all migrations
func (m *Migrator) Down() error {
	m.logger.Info("Rolling back all migrations")

	err := m.migrate.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Nothing to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}

	m.logger.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations, negative n rolls back
func (m *Migrator) Steps(n int) error {
	m.logger.Info("Applying migration steps", zap.Int("steps", n))

	err := m.migrate.Steps(n)
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration steps failed: %w", err)
	}

	version, dirty, err := m.migrate.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}

	m.logger.Info("Migration steps applied",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// GoTo migrates up or down to an exact schema version
func (m *Migrator) GoTo(version uint) error {
	m.logger.Info("Migrating to version", zap.Uint("target_version", version))

	err := m.migrate.Migrate(version)
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Already at target version")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration to version %d failed: %w", version, err)
	}

	m.logger.Info("Migrated to version", zap.Uint("version", version))
	return nil
}

// Version reports the current schema version. A fresh database reports
// version 0 rather than an error.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running any SQL. Only for
// recovering from a dirty state after a failed migration.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))

	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}

	m.logger.Info("Migration version forced", zap.Int("version", version))
	return nil
}

// Drop removes every object in the database, demand history included
func (m *Migrator) Drop() error {
	m.logger.Warn("Dropping database, all data will be lost")

	if err := m.migrate.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}

	m.logger.Info("Database dropped")
	return nil
}

// Close releases the source and database handles
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database handle: %w", dbErr)
	}
	return nil
}
