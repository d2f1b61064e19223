package database

import (
	"context"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devfolio-backend/errs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationStatus holds information about database migration state
type MigrationStatus struct {
	CurrentVersion uint
	LatestVersion  uint
	Dirty          bool
	Pending        bool
}

// MigrateUp applies every pending migration.
func (d Database) MigrateUp() error {
	m, err := d.migrator()
	if err != nil {
		return errs.NewMigrationError("init", err)
	}
	defer closeMigrator(m)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errs.NewMigrationError("up", err)
	}
	return nil
}

// MigrateStep moves steps migrations forward, or backward when negative.
func (d Database) MigrateStep(steps int) error {
	if steps == 0 {
		return errs.NewBadRequestError("steps cannot be zero")
	}
	m, err := d.migrator()
	if err != nil {
		return errs.NewMigrationError("init", err)
	}
	defer closeMigrator(m)
	if err := m.Steps(steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errs.NewMigrationError("step", err)
	}
	return nil
}

// MigrateDown reverts every applied migration.
func (d Database) MigrateDown() error {
	m, err := d.migrator()
	if err != nil {
		return errs.NewMigrationError("init", err)
	}
	defer closeMigrator(m)
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errs.NewMigrationError("down", err)
	}
	return nil
}

// MigrationStatus reports the applied version against the embedded set.
func (d Database) MigrationStatus() (*MigrationStatus, error) {
	m, err := d.migrator()
	if err != nil {
		return nil, errs.NewMigrationError("init", err)
	}
	defer closeMigrator(m)

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, errs.NewMigrationError("version", err)
	}

	latest, err := latestMigration()
	if err != nil {
		return nil, errs.NewMigrationError("version", err)
	}

	return &MigrationStatus{
		CurrentVersion: version,
		LatestVersion:  latest,
		Dirty:          dirty,
		Pending:        version < latest,
	}, nil
}

func latestMigration() (uint, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, err
	}
	defer source.Close()

	latest, err := source.First()
	if err != nil {
		return 0, err
	}
	for {
		next, err := source.Next(latest)
		if err != nil {
			break
		}
		latest = next
	}
	return latest, nil
}

// migrator borrows a single connection from the pool for the run. Close the
// returned Migrate to hand it back; the pool itself stays open.
func (d Database) migrator() (*migrate.Migrate, error) {
	sqlDB, err := d.db.DB()
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, err
	}
	driver, err := migratepg.WithConnection(ctx, conn, &migratepg.Config{})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = driver.Close()
		return nil, err
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = source.Close()
		_ = driver.Close()
		return nil, err
	}
	return m, nil
}

func closeMigrator(m *migrate.Migrate) {
	sourceErr, dbErr := m.Close()
	if sourceErr != nil || dbErr != nil {
		log.Warn().AnErr("source", sourceErr).AnErr("database", dbErr).Msg("Closing migrator failed")
	}
}
