package db

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers pgx5://
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

// Migration actions accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStepUp = "step-up"
	MigrateDrop   = "drop"
)

// migrateURL rewrites a postgres DSN to the scheme the pgx/v5 migrate driver registers.
func migrateURL(dsn string) (string, error) {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix), nil
		}
	}
	return "", fmt.Errorf("DB_DSN must be a postgres:// URL for migrations")
}

// Migrate applies action using the SQL files in source.
func Migrate(source fs.FS, dsn, action string) error {
	switch action {
	case MigrateUp, MigrateDown, MigrateStepUp, MigrateDrop:
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	url, err := migrateURL(dsn)
	if err != nil {
		return err
	}

	src, err := iofs.New(source, ".")
	if err != nil {
		return fmt.Errorf("error opening migration source: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}
	defer mig.Close()

	switch action {
	case MigrateUp:
		err = mig.Up()
	case MigrateDown:
		err = mig.Steps(-1)
	case MigrateStepUp:
		err = mig.Steps(1)
	case MigrateDrop:
		err = mig.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", action, err)
	}

	version, dirty, verr := mig.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", verr)
	}
	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("migrations applied")
	return nil
}
