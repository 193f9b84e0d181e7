package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/outreach/internal/database"
)

// migrationsSource returns the migration directory of driver.
func migrationsSource(driver string) (string, error) {
	switch driver {
	case database.DriverPostgres:
		return "file://migrations/postgresql", nil
	case database.DriverMySQL:
		return "file://migrations/mysql", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// RunMigrations migrates the campaigns, leads, lead_events, daily_metrics and
// outbox_events schema. steps == 0 applies every pending migration; a positive or
// negative value moves that many versions up or down.
func RunMigrations(logger *slog.Logger, driver, connectionString string, steps int) error {
	source, err := migrationsSource(driver)
	if err != nil {
		return err
	}
	logger.Info("running database migrations", slog.String("driver", driver), slog.Int("steps", steps))

	m, err := migrate.New(source, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if steps == 0 {
		err = m.Up()
	} else {
		err = m.Steps(steps)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info("migrations completed", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}

func closeMigrate(m *migrate.Migrate, logger *slog.Logger) {
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		logger.Error("failed to close migrate",
			slog.Any("source_error", srcErr),
			slog.Any("database_error", dbErr),
		)
	}
}
