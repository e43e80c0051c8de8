package infra

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrator applies the embedded SQL migrations for the connected dialect.
type Migrator struct {
	provider *goose.Provider
}

// NewMigrator builds a goose provider over the migrations directory that
// matches driver (postgres, mysql or sqlite).
func NewMigrator(db *gorm.DB, driver string) (*Migrator, error) {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("migrate: get sql.DB: %w", err)
	}
	dir, err := fs.Sub(migrationsFS, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("migrate: open %s migrations: %w", driver, err)
	}
	provider, err := goose.NewProvider(dialect, sqlDB, dir)
	if err != nil {
		return nil, fmt.Errorf("migrate: new provider: %w", err)
	}
	return &Migrator{provider: provider}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	for _, r := range results {
		log.Info().
			Int64("version", r.Source.Version).
			Dur("duration", r.Duration).
			Msg("migration applied")
	}
	return nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	r, err := m.provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	log.Info().Int64("version", r.Source.Version).Msg("migration rolled back")
	return nil
}

// MigrationState is a single row of Status output.
type MigrationState struct {
	Version int64
	Path    string
	Applied bool
}

// Status lists every known migration and whether it has been applied.
func (m *Migrator) Status(ctx context.Context) ([]MigrationState, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("goose status: %w", err)
	}
	out := make([]MigrationState, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationState{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}

func gooseDialect(driver string) (goose.Dialect, error) {
	switch driver {
	case DriverPostgres:
		return goose.DialectPostgres, nil
	case DriverMySQL:
		return goose.DialectMySQL, nil
	case DriverSQLite:
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("migrate: unsupported driver %q", driver)
	}
}
