package pg

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ключ advisory lock'а: параллельно стартующие инстансы применяют миграции по очереди
const migrationLockKey int64 = 0x61737472

type migration struct {
	Version int64
	Name    string
	Content string
}

// Migrator применяет встроенные SQL миграции по возрастанию версии.
// Каждая миграция и запись о ней идут одной транзакцией.
type Migrator struct {
	db     *sqlx.DB
	source fs.FS
	log    *slog.Logger
}

func NewMigrator(db *sqlx.DB, log *slog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		source: migrationsFS,
		log:    log,
	}
}

// Up применяет все ещё не применённые миграции
func (m *Migrator) Up(ctx context.Context) error {
	migrations, err := loadMigrations(m.source)
	if err != nil {
		return err
	}

	if _, err := m.db.ExecContext(ctx, createMigrationsTableQuery); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	current, err := m.currentVersion(ctx)
	if err != nil {
		return err
	}

	applied := 0
	for _, mg := range migrations {
		if mg.Version <= current {
			continue
		}

		m.log.Info("applying migration", "version", mg.Version, "name", mg.Name)

		ok, err := m.apply(ctx, mg)
		if err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", mg.Version, mg.Name, err)
		}
		if ok {
			applied++
		}
	}

	m.log.Info("database migrations completed", "version", max(current, lastVersion(migrations)), "applied", applied)
	return nil
}

func (m *Migrator) currentVersion(ctx context.Context) (int64, error) {
	var version int64
	if err := m.db.GetContext(ctx, &version, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations"); err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

// apply возвращает false, если миграцию уже применил другой инстанс
func (m *Migrator) apply(ctx context.Context, mg migration) (bool, error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", migrationLockKey); err != nil {
		return false, fmt.Errorf("failed to take migration lock: %w", err)
	}

	var exists bool
	if err := tx.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", mg.Version); err != nil {
		return false, fmt.Errorf("failed to check migration: %w", err)
	}
	if exists {
		m.log.Debug("migration already applied", "version", mg.Version, "name", mg.Name)
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, mg.Content); err != nil {
		return false, fmt.Errorf("failed to execute migration: %w", err)
	}

	if _, err := tx.ExecContext(ctx, recordMigrationQuery, mg.Version, mg.Name); err != nil {
		return false, fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

const createMigrationsTableQuery = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version BIGINT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

const recordMigrationQuery = `INSERT INTO schema_migrations (version, name, applied_at) VALUES ($1, $2, NOW())`

// loadMigrations читает *.sql из migrations/ и сортирует по версии
func loadMigrations(source fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(source, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	migrations := make([]migration, 0, len(entries))
	seen := make(map[int64]string, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version, name, err := parseMigrationName(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid migration name %s: %w", entry.Name(), err)
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s", version, prev, entry.Name())
		}
		seen[version] = entry.Name()

		content, err := fs.ReadFile(source, path.Join("migrations", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, migration{
			Version: version,
			Name:    name,
			Content: string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// формат: 0001_name.sql
func parseMigrationName(filename string) (int64, string, error) {
	version, name, ok := strings.Cut(strings.TrimSuffix(filename, ".sql"), "_")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("invalid format: expected NNNN_name.sql")
	}

	v, err := strconv.ParseInt(version, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid version number: %w", err)
	}
	if v <= 0 {
		return 0, "", fmt.Errorf("version must be positive")
	}

	return v, name, nil
}

func lastVersion(migrations []migration) int64 {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
