package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrator applies the embedded schema files in version order. Each file
// runs in its own transaction together with its schema_migrations row.
type Migrator struct {
	db  *sql.DB
	out io.Writer
}

func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db, out: os.Stdout}
}

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

// AppliedVersions returns the set of versions already recorded
func (m *Migrator) AppliedVersions(ctx context.Context) (map[int]bool, error) {
	if _, err := m.db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// LoadMigrations parses files named like 001_create_users_table.sql
func LoadMigrations() ([]Migration, error) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		prefix, rest, ok := strings.Cut(entry.Name(), "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}

		content, err := migrationFiles.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(rest, ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// Pending returns the migrations not yet applied
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	applied, err := m.AppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	all, err := LoadMigrations()
	if err != nil {
		return nil, err
	}

	var pending []Migration
	for _, migration := range all {
		if !applied[migration.Version] {
			pending = append(pending, migration)
		}
	}
	return pending, nil
}

// RunMigrations executes all pending migrations
func (m *Migrator) RunMigrations(ctx context.Context) error {
	pending, err := m.Pending(ctx)
	if err != nil {
		return err
	}

	for _, migration := range pending {
		log.Printf("Running migration %d: %s", migration.Version, migration.Name)
		if err := m.apply(ctx, migration); err != nil {
			return err
		}
	}

	if len(pending) == 0 {
		log.Println("Schema is up to date")
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, migration Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction for migration %d: %w", migration.Version, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
		return fmt.Errorf("failed to execute migration %d: %w", migration.Version, err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", migration.Version, migration.Name); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
	}
	return nil
}

// GetMigrationStatus prints every known migration with its state
func (m *Migrator) GetMigrationStatus(ctx context.Context) error {
	applied, err := m.AppliedVersions(ctx)
	if err != nil {
		return err
	}

	migrations, err := LoadMigrations()
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Migration Status:")
	fmt.Fprintln(m.out, "================")
	for _, migration := range migrations {
		status := "PENDING"
		if applied[migration.Version] {
			status = "APPLIED"
		}
		fmt.Fprintf(m.out, "%d: %s [%s]\n", migration.Version, migration.Name, status)
	}
	return nil
}
