package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"
)

// Migration file names look like YYYYMMDD_HHMMSS_description.{up,down}.sql.
const (
	migrationNameParts = 3
	minVersionParts    = 2

	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// ErrNoDownMigration is returned by MigrateDown when the latest applied
// migration has no .down.sql counterpart.
var ErrNoDownMigration = errors.New("migration has no down SQL")

// Migration is one versioned schema change.
type Migration struct {
	Version string // YYYYMMDD_HHMMSS
	Name    string
	UpSQL   string
	DownSQL string
}

// AppliedMigration is a row of the schema_migrations table.
type AppliedMigration struct {
	Version   string
	AppliedAt time.Time
}

// Migrate applies every migration in fsys that is not yet recorded in
// schema_migrations, oldest first. Each migration commits in its own
// transaction, so a failure leaves earlier migrations applied and a rerun
// continues from the failed one.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - fsys: Filesystem whose root holds the *.sql files (see package migrations)
//
// Returns:
//   - error: The first migration failure, wrapped with its version and name
func (db *DB) Migrate(ctx context.Context, fsys fs.FS) error {
	pending, err := db.pendingMigrations(ctx, fsys)
	if err != nil {
		return err
	}

	for _, m := range pending {
		if err := db.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("applying migration %s (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// MigrateDown rolls back the most recently applied migration.
// It is a no-op when nothing has been applied.
func (db *DB) MigrateDown(ctx context.Context, fsys fs.FS) error {
	if err := db.ensureMigrationsTable(ctx); err != nil {
		return err
	}

	applied, err := db.appliedMigrations(ctx)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		return nil
	}
	latest := applied[len(applied)-1]

	all, err := LoadMigrations(fsys)
	if err != nil {
		return err
	}

	idx := sort.Search(len(all), func(i int) bool { return all[i].Version >= latest.Version })
	if idx == len(all) || all[idx].Version != latest.Version {
		return fmt.Errorf("migration %s not found in filesystem", latest.Version)
	}
	m := all[idx]
	if m.DownSQL == "" {
		return fmt.Errorf("%w: %s", ErrNoDownMigration, m.Version)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting rollback: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	if _, err := tx.ExecContext(ctx, m.DownSQL); err != nil {
		return fmt.Errorf("executing down SQL for %s: %w", m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = ?", m.Version); err != nil {
		return fmt.Errorf("removing migration record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rollback: %w", err)
	}
	return nil
}

// MigrationStatus reports which migrations in fsys are applied and which are pending.
func (db *DB) MigrationStatus(ctx context.Context, fsys fs.FS) (applied []AppliedMigration, pending []Migration, err error) {
	if err = db.ensureMigrationsTable(ctx); err != nil {
		return nil, nil, err
	}
	if applied, err = db.appliedMigrations(ctx); err != nil {
		return nil, nil, err
	}
	if pending, err = db.pendingMigrations(ctx, fsys); err != nil {
		return nil, nil, err
	}
	return applied, pending, nil
}

// pendingMigrations returns migrations in fsys not yet recorded, oldest first.
func (db *DB) pendingMigrations(ctx context.Context, fsys fs.FS) ([]Migration, error) {
	if err := db.ensureMigrationsTable(ctx); err != nil {
		return nil, err
	}

	all, err := LoadMigrations(fsys)
	if err != nil {
		return nil, err
	}

	applied, err := db.appliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	done := make(map[string]struct{}, len(applied))
	for _, a := range applied {
		done[a.Version] = struct{}{}
	}

	var pending []Migration
	for _, m := range all {
		if _, ok := done[m.Version]; !ok {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

func (db *DB) ensureMigrationsTable(ctx context.Context) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}
	return nil
}

func (db *DB) appliedMigrations(ctx context.Context) ([]AppliedMigration, error) {
	rows, err := db.QueryContext(ctx, "SELECT version, applied_at FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("querying migrations: %w", err)
	}
	defer rows.Close()

	var out []AppliedMigration
	for rows.Next() {
		var a AppliedMigration
		var appliedAt string
		if err := rows.Scan(&a.Version, &appliedAt); err != nil {
			return nil, fmt.Errorf("scanning migration row: %w", err)
		}
		a.AppliedAt, _ = time.Parse(time.RFC3339, appliedAt) //nolint:errcheck // Written by applyMigration
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating migrations: %w", err)
	}
	return out, nil
}

func (db *DB) applyMigration(ctx context.Context, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	if _, err := tx.ExecContext(ctx, m.UpSQL); err != nil {
		return fmt.Errorf("executing SQL: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
		m.Version, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}
	return nil
}

// LoadMigrations reads every *.up.sql (and matching *.down.sql) at the root
// of fsys, sorted by version. A nil fsys yields no migrations.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	if fsys == nil {
		return nil, nil
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	byVersion := make(map[string]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version, name, isUp, ok := parseMigrationFilename(entry.Name())
		if !ok {
			continue
		}

		body, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		m, exists := byVersion[version]
		if !exists {
			m = &Migration{Version: version, Name: name}
			byVersion[version] = m
		}
		if isUp {
			m.UpSQL = string(body)
		} else {
			m.DownSQL = string(body)
		}
	}

	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.UpSQL == "" {
			return nil, fmt.Errorf("migration %s has a down file but no up file", m.Version)
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// parseMigrationFilename splits "20260118_120000_create_plants.up.sql" into
// version "20260118_120000", name "create_plants" and direction.
func parseMigrationFilename(filename string) (version, name string, isUp, ok bool) {
	var base string
	switch {
	case strings.HasSuffix(filename, upSuffix):
		base, isUp = strings.TrimSuffix(filename, upSuffix), true
	case strings.HasSuffix(filename, downSuffix):
		base = strings.TrimSuffix(filename, downSuffix)
	default:
		return "", "", false, false
	}

	parts := strings.SplitN(base, "_", migrationNameParts)
	if len(parts) < minVersionParts {
		return "", "", false, false
	}
	version = parts[0] + "_" + parts[1]
	if len(parts) == migrationNameParts {
		name = parts[2]
	}
	return version, name, isUp, true
}
