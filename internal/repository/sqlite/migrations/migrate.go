package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
	"time"
)

//go:embed *.sql
var migrationsFS embed.FS

// migration is one numbered schema change, loaded from a pair of
// NNNNNN_name.up.sql / NNNNNN_name.down.sql files.
type migration struct {
	version int
	name    string
	up      string
	down    string
}

const ledgerTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at TEXT NOT NULL
)`

// RunMigrations brings the schema up to date, applying any pending
// migrations in version order. Already-applied versions are skipped.
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(ledgerTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	all, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return fmt.Errorf("failed to read schema_migrations: %w", err)
	}

	for _, m := range all {
		if applied[m.version] {
			continue
		}
		if err := runInTx(db, m.up, func(tx *sql.Tx) error {
			_, err := tx.Exec(
				"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
				m.version, m.name, time.Now().UTC().Format(time.RFC3339))
			return err
		}); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.version, m.name, err)
		}
	}

	return nil
}

// RollbackLast undoes the most recently applied migration by running its
// down script and removing its ledger row. It is a no-op when nothing has
// been applied.
func RollbackLast(db *sql.DB) error {
	var latest sql.NullInt64
	if err := db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&latest); err != nil {
		return fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	if !latest.Valid {
		return nil
	}
	version := int(latest.Int64)

	all, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	for _, m := range all {
		if m.version != version {
			continue
		}
		if err := runInTx(db, m.down, func(tx *sql.Tx) error {
			_, err := tx.Exec("DELETE FROM schema_migrations WHERE version = ?", m.version)
			return err
		}); err != nil {
			return fmt.Errorf("failed to roll back migration %d (%s): %w", m.version, m.name, err)
		}
		return nil
	}

	return fmt.Errorf("no migration file for applied version %d", version)
}

func loadMigrations() ([]migration, error) {
	entries, err := migrationsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var all []migration
	for _, entry := range entries {
		version, name, ok := parseFilename(entry.Name())
		if !ok {
			continue
		}

		up, err := migrationsFS.ReadFile(entry.Name())
		if err != nil {
			return nil, err
		}
		down, err := migrationsFS.ReadFile(strings.Replace(entry.Name(), ".up.sql", ".down.sql", 1))
		if err != nil {
			return nil, err
		}

		all = append(all, migration{
			version: version,
			name:    name,
			up:      string(up),
			down:    string(down),
		})
	}

	sort.Slice(all, func(i, j int) bool { return all[i].version < all[j].version })
	return all, nil
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
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

// runInTx executes a migration script and its ledger update in one
// transaction, so a failed script leaves no ledger record behind.
func runInTx(db *sql.DB, script string, ledger func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(script); err != nil {
		tx.Rollback()
		return err
	}
	if err := ledger(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// parseFilename splits "000001_create_core_tables.up.sql" into its version
// and name. Files that do not follow the scheme are skipped.
func parseFilename(filename string) (version int, name string, ok bool) {
	if !strings.HasSuffix(filename, ".up.sql") {
		return 0, "", false
	}
	base := strings.TrimSuffix(filename, ".up.sql")
	numPart, namePart, found := strings.Cut(base, "_")
	if !found {
		return 0, "", false
	}
	if _, err := fmt.Sscanf(numPart, "%d", &version); err != nil || version == 0 {
		return 0, "", false
	}
	return version, namePart, true
}
