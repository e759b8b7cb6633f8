package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"gics/internal/definitions"
	"gics/internal/logging"
)

// Schema versions:
// v1: versions and definitions tables
// v2: versions.content_hash, used to skip re-exporting unchanged tables
const CurrentSchemaVersion = 2

// Migration adds one column to an existing table.
type Migration struct {
	Table  string
	Column string
	Def    string
}

// pendingMigrations lists the column additions on top of the v1 schema.
var pendingMigrations = []Migration{
	{"versions", "content_hash", "TEXT NOT NULL DEFAULT ''"},
}

// RunMigrations brings an export database up to CurrentSchemaVersion and
// returns the number of columns added.
func RunMigrations(ctx context.Context, db *sql.DB) (int, error) {
	log := logging.Get(logging.CategoryStore)

	from, err := GetSchemaVersion(ctx, db)
	if err != nil {
		return 0, err
	}
	if from >= CurrentSchemaVersion {
		log.Debugw("schema up to date", "version", from)
		return 0, nil
	}

	applied := 0
	for _, m := range pendingMigrations {
		ok, err := tableExists(ctx, db, m.Table)
		if err != nil {
			return applied, err
		}
		if !ok {
			log.Debugw("table missing, skipping migration", "table", m.Table, "column", m.Column)
			continue
		}

		ok, err = columnExists(ctx, db, m.Table, m.Column)
		if err != nil {
			return applied, err
		}
		if ok {
			continue
		}

		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.Table, m.Column, m.Def)
		if _, err := db.ExecContext(ctx, query); err != nil {
			return applied, fmt.Errorf("migration %s.%s failed: %w", m.Table, m.Column, err)
		}
		log.Debugw("migration applied", "table", m.Table, "column", m.Column)
		applied++
	}

	if err := SetSchemaVersion(ctx, db, CurrentSchemaVersion); err != nil {
		return applied, err
	}
	log.Infow("schema migrated", "from", from, "to", CurrentSchemaVersion, "applied", applied)
	return applied, nil
}

// GetSchemaVersion returns the recorded schema version. A database without a
// record is version 1 when the v1 tables exist and 0 otherwise.
func GetSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	ok, err := tableExists(ctx, db, "schema_versions")
	if err != nil {
		return 0, err
	}
	if ok {
		var version int
		err := db.QueryRowContext(ctx,
			`SELECT version FROM schema_versions ORDER BY version DESC LIMIT 1`).Scan(&version)
		if err == nil {
			return version, nil
		}
		if err != sql.ErrNoRows {
			return 0, fmt.Errorf("failed to read schema version: %w", err)
		}
	}

	ok, err = tableExists(ctx, db, "definitions")
	if err != nil || !ok {
		return 0, err
	}
	return 1, nil
}

// SetSchemaVersion records version as applied.
func SetSchemaVersion(ctx context.Context, db *sql.DB, version int) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_versions (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create schema_versions: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO schema_versions (version) VALUES (?)`, version); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", version, err)
	}
	return nil
}

// columnExists checks if a column exists in a table using PRAGMA table_info.
func columnExists(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("PRAGMA table_info(%s) failed: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cid, notnull, pk int
		var name, ctype string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func tableExists(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("table existence check for %s failed: %w", table, err)
	}
	return count > 0, nil
}

// ContentHash fingerprints every entry of a table. Two tables with the same
// hash export identical rows.
func ContentHash(table *definitions.Table) string {
	h := sha256.New()
	for _, d := range table.Entries() {
		fmt.Fprintf(h, "%s\x00%s\x00%s\n", d.Code, d.Name, d.Description)
	}
	return hex.EncodeToString(h.Sum(nil))
}
