package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gics/internal/definitions"
	"gics/internal/logging"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ExportStore persists definition tables to SQLite so they can be joined
// against other data with plain SQL.
//
// Storage location: .gics/gics.db by default.
//
// Each export run replaces the rows of the versions it writes and records the
// run identifier in the versions table.
type ExportStore struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
}

// VersionInfo describes one exported version.
type VersionInfo struct {
	Version     string
	IsDefault   bool
	EntryCount  int
	RunID       string
	ContentHash string
	ExportedAt  time.Time
}

// ExportStats summarizes an ExportAll run. Skipped lists versions whose
// exported rows already matched the table.
type ExportStats struct {
	RunID    string
	Versions []string
	Skipped  []string
	Entries  int
}

// NewExportStore opens (or creates) the export database at dbPath.
func NewExportStore(dbPath string) (*ExportStore, error) {
	log := logging.Get(logging.CategoryStore)
	log.Debugw("initializing export store", "path", dbPath)

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Errorw("failed to create export store directory", "dir", dir, "error", err)
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Errorw("failed to open export database", "path", dbPath, "error", err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	s := &ExportStore{db: db, dbPath: dbPath}
	if err := s.initialize(); err != nil {
		log.Errorw("failed to initialize export schema", "error", err)
		db.Close()
		return nil, err
	}

	log.Debugw("export store ready", "path", dbPath)
	return s, nil
}

// initialize creates the database schema.
func (s *ExportStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS versions (
		version TEXT PRIMARY KEY,
		is_default INTEGER NOT NULL DEFAULT 0,
		entry_count INTEGER NOT NULL,
		run_id TEXT NOT NULL,
		exported_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS definitions (
		version TEXT NOT NULL,
		code TEXT NOT NULL,
		level INTEGER NOT NULL,
		parent_code TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (version, code)
	);

	CREATE INDEX IF NOT EXISTS idx_definitions_level ON definitions(version, level);
	CREATE INDEX IF NOT EXISTS idx_definitions_parent ON definitions(version, parent_code);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := RunMigrations(context.Background(), s.db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Path returns the database location.
func (s *ExportStore) Path() string {
	return s.dbPath
}

// ExportTable replaces every row of table's version in one transaction.
func (s *ExportStore) ExportTable(ctx context.Context, table *definitions.Table, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin export of %s: %w", table.Version(), err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM definitions WHERE version = ?`, table.Version()); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table.Version(), err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO definitions (version, code, level, parent_code, name, description)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range table.Entries() {
		if _, err := stmt.ExecContext(ctx,
			table.Version(), d.Code, definitions.LevelOf(d.Code),
			definitions.ParentCode(d.Code), d.Name, d.Description,
		); err != nil {
			return fmt.Errorf("failed to insert %s@%s: %w", d.Code, table.Version(), err)
		}
	}

	isDefault := 0
	if table.Version() == definitions.DefaultVersion {
		isDefault = 1
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO versions (version, is_default, entry_count, run_id, content_hash, exported_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		table.Version(), isDefault, table.Len(), runID, ContentHash(table), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to record version %s: %w", table.Version(), err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit export of %s: %w", table.Version(), err)
	}

	logging.Get(logging.CategoryStore).Debugw("exported table",
		"version", table.Version(), "entries", table.Len(), "run_id", runID)
	return nil
}

// ExportAll exports every table under a fresh run identifier, in version
// order. Unless force is set, versions whose exported content hash matches
// the table are left untouched.
func (s *ExportStore) ExportAll(ctx context.Context, tables map[string]*definitions.Table, force bool) (ExportStats, error) {
	log := logging.Get(logging.CategoryStore)
	stats := ExportStats{RunID: uuid.NewString()}

	versions := make([]string, 0, len(tables))
	for v := range tables {
		versions = append(versions, v)
	}
	sort.Strings(versions)

	for _, v := range versions {
		if !force {
			stored, err := s.StoredHash(ctx, v)
			if err != nil {
				return stats, err
			}
			if stored != "" && stored == ContentHash(tables[v]) {
				log.Debugw("table unchanged, skipping", "version", v)
				stats.Skipped = append(stats.Skipped, v)
				continue
			}
		}
		if err := s.ExportTable(ctx, tables[v], stats.RunID); err != nil {
			return stats, err
		}
		stats.Versions = append(stats.Versions, v)
		stats.Entries += tables[v].Len()
	}

	log.Infow("export complete",
		"run_id", stats.RunID, "versions", len(stats.Versions),
		"skipped", len(stats.Skipped), "entries", stats.Entries)
	return stats, nil
}

// StoredHash returns the content hash of an exported version, or ""
// when the version has not been exported.
func (s *ExportStore) StoredHash(ctx context.Context, version string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT content_hash FROM versions WHERE version = ?`, version).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read content hash of %s: %w", version, err)
	}
	return hash, nil
}

// Lookup reads one exported descriptor.
func (s *ExportStore) Lookup(ctx context.Context, version, code string) (definitions.Descriptor, bool, error) {
	var d definitions.Descriptor
	err := s.db.QueryRowContext(ctx,
		`SELECT code, name, description FROM definitions WHERE version = ? AND code = ?`,
		version, code,
	).Scan(&d.Code, &d.Name, &d.Description)
	if err == sql.ErrNoRows {
		return definitions.Descriptor{}, false, nil
	}
	if err != nil {
		return definitions.Descriptor{}, false, fmt.Errorf("failed to look up %s@%s: %w", code, version, err)
	}
	return d, true, nil
}

// Children reads the exported entries whose parent is parent, ordered by
// code. An empty parent lists the sectors.
func (s *ExportStore) Children(ctx context.Context, version, parent string) ([]definitions.Descriptor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, name, description FROM definitions
		WHERE version = ? AND parent_code = ?
		ORDER BY code`, version, parent)
	if err != nil {
		return nil, fmt.Errorf("failed to query children of %q@%s: %w", parent, version, err)
	}
	defer rows.Close()

	out := make([]definitions.Descriptor, 0)
	for rows.Next() {
		var d definitions.Descriptor
		if err := rows.Scan(&d.Code, &d.Name, &d.Description); err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Versions lists the exported versions in ascending order.
func (s *ExportStore) Versions(ctx context.Context) ([]VersionInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT version, is_default, entry_count, run_id, content_hash, exported_at
		FROM versions ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query versions: %w", err)
	}
	defer rows.Close()

	var out []VersionInfo
	for rows.Next() {
		var info VersionInfo
		var isDefault int
		if err := rows.Scan(&info.Version, &isDefault, &info.EntryCount, &info.RunID, &info.ContentHash, &info.ExportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		info.IsDefault = isDefault == 1
		out = append(out, info)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *ExportStore) Close() error {
	return s.db.Close()
}
