package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Kangyi02/DaoAI-assessment/internal/filter"
	"github.com/Kangyi02/DaoAI-assessment/internal/filtersql"
	"github.com/Kangyi02/DaoAI-assessment/internal/inspection"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added index on inspection_region.group_id for proper-group aggregates
const currentSchemaVersion = 1

const pointColumns = "id, group_id, coord_x, coord_y, category"

// idChunkSize caps the number of ids bound into one IN list, staying well
// under SQLite's host parameter ceiling (999 on older builds).
const idChunkSize = 500

// SQLite stores inspection points in a SQLite database file
// (or in memory when opened with ":memory:").
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call multiple times.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, NewStoreError("open database", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("connect to database", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1) // Single writer to avoid SQLITE_BUSY errors
	db.SetMaxIdleConns(1) // Keep one connection ready

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, NewStoreError("apply pragmas", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, NewStoreError("apply schema", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// FetchByFilter returns every point selected by the filter description.
func (s *SQLite) FetchByFilter(ctx context.Context, f filter.Filter) ([]inspection.Point, error) {
	where, args := filtersql.Where(f, filtersql.SQLite)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+pointColumns+" FROM inspection_region WHERE "+where, args...)
	if err != nil {
		return nil, NewStoreError("query points", err)
	}
	defer rows.Close()

	return collectPoints(rows)
}

// FetchByIDs returns the points whose ids appear in ids, batching the lookup
// into IN lists of at most idChunkSize ids.
func (s *SQLite) FetchByIDs(ctx context.Context, ids []int64) ([]inspection.Point, error) {
	points := []inspection.Point{}
	for start := 0; start < len(ids); start += idChunkSize {
		end := min(start+idChunkSize, len(ids))
		chunk, err := s.fetchIDChunk(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		points = append(points, chunk...)
	}
	return points, nil
}

func (s *SQLite) fetchIDChunk(ctx context.Context, ids []int64) ([]inspection.Point, error) {
	clause, args := filtersql.IDList(ids, filtersql.SQLite)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+pointColumns+" FROM inspection_region WHERE "+clause, args...)
	if err != nil {
		return nil, NewStoreError("query points by id", err)
	}
	defer rows.Close()

	return collectPoints(rows)
}

// InsertPoints writes points and their group memberships in one transaction.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - re-loading the same
// dataset leaves existing rows untouched. Returns the number of newly
// inserted points.
func (s *SQLite) InsertPoints(ctx context.Context, pts []inspection.Point) (int64, error) {
	if len(pts) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, NewStoreError("begin insert", err)
	}
	defer tx.Rollback() // No-op if committed

	groupStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO inspection_group (id)
		VALUES (?)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return 0, NewStoreError("prepare group insert", err)
	}
	defer groupStmt.Close()

	for _, group := range distinctGroups(pts) {
		if _, err := groupStmt.ExecContext(ctx, group); err != nil {
			return 0, NewStoreError("insert group", err)
		}
	}

	pointStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO inspection_region (id, group_id, coord_x, coord_y, category)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return 0, NewStoreError("prepare point insert", err)
	}
	defer pointStmt.Close()

	var inserted int64
	for _, p := range pts {
		res, err := pointStmt.ExecContext(ctx, p.ID, p.GroupID, p.X, p.Y, p.Category)
		if err != nil {
			return 0, NewStoreError("insert point", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, NewStoreError("insert point", err)
		}
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, NewStoreError("commit insert", err)
	}
	return inserted, nil
}

// collectPoints drains rows into fully populated points.
func collectPoints(rows *sql.Rows) ([]inspection.Point, error) {
	var points []inspection.Point
	for rows.Next() {
		var p inspection.Point
		if err := rows.Scan(&p.ID, &p.GroupID, &p.X, &p.Y, &p.Category); err != nil {
			return nil, NewStoreError("scan point", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, NewStoreError("iterate points", err)
	}

	// Return empty slice instead of nil
	if points == nil {
		points = []inspection.Point{}
	}

	return points, nil
}

// distinctGroups returns the unique group ids of pts in first-seen order.
func distinctGroups(pts []inspection.Point) []int64 {
	seen := make(map[int64]struct{}, len(pts))
	var groups []int64
	for _, p := range pts {
		if _, ok := seen[p.GroupID]; ok {
			continue
		}
		seen[p.GroupID] = struct{}{}
		groups = append(groups, p.GroupID)
	}
	return groups
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	// Apply migrations sequentially
	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
		version = 1
	}

	// Set version after all migrations
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 adds the group_id index for existing databases created by the
// upstream loader, which shipped the bare tables. The proper-group aggregate
// scans by group_id, so the index matters on real datasets.
func migrateToV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_inspection_region_group
		ON inspection_region(group_id)
	`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *SQLite) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
