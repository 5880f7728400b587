package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/vocab/pkg/vocab/internalerr"
	"github.com/cognicore/vocab/pkg/vocab/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// snapshot schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	ngram_min INTEGER NOT NULL,
	ngram_max INTEGER NOT NULL,
	delimiter TEXT NOT NULL,
	documents INTEGER NOT NULL,
	tokens INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_terms (
	snapshot_id TEXT NOT NULL,
	term TEXT NOT NULL,
	term_id INTEGER NOT NULL,
	term_count INTEGER NOT NULL,
	doc_count INTEGER NOT NULL,
	PRIMARY KEY(snapshot_id, term_id),
	FOREIGN KEY(snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_snapshot_terms_count
	ON snapshot_terms(snapshot_id, term_count DESC);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveSnapshot stores a snapshot and all its term rows in one transaction.
func (s *sqliteStore) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	if snap.ID == "" {
		return fmt.Errorf("%w: snapshot id is required", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, created_at, ngram_min, ngram_max, delimiter, documents, tokens)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.CreatedAt.UTC().Format(time.RFC3339Nano),
		snap.NgramMin, snap.NgramMax, snap.Delimiter,
		snap.Documents, snap.Tokens)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_terms (snapshot_id, term, term_id, term_count, doc_count)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range snap.Terms {
		if _, err := stmt.ExecContext(ctx, snap.ID, row.Term, row.TermID, row.TermCount, row.DocCount); err != nil {
			return fmt.Errorf("insert term %q: %w", row.Term, err)
		}
	}

	return tx.Commit()
}

// GetSnapshot returns a snapshot by id, with term rows ordered by term id.
func (s *sqliteStore) GetSnapshot(ctx context.Context, id string) (store.Snapshot, bool, error) {
	var snap store.Snapshot
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, ngram_min, ngram_max, delimiter, documents, tokens
		FROM snapshots WHERE id = ?`, id).
		Scan(&snap.ID, &createdAt, &snap.NgramMin, &snap.NgramMax,
			&snap.Delimiter, &snap.Documents, &snap.Tokens)
	if err == sql.ErrNoRows {
		return store.Snapshot{}, false, nil
	}
	if err != nil {
		return store.Snapshot{}, false, err
	}

	snap.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return store.Snapshot{}, false, fmt.Errorf("parse created_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT term, term_id, term_count, doc_count
		FROM snapshot_terms WHERE snapshot_id = ?
		ORDER BY term_id`, id)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var row store.TermRow
		if err := rows.Scan(&row.Term, &row.TermID, &row.TermCount, &row.DocCount); err != nil {
			return store.Snapshot{}, false, err
		}
		snap.Terms = append(snap.Terms, row)
	}
	if err := rows.Err(); err != nil {
		return store.Snapshot{}, false, err
	}

	return snap, true, nil
}

// ListSnapshots returns metadata for all stored snapshots, oldest first.
func (s *sqliteStore) ListSnapshots(ctx context.Context) ([]store.SnapshotInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.created_at, s.documents, s.tokens, COUNT(t.term_id)
		FROM snapshots s
		LEFT JOIN snapshot_terms t ON t.snapshot_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at, s.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []store.SnapshotInfo
	for rows.Next() {
		var info store.SnapshotInfo
		var createdAt string
		if err := rows.Scan(&info.ID, &createdAt, &info.Documents, &info.Tokens, &info.TermCount); err != nil {
			return nil, err
		}
		info.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// TopTerms returns up to k terms ordered by descending total count.
func (s *sqliteStore) TopTerms(ctx context.Context, id string, k int) ([]store.TermRow, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM snapshots WHERE id = ?)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: snapshot %s", internalerr.ErrNotFound, id)
	}

	query := `
		SELECT term, term_id, term_count, doc_count
		FROM snapshot_terms WHERE snapshot_id = ?
		ORDER BY term_count DESC, term_id`
	args := []any{id}
	if k > 0 {
		query += " LIMIT ?"
		args = append(args, k)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.TermRow
	for rows.Next() {
		var row store.TermRow
		if err := rows.Scan(&row.Term, &row.TermID, &row.TermCount, &row.DocCount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
