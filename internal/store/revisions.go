package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/relmap/internal/model"
)

// ErrNotFound is returned when a revision lookup matches nothing.
var ErrNotFound = errors.New("revision not found")

// Revision is one recorded rendering of a schema in a dialect.
type Revision struct {
	Seq         int64          `json:"seq"`
	ID          string         `json:"id"`
	Fingerprint string         `json:"fingerprint"`
	Dialect     string         `json:"dialect"`
	DDL         string         `json:"ddl"`
	TableCount  int            `json:"table_count"`
	Tables      []TableSummary `json:"tables"`
}

// TableSummary describes one table of a revision.
type TableSummary struct {
	Name   string `json:"name"`
	Checks int    `json:"checks"`
}

// NewRevision builds an unrecorded revision for s.
func NewRevision(fingerprint, dialect, ddl string, s *model.Schema) Revision {
	tables := make([]TableSummary, len(s.Tables))
	for i, t := range s.Tables {
		tables[i] = TableSummary{Name: t.Name, Checks: len(t.Checks)}
	}
	return Revision{
		Fingerprint: fingerprint,
		Dialect:     dialect,
		DDL:         ddl,
		TableCount:  len(tables),
		Tables:      tables,
	}
}

// RecordRevision stores rev unless a revision with the same fingerprint and
// dialect already exists. It returns the stored revision and whether it was
// newly created. Seq is assigned by the database, ID is generated when empty
// and TableCount is taken from Tables.
func (s *Store) RecordRevision(ctx context.Context, rev Revision) (Revision, bool, error) {
	if rev.Fingerprint == "" || rev.Dialect == "" {
		return Revision{}, false, fmt.Errorf("record revision: fingerprint and dialect are required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, false, fmt.Errorf("record revision: begin: %w", err)
	}
	defer tx.Rollback()

	existing, err := scanRevision(tx.QueryRowContext(ctx, `
		SELECT seq, id, fingerprint, dialect, ddl, table_count
		FROM revisions
		WHERE fingerprint = ? AND dialect = ?
	`, rev.Fingerprint, rev.Dialect))
	switch {
	case err == nil:
		existing.Tables, err = readTables(ctx, tx, existing.ID)
		if err != nil {
			return Revision{}, false, err
		}
		return existing, false, nil
	case !errors.Is(err, ErrNotFound):
		return Revision{}, false, fmt.Errorf("record revision: %w", err)
	}

	if rev.ID == "" {
		rev.ID = s.ids.Generate()
	}
	rev.TableCount = len(rev.Tables)

	res, err := tx.ExecContext(ctx, `
		INSERT INTO revisions (id, fingerprint, dialect, ddl, table_count)
		VALUES (?, ?, ?, ?, ?)
	`, rev.ID, rev.Fingerprint, rev.Dialect, rev.DDL, rev.TableCount)
	if err != nil {
		return Revision{}, false, fmt.Errorf("record revision: insert: %w", err)
	}
	if rev.Seq, err = res.LastInsertId(); err != nil {
		return Revision{}, false, fmt.Errorf("record revision: seq: %w", err)
	}

	for i, t := range rev.Tables {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO revision_tables (revision_id, position, name, check_count)
			VALUES (?, ?, ?, ?)
		`, rev.ID, i, t.Name, t.Checks)
		if err != nil {
			return Revision{}, false, fmt.Errorf("record revision: table %s: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Revision{}, false, fmt.Errorf("record revision: commit: %w", err)
	}
	slog.Info("revision recorded", "id", rev.ID, "dialect", rev.Dialect, "tables", rev.TableCount)
	if rev.Tables == nil {
		rev.Tables = []TableSummary{}
	}
	return rev, true, nil
}

// GetRevision returns the revision with the given ID.
func (s *Store) GetRevision(ctx context.Context, id string) (Revision, error) {
	rev, err := scanRevision(s.db.QueryRowContext(ctx, `
		SELECT seq, id, fingerprint, dialect, ddl, table_count
		FROM revisions
		WHERE id = ?
	`, id))
	if err != nil {
		return Revision{}, fmt.Errorf("get revision %s: %w", id, err)
	}
	if rev.Tables, err = readTables(ctx, s.db, rev.ID); err != nil {
		return Revision{}, err
	}
	return rev, nil
}

// LatestRevision returns the most recently recorded revision for dialect.
func (s *Store) LatestRevision(ctx context.Context, dialect string) (Revision, error) {
	rev, err := scanRevision(s.db.QueryRowContext(ctx, `
		SELECT seq, id, fingerprint, dialect, ddl, table_count
		FROM revisions
		WHERE dialect = ?
		ORDER BY seq DESC
		LIMIT 1
	`, dialect))
	if err != nil {
		return Revision{}, fmt.Errorf("latest revision for %s: %w", dialect, err)
	}
	if rev.Tables, err = readTables(ctx, s.db, rev.ID); err != nil {
		return Revision{}, err
	}
	return rev, nil
}

// ListRevisions returns every revision ordered by seq ASC.
// Returns an empty slice (not nil) if the catalog is empty.
func (s *Store) ListRevisions(ctx context.Context) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, fingerprint, dialect, ddl, table_count
		FROM revisions
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer rows.Close()

	revisions := []Revision{}
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}
	// Close before issuing further queries on the single connection.
	rows.Close()

	for i := range revisions {
		if revisions[i].Tables, err = readTables(ctx, s.db, revisions[i].ID); err != nil {
			return nil, err
		}
	}
	return revisions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRevision(row rowScanner) (Revision, error) {
	var rev Revision
	err := row.Scan(&rev.Seq, &rev.ID, &rev.Fingerprint, &rev.Dialect, &rev.DDL, &rev.TableCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Revision{}, ErrNotFound
	}
	if err != nil {
		return Revision{}, fmt.Errorf("scan revision: %w", err)
	}
	return rev, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func readTables(ctx context.Context, q querier, revisionID string) ([]TableSummary, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT name, check_count
		FROM revision_tables
		WHERE revision_id = ?
		ORDER BY position ASC
	`, revisionID)
	if err != nil {
		return nil, fmt.Errorf("query revision tables: %w", err)
	}
	defer rows.Close()

	tables := []TableSummary{}
	for rows.Next() {
		var t TableSummary
		if err := rows.Scan(&t.Name, &t.Checks); err != nil {
			return nil, fmt.Errorf("scan revision table: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revision tables: %w", err)
	}
	return tables, nil
}
