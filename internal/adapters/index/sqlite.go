// Package index provides the SQLite-backed dataset index.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/terrascope/gridcrs/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	location      TEXT NOT NULL,
	size          INTEGER NOT NULL DEFAULT 0,
	format        TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL,
	error         TEXT NOT NULL DEFAULT '',
	checksum      TEXT NOT NULL DEFAULT '',
	registered_at INTEGER NOT NULL,
	last_access   INTEGER NOT NULL,
	variables     TEXT NOT NULL DEFAULT '[]',
	crs           TEXT NOT NULL DEFAULT '[]',
	metadata      TEXT
);
CREATE INDEX IF NOT EXISTS idx_datasets_status ON datasets(status);
`

// SQLiteIndex implements the DatasetIndex port on a local SQLite file.
// Coordinate summaries and metadata are stored as JSON columns so the
// schema stays flat while the record shape can evolve.
type SQLiteIndex struct {
	mu sync.Mutex
	db *sql.DB
}

// New opens (or creates) the index database at path. Use ":memory:" for an
// ephemeral index.
func New(path string) (*SQLiteIndex, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, &domain.IndexError{Op: "open", Err: err}
	}

	// A single connection avoids SQLITE_BUSY on concurrent writes.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &domain.IndexError{Op: "open", Err: err}
	}

	return &SQLiteIndex{db: db}, nil
}

// Init prepares the index schema.
func (s *SQLiteIndex) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return &domain.IndexError{Op: "init", Err: err}
	}
	return nil
}

// Upsert inserts or replaces a dataset record.
func (s *SQLiteIndex) Upsert(ctx context.Context, rec *domain.DatasetRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	variables, err := json.Marshal(rec.Variables)
	if err != nil {
		return &domain.IndexError{Dataset: rec.ID, Op: "upsert", Err: err}
	}
	crs, err := json.Marshal(rec.CRS)
	if err != nil {
		return &domain.IndexError{Dataset: rec.ID, Op: "upsert", Err: err}
	}
	var metadata []byte
	if rec.Metadata != nil {
		if metadata, err = json.Marshal(rec.Metadata); err != nil {
			return &domain.IndexError{Dataset: rec.ID, Op: "upsert", Err: err}
		}
	}

	const query = `
		INSERT INTO datasets
			(id, name, location, size, format, status, error, checksum,
			 registered_at, last_access, variables, crs, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			location = excluded.location,
			size = excluded.size,
			format = excluded.format,
			status = excluded.status,
			error = excluded.error,
			checksum = excluded.checksum,
			registered_at = excluded.registered_at,
			last_access = excluded.last_access,
			variables = excluded.variables,
			crs = excluded.crs,
			metadata = excluded.metadata
	`
	_, err = s.db.ExecContext(ctx, query,
		rec.ID, rec.Name, rec.Location, rec.Size, rec.Format,
		string(rec.Status), rec.Error, rec.Checksum,
		rec.RegisteredAt.UnixNano(), rec.LastAccess.UnixNano(),
		string(variables), string(crs), nullableString(metadata),
	)
	if err != nil {
		return &domain.IndexError{Dataset: rec.ID, Op: "upsert", Err: err}
	}
	return nil
}

// Get returns a dataset record by ID.
func (s *SQLiteIndex) Get(ctx context.Context, id string) (*domain.DatasetRecord, error) {
	const query = selectColumns + ` FROM datasets WHERE id = ?`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDatasetNotFound
	}
	if err != nil {
		return nil, &domain.IndexError{Dataset: id, Op: "get", Err: err}
	}
	return rec, nil
}

// List returns all dataset records ordered by ID.
func (s *SQLiteIndex) List(ctx context.Context) ([]domain.DatasetRecord, error) {
	const query = selectColumns + ` FROM datasets ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &domain.IndexError{Op: "list", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var records []domain.DatasetRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, &domain.IndexError{Op: "list", Err: err}
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.IndexError{Op: "list", Err: err}
	}
	return records, nil
}

// Delete removes a dataset record.
func (s *SQLiteIndex) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, id); err != nil {
		return &domain.IndexError{Dataset: id, Op: "delete", Err: err}
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

const selectColumns = `
	SELECT id, name, location, size, format, status, error, checksum,
	       registered_at, last_access, variables, crs, metadata`

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.DatasetRecord, error) {
	var (
		rec                      domain.DatasetRecord
		status                   string
		registeredAt, lastAccess int64
		variables, crs           string
		metadata                 sql.NullString
	)

	err := row.Scan(
		&rec.ID, &rec.Name, &rec.Location, &rec.Size, &rec.Format,
		&status, &rec.Error, &rec.Checksum,
		&registeredAt, &lastAccess, &variables, &crs, &metadata,
	)
	if err != nil {
		return nil, err
	}

	rec.Status = domain.DatasetStatus(status)
	rec.RegisteredAt = time.Unix(0, registeredAt)
	rec.LastAccess = time.Unix(0, lastAccess)

	if err := json.Unmarshal([]byte(variables), &rec.Variables); err != nil {
		return nil, fmt.Errorf("decoding variables: %w", err)
	}
	if err := json.Unmarshal([]byte(crs), &rec.CRS); err != nil {
		return nil, fmt.Errorf("decoding crs: %w", err)
	}
	if metadata.Valid && metadata.String != "" {
		rec.Metadata = &domain.Metadata{}
		if err := json.Unmarshal([]byte(metadata.String), rec.Metadata); err != nil {
			return nil, fmt.Errorf("decoding metadata: %w", err)
		}
	}
	return &rec, nil
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
