package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"pagecraft-hq/callisto/pkg/audit"
)

// SQLiteConfig contains configuration for the SQLite audit backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        "data/audit.db",
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteStorage implements audit.Storage using SQLite. The pure-Go driver
// keeps the audit trail free of cgo, which matters for the static builds
// the CLI ships as.
type SQLiteStorage struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS audit_records (
	id                 TEXT PRIMARY KEY,
	request_id         TEXT,
	operation          TEXT NOT NULL,
	template_id        TEXT,
	template_revision  TEXT,
	placeholder_count  INTEGER NOT NULL DEFAULT 0,
	values_provided    INTEGER NOT NULL DEFAULT 0,
	unresolved_count   INTEGER NOT NULL DEFAULT 0,
	cache_hit          INTEGER NOT NULL DEFAULT 0,
	duration_ns        INTEGER NOT NULL DEFAULT 0,
	status             TEXT NOT NULL,
	error              TEXT,
	recorded_at        INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_recorded_at ON audit_records(recorded_at);
CREATE INDEX IF NOT EXISTS idx_audit_template_id ON audit_records(template_id);
CREATE INDEX IF NOT EXISTS idx_audit_operation ON audit_records(operation);
`

// NewSQLiteStorage creates a new SQLite audit backend and initializes
// its schema.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		config.Path, config.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "open", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, audit.NewStorageError("sqlite", "create_schema", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Store persists an audit record.
func (s *SQLiteStorage) Store(ctx context.Context, record *audit.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_records (
			id, request_id, operation, template_id, template_revision,
			placeholder_count, values_provided, unresolved_count,
			cache_hit, duration_ns, status, error, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID, record.RequestID, string(record.Operation),
		record.TemplateID, record.TemplateRevision,
		record.PlaceholderCount, record.ValuesProvided, record.UnresolvedCount,
		boolToInt(record.CacheHit), record.Duration.Nanoseconds(),
		record.Status, record.Error, record.RecordedAt.UnixNano(),
	)
	if err != nil {
		return audit.NewStorageError("sqlite", "store", err)
	}
	return nil
}

// Query retrieves records matching the filters, newest first.
func (s *SQLiteStorage) Query(ctx context.Context, query *audit.Query) ([]*audit.Record, error) {
	where, args := buildWhere(query)

	sqlQuery := `
		SELECT id, request_id, operation, template_id, template_revision,
		       placeholder_count, values_provided, unresolved_count,
		       cache_hit, duration_ns, status, error, recorded_at
		FROM audit_records` + where + ` ORDER BY recorded_at DESC`

	if query != nil && query.Limit > 0 {
		sqlQuery += " LIMIT ?"
		args = append(args, query.Limit)
		if query.Offset > 0 {
			sqlQuery += " OFFSET ?"
			args = append(args, query.Offset)
		}
	} else if query != nil && query.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET
		sqlQuery += " LIMIT -1 OFFSET ?"
		args = append(args, query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*audit.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, audit.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, audit.NewStorageError("sqlite", "query", err)
	}
	return records, nil
}

// Count returns the number of records matching the filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *audit.Query) (int64, error) {
	where, args := buildWhere(query)

	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_records`+where, args...).Scan(&count)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Delete removes records matching the filters.
func (s *SQLiteStorage) Delete(ctx context.Context, query *audit.Query) (int64, error) {
	where, args := buildWhere(query)

	result, err := s.db.ExecContext(ctx, `DELETE FROM audit_records`+where, args...)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete", err)
	}
	return deleted, nil
}

// Close releases resources held by the backend.
func (s *SQLiteStorage) Close() error {
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	if err := s.db.Close(); err != nil {
		return audit.NewStorageError("sqlite", "close", err)
	}
	return nil
}

// buildWhere translates the query filters into a WHERE clause.
func buildWhere(query *audit.Query) (string, []any) {
	if query == nil {
		return "", nil
	}

	conditions := []string{}
	args := []any{}

	if query.StartTime != nil {
		conditions = append(conditions, "recorded_at >= ?")
		args = append(args, query.StartTime.UnixNano())
	}
	if query.EndTime != nil {
		conditions = append(conditions, "recorded_at <= ?")
		args = append(args, query.EndTime.UnixNano())
	}
	if query.Operation != "" {
		conditions = append(conditions, "operation = ?")
		args = append(args, string(query.Operation))
	}
	if query.TemplateID != "" {
		conditions = append(conditions, "template_id = ?")
		args = append(args, query.TemplateID)
	}
	if query.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, query.Status)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// scanRecord scans one row into a Record.
func scanRecord(rows *sql.Rows) (*audit.Record, error) {
	var rec audit.Record
	var requestID, templateID, revision, errMsg sql.NullString
	var operation, status string
	var cacheHit int
	var durationNS, recordedAt int64

	err := rows.Scan(
		&rec.ID, &requestID, &operation, &templateID, &revision,
		&rec.PlaceholderCount, &rec.ValuesProvided, &rec.UnresolvedCount,
		&cacheHit, &durationNS, &status, &errMsg, &recordedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.RequestID = requestID.String
	rec.Operation = audit.Operation(operation)
	rec.TemplateID = templateID.String
	rec.TemplateRevision = revision.String
	rec.CacheHit = cacheHit != 0
	rec.Duration = time.Duration(durationNS)
	rec.Status = status
	rec.Error = errMsg.String
	rec.RecordedAt = time.Unix(0, recordedAt)

	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
