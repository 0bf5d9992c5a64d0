package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"pagecraft-hq/callisto/pkg/library"
	"pagecraft-hq/callisto/pkg/placeholder"
	"pagecraft-hq/callisto/pkg/template/ast"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/library.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements library.Store using SQLite. The document and
// its placeholder registry are stored as JSON columns; lookups go by the
// template ID primary key, so structured columns buy nothing here.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
}

// NewSQLiteStore creates a new SQLite storage backend.
// It initializes the database schema and enables WAL mode if configured.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, library.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return library.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return library.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return library.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return library.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return library.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return library.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Put stores a template, replacing any existing template with the same ID.
func (s *SQLiteStore) Put(ctx context.Context, tmpl *library.Template) error {
	document, err := json.Marshal(tmpl.Document)
	if err != nil {
		return library.NewStorageError("sqlite", "marshal_document", err)
	}
	placeholders, err := json.Marshal(tmpl.Placeholders)
	if err != nil {
		return library.NewStorageError("sqlite", "marshal_placeholders", err)
	}

	now := time.Now()
	query := `
		INSERT INTO templates (
			id, revision, name, source_path, content_hash,
			document, placeholders, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			revision = excluded.revision,
			name = excluded.name,
			source_path = excluded.source_path,
			content_hash = excluded.content_hash,
			document = excluded.document,
			placeholders = excluded.placeholders,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		tmpl.ID, tmpl.Revision, tmpl.Name, tmpl.SourcePath, tmpl.ContentHash,
		string(document), string(placeholders), now, now,
	)
	if err != nil {
		return library.NewStorageError("sqlite", "put", err)
	}

	return nil
}

// Get retrieves a template by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*library.Template, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, revision, name, source_path, content_hash,
		       document, placeholders, created_at, updated_at
		FROM templates WHERE id = ?
	`, id)

	tmpl, err := scanTemplate(row.Scan)
	if err == sql.ErrNoRows {
		return nil, library.ErrNotFound
	}
	if err != nil {
		return nil, library.NewStorageError("sqlite", "get", err)
	}
	return tmpl, nil
}

// List returns all stored templates ordered by ID.
func (s *SQLiteStore) List(ctx context.Context) ([]*library.Template, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, revision, name, source_path, content_hash,
		       document, placeholders, created_at, updated_at
		FROM templates ORDER BY id
	`)
	if err != nil {
		return nil, library.NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	templates := []*library.Template{}
	for rows.Next() {
		tmpl, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, library.NewStorageError("sqlite", "scan", err)
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, library.NewStorageError("sqlite", "list", err)
	}

	return templates, nil
}

// Delete removes a template by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return library.NewStorageError("sqlite", "delete", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return library.NewStorageError("sqlite", "delete", err)
	}
	if affected == 0 {
		return library.ErrNotFound
	}
	return nil
}

// Count returns the number of stored templates.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM templates`).Scan(&count)
	if err != nil {
		return 0, library.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Ping verifies the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return library.NewStorageError("sqlite", "ping", err)
	}
	return nil
}

// Close releases resources held by the storage backend.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return library.NewStorageError("sqlite", "close", err)
	}
	return nil
}

// scanTemplate scans one row into a Template using the provided scan
// function, shared between Get and List.
func scanTemplate(scan func(dest ...any) error) (*library.Template, error) {
	var tmpl library.Template
	var name, sourcePath sql.NullString
	var document, placeholders string

	err := scan(
		&tmpl.ID, &tmpl.Revision, &name, &sourcePath, &tmpl.ContentHash,
		&document, &placeholders, &tmpl.CreatedAt, &tmpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	tmpl.Name = name.String
	tmpl.SourcePath = sourcePath.String

	tmpl.Document = &ast.Document{}
	if err := json.Unmarshal([]byte(document), tmpl.Document); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	tmpl.Placeholders = &placeholder.TemplatePlaceholders{}
	if err := json.Unmarshal([]byte(placeholders), tmpl.Placeholders); err != nil {
		return nil, fmt.Errorf("unmarshal placeholders: %w", err)
	}

	return &tmpl, nil
}
