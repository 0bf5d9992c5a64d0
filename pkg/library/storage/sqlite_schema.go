package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the templates table and its indexes.
const Schema = `
CREATE TABLE IF NOT EXISTS templates (
	id            TEXT PRIMARY KEY,
	revision      TEXT NOT NULL,
	name          TEXT,
	source_path   TEXT,
	content_hash  TEXT NOT NULL,
	document      TEXT NOT NULL,
	placeholders  TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_templates_content_hash ON templates(content_hash);
CREATE INDEX IF NOT EXISTS idx_templates_updated_at ON templates(updated_at);

CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);
`

// InsertSchemaVersion records the schema version, ignoring duplicates.
const InsertSchemaVersion = `INSERT OR IGNORE INTO schema_version (version) VALUES (?)`

// GetSchemaVersion reads the highest recorded schema version.
const GetSchemaVersion = `SELECT MAX(version) FROM schema_version`
