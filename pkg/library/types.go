package library

import (
	"context"
	"time"

	"pagecraft-hq/callisto/pkg/placeholder"
	"pagecraft-hq/callisto/pkg/template/ast"
)

// Template is one stored template together with its extracted placeholder
// registry. Placeholders are extracted once at load time and persisted
// alongside the document, so serving a registry never re-runs the pipeline.
type Template struct {
	// ID is the template identifier, usually the source file's base name.
	ID string `json:"id"`

	// Revision uniquely identifies this load of the template. A new
	// revision is assigned every time the template is stored.
	Revision string `json:"revision"`

	// Name is a human-readable title, when the source carries one.
	Name string `json:"name,omitempty"`

	// SourcePath is where the template was loaded from, when known.
	SourcePath string `json:"source_path,omitempty"`

	// ContentHash is the SHA-256 hash of the document's JSON form.
	ContentHash string `json:"content_hash"`

	// Document is the parsed template body.
	Document *ast.Document `json:"document"`

	// Placeholders is the extracted placeholder registry.
	Placeholders *placeholder.TemplatePlaceholders `json:"placeholders"`

	// CreatedAt is when the template was first stored.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the template was last stored.
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists templates. Implementations must be safe for concurrent
// use.
type Store interface {
	// Put stores a template, replacing any existing template with the
	// same ID. CreatedAt is preserved across replacements.
	Put(ctx context.Context, tmpl *Template) error

	// Get retrieves a template by ID. Returns ErrNotFound if no template
	// with that ID exists.
	Get(ctx context.Context, id string) (*Template, error)

	// List returns all stored templates ordered by ID.
	List(ctx context.Context) ([]*Template, error)

	// Delete removes a template by ID. Returns ErrNotFound if no template
	// with that ID exists.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored templates.
	Count(ctx context.Context) (int, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}
