package manager

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pagecraft-hq/callisto/pkg/library"
	"pagecraft-hq/callisto/pkg/placeholder/engine"
	"pagecraft-hq/callisto/pkg/telemetry/logging"
	"pagecraft-hq/callisto/pkg/template/parser"
)

// Observer receives library lifecycle outcomes for metrics.
// Implementations must be safe for concurrent use.
type Observer interface {
	UpdateTemplateCount(count int)
	RecordLibraryReload(success bool)
}

type nopObserver struct{}

func (nopObserver) UpdateTemplateCount(int)  {}
func (nopObserver) RecordLibraryReload(bool) {}

// Manager loads template exports from disk, runs placeholder extraction,
// and keeps the results in a library.Store. A template's registry is
// computed once at load time; consumers read it from the store.
type Manager struct {
	store        library.Store
	parser       *parser.Parser
	engine       *engine.Engine
	logger       *logging.Logger
	observer     Observer
	templatesDir string
}

// New creates a manager over the given store with default collaborators.
func New(store library.Store) *Manager {
	return &Manager{
		store:    store,
		parser:   parser.NewParser(),
		engine:   engine.New(),
		logger:   logging.Nop(),
		observer: nopObserver{},
	}
}

// WithParser sets the template parser.
func (m *Manager) WithParser(p *parser.Parser) *Manager {
	m.parser = p
	return m
}

// WithEngine sets the placeholder engine.
func (m *Manager) WithEngine(e *engine.Engine) *Manager {
	m.engine = e
	return m
}

// WithLogger sets the logger.
func (m *Manager) WithLogger(logger *logging.Logger) *Manager {
	m.logger = logger
	return m
}

// WithObserver sets the lifecycle observer.
func (m *Manager) WithObserver(obs Observer) *Manager {
	m.observer = obs
	return m
}

// WithTemplatesDir sets the directory Reload scans.
func (m *Manager) WithTemplatesDir(dir string) *Manager {
	m.templatesDir = dir
	return m
}

// LoadFile parses one template export, extracts its placeholders, and
// stores the result. The template ID comes from the export, falling back
// to the file's base name.
func (m *Manager) LoadFile(ctx context.Context, path string) (*library.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template file: %w", err)
	}

	doc, err := m.parser.ParseBytes(data, path)
	if err != nil {
		return nil, err
	}
	if doc.TemplateID == "" {
		base := filepath.Base(path)
		doc.TemplateID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	name := doc.Title
	if name == "" {
		name = doc.TemplateID
	}

	hash := sha256.Sum256(data)
	tmpl := &library.Template{
		ID:           doc.TemplateID,
		Revision:     uuid.NewString(),
		Name:         name,
		SourcePath:   path,
		ContentHash:  hex.EncodeToString(hash[:]),
		Document:     doc,
		Placeholders: m.engine.Extract(doc),
	}

	if err := m.store.Put(ctx, tmpl); err != nil {
		return nil, err
	}

	m.logger.InfoContext(ctx, "Template loaded",
		"template_id", tmpl.ID,
		"revision", tmpl.Revision,
		"placeholders", tmpl.Placeholders.Count(),
		"path", path,
	)

	return tmpl, nil
}

// LoadDirectory loads every .json export in dir. Files that fail to parse
// are logged and skipped; the rest still load. It returns the number of
// templates loaded, and an error only when the directory itself cannot
// be read.
func (m *Manager) LoadDirectory(ctx context.Context, dir string) (int, error) {
	start := time.Now()

	entries, err := os.ReadDir(dir)
	if err != nil {
		m.observer.RecordLibraryReload(false)
		return 0, fmt.Errorf("read templates directory: %w", err)
	}

	loaded := 0
	failed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.ToLower(filepath.Ext(name)) != ".json" {
			continue
		}

		if _, err := m.LoadFile(ctx, filepath.Join(dir, name)); err != nil {
			m.logger.WarnContext(ctx, "Skipping template that failed to load",
				"path", filepath.Join(dir, name),
				"error", err,
			)
			failed++
			continue
		}
		loaded++
	}

	count, err := m.store.Count(ctx)
	if err == nil {
		m.observer.UpdateTemplateCount(count)
	}
	m.observer.RecordLibraryReload(failed == 0)

	m.logger.InfoContext(ctx, "Template directory loaded",
		"dir", dir,
		"loaded", loaded,
		"failed", failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return loaded, nil
}

// Reload re-scans the configured templates directory.
func (m *Manager) Reload(ctx context.Context) (int, error) {
	if m.templatesDir == "" {
		return 0, fmt.Errorf("no templates directory configured")
	}
	return m.LoadDirectory(ctx, m.templatesDir)
}

// Get returns a stored template by ID.
func (m *Manager) Get(ctx context.Context, id string) (*library.Template, error) {
	return m.store.Get(ctx, id)
}

// List returns all stored templates ordered by ID.
func (m *Manager) List(ctx context.Context) ([]*library.Template, error) {
	return m.store.List(ctx)
}

// Delete removes a template by ID and updates the template count.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	if count, err := m.store.Count(ctx); err == nil {
		m.observer.UpdateTemplateCount(count)
	}
	return nil
}

// Count returns the number of stored templates.
func (m *Manager) Count(ctx context.Context) (int, error) {
	return m.store.Count(ctx)
}

// Engine exposes the placeholder engine, for substitution against
// stored templates.
func (m *Manager) Engine() *engine.Engine {
	return m.engine
}
