package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"pagecraft-hq/callisto/pkg/library"
)

// MemoryStore is an in-memory implementation of library.Store.
// It is the default backend and is safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[string]*library.Template
}

// NewMemoryStore creates a new in-memory template store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates: make(map[string]*library.Template),
	}
}

// Put stores a template, replacing any existing template with the same ID.
func (s *MemoryStore) Put(ctx context.Context, tmpl *library.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	stored := *tmpl
	stored.UpdatedAt = now
	stored.CreatedAt = now
	if existing, ok := s.templates[tmpl.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	}

	s.templates[tmpl.ID] = &stored
	return nil
}

// Get retrieves a template by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*library.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tmpl, ok := s.templates[id]
	if !ok {
		return nil, library.ErrNotFound
	}
	copied := *tmpl
	return &copied, nil
}

// List returns all stored templates ordered by ID.
func (s *MemoryStore) List(ctx context.Context) ([]*library.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*library.Template, 0, len(s.templates))
	for _, tmpl := range s.templates {
		copied := *tmpl
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Delete removes a template by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[id]; !ok {
		return library.ErrNotFound
	}
	delete(s.templates, id)
	return nil
}

// Count returns the number of stored templates.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.templates), nil
}

// Ping always succeeds for the in-memory backend.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close releases the store's contents.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = make(map[string]*library.Template)
	return nil
}
