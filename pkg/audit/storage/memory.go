package storage

import (
	"context"
	"sort"
	"sync"

	"pagecraft-hq/callisto/pkg/audit"
)

// MemoryStorage is an in-memory implementation of audit.Storage.
// Records are lost on restart; it exists for tests and for deployments
// that only want the trail queryable while the process runs.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []*audit.Record
}

// NewMemoryStorage creates a new in-memory audit storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store persists an audit record.
func (s *MemoryStorage) Store(ctx context.Context, record *audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *record
	s.records = append(s.records, &stored)
	return nil
}

// Query retrieves records matching the filters, newest first.
func (s *MemoryStorage) Query(ctx context.Context, query *audit.Query) ([]*audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []*audit.Record{}
	for _, rec := range s.records {
		if query == nil || query.Matches(rec) {
			copied := *rec
			matched = append(matched, &copied)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].RecordedAt.After(matched[j].RecordedAt)
	})

	if query != nil {
		matched = paginate(matched, query.Offset, query.Limit)
	}
	return matched, nil
}

// Count returns the number of records matching the filters.
func (s *MemoryStorage) Count(ctx context.Context, query *audit.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, rec := range s.records {
		if query == nil || query.Matches(rec) {
			count++
		}
	}
	return count, nil
}

// Delete removes records matching the filters.
func (s *MemoryStorage) Delete(ctx context.Context, query *audit.Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	var deleted int64
	for _, rec := range s.records {
		if query == nil || query.Matches(rec) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return deleted, nil
}

// Close releases the storage's contents.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

// paginate applies offset and limit to a result slice.
func paginate(records []*audit.Record, offset, limit int) []*audit.Record {
	if offset > 0 {
		if offset >= len(records) {
			return []*audit.Record{}
		}
		records = records[offset:]
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}
