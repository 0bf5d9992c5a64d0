package audit

import (
	"context"
	"time"
)

// Operation is the kind of engine operation an audit record describes.
type Operation string

const (
	OperationExtract    Operation = "extract"
	OperationSubstitute Operation = "substitute"
	OperationReload     Operation = "reload"
)

// Record is one audit trail entry for an engine operation.
// Records carry counts and outcomes, never placeholder values: substitution
// values routinely contain contact details that do not belong in the trail.
type Record struct {
	// ID is a UUID assigned by the recorder.
	ID string `json:"id"`

	// RequestID ties the record to the originating API request, when there
	// was one. Empty for CLI and reload operations.
	RequestID string `json:"request_id,omitempty"`

	// Operation is the operation performed.
	Operation Operation `json:"operation"`

	// TemplateID identifies the template operated on.
	TemplateID string `json:"template_id"`

	// TemplateRevision is the library revision of the template, if known.
	TemplateRevision string `json:"template_revision,omitempty"`

	// PlaceholderCount is the number of unique placeholders involved.
	PlaceholderCount int `json:"placeholder_count"`

	// ValuesProvided is the number of values supplied to a substitution.
	ValuesProvided int `json:"values_provided,omitempty"`

	// UnresolvedCount is the number of tokens left unresolved after a
	// substitution.
	UnresolvedCount int `json:"unresolved_count,omitempty"`

	// CacheHit reports whether an extraction was served from cache.
	CacheHit bool `json:"cache_hit,omitempty"`

	// Duration is how long the operation took.
	Duration time.Duration `json:"duration"`

	// Status is "ok" or "error".
	Status string `json:"status"`

	// Error is the error message for failed operations.
	Error string `json:"error,omitempty"`

	// RecordedAt is when the record was created.
	RecordedAt time.Time `json:"recorded_at"`
}

// Query defines filter parameters for querying audit records.
type Query struct {
	// StartTime and EndTime bound RecordedAt, both inclusive.
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// Operation filters by operation kind.
	Operation Operation `json:"operation,omitempty"`

	// TemplateID filters by template.
	TemplateID string `json:"template_id,omitempty"`

	// Status filters by outcome ("ok", "error").
	Status string `json:"status,omitempty"`

	// Limit and Offset paginate results. Zero Limit means no limit.
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Storage defines the interface for audit storage backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists an audit record.
	Store(ctx context.Context, record *Record) error

	// Query retrieves records matching the filters, newest first.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the filters and returns how many
	// were removed. Used by retention enforcement.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}

// Matches reports whether the record satisfies the query's filters.
// Pagination fields are ignored.
func (q *Query) Matches(r *Record) bool {
	if q.StartTime != nil && r.RecordedAt.Before(*q.StartTime) {
		return false
	}
	if q.EndTime != nil && r.RecordedAt.After(*q.EndTime) {
		return false
	}
	if q.Operation != "" && r.Operation != q.Operation {
		return false
	}
	if q.TemplateID != "" && r.TemplateID != q.TemplateID {
		return false
	}
	if q.Status != "" && r.Status != q.Status {
		return false
	}
	return true
}
