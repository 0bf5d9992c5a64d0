package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pagecraft-hq/callisto/pkg/telemetry/logging"
)

// Config contains configuration for the audit recorder.
type Config struct {
	// Enabled enables audit recording.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 1000
	AsyncBuffer int

	// WriteTimeout is the timeout for writing a record to storage.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		AsyncBuffer:  1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder writes audit records asynchronously so engine operations never
// block on storage. A full buffer drops the record rather than stalling
// the caller.
type Recorder struct {
	storage    Storage
	config     *Config
	logger     *logging.Logger
	recordChan chan *Record
	wg         sync.WaitGroup
	done       chan struct{}
	closeOnce  sync.Once
}

// NewRecorder creates a recorder over the given storage backend and starts
// its background writer.
func NewRecorder(storage Storage, config *Config, logger *logging.Logger) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logging.Nop()
	}

	r := &Recorder{
		storage:    storage,
		config:     config,
		logger:     logger,
		recordChan: make(chan *Record, config.AsyncBuffer),
		done:       make(chan struct{}),
	}

	r.wg.Add(1)
	go r.worker()

	return r
}

// RecordExtraction records one extraction operation.
func (r *Recorder) RecordExtraction(ctx context.Context, templateID, revision string, placeholders int, cacheHit bool, duration time.Duration) {
	r.enqueue(ctx, &Record{
		Operation:        OperationExtract,
		TemplateID:       templateID,
		TemplateRevision: revision,
		PlaceholderCount: placeholders,
		CacheHit:         cacheHit,
		Duration:         duration,
		Status:           "ok",
	})
}

// RecordSubstitution records one substitution operation.
func (r *Recorder) RecordSubstitution(ctx context.Context, templateID, revision string, valuesProvided, unresolved int, duration time.Duration) {
	r.enqueue(ctx, &Record{
		Operation:        OperationSubstitute,
		TemplateID:       templateID,
		TemplateRevision: revision,
		ValuesProvided:   valuesProvided,
		UnresolvedCount:  unresolved,
		Duration:         duration,
		Status:           "ok",
	})
}

// RecordReload records one template library reload.
func (r *Recorder) RecordReload(ctx context.Context, loaded int, duration time.Duration, reloadErr error) {
	rec := &Record{
		Operation:        OperationReload,
		PlaceholderCount: 0,
		ValuesProvided:   loaded,
		Duration:         duration,
		Status:           "ok",
	}
	if reloadErr != nil {
		rec.Status = "error"
		rec.Error = reloadErr.Error()
	}
	r.enqueue(ctx, rec)
}

// Record enqueues an arbitrary record, filling ID, request ID, and
// timestamp. It returns immediately; a full buffer drops the record.
func (r *Recorder) Record(ctx context.Context, rec *Record) {
	r.enqueue(ctx, rec)
}

func (r *Recorder) enqueue(ctx context.Context, rec *Record) {
	if !r.config.Enabled {
		return
	}

	rec.ID = uuid.NewString()
	rec.RecordedAt = time.Now()
	if rec.RequestID == "" {
		rec.RequestID = logging.GetRequestID(ctx)
	}

	select {
	case r.recordChan <- rec:
	case <-r.done:
		r.logger.Warn("Recorder shutting down, dropping audit record",
			"record_id", rec.ID,
			"operation", rec.Operation,
		)
	default:
		r.logger.Error("Audit buffer full, dropping record",
			"record_id", rec.ID,
			"operation", rec.Operation,
			"buffer", r.config.AsyncBuffer,
		)
	}
}

// Close drains the buffer and waits for pending writes to complete.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
	})
	return nil
}

// worker drains the record channel and writes records to storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case rec := <-r.recordChan:
			r.writeRecord(rec)

		case <-r.done:
			for {
				select {
				case rec := <-r.recordChan:
					r.writeRecord(rec)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) writeRecord(rec *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	if err := r.storage.Store(ctx, rec); err != nil {
		r.logger.Error("Failed to store audit record",
			"record_id", rec.ID,
			"operation", rec.Operation,
			"error", err,
		)
		return
	}

	r.logger.Debug("Audit record written",
		"record_id", rec.ID,
		"operation", rec.Operation,
		"template_id", rec.TemplateID,
	)
}
