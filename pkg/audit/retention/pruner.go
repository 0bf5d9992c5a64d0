package retention

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pagecraft-hq/callisto/pkg/audit"
	"pagecraft-hq/callisto/pkg/telemetry/logging"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to retain audit records.
	// 0 means keep records forever (no age-based pruning).
	RetentionDays int

	// PruneSchedule is a cron expression for scheduling pruning.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables the scheduler.
	PruneSchedule string

	// MaxRecords is the maximum number of records to keep.
	// 0 means unlimited.
	MaxRecords int64
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: 90,
		PruneSchedule: "0 3 * * *",
		MaxRecords:    0,
	}
}

// Pruner enforces retention policy on the audit trail.
type Pruner struct {
	storage   audit.Storage
	config    *Config
	logger    *logging.Logger
	scheduler *Scheduler
}

// NewPruner creates a new retention pruner.
func NewPruner(storage audit.Storage, config *Config, logger *logging.Logger) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logging.Nop()
	}

	pruner := &Pruner{
		storage: storage,
		config:  config,
		logger:  logger.With("component", "audit.retention"),
	}
	pruner.scheduler = NewScheduler(pruner, logger)

	return pruner
}

// Prune deletes audit records older than the retention period or exceeding
// the max record count. Both phases can run in one call. Returns the total
// number of records deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.RetentionDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age: %w", err)
		}
		totalDeleted += deleted
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count: %w", err)
		}
		totalDeleted += deleted
	}

	if totalDeleted > 0 {
		p.logger.Info("Audit pruning completed",
			"deleted", totalDeleted,
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	} else {
		p.logger.Debug("Audit pruning completed, nothing to delete")
	}

	return totalDeleted, nil
}

// pruneByAge deletes records older than the retention period.
func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)
	return p.storage.Delete(ctx, &audit.Query{EndTime: &cutoff})
}

// pruneByCount deletes the oldest records when the total exceeds
// MaxRecords.
func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, &audit.Query{})
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	if count <= p.config.MaxRecords {
		return 0, nil
	}

	records, err := p.storage.Query(ctx, &audit.Query{})
	if err != nil {
		return 0, fmt.Errorf("query records: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].RecordedAt.Before(records[j].RecordedAt)
	})

	toDelete := len(records) - int(p.config.MaxRecords)
	if toDelete <= 0 {
		return 0, nil
	}

	// Delete everything up to and including the newest record slated for
	// removal. Records sharing that exact timestamp go with it.
	cutoff := records[toDelete-1].RecordedAt
	return p.storage.Delete(ctx, &audit.Query{EndTime: &cutoff})
}

// Start starts the automatic pruning scheduler.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the automatic pruning scheduler.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
