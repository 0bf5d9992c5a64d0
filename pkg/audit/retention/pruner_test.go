package retention

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"pagecraft-hq/callisto/pkg/audit"
	"pagecraft-hq/callisto/pkg/audit/storage"
)

func seedRecords(t *testing.T, s audit.Storage, ages ...time.Duration) {
	t.Helper()
	now := time.Now()
	for _, age := range ages {
		rec := &audit.Record{
			ID:         uuid.NewString(),
			Operation:  audit.OperationExtract,
			TemplateID: "hero",
			Status:     "ok",
			RecordedAt: now.Add(-age),
		}
		if err := s.Store(context.Background(), rec); err != nil {
			t.Fatalf("Store() error = %v", err)
		}
	}
}

func TestPruner_PruneByAge(t *testing.T) {
	s := storage.NewMemoryStorage()
	seedRecords(t, s,
		100*24*time.Hour,
		95*24*time.Hour,
		time.Hour,
	)

	p := NewPruner(s, &Config{RetentionDays: 90}, nil)
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	count, _ := s.Count(context.Background(), &audit.Query{})
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestPruner_PruneByCount(t *testing.T) {
	s := storage.NewMemoryStorage()
	seedRecords(t, s,
		5*time.Hour,
		4*time.Hour,
		3*time.Hour,
		2*time.Hour,
		time.Hour,
	)

	p := NewPruner(s, &Config{RetentionDays: 0, MaxRecords: 2}, nil)
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3 (oldest records)", deleted)
	}

	remaining, _ := s.Query(context.Background(), &audit.Query{})
	if len(remaining) != 2 {
		t.Fatalf("remaining = %d, want 2", len(remaining))
	}
	for _, rec := range remaining {
		if time.Since(rec.RecordedAt) > 3*time.Hour {
			t.Errorf("old record survived count pruning: %v", rec.RecordedAt)
		}
	}
}

func TestPruner_NothingToPrune(t *testing.T) {
	s := storage.NewMemoryStorage()
	seedRecords(t, s, time.Hour)

	p := NewPruner(s, &Config{RetentionDays: 90, MaxRecords: 10}, nil)
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}

func TestPruner_ZeroConfigKeepsEverything(t *testing.T) {
	s := storage.NewMemoryStorage()
	seedRecords(t, s, 365*24*time.Hour)

	p := NewPruner(s, &Config{RetentionDays: 0, MaxRecords: 0}, nil)
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0 with retention disabled", deleted)
	}
}

func TestScheduler_EmptyScheduleDisabled(t *testing.T) {
	s := storage.NewMemoryStorage()
	p := NewPruner(s, &Config{RetentionDays: 90, PruneSchedule: ""}, nil)

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if p.scheduler.IsRunning() {
		t.Error("scheduler should stay stopped with an empty schedule")
	}
	if p.NextPruning() != nil {
		t.Error("NextPruning() should be nil with no schedule")
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := storage.NewMemoryStorage()
	p := NewPruner(s, &Config{RetentionDays: 90, PruneSchedule: "not a cron"}, nil)

	if err := p.Start(context.Background()); err == nil {
		t.Error("Start() should reject an invalid cron expression")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := storage.NewMemoryStorage()
	p := NewPruner(s, &Config{RetentionDays: 90, PruneSchedule: "0 3 * * *"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !p.scheduler.IsRunning() {
		t.Error("scheduler should be running")
	}
	if p.NextPruning() == nil {
		t.Error("NextPruning() should be set")
	}

	p.Stop()
	if p.scheduler.IsRunning() {
		t.Error("scheduler should be stopped")
	}
}
