package manager

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestDebouncer_Coalesces(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
	}

	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (burst should coalesce)", got)
	}

	d.Trigger(func() { calls.Add(1) })
	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2 after second burst", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d, want 0 after Stop", got)
	}
}

func TestFileWatcher_ShouldProcessEvent(t *testing.T) {
	fw := &FileWatcher{config: DefaultFileWatcherConfig()}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			name:  "json write",
			event: fsnotify.Event{Name: "templates/hero.json", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "json create",
			event: fsnotify.Event{Name: "templates/hero.json", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "chmod ignored",
			event: fsnotify.Event{Name: "templates/hero.json", Op: fsnotify.Chmod},
			want:  false,
		},
		{
			name:  "wrong extension",
			event: fsnotify.Event{Name: "templates/notes.txt", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "hidden file",
			event: fsnotify.Event{Name: "templates/.hero.json.swp", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "uppercase extension",
			event: fsnotify.Event{Name: "templates/HERO.JSON", Op: fsnotify.Write},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fw.shouldProcessEvent(tt.event); got != tt.want {
				t.Errorf("shouldProcessEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestFileWatcher_TriggersReload(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultFileWatcherConfig()
	cfg.Path = dir
	cfg.DebounceInterval = 20 * time.Millisecond

	fw, err := NewFileWatcher(cfg, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}

	var reloads atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchDone := make(chan error, 1)
	go func() {
		watchDone <- fw.Watch(ctx, func() error {
			reloads.Add(1)
			return nil
		})
	}()

	// Give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "hero.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for reloads.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("no reload triggered within deadline")
		case <-time.After(20 * time.Millisecond):
		}
	}

	if err := fw.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if err := <-watchDone; err != nil {
		t.Errorf("Watch() error = %v", err)
	}
}

func TestFileWatcher_DoubleWatch(t *testing.T) {
	cfg := DefaultFileWatcherConfig()
	cfg.Path = t.TempDir()

	fw, err := NewFileWatcher(cfg, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go fw.Watch(ctx, func() error { return nil })
	time.Sleep(100 * time.Millisecond)

	if err := fw.Watch(ctx, func() error { return nil }); err == nil {
		t.Error("second Watch() should fail while the first is running")
	}

	if err := fw.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
