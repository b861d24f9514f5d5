package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"focusloop/internal/core/engine"
	"focusloop/internal/core/model"
)

func TestTimerStateRoundTripStopped(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "timer_state.yaml")
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	snapshot := engine.Snapshot{
		Mode:           model.ModeShortBreak,
		Remaining:      90 * time.Second,
		Running:        false,
		CompletedFocus: 3,
	}

	if err := SaveTimerStateFile(path, snapshot, "task-1", now); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A stopped snapshot restores identically no matter how much later.
	restored, ok, err := LoadTimerStateFile(path, now.Add(48*time.Hour))
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if restored.Mode != model.ModeShortBreak {
		t.Errorf("expected short_break, got %s", restored.Mode)
	}
	if restored.Remaining != 90*time.Second {
		t.Errorf("expected 90s remaining, got %s", restored.Remaining)
	}
	if restored.Running {
		t.Error("stopped snapshot restored as running")
	}
	if restored.CompletedFocus != 3 || restored.TaskID != "task-1" {
		t.Errorf("metadata lost: %+v", restored)
	}
}

func TestTimerStateRunningDiscountsDowntime(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "timer_state.yaml")
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	snapshot := engine.Snapshot{
		Mode:      model.ModeFocus,
		Remaining: 10 * time.Minute,
		Running:   true,
	}

	if err := SaveTimerStateFile(path, snapshot, "", now); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Four minutes pass while the process is down.
	restored, ok, err := LoadTimerStateFile(path, now.Add(4*time.Minute))
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !restored.Running {
		t.Error("running snapshot restored as stopped")
	}
	if restored.Remaining != 6*time.Minute {
		t.Errorf("expected 6m remaining after downtime, got %s", restored.Remaining)
	}
}

func TestTimerStateRunningExpiredClampsToZero(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "timer_state.yaml")
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	snapshot := engine.Snapshot{
		Mode:      model.ModeFocus,
		Remaining: time.Minute,
		Running:   true,
	}

	if err := SaveTimerStateFile(path, snapshot, "", now); err != nil {
		t.Fatalf("save: %v", err)
	}

	restored, ok, err := LoadTimerStateFile(path, now.Add(time.Hour))
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if restored.Remaining != 0 {
		t.Errorf("expected expired session clamped to zero, got %s", restored.Remaining)
	}
}

func TestTimerStateMissingFile(t *testing.T) {
	t.Parallel()

	_, ok, err := LoadTimerStateFile(filepath.Join(t.TempDir(), "timer_state.yaml"), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("missing file reported a snapshot")
	}
}

func TestTimerStateUnknownSchemaDiscarded(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "timer_state.yaml")
	raw := []byte("schema_version: 99\nmode: focus\nremaining_seconds: 10\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	_, ok, err := LoadTimerStateFile(path, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("snapshot from a newer schema should be discarded")
	}
}

func TestTimerStateUnknownModeDiscarded(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "timer_state.yaml")
	raw := []byte("schema_version: 1\nmode: nap\nremaining_seconds: 10\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	_, ok, err := LoadTimerStateFile(path, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("snapshot with an unknown mode should be discarded")
	}
}
