package engine

import (
	"testing"
	"time"

	"focusloop/internal/core/model"
)

type fakeIdleChecker struct {
	idle time.Duration
	err  error
}

func (checker fakeIdleChecker) IdleDuration() (time.Duration, error) {
	return checker.idle, checker.err
}

func waitForEvent(t *testing.T, events <-chan Event, wanted EventType, timeout time.Duration) Event {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				t.Fatalf("event channel closed while waiting for %s", wanted)
			}
			if event.Type == wanted {
				return event
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", wanted)
		}
	}
}

func TestDriverControlEventsCarrySnapshot(t *testing.T) {
	t.Parallel()

	driver := NewDriver(New(testSettings()), Config{})
	events := driver.Subscribe(5)

	driver.Start()
	event := waitForEvent(t, events, EventStateChange, time.Second)
	if !event.Running {
		t.Error("start event should report running")
	}
	if event.Mode != model.ModeFocus {
		t.Errorf("expected focus mode in event, got %s", event.Mode)
	}

	driver.Pause()
	event = waitForEvent(t, events, EventStateChange, time.Second)
	if event.Running {
		t.Error("pause event should report stopped")
	}
}

func TestDriverToggle(t *testing.T) {
	t.Parallel()

	driver := NewDriver(New(testSettings()), Config{})

	driver.Toggle()
	if !driver.Engine().Snapshot().Running {
		t.Fatal("toggle from stopped should start")
	}
	driver.Toggle()
	if driver.Engine().Snapshot().Running {
		t.Fatal("toggle from running should pause")
	}
}

func TestDriverEmitsCompletion(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	settings.Durations[model.ModeFocus] = time.Second

	driver := NewDriver(New(settings), Config{TickInterval: 20 * time.Millisecond})
	events := driver.Subscribe(64)

	driver.Start()
	driver.Run()
	defer driver.Stop()

	event := waitForEvent(t, events, EventCompleted, 5*time.Second)
	if event.Finished != model.ModeFocus {
		t.Errorf("expected finished mode focus, got %s", event.Finished)
	}
	if !event.FocusFinished {
		t.Error("expected focus completion flag")
	}
	if event.CompletedFocus != 1 {
		t.Errorf("expected counter 1, got %d", event.CompletedFocus)
	}
	if event.Mode != model.ModeShortBreak {
		t.Errorf("expected auto-advance into short_break, got %s", event.Mode)
	}
	if event.Running {
		t.Error("auto-advance must not auto-start")
	}
}

func TestDriverIdlePause(t *testing.T) {
	t.Parallel()

	driver := NewDriver(New(testSettings()), Config{
		TickInterval:      10 * time.Millisecond,
		IdlePauseEnabled:  true,
		IdlePauseAfter:    time.Millisecond,
		IdleCheckInterval: time.Millisecond,
	})
	driver.SetIdleChecker(fakeIdleChecker{idle: time.Hour})
	events := driver.Subscribe(64)

	driver.Start()
	driver.Run()
	defer driver.Stop()

	event := waitForEvent(t, events, EventIdlePause, 5*time.Second)
	if event.Running {
		t.Error("idle pause event should report stopped")
	}
	if driver.Engine().Snapshot().Running {
		t.Error("engine should be paused after idle")
	}
}

func TestDriverDisablesIdlePauseWhenUnsupported(t *testing.T) {
	t.Parallel()

	driver := NewDriver(New(testSettings()), Config{
		TickInterval:      10 * time.Millisecond,
		IdlePauseEnabled:  true,
		IdlePauseAfter:    time.Millisecond,
		IdleCheckInterval: time.Millisecond,
	})
	driver.SetIdleChecker(fakeIdleChecker{err: ErrIdleUnsupported})
	events := driver.Subscribe(64)

	driver.Start()
	driver.Run()
	defer driver.Stop()

	waitForEvent(t, events, EventIdleError, 5*time.Second)
	if driver.Engine().Snapshot().Running == false {
		t.Error("unsupported idle detection must not pause the engine")
	}
}

func TestDriverStopClosesSubscribers(t *testing.T) {
	t.Parallel()

	driver := NewDriver(New(testSettings()), Config{TickInterval: 10 * time.Millisecond})
	events := driver.Subscribe(1)
	driver.Run()
	driver.Stop()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscriber channel not closed after Stop")
		}
	}
}
