package storage

import (
	"path/filepath"
	"testing"
	"time"

	"focusloop/internal/core/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "focusloop.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestTaskLifecycle(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	task := &model.Task{Title: "write report", Notes: "quarterly"}
	if err := store.SaveTask(task); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if task.ID == "" {
		t.Fatal("insert did not assign an ID")
	}
	if task.Status != model.TaskPending {
		t.Errorf("expected new task pending, got %s", task.Status)
	}

	task.Title = "write the report"
	if err := store.SaveTask(task); err != nil {
		t.Fatalf("update: %v", err)
	}

	fetched, err := store.GetTask(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Title != "write the report" || fetched.Notes != "quarterly" {
		t.Errorf("update lost fields: %+v", fetched)
	}

	done := time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC)
	if err := store.CompleteTask(task.ID, done); err != nil {
		t.Fatalf("complete: %v", err)
	}
	fetched, err = store.GetTask(task.ID)
	if err != nil {
		t.Fatalf("get after complete: %v", err)
	}
	if fetched.Status != model.TaskDone || fetched.CompletedAt == nil {
		t.Errorf("complete not applied: %+v", fetched)
	}

	if err := store.ReopenTask(task.ID); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	fetched, err = store.GetTask(task.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if fetched.Status != model.TaskPending || fetched.CompletedAt != nil {
		t.Errorf("reopen not applied: %+v", fetched)
	}

	if err := store.DeleteTask(task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetTask(task.ID); err == nil {
		t.Error("deleted task still readable")
	}
}

func TestListTasksFiltersDone(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	open := &model.Task{Title: "open"}
	finished := &model.Task{Title: "finished"}
	for _, task := range []*model.Task{open, finished} {
		if err := store.SaveTask(task); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if err := store.CompleteTask(finished.ID, time.Now()); err != nil {
		t.Fatalf("complete: %v", err)
	}

	pending, err := store.ListTasks(false)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != open.ID {
		t.Errorf("expected only the open task, got %+v", pending)
	}

	all, err := store.ListTasks(true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(all))
	}
}

func TestIncrementPomodoros(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	task := &model.Task{Title: "deep work"}
	if err := store.SaveTask(task); err != nil {
		t.Fatalf("insert: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := store.IncrementPomodoros(task.ID); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	fetched, err := store.GetTask(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Pomodoros != 3 {
		t.Errorf("expected 3 pomodoros, got %d", fetched.Pomodoros)
	}
}

func TestSessionLogAndDailyStats(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []*model.SessionRecord{
		{Mode: model.ModeFocus, StartedAt: day.Add(9 * time.Hour), EndedAt: day.Add(9*time.Hour + 25*time.Minute), Duration: 25 * time.Minute, Completed: true},
		{Mode: model.ModeShortBreak, StartedAt: day.Add(10 * time.Hour), EndedAt: day.Add(10*time.Hour + 5*time.Minute), Duration: 5 * time.Minute, Completed: true},
		{Mode: model.ModeFocus, StartedAt: day.Add(11 * time.Hour), EndedAt: day.Add(11*time.Hour + 10*time.Minute), Duration: 10 * time.Minute, Completed: false},
		// Previous day, must not count.
		{Mode: model.ModeFocus, StartedAt: day.Add(-3 * time.Hour), EndedAt: day.Add(-3*time.Hour + 25*time.Minute), Duration: 25 * time.Minute, Completed: true},
	}
	for _, record := range records {
		if err := store.RecordSession(record); err != nil {
			t.Fatalf("record: %v", err)
		}
		if record.ID == 0 {
			t.Error("record did not receive an ID")
		}
	}

	stats, err := store.SessionStats(day.Add(12 * time.Hour))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.FocusSessions != 1 {
		t.Errorf("expected 1 completed focus session, got %d", stats.FocusSessions)
	}
	if stats.FocusTime != 25*time.Minute {
		t.Errorf("expected 25m focus time, got %s", stats.FocusTime)
	}
	if stats.BreakSessions != 1 || stats.BreakTime != 5*time.Minute {
		t.Errorf("break stats wrong: %+v", stats)
	}

	sessions, err := store.SessionsBetween(day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Errorf("expected 3 sessions in the day, got %d", len(sessions))
	}
}

func TestTaskStats(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	var done *model.Task
	for i, title := range []string{"a", "b", "c"} {
		task := &model.Task{Title: title}
		if err := store.SaveTask(task); err != nil {
			t.Fatalf("insert: %v", err)
		}
		if i == 0 {
			done = task
		}
	}
	if err := store.CompleteTask(done.ID, time.Now()); err != nil {
		t.Fatalf("complete: %v", err)
	}

	stats, err := store.TaskStats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || stats.Completed != 1 {
		t.Errorf("expected 3/1, got %+v", stats)
	}
	if rate := stats.CompletionRate(); rate < 0.33 || rate > 0.34 {
		t.Errorf("unexpected completion rate %v", rate)
	}
}
