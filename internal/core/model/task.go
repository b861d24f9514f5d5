package model

import "time"

// TaskStatus marks whether a task is still open.
type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskDone    TaskStatus = "done"
)

// Task is a unit of work that focus sessions can be attributed to.
type Task struct {
	ID          string
	Title       string
	Notes       string
	Status      TaskStatus
	Pomodoros   int
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// SessionRecord is one logged timer session, completed or abandoned.
type SessionRecord struct {
	ID        int64
	TaskID    string
	Mode      Mode
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
	Completed bool
}

// TaskStats aggregates task completion for a reporting period.
type TaskStats struct {
	Total     int
	Completed int
}

// CompletionRate returns completed/total, or zero with no tasks.
func (stats TaskStats) CompletionRate() float64 {
	if stats.Total == 0 {
		return 0
	}
	return float64(stats.Completed) / float64(stats.Total)
}

// SessionStats aggregates logged sessions for a reporting period.
type SessionStats struct {
	FocusSessions int
	FocusTime     time.Duration
	BreakSessions int
	BreakTime     time.Duration
}
