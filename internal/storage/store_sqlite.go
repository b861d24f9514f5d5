package storage

import (
	"database/sql"
	"fmt"
	"time"

	"focusloop/internal/core/model"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store persists tasks and the session log in a local SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if necessary) the database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}
	return store, nil
}

// Close releases the underlying database handle.
func (store *Store) Close() error {
	return store.db.Close()
}

func (store *Store) initTables() error {
	_, err := store.db.Exec(`
        CREATE TABLE IF NOT EXISTS tasks (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            pomodoros INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            completed_at DATETIME
        )
    `)
	if err != nil {
		return err
	}

	_, err = store.db.Exec(`
        CREATE TABLE IF NOT EXISTS sessions (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            task_id TEXT,
            mode TEXT NOT NULL,
            started_at DATETIME NOT NULL,
            ended_at DATETIME NOT NULL,
            duration_seconds INTEGER NOT NULL,
            completed INTEGER NOT NULL,
            FOREIGN KEY(task_id) REFERENCES tasks(id)
        )
    `)
	return err
}

// SaveTask inserts a new task or updates an existing one. A task without
// an ID gets a fresh one assigned.
func (store *Store) SaveTask(task *model.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
		if task.CreatedAt.IsZero() {
			task.CreatedAt = time.Now()
		}
		if task.Status == "" {
			task.Status = model.TaskPending
		}
		_, err := store.db.Exec(`
            INSERT INTO tasks (id, title, notes, status, pomodoros, created_at, completed_at)
            VALUES (?, ?, ?, ?, ?, ?, ?)
        `, task.ID, task.Title, task.Notes, task.Status, task.Pomodoros, task.CreatedAt, task.CompletedAt)
		return err
	}

	_, err := store.db.Exec(`
        UPDATE tasks
        SET title = ?, notes = ?, status = ?, pomodoros = ?, completed_at = ?
        WHERE id = ?
    `, task.Title, task.Notes, task.Status, task.Pomodoros, task.CompletedAt, task.ID)
	return err
}

// GetTask fetches a single task by ID.
func (store *Store) GetTask(id string) (model.Task, error) {
	row := store.db.QueryRow(`
        SELECT id, title, notes, status, pomodoros, created_at, completed_at
        FROM tasks WHERE id = ?
    `, id)
	return scanTask(row)
}

// ListTasks returns tasks ordered newest first, optionally including
// completed ones.
func (store *Store) ListTasks(includeDone bool) ([]model.Task, error) {
	query := `
        SELECT id, title, notes, status, pomodoros, created_at, completed_at
        FROM tasks
    `
	if !includeDone {
		query += ` WHERE status = '` + string(model.TaskPending) + `'`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := store.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// CompleteTask marks a task done with the given completion time.
func (store *Store) CompleteTask(id string, completedAt time.Time) error {
	_, err := store.db.Exec(`
        UPDATE tasks SET status = ?, completed_at = ? WHERE id = ?
    `, model.TaskDone, completedAt, id)
	return err
}

// ReopenTask clears a task's done state.
func (store *Store) ReopenTask(id string) error {
	_, err := store.db.Exec(`
        UPDATE tasks SET status = ?, completed_at = NULL WHERE id = ?
    `, model.TaskPending, id)
	return err
}

// DeleteTask removes a task. Logged sessions keep their task_id.
func (store *Store) DeleteTask(id string) error {
	_, err := store.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return err
}

// IncrementPomodoros bumps a task's completed focus-session count.
func (store *Store) IncrementPomodoros(id string) error {
	_, err := store.db.Exec(`
        UPDATE tasks SET pomodoros = pomodoros + 1 WHERE id = ?
    `, id)
	return err
}

// RecordSession appends one session to the log.
func (store *Store) RecordSession(record *model.SessionRecord) error {
	result, err := store.db.Exec(`
        INSERT INTO sessions (task_id, mode, started_at, ended_at, duration_seconds, completed)
        VALUES (?, ?, ?, ?, ?, ?)
    `, nullableID(record.TaskID), record.Mode, record.StartedAt, record.EndedAt,
		int(record.Duration/time.Second), record.Completed)
	if err != nil {
		return err
	}
	record.ID, err = result.LastInsertId()
	return err
}

// SessionsBetween returns logged sessions in [from, to), newest first.
func (store *Store) SessionsBetween(from, to time.Time) ([]model.SessionRecord, error) {
	rows, err := store.db.Query(`
        SELECT id, COALESCE(task_id, ''), mode, started_at, ended_at, duration_seconds, completed
        FROM sessions
        WHERE started_at >= ? AND started_at < ?
        ORDER BY started_at DESC
    `, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.SessionRecord
	for rows.Next() {
		var record model.SessionRecord
		var seconds int
		if err := rows.Scan(&record.ID, &record.TaskID, &record.Mode,
			&record.StartedAt, &record.EndedAt, &seconds, &record.Completed); err != nil {
			return nil, err
		}
		record.Duration = time.Duration(seconds) * time.Second
		records = append(records, record)
	}
	return records, rows.Err()
}

// SessionStats aggregates completed sessions for the day containing at.
func (store *Store) SessionStats(at time.Time) (model.SessionStats, error) {
	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	records, err := store.SessionsBetween(dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return model.SessionStats{}, err
	}

	var stats model.SessionStats
	for _, record := range records {
		if !record.Completed {
			continue
		}
		if record.Mode == model.ModeFocus {
			stats.FocusSessions++
			stats.FocusTime += record.Duration
		} else {
			stats.BreakSessions++
			stats.BreakTime += record.Duration
		}
	}
	return stats, nil
}

// TaskStats counts tasks by completion.
func (store *Store) TaskStats() (model.TaskStats, error) {
	var stats model.TaskStats
	err := store.db.QueryRow(`
        SELECT COUNT(*), COALESCE(SUM(status = ?), 0) FROM tasks
    `, model.TaskDone).Scan(&stats.Total, &stats.Completed)
	return stats, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var task model.Task
	var completedAt sql.NullTime
	err := row.Scan(&task.ID, &task.Title, &task.Notes, &task.Status,
		&task.Pomodoros, &task.CreatedAt, &completedAt)
	if err != nil {
		return model.Task{}, err
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}
	return task, nil
}

func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
