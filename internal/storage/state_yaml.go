package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focusloop/internal/core/engine"
	"focusloop/internal/core/model"
	"gopkg.in/yaml.v3"
)

const (
	stateFileName = "timer_state.yaml"

	// timerStateSchema tags the persisted shape for forward migration.
	// Snapshots written by a newer schema are discarded rather than
	// misread.
	timerStateSchema = 1
)

type yamlTimerState struct {
	SchemaVersion    int    `yaml:"schema_version"`
	Mode             string `yaml:"mode"`
	RemainingSeconds int    `yaml:"remaining_seconds"`
	Running          bool   `yaml:"running"`
	EndUnix          int64  `yaml:"end_unix,omitempty"`
	CompletedFocus   int    `yaml:"completed_focus"`
	TaskID           string `yaml:"task_id,omitempty"`
	SavedUnix        int64  `yaml:"saved_unix"`
}

// RestoredTimer is a persisted snapshot converted back to engine terms.
// Remaining already accounts for wall-clock time that passed while the
// state sat on disk; the engine restarts its elapsed baseline from now.
type RestoredTimer struct {
	Mode           model.Mode
	Remaining      time.Duration
	Running        bool
	CompletedFocus int
	TaskID         string
}

// SaveTimerState persists the engine snapshot to the user config dir.
func SaveTimerState(appName string, snapshot engine.Snapshot, taskID string) error {
	statePath, err := resolveConfigPath(appName, stateFileName)
	if err != nil {
		return err
	}
	return SaveTimerStateFile(statePath, snapshot, taskID, time.Now())
}

// LoadTimerState restores the persisted snapshot from the user config dir.
// The second return value is false when no usable snapshot exists.
func LoadTimerState(appName string) (RestoredTimer, bool, error) {
	statePath, err := resolveConfigPath(appName, stateFileName)
	if err != nil {
		return RestoredTimer{}, false, err
	}
	return LoadTimerStateFile(statePath, time.Now())
}

// ClearTimerState removes the persisted snapshot, if any.
func ClearTimerState(appName string) error {
	statePath, err := resolveConfigPath(appName, stateFileName)
	if err != nil {
		return err
	}
	if err := os.Remove(statePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove timer state: %w", err)
	}
	return nil
}

// SaveTimerStateFile persists the engine snapshot to the given path. A
// running session is stored as an absolute end timestamp so that restoring
// after downtime can recompute how much of it already elapsed.
func SaveTimerStateFile(path string, snapshot engine.Snapshot, taskID string, now time.Time) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlTimerState{
		SchemaVersion:    timerStateSchema,
		Mode:             string(snapshot.Mode),
		RemainingSeconds: int(snapshot.Remaining / time.Second),
		Running:          snapshot.Running,
		CompletedFocus:   snapshot.CompletedFocus,
		TaskID:           taskID,
		SavedUnix:        now.Unix(),
	}
	if snapshot.Running {
		fileData.EndUnix = now.Add(snapshot.Remaining).Unix()
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal timer state yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write timer state file: %w", err)
	}

	return nil
}

// LoadTimerStateFile restores the persisted snapshot from the given path,
// converting a stored end timestamp back into remaining seconds relative
// to now. Missing or unreadable state yields ok=false, never a failure
// that the caller must surface to the engine.
func LoadTimerStateFile(path string, now time.Time) (RestoredTimer, bool, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RestoredTimer{}, false, nil
		}
		return RestoredTimer{}, false, fmt.Errorf("read timer state file: %w", err)
	}

	var fileData yamlTimerState
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return RestoredTimer{}, false, fmt.Errorf("parse timer state yaml: %w", err)
	}
	if fileData.SchemaVersion != timerStateSchema {
		return RestoredTimer{}, false, nil
	}

	mode := model.Mode(fileData.Mode)
	if !mode.Valid() {
		return RestoredTimer{}, false, nil
	}

	restored := RestoredTimer{
		Mode:           mode,
		Remaining:      time.Duration(fileData.RemainingSeconds) * time.Second,
		Running:        fileData.Running,
		CompletedFocus: fileData.CompletedFocus,
		TaskID:         fileData.TaskID,
	}
	if restored.CompletedFocus < 0 {
		restored.CompletedFocus = 0
	}
	if fileData.Running {
		remaining := time.Unix(fileData.EndUnix, 0).Sub(now)
		if remaining < 0 {
			remaining = 0
		}
		restored.Remaining = remaining - remaining%time.Second
	}
	if restored.Remaining < 0 {
		restored.Remaining = 0
	}

	return restored, true, nil
}
