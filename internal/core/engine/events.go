package engine

import (
	"time"

	"focusloop/internal/core/model"
)

// EventType defines the type of driver event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventCompleted   EventType = "completed"
	EventIdlePause   EventType = "idle_pause"
	EventIdleError   EventType = "idle_error"
)

// Event represents a timer update for observers.
type Event struct {
	Type EventType

	// Snapshot of the engine state after the change.
	Mode           model.Mode
	Remaining      time.Duration
	Running        bool
	CompletedFocus int

	// Completion details, set for EventCompleted.
	Finished      model.Mode
	FocusFinished bool

	Message string
	At      time.Time
}
