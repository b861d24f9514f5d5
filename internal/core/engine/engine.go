package engine

import (
	"sync"
	"time"

	"focusloop/internal/core/model"
)

// Engine is the countdown state machine behind the Pomodoro timer.
//
// Remaining time is never decremented tick by tick. Starting (or resuming)
// snapshots the wall clock together with the remaining duration, and every
// advance recomputes remaining from the elapsed time since that snapshot.
// Late, early, or bursty tick calls therefore never lose or gain time.
//
// All time-dependent operations take an explicit now so they stay
// deterministic; Driver supplies the wall clock in production.
type Engine struct {
	mu             sync.Mutex
	settings       model.EngineSettings
	mode           model.Mode
	remaining      time.Duration
	running        bool
	completedFocus int

	// startedAt and remainingAtStart are the drift snapshot. startedAt is
	// zero exactly when the timer is not running.
	startedAt        time.Time
	remainingAtStart time.Duration
}

// Snapshot is the externally observable engine state.
type Snapshot struct {
	Mode           model.Mode
	Remaining      time.Duration
	Running        bool
	CompletedFocus int
}

// TickResult reports the outcome of a single advance.
type TickResult struct {
	// Completed is true when this tick finished the session.
	Completed bool
	// Finished is the mode that just completed.
	Finished model.Mode
	// Next is the mode selected by the auto-advance policy. Equal to
	// Finished when auto-advance is disabled.
	Next model.Mode
	// CompletedFocus is the focus-session counter after this tick.
	CompletedFocus int
}

// New creates an engine idle in focus mode with the full focus duration.
func New(settings model.EngineSettings) *Engine {
	eng := &Engine{
		settings: settings.Clone(),
		mode:     model.ModeFocus,
	}
	eng.remaining = eng.settings.Duration(model.ModeFocus)
	eng.remainingAtStart = eng.remaining
	return eng
}

// Snapshot returns a copy of the observable state.
func (eng *Engine) Snapshot() Snapshot {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return Snapshot{
		Mode:           eng.mode,
		Remaining:      eng.remaining,
		Running:        eng.running,
		CompletedFocus: eng.completedFocus,
	}
}

// Settings returns a copy of the current engine settings.
func (eng *Engine) Settings() model.EngineSettings {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return eng.settings.Clone()
}

// Start begins counting down from the current remaining time.
// No-op while already running.
func (eng *Engine) Start(now time.Time) {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	if eng.running {
		return
	}
	eng.running = true
	eng.startedAt = now
	eng.remainingAtStart = eng.remaining
}

// Pause freezes the countdown, folding the elapsed whole seconds into
// remaining. No-op while not running.
func (eng *Engine) Pause(now time.Time) {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	if !eng.running {
		return
	}
	remaining := eng.remainingAtStart - elapsedSeconds(eng.startedAt, now)
	if remaining < 0 {
		remaining = 0
	}
	eng.remaining = remaining
	eng.running = false
	eng.startedAt = time.Time{}
}

// Reset stops the timer and restores the current mode's full duration.
func (eng *Engine) Reset() {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	eng.switchLocked(eng.mode)
}

// SwitchMode stops the timer and restores the given mode's full duration.
// A manual mode change is indistinguishable from a reset into that mode.
func (eng *Engine) SwitchMode(mode model.Mode) {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	if !mode.Valid() {
		return
	}
	eng.switchLocked(mode)
}

// UpdateSettings merges new settings, duration map key-wise. While stopped,
// the current mode's remaining time is re-seeded from its (possibly new)
// duration; an in-flight countdown is left undisturbed and picks up the new
// duration on the next reset, switch, or completion.
func (eng *Engine) UpdateSettings(settings model.EngineSettings) {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	merged := eng.settings.Clone()
	for mode, duration := range settings.Durations {
		if duration > 0 {
			merged.Durations[mode] = duration
		}
	}
	merged.AutoAdvance = settings.AutoAdvance
	merged.LongBreakInterval = settings.LongBreakInterval
	eng.settings = merged

	if !eng.running {
		eng.remaining = eng.settings.Duration(eng.mode)
		eng.remainingAtStart = eng.remaining
	}
}

// Tick advances the countdown to now. Returns a zero TickResult while the
// timer is stopped, including after a natural completion.
func (eng *Engine) Tick(now time.Time) TickResult {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	if !eng.running {
		return TickResult{}
	}

	candidate := eng.remainingAtStart - elapsedSeconds(eng.startedAt, now)
	if candidate > 0 {
		eng.remaining = candidate
		return TickResult{}
	}

	eng.remaining = 0
	eng.running = false
	eng.startedAt = time.Time{}

	finished := eng.mode
	if finished == model.ModeFocus {
		eng.completedFocus++
	}

	next := finished
	if eng.settings.AutoAdvance {
		next = eng.nextModeLocked(finished)
		eng.switchLocked(next)
	}

	return TickResult{
		Completed:      true,
		Finished:       finished,
		Next:           next,
		CompletedFocus: eng.completedFocus,
	}
}

// Restore rehydrates the engine from persisted state. The caller must have
// already converted any absolute end time into remaining seconds; when
// running is true the elapsed baseline restarts from now.
func (eng *Engine) Restore(mode model.Mode, remaining time.Duration, running bool, completedFocus int, now time.Time) {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	if !mode.Valid() {
		mode = model.ModeFocus
	}
	if remaining < 0 {
		remaining = 0
	}
	if completedFocus < 0 {
		completedFocus = 0
	}

	eng.mode = mode
	eng.remaining = remaining
	eng.remainingAtStart = remaining
	eng.completedFocus = completedFocus
	eng.running = running
	if running {
		eng.startedAt = now
	} else {
		eng.startedAt = time.Time{}
	}
}

func (eng *Engine) switchLocked(mode model.Mode) {
	eng.running = false
	eng.startedAt = time.Time{}
	eng.mode = mode
	eng.remaining = eng.settings.Duration(mode)
	eng.remainingAtStart = eng.remaining
}

func (eng *Engine) nextModeLocked(finished model.Mode) model.Mode {
	if finished != model.ModeFocus {
		return model.ModeFocus
	}
	interval := eng.settings.LongBreakInterval
	if interval > 0 && eng.completedFocus%interval == 0 {
		return model.ModeLongBreak
	}
	return model.ModeShortBreak
}

// elapsedSeconds returns whole seconds between start and now, never negative.
func elapsedSeconds(start, now time.Time) time.Duration {
	elapsed := now.Sub(start)
	if elapsed < 0 {
		return 0
	}
	return elapsed - elapsed%time.Second
}
