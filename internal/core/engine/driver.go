package engine

import (
	"errors"
	"sync"
	"time"

	"focusloop/internal/core/model"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Config contains runtime options for Driver.
type Config struct {
	TickInterval time.Duration

	// IdlePauseEnabled pauses a running session once the user has been
	// inactive for IdlePauseAfter. Checked every IdleCheckInterval.
	IdlePauseEnabled  bool
	IdlePauseAfter    time.Duration
	IdleCheckInterval time.Duration
}

// Driver feeds the engine wall-clock ticks at roughly one-second intervals
// and fans engine changes out to observers. It is the single place the
// current time enters the system; UI code calls the control methods below
// instead of touching the engine directly.
type Driver struct {
	mu            sync.Mutex
	engine        *Engine
	options       Config
	idleChecker   IdleChecker
	lastIdleCheck time.Time
	events        []chan Event
	stopCh        chan struct{}
	running       bool
}

// NewDriver creates a driver for the given engine.
func NewDriver(eng *Engine, options Config) *Driver {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.IdleCheckInterval <= 0 {
		options.IdleCheckInterval = 5 * time.Second
	}
	return &Driver{
		engine:  eng,
		options: options,
		stopCh:  make(chan struct{}),
	}
}

// Engine exposes the driven engine for state reads.
func (driver *Driver) Engine() *Engine {
	return driver.engine
}

// SetIdleChecker injects an idle checker.
func (driver *Driver) SetIdleChecker(checker IdleChecker) {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	driver.idleChecker = checker
}

// SetIdlePause toggles the idle-pause option at runtime.
func (driver *Driver) SetIdlePause(enabled bool) {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	driver.options.IdlePauseEnabled = enabled
}

// Subscribe registers a new observer channel. Slow observers drop events.
func (driver *Driver) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	driver.mu.Lock()
	driver.events = append(driver.events, ch)
	driver.mu.Unlock()
	return ch
}

// Run launches the ticking loop.
func (driver *Driver) Run() {
	driver.mu.Lock()
	if driver.running {
		driver.mu.Unlock()
		return
	}
	driver.running = true
	driver.mu.Unlock()

	go driver.loop()
}

// Stop terminates the ticking loop and closes observer channels.
func (driver *Driver) Stop() {
	driver.mu.Lock()
	if !driver.running {
		driver.mu.Unlock()
		return
	}
	close(driver.stopCh)
	driver.running = false
	events := driver.events
	driver.events = nil
	driver.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Start starts or resumes the countdown.
func (driver *Driver) Start() {
	driver.engine.Start(time.Now())
	driver.emitState()
}

// Pause freezes the countdown.
func (driver *Driver) Pause() {
	driver.engine.Pause(time.Now())
	driver.emitState()
}

// Toggle starts the timer when stopped and pauses it when running.
func (driver *Driver) Toggle() {
	if driver.engine.Snapshot().Running {
		driver.Pause()
		return
	}
	driver.Start()
}

// Reset stops the timer and restores the current mode's full duration.
func (driver *Driver) Reset() {
	driver.engine.Reset()
	driver.emitState()
}

// SwitchMode stops the timer and enters the given mode at full duration.
func (driver *Driver) SwitchMode(mode model.Mode) {
	driver.engine.SwitchMode(mode)
	driver.emitState()
}

// UpdateSettings applies new engine settings.
func (driver *Driver) UpdateSettings(settings model.EngineSettings) {
	driver.engine.UpdateSettings(settings)
	driver.emitState()
}

// Restore rehydrates the engine from persisted state and notifies observers.
func (driver *Driver) Restore(mode model.Mode, remaining time.Duration, running bool, completedFocus int) {
	driver.engine.Restore(mode, remaining, running, completedFocus, time.Now())
	driver.emitState()
}

func (driver *Driver) loop() {
	ticker := time.NewTicker(driver.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-driver.stopCh:
			return
		case tickTime := <-ticker.C:
			driver.tick(tickTime)
		}
	}
}

func (driver *Driver) tick(tickTime time.Time) {
	driver.handleIdleCheck(tickTime)

	result := driver.engine.Tick(tickTime)
	snapshot := driver.engine.Snapshot()

	if result.Completed {
		driver.emit(Event{
			Type:           EventCompleted,
			Mode:           snapshot.Mode,
			Remaining:      snapshot.Remaining,
			Running:        snapshot.Running,
			CompletedFocus: snapshot.CompletedFocus,
			Finished:       result.Finished,
			FocusFinished:  result.Finished == model.ModeFocus,
			At:             tickTime,
		})
		return
	}
	if snapshot.Running {
		driver.emit(Event{
			Type:           EventProgress,
			Mode:           snapshot.Mode,
			Remaining:      snapshot.Remaining,
			Running:        true,
			CompletedFocus: snapshot.CompletedFocus,
			At:             tickTime,
		})
	}
}

func (driver *Driver) handleIdleCheck(now time.Time) {
	driver.mu.Lock()
	enabled := driver.options.IdlePauseEnabled
	checker := driver.idleChecker
	due := driver.lastIdleCheck.IsZero() || now.Sub(driver.lastIdleCheck) >= driver.options.IdleCheckInterval
	if enabled && checker != nil && due {
		driver.lastIdleCheck = now
	}
	after := driver.options.IdlePauseAfter
	driver.mu.Unlock()

	if !enabled || checker == nil || !due {
		return
	}
	if !driver.engine.Snapshot().Running {
		return
	}

	idleDuration, err := checker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			driver.SetIdlePause(false)
		}
		driver.emit(Event{
			Type:    EventIdleError,
			Message: err.Error(),
			At:      now,
		})
		return
	}
	if after > 0 && idleDuration >= after {
		driver.engine.Pause(now)
		snapshot := driver.engine.Snapshot()
		driver.emit(Event{
			Type:           EventIdlePause,
			Mode:           snapshot.Mode,
			Remaining:      snapshot.Remaining,
			Running:        false,
			CompletedFocus: snapshot.CompletedFocus,
			Message:        "paused after inactivity",
			At:             now,
		})
	}
}

func (driver *Driver) emitState() {
	snapshot := driver.engine.Snapshot()
	driver.emit(Event{
		Type:           EventStateChange,
		Mode:           snapshot.Mode,
		Remaining:      snapshot.Remaining,
		Running:        snapshot.Running,
		CompletedFocus: snapshot.CompletedFocus,
		At:             time.Now(),
	})
}

func (driver *Driver) emit(event Event) {
	driver.mu.Lock()
	events := append([]chan Event(nil), driver.events...)
	driver.mu.Unlock()
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
