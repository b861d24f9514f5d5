package model

import "time"

// Mode identifies the kind of session the timer is counting down.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Valid reports whether the mode is one of the three known session kinds.
func (mode Mode) Valid() bool {
	switch mode {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
		return true
	}
	return false
}

// IsBreak reports whether the mode is a break of either length.
func (mode Mode) IsBreak() bool {
	return mode == ModeShortBreak || mode == ModeLongBreak
}

// EngineSettings contains runtime settings for the timer engine.
type EngineSettings struct {
	// Durations maps each mode to its full session length.
	Durations map[Mode]time.Duration
	// AutoAdvance switches to the next mode when a session completes.
	AutoAdvance bool
	// LongBreakInterval is the number of completed focus sessions
	// between long breaks. Zero disables long breaks entirely.
	LongBreakInterval int
}

// Duration returns the configured session length for a mode.
func (settings EngineSettings) Duration(mode Mode) time.Duration {
	return settings.Durations[mode]
}

// Clone returns a deep copy so callers can mutate independently.
func (settings EngineSettings) Clone() EngineSettings {
	durations := make(map[Mode]time.Duration, len(settings.Durations))
	for mode, duration := range settings.Durations {
		durations[mode] = duration
	}
	settings.Durations = durations
	return settings
}
