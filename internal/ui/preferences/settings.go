package preferences

import (
	"time"

	"focusloop/internal/core/engine"
	"focusloop/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	FocusDuration      time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	AutoAdvance        bool
	LongBreakInterval  int

	SoundEnabled         bool
	NotificationsEnabled bool
	IdlePauseEnabled     bool

	OverlayEnabled    bool
	OverlayOpacity    float64
	OverlayFullscreen bool

	Autostart bool
}

// DefaultSettings returns default settings for FocusLoop.
func DefaultSettings() Settings {
	return Settings{
		FocusDuration:      25 * time.Minute,
		ShortBreakDuration: 5 * time.Minute,
		LongBreakDuration:  15 * time.Minute,
		AutoAdvance:        true,
		LongBreakInterval:  4,

		SoundEnabled:         true,
		NotificationsEnabled: true,
		IdlePauseEnabled:     false,

		OverlayEnabled:    true,
		OverlayOpacity:    0.85,
		OverlayFullscreen: false,

		Autostart: false,
	}
}

// EngineSettings converts settings to the engine's settings shape.
func (settings Settings) EngineSettings() model.EngineSettings {
	return model.EngineSettings{
		Durations: map[model.Mode]time.Duration{
			model.ModeFocus:      settings.FocusDuration,
			model.ModeShortBreak: settings.ShortBreakDuration,
			model.ModeLongBreak:  settings.LongBreakDuration,
		},
		AutoAdvance:       settings.AutoAdvance,
		LongBreakInterval: settings.LongBreakInterval,
	}
}

// DriverConfig converts settings to the driver's runtime options.
func (settings Settings) DriverConfig() engine.Config {
	return engine.Config{
		TickInterval:      time.Second,
		IdlePauseEnabled:  settings.IdlePauseEnabled,
		IdlePauseAfter:    5 * time.Minute,
		IdleCheckInterval: 5 * time.Second,
	}
}
