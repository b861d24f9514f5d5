package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"focusloop/internal/ui/preferences"
)

func TestLoadSettingsFileMissingReturnsDefaults(t *testing.T) {
	t.Parallel()

	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings != preferences.DefaultSettings() {
		t.Errorf("expected defaults, got %+v", settings)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	saved := preferences.Settings{
		FocusDuration:      50 * time.Minute,
		ShortBreakDuration: 10 * time.Minute,
		LongBreakDuration:  30 * time.Minute,
		AutoAdvance:        false,
		LongBreakInterval:  3,

		SoundEnabled:         false,
		NotificationsEnabled: true,
		IdlePauseEnabled:     true,

		OverlayEnabled:    false,
		OverlayOpacity:    0.7,
		OverlayFullscreen: true,

		Autostart: true,
	}

	if err := SaveSettingsFile(path, saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != saved {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", saved, loaded)
	}
}

func TestLoadSettingsFileIgnoresBadValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	raw := []byte("focus_minutes: -5\nlong_break_interval: 2\noverlay_opacity: 3.0\nauto_advance: true\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.FocusDuration != preferences.DefaultSettings().FocusDuration {
		t.Errorf("negative focus minutes accepted: %s", settings.FocusDuration)
	}
	if settings.OverlayOpacity != preferences.DefaultSettings().OverlayOpacity {
		t.Errorf("out-of-range opacity accepted: %v", settings.OverlayOpacity)
	}
	if settings.LongBreakInterval != 2 {
		t.Errorf("expected interval 2, got %d", settings.LongBreakInterval)
	}
}

func TestLoadSettingsFileMalformedYaml(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettingsFile(path)
	if err == nil {
		t.Error("expected a parse error")
	}
	if settings != preferences.DefaultSettings() {
		t.Errorf("expected defaults on parse failure, got %+v", settings)
	}
}
