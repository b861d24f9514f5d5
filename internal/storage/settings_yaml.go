package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focusloop/internal/ui/preferences"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	FocusMinutes      int  `yaml:"focus_minutes"`
	ShortBreakMinutes int  `yaml:"short_break_minutes"`
	LongBreakMinutes  int  `yaml:"long_break_minutes"`
	AutoAdvance       bool `yaml:"auto_advance"`
	LongBreakInterval int  `yaml:"long_break_interval"`

	SoundEnabled         bool `yaml:"sound_enabled"`
	NotificationsEnabled bool `yaml:"notifications_enabled"`
	IdlePauseEnabled     bool `yaml:"idle_pause_enabled"`

	OverlayEnabled    bool    `yaml:"overlay_enabled"`
	OverlayOpacity    float64 `yaml:"overlay_opacity"`
	OverlayFullscreen bool    `yaml:"overlay_fullscreen"`

	Autostart bool `yaml:"autostart"`
}

// LoadSettings reads user preferences from YAML in the user config dir.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := resolveConfigPath(appName, settingsFileName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// SaveSettings writes user preferences to YAML in the user config dir.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName, settingsFileName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// LoadSettingsFile reads user preferences from the given path.
func LoadSettingsFile(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes user preferences to the given path.
func SaveSettingsFile(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		FocusMinutes:      int(settings.FocusDuration / time.Minute),
		ShortBreakMinutes: int(settings.ShortBreakDuration / time.Minute),
		LongBreakMinutes:  int(settings.LongBreakDuration / time.Minute),
		AutoAdvance:       settings.AutoAdvance,
		LongBreakInterval: settings.LongBreakInterval,

		SoundEnabled:         settings.SoundEnabled,
		NotificationsEnabled: settings.NotificationsEnabled,
		IdlePauseEnabled:     settings.IdlePauseEnabled,

		OverlayEnabled:    settings.OverlayEnabled,
		OverlayOpacity:    settings.OverlayOpacity,
		OverlayFullscreen: settings.OverlayFullscreen,

		Autostart: settings.Autostart,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName, fileName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, fileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.FocusMinutes > 0 {
		settings.FocusDuration = time.Duration(fileData.FocusMinutes) * time.Minute
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakDuration = time.Duration(fileData.ShortBreakMinutes) * time.Minute
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakDuration = time.Duration(fileData.LongBreakMinutes) * time.Minute
	}
	if fileData.LongBreakInterval >= 0 {
		settings.LongBreakInterval = fileData.LongBreakInterval
	}

	if fileData.OverlayOpacity >= 0.5 && fileData.OverlayOpacity <= 1.0 {
		settings.OverlayOpacity = fileData.OverlayOpacity
	}

	settings.AutoAdvance = fileData.AutoAdvance
	settings.SoundEnabled = fileData.SoundEnabled
	settings.NotificationsEnabled = fileData.NotificationsEnabled
	settings.IdlePauseEnabled = fileData.IdlePauseEnabled
	settings.OverlayEnabled = fileData.OverlayEnabled
	settings.OverlayFullscreen = fileData.OverlayFullscreen
	settings.Autostart = fileData.Autostart
}
