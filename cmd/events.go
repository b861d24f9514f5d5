package main

import (
	"log"
	"time"

	"focusloop/internal/core/engine"
	"focusloop/internal/core/model"
	"focusloop/internal/sound"
	"focusloop/internal/storage"
	"focusloop/internal/ui/overlay"
	"focusloop/internal/ui/preferences"
	"focusloop/internal/ui/stats"
	"focusloop/internal/ui/timer"
	"focusloop/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

type handlerDeps struct {
	app          fyne.App
	desktopApp   desktop.App
	driver       *engine.Driver
	settings     *preferences.Settings
	timerView    *timer.View
	statsView    *stats.View
	trayManager  *tray.Manager
	overlay      *overlay.Window
	player       *sound.Player
	store        *storage.Store
	activeTaskID *string
	persistState func()
	activeIcon   fyne.Resource
	pausedIcon   fyne.Resource
}

func handleEvent(event engine.Event, deps handlerDeps) {
	switch event.Type {
	case engine.EventStateChange:
		handleStateChange(event, deps)
	case engine.EventProgress:
		handleProgress(event, deps)
	case engine.EventCompleted:
		handleCompleted(event, deps)
	case engine.EventIdlePause:
		handleIdlePause(event, deps)
	case engine.EventIdleError:
		log.Printf("idle detection disabled: %s", event.Message)
	}
}

func handleStateChange(event engine.Event, deps handlerDeps) {
	snapshot := snapshotOf(event)
	fyne.Do(func() {
		deps.timerView.Render(snapshot)
		deps.trayManager.SetRunning(event.Running)
		deps.trayManager.SetStatus(trayStatus(event.Mode, event.Remaining))
		if event.Running {
			deps.desktopApp.SetSystemTrayIcon(deps.activeIcon)
		} else {
			deps.desktopApp.SetSystemTrayIcon(deps.pausedIcon)
		}
		updateOverlay(event, deps)
	})
	deps.persistState()
}

func handleProgress(event engine.Event, deps handlerDeps) {
	snapshot := snapshotOf(event)
	fyne.Do(func() {
		deps.timerView.Render(snapshot)
		deps.trayManager.SetStatus(trayStatus(event.Mode, event.Remaining))
		if event.Mode.IsBreak() {
			deps.overlay.SetRemaining(event.Remaining)
		}
	})
}

func handleCompleted(event engine.Event, deps handlerDeps) {
	recordSession(event, deps)

	if deps.player != nil {
		if event.FocusFinished {
			deps.player.Play(sound.EffectFocusComplete)
		} else {
			deps.player.Play(sound.EffectBreakComplete)
		}
	}
	if deps.settings.NotificationsEnabled {
		deps.app.SendNotification(fyne.NewNotification("FocusLoop", completionMessage(event.Finished, event.Mode)))
	}

	// Breaks begin on their own after a finished focus session; a new focus
	// session waits for the user.
	if deps.settings.AutoAdvance && event.Mode.IsBreak() && event.Mode != event.Finished {
		deps.driver.Start()
	}

	snapshot := snapshotOf(event)
	fyne.Do(func() {
		deps.timerView.Render(snapshot)
		deps.trayManager.SetRunning(event.Running)
		deps.trayManager.SetStatus(trayStatus(event.Mode, event.Remaining))
		deps.statsView.Refresh()
		updateOverlay(event, deps)
	})
	deps.persistState()
}

func handleIdlePause(event engine.Event, deps handlerDeps) {
	if deps.settings.NotificationsEnabled {
		deps.app.SendNotification(fyne.NewNotification("FocusLoop", "Timer paused while you were away."))
	}
	snapshot := snapshotOf(event)
	fyne.Do(func() {
		deps.timerView.Render(snapshot)
		deps.trayManager.SetRunning(false)
		deps.trayManager.SetStatus(trayStatus(event.Mode, event.Remaining))
		deps.desktopApp.SetSystemTrayIcon(deps.pausedIcon)
	})
	deps.persistState()
}

func updateOverlay(event engine.Event, deps handlerDeps) {
	if deps.settings.OverlayEnabled && event.Mode.IsBreak() && event.Running {
		deps.overlay.Show(event.Mode, event.Remaining)
		return
	}
	deps.overlay.Hide()
}

func recordSession(event engine.Event, deps handlerDeps) {
	duration := deps.settings.FocusDuration
	switch event.Finished {
	case model.ModeShortBreak:
		duration = deps.settings.ShortBreakDuration
	case model.ModeLongBreak:
		duration = deps.settings.LongBreakDuration
	}

	taskID := ""
	if event.FocusFinished {
		taskID = *deps.activeTaskID
	}
	record := model.SessionRecord{
		TaskID:    taskID,
		Mode:      event.Finished,
		StartedAt: event.At.Add(-duration),
		EndedAt:   event.At,
		Duration:  duration,
		Completed: true,
	}
	if err := deps.store.RecordSession(&record); err != nil {
		log.Printf("record session: %v", err)
	}
	if event.FocusFinished && taskID != "" {
		if err := deps.store.IncrementPomodoros(taskID); err != nil {
			log.Printf("count pomodoro: %v", err)
		}
	}
}

func snapshotOf(event engine.Event) engine.Snapshot {
	return engine.Snapshot{
		Mode:           event.Mode,
		Remaining:      event.Remaining,
		Running:        event.Running,
		CompletedFocus: event.CompletedFocus,
	}
}

func trayStatus(mode model.Mode, remaining time.Duration) string {
	return modeTitle(mode) + " " + timer.FormatRemaining(remaining)
}

func completionMessage(finished, next model.Mode) string {
	if finished == model.ModeFocus {
		return "Focus session complete. Time for a break."
	}
	if next == model.ModeFocus {
		return "Break is over. Back to focus."
	}
	return "Break is over."
}

func modeTitle(mode model.Mode) string {
	switch mode {
	case model.ModeShortBreak:
		return "Short break"
	case model.ModeLongBreak:
		return "Long break"
	default:
		return "Focus"
	}
}
