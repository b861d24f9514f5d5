package tray

import (
	"fmt"

	"focusloop/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowWindow  func()
	OnPreferences func()
	OnToggle      func()
	OnReset       func()
	OnSwitchMode  func(model.Mode)
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	resetItem   *fyne.MenuItem
	switchMenu  *fyne.MenuItem
	callbacks   Callbacks
	running     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Ready", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	manager.switchMenu = fyne.NewMenuItem("Switch to...", nil)
	manager.switchMenu.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("Focus", func() { manager.switchMode(model.ModeFocus) }),
		fyne.NewMenuItem("Short break", func() { manager.switchMode(model.ModeShortBreak) }),
		fyne.NewMenuItem("Long break", func() { manager.switchMode(model.ModeLongBreak) }),
	)

	app.SetSystemTrayMenu(manager.buildMenu())
	return manager
}

// SetStatus updates the status line, e.g. "Focus 24:31".
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refresh()
}

// SetRunning flips the start/pause item label.
func (manager *Manager) SetRunning(running bool) {
	manager.running = running
	if running {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	manager.refresh()
}

func (manager *Manager) switchMode(mode model.Mode) {
	if manager.callbacks.OnSwitchMode != nil {
		manager.callbacks.OnSwitchMode(mode)
	}
}

func (manager *Manager) refresh() {
	status := manager.statusLabel
	if status == "" {
		status = "Ready"
	}
	if !manager.running && manager.statusLabel != "" {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = status

	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.buildMenu())
	}
}

func (manager *Manager) buildMenu() *fyne.Menu {
	return fyne.NewMenu("FocusLoop",
		manager.statusItem,
		fyne.NewMenuItem("Open FocusLoop", func() {
			if manager.callbacks.OnShowWindow != nil {
				manager.callbacks.OnShowWindow()
			}
		}),
		manager.toggleItem,
		manager.resetItem,
		manager.switchMenu,
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
}
