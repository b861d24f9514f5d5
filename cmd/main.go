package main

import (
	"log"
	"path/filepath"

	"focusloop/internal/core/engine"
	"focusloop/internal/core/model"
	"focusloop/internal/platform"
	"focusloop/internal/sound"
	"focusloop/internal/storage"
	"focusloop/internal/ui/overlay"
	"focusloop/internal/ui/preferences"
	"focusloop/internal/ui/stats"
	"focusloop/internal/ui/tasks"
	"focusloop/internal/ui/timer"
	"focusloop/internal/ui/tray"
	"focusloop/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

const appName = "FocusLoop"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.focusloop.app")
	fyneApp.SetIcon(resources.MustLogo("tomato_active.png"))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	service := platform.NewService()
	configDir, err := service.GetConfigDir()
	if err != nil {
		log.Printf("config dir: %v", err)
		return
	}
	store, err := storage.OpenStore(filepath.Join(configDir, appName, "focusloop.db"))
	if err != nil {
		log.Printf("open task store: %v", err)
		return
	}

	player, err := sound.NewPlayer(settings.SoundEnabled)
	if err != nil {
		log.Printf("sound disabled: %v", err)
		player = nil
	}

	timerEngine := engine.New(settings.EngineSettings())
	driver := engine.NewDriver(timerEngine, settings.DriverConfig())
	driver.SetIdleChecker(platform.NewIdleProvider())

	activeTaskID := ""
	if restored, ok, err := storage.LoadTimerState(appName); err != nil {
		log.Printf("restore timer: %v", err)
	} else if ok {
		driver.Restore(restored.Mode, restored.Remaining, restored.Running, restored.CompletedFocus)
		activeTaskID = restored.TaskID
	}

	overlayWindow := overlay.New(fyneApp, overlay.Config{
		Opacity:    opacityToAlpha(settings.OverlayOpacity),
		Fullscreen: settings.OverlayFullscreen,
	}, func() {
		driver.SwitchMode(model.ModeFocus)
	})

	mainWindow := fyneApp.NewWindow(appName)
	mainWindow.Resize(fyne.NewSize(420, 480))
	mainWindow.SetCloseIntercept(func() {
		mainWindow.Hide()
	})
	desktopApp.SetSystemTrayWindow(mainWindow)

	persistState := func() {
		if err := storage.SaveTimerState(appName, timerEngine.Snapshot(), activeTaskID); err != nil {
			log.Printf("save timer state: %v", err)
		}
	}

	timerView := timer.New(driver, func(taskID string) {
		activeTaskID = taskID
		persistState()
	})
	tasksView := tasks.New(store, mainWindow)
	statsView := stats.New(store)

	refreshTaskChoices := func() {
		taskList := tasksView.Tasks()
		timerView.SetTasks(taskList, activeTaskID)
	}
	tasksView.OnChanged = func() {
		refreshTaskChoices()
		statsView.Refresh()
	}
	refreshTaskChoices()
	statsView.Refresh()

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Timer", theme.MediaPlayIcon(), timerView.Container()),
		container.NewTabItemWithIcon("Tasks", theme.ListIcon(), tasksView.Container()),
		container.NewTabItemWithIcon("Stats", theme.InfoIcon(), statsView.Container()),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	mainWindow.SetContent(tabs)
	timerView.RegisterShortcuts(mainWindow)
	timerView.Render(timerEngine.Snapshot())

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettings(appName, settings); err != nil {
			log.Printf("save settings: %v", err)
		}
		driver.UpdateSettings(settings.EngineSettings())
		driver.SetIdlePause(settings.IdlePauseEnabled)
		if player != nil {
			player.SetEnabled(settings.SoundEnabled)
		}
		overlayWindow.UpdateConfig(overlay.Config{
			Opacity:    opacityToAlpha(settings.OverlayOpacity),
			Fullscreen: settings.OverlayFullscreen,
		})
		if err := platform.ApplyAutostart(service, appName, settings.Autostart); err != nil {
			log.Printf("autostart: %v", err)
		}
	})

	activeIcon := resources.MustLogo("tomato_active.png")
	pausedIcon := resources.MustLogo("tomato_paused.png")

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnShowWindow: func() {
			mainWindow.Show()
			mainWindow.RequestFocus()
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnToggle: func() {
			driver.Toggle()
		},
		OnReset: func() {
			driver.Reset()
		},
		OnSwitchMode: func(mode model.Mode) {
			driver.SwitchMode(mode)
		},
		OnQuit: func() {
			driver.Stop()
			persistState()
			if err := store.Close(); err != nil {
				log.Printf("close task store: %v", err)
			}
			fyneApp.Quit()
		},
	})
	desktopApp.SetSystemTrayIcon(activeIcon)

	deps := handlerDeps{
		app:          fyneApp,
		desktopApp:   desktopApp,
		driver:       driver,
		settings:     &settings,
		timerView:    timerView,
		statsView:    statsView,
		trayManager:  trayManager,
		overlay:      overlayWindow,
		player:       player,
		store:        store,
		activeTaskID: &activeTaskID,
		persistState: persistState,
		activeIcon:   activeIcon,
		pausedIcon:   pausedIcon,
	}
	events := driver.Subscribe(8)
	go func() {
		for event := range events {
			handleEvent(event, deps)
		}
	}()

	driver.Run()
	mainWindow.Show()
	fyneApp.Run()
}

func opacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}
