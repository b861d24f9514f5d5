package overlay

import (
	"image/color"
	"time"

	"focusloop/internal/core/model"
	"focusloop/internal/ui/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config defines overlay visuals.
type Config struct {
	Opacity    uint8
	Fullscreen bool
}

// Window is the translucent break screen shown while a break counts down.
type Window struct {
	app        fyne.App
	window     fyne.Window
	config     Config
	background *canvas.Rectangle
	titleLabel *canvas.Text
	timerLabel *canvas.Text
	hintLabel  *canvas.Text
	visible    bool
	onSkip     func()
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the break overlay window.
func New(app fyne.App, config Config, onSkip func()) *Window {
	window := app.NewWindow("FocusLoop")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{A: config.Opacity})

	titleLabel := canvas.NewText("Break time", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 28

	timerLabel := canvas.NewText("--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 48

	hintLabel := canvas.NewText("Step away from the screen", color.NRGBA{R: 220, G: 220, B: 220, A: 255})
	hintLabel.Alignment = fyne.TextAlignCenter
	hintLabel.TextSize = 16

	skipButton := widget.NewButton("Skip break", nil)

	content := container.NewCenter(container.NewVBox(
		titleLabel,
		timerLabel,
		hintLabel,
		container.NewCenter(skipButton),
	))
	window.SetContent(container.NewStack(background, content))

	overlay := &Window{
		app:        app,
		window:     window,
		config:     config,
		background: background,
		titleLabel: titleLabel,
		timerLabel: timerLabel,
		hintLabel:  hintLabel,
		onSkip:     onSkip,
	}

	skipButton.OnTapped = func() {
		overlay.Hide()
		if overlay.onSkip != nil {
			overlay.onSkip()
		}
	}
	window.SetCloseIntercept(func() {
		overlay.Hide()
	})

	overlay.applyWindowMode()
	return overlay
}

// UpdateConfig applies new overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	overlay.background.FillColor = color.NRGBA{A: config.Opacity}
	overlay.background.Refresh()
	overlay.applyWindowMode()
}

// Show displays the overlay for the given break.
func (overlay *Window) Show(mode model.Mode, remaining time.Duration) {
	if mode == model.ModeLongBreak {
		overlay.titleLabel.Text = "Long break"
	} else {
		overlay.titleLabel.Text = "Short break"
	}
	overlay.titleLabel.Refresh()
	overlay.SetRemaining(remaining)

	if !overlay.visible {
		overlay.visible = true
		overlay.window.Show()
		overlay.applyNativeOpacity(overlay.config.Opacity)
	}
}

// SetRemaining updates the countdown text.
func (overlay *Window) SetRemaining(remaining time.Duration) {
	overlay.timerLabel.Text = timer.FormatRemaining(remaining)
	overlay.timerLabel.Refresh()
}

// Hide removes the overlay from the screen.
func (overlay *Window) Hide() {
	if !overlay.visible {
		return
	}
	overlay.visible = false
	overlay.window.Hide()
}

func (overlay *Window) applyWindowMode() {
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.window.Resize(fyne.NewSize(480, 320))
	overlay.window.CenterOnScreen()
}
