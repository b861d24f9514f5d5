package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)
	onCancel func()

	focusDur      *widget.Entry
	shortDur      *widget.Entry
	longDur       *widget.Entry
	longInterval  *widget.Entry
	autoAdvance   *widget.Check
	sound         *widget.Check
	notifications *widget.Check
	idlePause     *widget.Check
	overlay       *widget.Check
	opacity       *widget.Slider
	fullscreen    *widget.Check
	autostart     *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("FocusLoop Settings")

	focusDur := widget.NewEntry()
	shortDur := widget.NewEntry()
	longDur := widget.NewEntry()
	longInterval := widget.NewEntry()

	focusDur.SetText(fmt.Sprintf("%d", int(settings.FocusDuration.Minutes())))
	shortDur.SetText(fmt.Sprintf("%d", int(settings.ShortBreakDuration.Minutes())))
	longDur.SetText(fmt.Sprintf("%d", int(settings.LongBreakDuration.Minutes())))
	longInterval.SetText(fmt.Sprintf("%d", settings.LongBreakInterval))

	autoAdvance := widget.NewCheck("Auto-advance to the next session", nil)
	autoAdvance.SetChecked(settings.AutoAdvance)

	sound := widget.NewCheck("Play sound on completion", nil)
	sound.SetChecked(settings.SoundEnabled)

	notifications := widget.NewCheck("Show desktop notifications", nil)
	notifications.SetChecked(settings.NotificationsEnabled)

	idlePause := widget.NewCheck("Pause the timer when away", nil)
	idlePause.SetChecked(settings.IdlePauseEnabled)

	overlay := widget.NewCheck("Show break overlay", nil)
	overlay.SetChecked(settings.OverlayEnabled)

	opacity := widget.NewSlider(0.5, 1.0)
	opacity.Value = settings.OverlayOpacity
	opacity.Step = 0.01

	fullscreen := widget.NewCheck("Fullscreen overlay", nil)
	fullscreen.SetChecked(settings.OverlayFullscreen)

	autostart := widget.NewCheck("Start on login", nil)
	autostart.SetChecked(settings.Autostart)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Sessions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus length"), focusDur, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break length"), shortDur, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break length"), longDur, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break every"), longInterval, widget.NewLabel("focus sessions (0 disables)")),
		autoAdvance,
		widget.NewLabelWithStyle("Alerts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sound,
		notifications,
		idlePause,
		widget.NewLabelWithStyle("Break overlay", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		overlay,
		widget.NewLabel("Overlay opacity"),
		opacity,
		fullscreen,
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		autostart,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(460, 560))

	prefs := &Window{
		window:        window,
		settings:      settings,
		onSave:        onSave,
		focusDur:      focusDur,
		shortDur:      shortDur,
		longDur:       longDur,
		longInterval:  longInterval,
		autoAdvance:   autoAdvance,
		sound:         sound,
		notifications: notifications,
		idlePause:     idlePause,
		overlay:       overlay,
		opacity:       opacity,
		fullscreen:    fullscreen,
		autostart:     autostart,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.focusDur.SetText(fmt.Sprintf("%d", int(settings.FocusDuration.Minutes())))
	prefs.shortDur.SetText(fmt.Sprintf("%d", int(settings.ShortBreakDuration.Minutes())))
	prefs.longDur.SetText(fmt.Sprintf("%d", int(settings.LongBreakDuration.Minutes())))
	prefs.longInterval.SetText(fmt.Sprintf("%d", settings.LongBreakInterval))
	prefs.autoAdvance.SetChecked(settings.AutoAdvance)
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.notifications.SetChecked(settings.NotificationsEnabled)
	prefs.idlePause.SetChecked(settings.IdlePauseEnabled)
	prefs.overlay.SetChecked(settings.OverlayEnabled)
	prefs.opacity.Value = settings.OverlayOpacity
	prefs.opacity.Refresh()
	prefs.fullscreen.SetChecked(settings.OverlayFullscreen)
	prefs.autostart.SetChecked(settings.Autostart)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.focusDur.Text); ok {
		settings.FocusDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.shortDur.Text); ok {
		settings.ShortBreakDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.longDur.Text); ok {
		settings.LongBreakDuration = time.Duration(minutes) * time.Minute
	}
	if interval, ok := parseNonNegativeInt(prefs.longInterval.Text); ok {
		settings.LongBreakInterval = interval
	}

	settings.AutoAdvance = prefs.autoAdvance.Checked
	settings.SoundEnabled = prefs.sound.Checked
	settings.NotificationsEnabled = prefs.notifications.Checked
	settings.IdlePauseEnabled = prefs.idlePause.Checked
	settings.OverlayEnabled = prefs.overlay.Checked
	settings.OverlayOpacity = prefs.opacity.Value
	settings.OverlayFullscreen = prefs.fullscreen.Checked
	settings.Autostart = prefs.autostart.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func parseNonNegativeInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}
