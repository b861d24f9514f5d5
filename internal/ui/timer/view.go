package timer

import (
	"fmt"
	"image/color"
	"time"

	"focusloop/internal/core/engine"
	"focusloop/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var modeColors = map[model.Mode]color.NRGBA{
	model.ModeFocus:      {R: 214, G: 68, B: 68, A: 255},
	model.ModeShortBreak: {R: 76, G: 175, B: 80, A: 255},
	model.ModeLongBreak:  {R: 33, G: 150, B: 243, A: 255},
}

var modeTitles = map[model.Mode]string{
	model.ModeFocus:      "Focus",
	model.ModeShortBreak: "Short break",
	model.ModeLongBreak:  "Long break",
}

// View is the main timer screen.
type View struct {
	driver *engine.Driver

	content       *fyne.Container
	timeText      *canvas.Text
	modeText      *canvas.Text
	sessionsLabel *widget.Label
	startButton   *widget.Button
	taskSelect    *widget.Select

	tasks          []model.Task
	onTaskSelected func(taskID string)
}

// New creates the timer view bound to the given driver.
func New(driver *engine.Driver, onTaskSelected func(taskID string)) *View {
	view := &View{
		driver:         driver,
		onTaskSelected: onTaskSelected,
	}

	view.modeText = canvas.NewText("Focus", modeColors[model.ModeFocus])
	view.modeText.TextSize = 22
	view.modeText.TextStyle = fyne.TextStyle{Bold: true}
	view.modeText.Alignment = fyne.TextAlignCenter

	view.timeText = canvas.NewText("25:00", modeColors[model.ModeFocus])
	view.timeText.TextSize = 64
	view.timeText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.timeText.Alignment = fyne.TextAlignCenter

	view.sessionsLabel = widget.NewLabel("Completed focus sessions: 0")
	view.sessionsLabel.Alignment = fyne.TextAlignCenter

	view.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		driver.Toggle()
	})
	resetButton := widget.NewButtonWithIcon("Reset", theme.ViewRefreshIcon(), func() {
		driver.Reset()
	})

	modeButtons := container.NewGridWithColumns(3,
		widget.NewButton("Focus", func() { driver.SwitchMode(model.ModeFocus) }),
		widget.NewButton("Short break", func() { driver.SwitchMode(model.ModeShortBreak) }),
		widget.NewButton("Long break", func() { driver.SwitchMode(model.ModeLongBreak) }),
	)

	view.taskSelect = widget.NewSelect(nil, func(selected string) {
		if view.onTaskSelected == nil {
			return
		}
		view.onTaskSelected(view.taskIDForLabel(selected))
	})
	view.taskSelect.PlaceHolder = "No task selected"

	view.content = container.NewVBox(
		view.modeText,
		view.timeText,
		view.sessionsLabel,
		container.NewGridWithColumns(2, view.startButton, resetButton),
		modeButtons,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, widget.NewLabel("Working on"), nil, view.taskSelect),
	)

	return view
}

// Container returns the root canvas object of the view.
func (view *View) Container() fyne.CanvasObject {
	return view.content
}

// Render updates the view from an engine snapshot. Must run on the fyne
// main loop.
func (view *View) Render(snapshot engine.Snapshot) {
	tint := modeColors[snapshot.Mode]

	view.modeText.Text = modeTitles[snapshot.Mode]
	view.modeText.Color = tint
	view.modeText.Refresh()

	view.timeText.Text = FormatRemaining(snapshot.Remaining)
	view.timeText.Color = tint
	view.timeText.Refresh()

	view.sessionsLabel.SetText(fmt.Sprintf("Completed focus sessions: %d", snapshot.CompletedFocus))

	if snapshot.Running {
		view.startButton.SetText("Pause")
		view.startButton.SetIcon(theme.MediaPauseIcon())
	} else {
		view.startButton.SetText("Start")
		view.startButton.SetIcon(theme.MediaPlayIcon())
	}
}

// SetTasks refreshes the task selector choices.
func (view *View) SetTasks(tasks []model.Task, selectedID string) {
	view.tasks = tasks
	labels := make([]string, 0, len(tasks))
	selectedLabel := ""
	for _, task := range tasks {
		label := taskLabel(task)
		labels = append(labels, label)
		if task.ID == selectedID {
			selectedLabel = label
		}
	}
	view.taskSelect.Options = labels
	if selectedLabel != "" {
		view.taskSelect.SetSelected(selectedLabel)
	} else {
		view.taskSelect.ClearSelected()
	}
	view.taskSelect.Refresh()
}

// RegisterShortcuts installs keyboard control on the window canvas:
// space toggles, R resets, 1/2/3 switch modes.
func (view *View) RegisterShortcuts(window fyne.Window) {
	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		switch event.Name {
		case fyne.KeySpace:
			view.driver.Toggle()
		case fyne.KeyR:
			view.driver.Reset()
		case fyne.Key1:
			view.driver.SwitchMode(model.ModeFocus)
		case fyne.Key2:
			view.driver.SwitchMode(model.ModeShortBreak)
		case fyne.Key3:
			view.driver.SwitchMode(model.ModeLongBreak)
		}
	})
}

func (view *View) taskIDForLabel(label string) string {
	for _, task := range view.tasks {
		if taskLabel(task) == label {
			return task.ID
		}
	}
	return ""
}

func taskLabel(task model.Task) string {
	if task.Pomodoros > 0 {
		return fmt.Sprintf("%s (%d)", task.Title, task.Pomodoros)
	}
	return task.Title
}

// FormatRemaining renders a duration as mm:ss, or h:mm:ss past an hour.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	totalSeconds := int(remaining.Seconds())
	hours := totalSeconds / 3600
	minutes := totalSeconds % 3600 / 60
	seconds := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
