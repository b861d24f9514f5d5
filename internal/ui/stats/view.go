package stats

import (
	"fmt"
	"log"
	"time"

	"focusloop/internal/storage"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// View shows today's session log aggregates and overall task completion.
type View struct {
	store *storage.Store

	content      *fyne.Container
	sessionsInfo *widget.Label
	tasksInfo    *widget.Label
}

// New creates the stats view backed by the given store.
func New(store *storage.Store) *View {
	view := &View{
		store:        store,
		sessionsInfo: widget.NewLabel(""),
		tasksInfo:    widget.NewLabel(""),
	}

	refresh := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), view.Refresh)

	view.content = container.NewVBox(
		container.NewHBox(
			widget.NewLabelWithStyle("Today", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			refresh,
		),
		view.sessionsInfo,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Tasks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		view.tasksInfo,
	)

	view.Refresh()
	return view
}

// Container returns the root canvas object of the view.
func (view *View) Container() fyne.CanvasObject {
	return view.content
}

// Refresh re-reads aggregates from the store.
func (view *View) Refresh() {
	sessionStats, err := view.store.SessionStats(time.Now())
	if err != nil {
		log.Printf("session stats: %v", err)
		return
	}
	view.sessionsInfo.SetText(fmt.Sprintf(
		"Focus sessions: %d (%s)\nBreaks taken: %d (%s)",
		sessionStats.FocusSessions, formatTotal(sessionStats.FocusTime),
		sessionStats.BreakSessions, formatTotal(sessionStats.BreakTime),
	))

	taskStats, err := view.store.TaskStats()
	if err != nil {
		log.Printf("task stats: %v", err)
		return
	}
	view.tasksInfo.SetText(fmt.Sprintf(
		"Completed: %d of %d (%.0f%%)",
		taskStats.Completed, taskStats.Total, taskStats.CompletionRate()*100,
	))
}

func formatTotal(total time.Duration) string {
	totalMinutes := int(total.Minutes())
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm", totalMinutes)
	}
	return fmt.Sprintf("%dh %02dm", totalMinutes/60, totalMinutes%60)
}
