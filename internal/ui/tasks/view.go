package tasks

import (
	"fmt"
	"log"
	"time"

	"focusloop/internal/core/model"
	"focusloop/internal/storage"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// View is the task list screen with add/edit/complete/delete.
type View struct {
	store    *storage.Store
	window   fyne.Window
	content  *fyne.Container
	list     *fyne.Container
	showDone bool

	// OnChanged fires after any mutation so other views can refresh.
	OnChanged func()
}

// New creates the task view backed by the given store. The window is used
// as the parent for dialogs.
func New(store *storage.Store, window fyne.Window) *View {
	view := &View{
		store:  store,
		window: window,
		list:   container.NewVBox(),
	}

	addButton := widget.NewButtonWithIcon("Add task", theme.ContentAddIcon(), view.showAddDialog)
	showDone := widget.NewCheck("Show completed", func(checked bool) {
		view.showDone = checked
		view.Reload()
	})

	view.content = container.NewBorder(
		container.NewHBox(addButton, layout.NewSpacer(), showDone),
		nil, nil, nil,
		container.NewVScroll(view.list),
	)

	view.Reload()
	return view
}

// Container returns the root canvas object of the view.
func (view *View) Container() fyne.CanvasObject {
	return view.content
}

// Tasks returns the pending tasks for use by other views.
func (view *View) Tasks() []model.Task {
	tasks, err := view.store.ListTasks(false)
	if err != nil {
		log.Printf("list tasks: %v", err)
		return nil
	}
	return tasks
}

// Reload re-reads tasks from the store and rebuilds the list.
func (view *View) Reload() {
	tasks, err := view.store.ListTasks(view.showDone)
	if err != nil {
		log.Printf("list tasks: %v", err)
		return
	}

	view.list.RemoveAll()
	for _, task := range tasks {
		view.list.Add(view.buildRow(task))
	}
	if len(tasks) == 0 {
		empty := widget.NewLabel("No tasks yet.")
		empty.Alignment = fyne.TextAlignCenter
		view.list.Add(empty)
	}
	view.list.Refresh()
}

func (view *View) buildRow(task model.Task) fyne.CanvasObject {
	done := widget.NewCheck("", func(checked bool) {
		var err error
		if checked {
			err = view.store.CompleteTask(task.ID, time.Now())
		} else {
			err = view.store.ReopenTask(task.ID)
		}
		if err != nil {
			log.Printf("update task %s: %v", task.ID, err)
		}
		view.notifyChanged()
	})
	done.SetChecked(task.Status == model.TaskDone)

	title := widget.NewLabel(task.Title)
	if task.Status == model.TaskDone {
		title.TextStyle = fyne.TextStyle{Italic: true}
	}

	pomodoros := widget.NewLabel("")
	if task.Pomodoros > 0 {
		pomodoros.SetText(formatPomodoros(task.Pomodoros))
	}

	editButton := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
		view.showEditDialog(task)
	})
	deleteButton := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		dialog.ShowConfirm("Delete task", "Delete \""+task.Title+"\"?", func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := view.store.DeleteTask(task.ID); err != nil {
				log.Printf("delete task %s: %v", task.ID, err)
			}
			view.notifyChanged()
		}, view.window)
	})

	return container.NewHBox(done, title, pomodoros, layout.NewSpacer(), editButton, deleteButton)
}

func (view *View) showAddDialog() {
	title := widget.NewEntry()
	title.SetPlaceHolder("What are you working on?")
	notes := widget.NewEntry()
	notes.MultiLine = true

	form := dialog.NewForm("New task", "Add", "Cancel", []*widget.FormItem{
		widget.NewFormItem("Title", title),
		widget.NewFormItem("Notes", notes),
	}, func(confirmed bool) {
		if !confirmed || title.Text == "" {
			return
		}
		task := &model.Task{Title: title.Text, Notes: notes.Text}
		if err := view.store.SaveTask(task); err != nil {
			log.Printf("save task: %v", err)
		}
		view.notifyChanged()
	}, view.window)
	form.Resize(fyne.NewSize(400, 260))
	form.Show()
}

func (view *View) showEditDialog(task model.Task) {
	title := widget.NewEntry()
	title.SetText(task.Title)
	notes := widget.NewEntry()
	notes.MultiLine = true
	notes.SetText(task.Notes)

	form := dialog.NewForm("Edit task", "Save", "Cancel", []*widget.FormItem{
		widget.NewFormItem("Title", title),
		widget.NewFormItem("Notes", notes),
	}, func(confirmed bool) {
		if !confirmed || title.Text == "" {
			return
		}
		task.Title = title.Text
		task.Notes = notes.Text
		if err := view.store.SaveTask(&task); err != nil {
			log.Printf("save task %s: %v", task.ID, err)
		}
		view.notifyChanged()
	}, view.window)
	form.Resize(fyne.NewSize(400, 260))
	form.Show()
}

func formatPomodoros(count int) string {
	return fmt.Sprintf("×%d", count)
}

func (view *View) notifyChanged() {
	view.Reload()
	if view.OnChanged != nil {
		view.OnChanged()
	}
}
