package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkarslan/worktimer/internal/tracker"
)

// tasksModel is the folder/task browser. The folder list always ends with the
// Uncategorized pseudo-folder so folderless tasks stay reachable.
type tasksModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	folderCursor int
	taskCursor   int
	viewingTasks bool

	formActive   bool
	form         *huh.Form
	formType     string // "task", "folder", "move"
	targetFolder string // folder a new task lands in
	moveTaskID   string

	// Form field pointers (survive value copies)
	formName   *string
	formFolder *string
}

func newTasksModel(tr *tracker.Tracker) tasksModel {
	name, folder := "", ""
	return tasksModel{
		tracker:    tr,
		formName:   &name,
		formFolder: &folder,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// folderEntries returns the registry order plus the Uncategorized pseudo-folder.
func (m tasksModel) folderEntries() []string {
	return append(m.tracker.ListFolders(), tracker.Uncategorized)
}

// currentFolder returns the highlighted folder name; "" means uncategorized.
func (m tasksModel) currentFolder() string {
	entries := m.folderEntries()
	cursor := min(m.folderCursor, len(entries)-1)
	if cursor == len(entries)-1 {
		return ""
	}
	return entries[cursor]
}

// selectedTask returns the highlighted task, or nil when the folder list is
// showing or the folder is empty.
func (m tasksModel) selectedTask() *tracker.Task {
	if !m.viewingTasks {
		return nil
	}
	tasks := m.currentTasks()
	if len(tasks) == 0 {
		return nil
	}
	return tasks[min(m.taskCursor, len(tasks)-1)]
}

func (m tasksModel) currentTasks() []*tracker.Task {
	if name := m.currentFolder(); name != "" {
		return m.tracker.TasksInFolder(name)
	}
	return m.tracker.UncategorizedTasks()
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.viewingTasks {
			return m.updateTaskView(msg)
		}
		return m.updateFolderList(msg)
	}
	return m, nil
}

func (m tasksModel) updateFolderList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	entries := m.folderEntries()

	switch {
	case key.Matches(msg, keys.Up):
		if m.folderCursor > 0 {
			m.folderCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.folderCursor < len(entries)-1 {
			m.folderCursor++
		}
	case key.Matches(msg, keys.Enter):
		if name := m.currentFolder(); name != "" {
			m.tracker.SelectFolder(name)
		}
		m.viewingTasks = true
		m.taskCursor = 0
	case key.Matches(msg, keys.New):
		return m.showNewTaskForm()
	case key.Matches(msg, keys.NewFolder):
		return m.showNewFolderForm()
	case key.Matches(msg, keys.DeleteFolder):
		name := m.currentFolder()
		if name == "" {
			return m, statusCmd("Uncategorized cannot be deleted")
		}
		if err := m.tracker.DeleteFolder(name); err != nil {
			return m, errorCmd(err)
		}
		m.folderCursor = 0
		return m, statusCmd(fmt.Sprintf("Folder %q deleted", name))
	case key.Matches(msg, keys.ClearFolder):
		name := m.currentFolder()
		if name == "" {
			return m, statusCmd("Uncategorized cannot be cleared")
		}
		if err := m.tracker.ClearFolder(name); err != nil {
			return m, errorCmd(err)
		}
		return m, statusCmd(fmt.Sprintf("Folder %q cleared", name))
	case key.Matches(msg, keys.ClearAll):
		if err := m.tracker.ClearAll(); err != nil {
			return m, errorCmd(err)
		}
		m.taskCursor = 0
		return m, statusCmd("All tasks cleared")
	case key.Matches(msg, keys.ClearFolders):
		if err := m.tracker.ClearFolders(); err != nil {
			return m, errorCmd(err)
		}
		m.folderCursor = 0
		return m, statusCmd("All folders cleared")
	case key.Matches(msg, keys.MoveLeft):
		return m.reorderBy(-1)
	case key.Matches(msg, keys.MoveRight):
		return m.reorderBy(1)
	}
	return m, nil
}

func (m tasksModel) reorderBy(delta int) (tasksModel, tea.Cmd) {
	name := m.currentFolder()
	if name == "" {
		return m, nil
	}
	target := m.folderCursor + delta
	if target < 0 || target >= len(m.tracker.ListFolders()) {
		return m, nil
	}
	if err := m.tracker.ReorderFolder(name, target); err != nil {
		return m, errorCmd(err)
	}
	m.folderCursor = target
	return m, nil
}

func (m tasksModel) updateTaskView(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	tasks := m.currentTasks()
	if m.taskCursor >= len(tasks) {
		m.taskCursor = max(0, len(tasks)-1)
	}

	var selected *tracker.Task
	if len(tasks) > 0 {
		selected = tasks[m.taskCursor]
	}

	switch {
	case key.Matches(msg, keys.Back):
		m.viewingTasks = false
		return m, nil
	case key.Matches(msg, keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.taskCursor < len(tasks)-1 {
			m.taskCursor++
		}
	case key.Matches(msg, keys.New):
		return m.showNewTaskForm()
	case key.Matches(msg, keys.Start):
		if selected != nil {
			if err := m.tracker.StartTask(selected.ID); err != nil {
				return m, errorCmd(err)
			}
		}
	case key.Matches(msg, keys.Pause):
		if selected == nil {
			return m, nil
		}
		switch selected.Status() {
		case tracker.StatusRunning:
			if err := m.tracker.PauseTask(selected.ID); err != nil {
				return m, errorCmd(err)
			}
		case tracker.StatusPaused:
			if err := m.tracker.ResumeTask(selected.ID); err != nil {
				return m, errorCmd(err)
			}
		}
	case key.Matches(msg, keys.Complete):
		if selected != nil {
			if err := m.tracker.ToggleTaskComplete(selected.ID); err != nil {
				return m, errorCmd(err)
			}
		}
	case key.Matches(msg, keys.Delete):
		if selected != nil {
			if err := m.tracker.DeleteTask(selected.ID); err != nil {
				return m, errorCmd(err)
			}
			return m, statusCmd(fmt.Sprintf("Task %q deleted", selected.Description))
		}
	case key.Matches(msg, keys.Move):
		if selected != nil {
			return m.showMoveForm(selected)
		}
	}
	return m, nil
}

func (m tasksModel) showNewTaskForm() (tasksModel, tea.Cmd) {
	*m.formName = ""
	m.formType = "task"
	m.targetFolder = m.currentFolder()

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Description").Value(m.formName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) showNewFolderForm() (tasksModel, tea.Cmd) {
	*m.formName = ""
	m.formType = "folder"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Folder Name").Value(m.formName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) showMoveForm(t *tracker.Task) (tasksModel, tea.Cmd) {
	m.formType = "move"
	m.moveTaskID = t.ID
	*m.formFolder = ""

	folders := m.tracker.ListFolders()
	options := make([]huh.Option[string], 0, len(folders)+1)
	options = append(options, huh.NewOption(tracker.Uncategorized, ""))
	for _, name := range folders {
		options = append(options, huh.NewOption(name, name))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Move to").Options(options...).Value(m.formFolder),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		switch m.formType {
		case "folder":
			if err := m.tracker.CreateFolder(*m.formName); err != nil {
				return m, errorCmd(err)
			}
			return m, statusCmd(fmt.Sprintf("Folder %q created", *m.formName))
		case "task":
			if _, err := m.tracker.CreateTaskIn(*m.formName, m.targetFolder); err != nil {
				return m, errorCmd(err)
			}
			return m, statusCmd(fmt.Sprintf("Task %q created", *m.formName))
		case "move":
			if err := m.tracker.MoveTaskToFolder(m.moveTaskID, *m.formFolder); err != nil {
				return m, errorCmd(err)
			}
			return m, statusCmd("Task moved")
		}
	}

	return m, cmd
}

func (m tasksModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		switch m.formType {
		case "folder":
			title = titleStyle.Render("New Folder")
		case "move":
			title = titleStyle.Render("Move Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	if m.viewingTasks {
		return m.renderTaskView()
	}
	return m.renderFolderList()
}

func (m tasksModel) renderFolderList() string {
	w := m.width - 4
	now := time.Now()
	entries := m.folderEntries()

	var rows []string
	rows = append(rows, titleStyle.Render("Folders"))
	rows = append(rows, "")

	for i, name := range entries {
		var tasks []*tracker.Task
		if i == len(entries)-1 {
			tasks = m.tracker.UncategorizedTasks()
		} else {
			tasks = m.tracker.TasksInFolder(name)
		}

		var total int64
		for _, t := range tasks {
			total += t.CurrentDuration(now)
		}

		cursor := "  "
		style := normalItemStyle
		if i == m.folderCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		label := name
		if i == len(entries)-1 {
			label = mutedStyle.Render(name)
		}
		marker := ""
		if name == m.tracker.SelectedFolder() && name != tracker.Uncategorized {
			marker = highlightStyle.Render(" ●")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-24s", cursor, label))+
			mutedStyle.Render(fmt.Sprintf(" %2d tasks  %s", len(tasks), formatSeconds(total)))+marker)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new task  f: new folder  D: delete  x: clear  X: clear all  F: clear folders  </>: reorder  enter: open"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m tasksModel) renderTaskView() string {
	w := m.width - 4
	now := time.Now()

	name := m.currentFolder()
	label := name
	if label == "" {
		label = tracker.Uncategorized
	}
	title := titleStyle.Render(label + " — Tasks")

	tasks := m.currentTasks()
	if len(tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	taskCursor := min(m.taskCursor, len(tasks)-1)

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, t := range tasks {
		cursor := "  "
		style := normalItemStyle
		if i == taskCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-32s", cursor, statusIcon(t.Status()), t.Description))+
			mutedStyle.Render(fmt.Sprintf(" %s  %s", formatSeconds(t.CurrentDuration(now)), t.Status())))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  s: start  space: pause/resume  c: complete  m: move  d: delete  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func statusIcon(s tracker.Status) string {
	switch s {
	case tracker.StatusRunning:
		return successStyle.Render("▶")
	case tracker.StatusPaused:
		return warningStyle.Render("⏸")
	case tracker.StatusCompleted:
		return successStyle.Render("✔")
	default:
		return mutedStyle.Render("·")
	}
}
