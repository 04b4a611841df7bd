package tracker

import (
	"fmt"
	"time"
)

// Persister round-trips the three durable snapshots: the task collection, the
// ordered folder list, and the folder style map. Each Save rewrites its
// collection in full.
type Persister interface {
	LoadTasks() ([]*Task, error)
	LoadFolders() ([]string, error)
	LoadStyles() (map[string]FolderStyle, error)
	SaveTasks([]*Task) error
	SaveFolders([]string) error
	SaveStyles(map[string]FolderStyle) error
}

// Exporter renders CSV reports and cleans up the artifacts they leave behind.
// Removal is best effort; a missing file is not an error.
type Exporter interface {
	ExportAll(tasks []*Task, now time.Time) (string, error)
	ExportAllJSON(tasks []*Task, now time.Time) (string, error)
	ExportFolder(name string, tasks []*Task, now time.Time) (string, error)
	ExportTask(t *Task, now time.Time) (string, error)
	RemoveTaskArtifact(description string)
	RemoveFolderArtifact(name string)
	RemoveAllArtifacts()
}

// Tracker is the application state owned by the composition root: the task
// and folder collections plus the persistence and export gateways. Every
// mutating command persists the touched snapshots before returning. A save
// failure is reported to the caller but does not roll back the in-memory
// change.
type Tracker struct {
	tasks    *TaskStore
	folders  *FolderRegistry
	stats    *Stats
	store    Persister
	exporter Exporter
	selected string // currently selected folder, "" = none

	now func() time.Time // swapped out in tests
}

// New loads the persisted snapshots and builds the tracker. When a snapshot
// cannot be read the tracker still comes up with whatever loaded, and the
// error is returned so the caller can warn instead of silently losing data.
func New(p Persister, ex Exporter) (*Tracker, error) {
	tr := &Tracker{
		tasks:    NewTaskStore(),
		folders:  NewFolderRegistry(),
		store:    p,
		exporter: ex,
		now:      time.Now,
	}
	tr.stats = NewStats(tr.tasks, tr.folders)

	var loadErr error
	tasks, err := p.LoadTasks()
	if err != nil {
		loadErr = fmt.Errorf("load tasks: %w", err)
	}
	for _, t := range tasks {
		tr.tasks.Insert(t)
	}

	order, err := p.LoadFolders()
	if err != nil && loadErr == nil {
		loadErr = fmt.Errorf("load folders: %w", err)
	}
	styles, err := p.LoadStyles()
	if err != nil && loadErr == nil {
		loadErr = fmt.Errorf("load folder styles: %w", err)
	}
	if styles == nil {
		styles = make(map[string]FolderStyle)
	}
	tr.folders.Load(order, styles)
	tr.selected = tr.folders.First()

	return tr, loadErr
}

// --- Commands ---

// CreateTask adds a task to the currently selected folder.
func (tr *Tracker) CreateTask(description string) (*Task, error) {
	return tr.CreateTaskIn(description, tr.selected)
}

// CreateTaskIn adds a task to an explicit folder; empty means uncategorized.
// The folder name is not checked against the registry.
func (tr *Tracker) CreateTaskIn(description, folder string) (*Task, error) {
	t, err := tr.tasks.Add(description, folder)
	if err != nil {
		return nil, err
	}
	return t, tr.saveTasks()
}

// CreateFolder registers a folder. The first folder created while nothing is
// selected becomes the selection.
func (tr *Tracker) CreateFolder(name string) error {
	if err := tr.folders.Add(name); err != nil {
		return err
	}
	if tr.selected == "" {
		tr.selected = name
	}
	return tr.saveFolders()
}

func (tr *Tracker) StartTask(id string) error {
	return tr.applyAction(id, ActionStart)
}

func (tr *Tracker) PauseTask(id string) error {
	return tr.applyAction(id, ActionPause)
}

func (tr *Tracker) ResumeTask(id string) error {
	return tr.applyAction(id, ActionResume)
}

func (tr *Tracker) ToggleTaskComplete(id string) error {
	return tr.applyAction(id, ActionToggleComplete)
}

func (tr *Tracker) applyAction(id string, action Action) error {
	if err := tr.tasks.ApplyAction(id, action, tr.now()); err != nil {
		return err
	}
	return tr.saveTasks()
}

// DeleteTask removes the task and, best effort, its per-task export file.
func (tr *Tracker) DeleteTask(id string) error {
	t, err := tr.tasks.Delete(id)
	if err != nil {
		return err
	}
	tr.exporter.RemoveTaskArtifact(t.Description)
	return tr.saveTasks()
}

// DeleteFolder removes the folder and cascades: every task naming it is
// deleted along with its export artifact, the folder's own export is removed,
// and a selection pointing at it falls back to the new first folder.
func (tr *Tracker) DeleteFolder(name string) error {
	if err := tr.folders.Remove(name); err != nil {
		return err
	}
	for _, t := range tr.tasks.RemoveInFolder(name) {
		tr.exporter.RemoveTaskArtifact(t.Description)
	}
	tr.exporter.RemoveFolderArtifact(name)
	if tr.selected == name {
		tr.selected = tr.folders.First()
	}
	if err := tr.saveTasks(); err != nil {
		return err
	}
	return tr.saveFolders()
}

// ClearFolder keeps the folder but removes its tasks and their artifacts,
// plus the folder's own export file.
func (tr *Tracker) ClearFolder(name string) error {
	if !tr.folders.Contains(name) {
		return ErrFolderNotFound
	}
	for _, t := range tr.tasks.RemoveInFolder(name) {
		tr.exporter.RemoveTaskArtifact(t.Description)
	}
	tr.exporter.RemoveFolderArtifact(name)
	return tr.saveTasks()
}

// ClearAll removes every task and every export artifact.
func (tr *Tracker) ClearAll() error {
	tr.tasks.Clear()
	tr.exporter.RemoveAllArtifacts()
	return tr.saveTasks()
}

// ClearFolders drops all folders and styles. Tasks keep their stale folder
// names and show up as orphans until moved or deleted.
func (tr *Tracker) ClearFolders() error {
	tr.folders.Clear()
	tr.selected = ""
	return tr.saveFolders()
}

func (tr *Tracker) MoveTaskToFolder(id, folder string) error {
	if err := tr.tasks.MoveToFolder(id, folder); err != nil {
		return err
	}
	return tr.saveTasks()
}

func (tr *Tracker) ReorderFolder(name string, index int) error {
	if err := tr.folders.Reorder(name, index); err != nil {
		return err
	}
	return tr.saveFolders()
}

// SelectFolder changes the active folder; empty clears the selection. The
// selection is session state and is not persisted.
func (tr *Tracker) SelectFolder(name string) error {
	if name != "" && !tr.folders.Contains(name) {
		return ErrFolderNotFound
	}
	tr.selected = name
	return nil
}

// --- Exports ---

func (tr *Tracker) ExportAll() (string, error) {
	return tr.exporter.ExportAll(tr.tasks.All(), tr.now())
}

func (tr *Tracker) ExportAllJSON() (string, error) {
	return tr.exporter.ExportAllJSON(tr.tasks.All(), tr.now())
}

func (tr *Tracker) ExportFolder(name string) (string, error) {
	return tr.exporter.ExportFolder(name, tr.tasks.All(), tr.now())
}

func (tr *Tracker) ExportTask(id string) (string, error) {
	t, ok := tr.tasks.Get(id)
	if !ok {
		return "", ErrTaskNotFound
	}
	return tr.exporter.ExportTask(t, tr.now())
}

// --- Queries ---

func (tr *Tracker) ListFolders() []string {
	return tr.folders.Names()
}

func (tr *Tracker) SelectedFolder() string {
	return tr.selected
}

func (tr *Tracker) Task(id string) (*Task, bool) {
	return tr.tasks.Get(id)
}

func (tr *Tracker) Tasks() []*Task {
	return tr.tasks.All()
}

func (tr *Tracker) TasksInFolder(name string) []*Task {
	return tr.tasks.InFolder(name)
}

func (tr *Tracker) UncategorizedTasks() []*Task {
	return tr.tasks.Uncategorized()
}

func (tr *Tracker) TasksByFolder() map[string][]string {
	return tr.tasks.TasksByFolder()
}

func (tr *Tracker) Stats() *Stats {
	return tr.stats
}

func (tr *Tracker) FolderDurations() []FolderDuration {
	return tr.stats.FolderDurations(tr.now())
}

func (tr *Tracker) AverageDuration() int64 {
	return tr.stats.AverageDuration(tr.now())
}

func (tr *Tracker) TotalTracked() int64 {
	return tr.stats.TotalTracked(tr.now())
}

func (tr *Tracker) ProjectNames() []string {
	return tr.stats.ProjectNames()
}

// --- Persistence ---

func (tr *Tracker) saveTasks() error {
	if err := tr.store.SaveTasks(tr.tasks.All()); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (tr *Tracker) saveFolders() error {
	if err := tr.store.SaveFolders(tr.folders.Names()); err != nil {
		return fmt.Errorf("save folders: %w", err)
	}
	if err := tr.store.SaveStyles(tr.folders.Styles()); err != nil {
		return fmt.Errorf("save folder styles: %w", err)
	}
	return nil
}
