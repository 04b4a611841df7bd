package tracker

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// fakePersister keeps the last written snapshots in memory and can be primed
// with load data or forced to fail.
type fakePersister struct {
	tasks   []*Task
	folders []string
	styles  map[string]FolderStyle

	loadErr error
	saveErr error

	taskSaves   int
	folderSaves int
}

func (p *fakePersister) LoadTasks() ([]*Task, error)    { return p.tasks, p.loadErr }
func (p *fakePersister) LoadFolders() ([]string, error) { return p.folders, p.loadErr }
func (p *fakePersister) LoadStyles() (map[string]FolderStyle, error) {
	return p.styles, p.loadErr
}

func (p *fakePersister) SaveTasks(tasks []*Task) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.tasks = tasks
	p.taskSaves++
	return nil
}

func (p *fakePersister) SaveFolders(names []string) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.folders = names
	p.folderSaves++
	return nil
}

func (p *fakePersister) SaveStyles(styles map[string]FolderStyle) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.styles = styles
	return nil
}

// fakeExporter records artifact operations.
type fakeExporter struct {
	exports        []string
	removedTasks   []string
	removedFolders []string
	removedAll     bool
}

func (e *fakeExporter) ExportAll(tasks []*Task, now time.Time) (string, error) {
	e.exports = append(e.exports, "all")
	return "work_timer_export.csv", nil
}

func (e *fakeExporter) ExportAllJSON(tasks []*Task, now time.Time) (string, error) {
	e.exports = append(e.exports, "json")
	return "work_timer_export.json", nil
}

func (e *fakeExporter) ExportFolder(name string, tasks []*Task, now time.Time) (string, error) {
	e.exports = append(e.exports, "folder:"+name)
	return "folder_" + name + ".csv", nil
}

func (e *fakeExporter) ExportTask(t *Task, now time.Time) (string, error) {
	e.exports = append(e.exports, "task:"+t.Description)
	return t.Description + ".csv", nil
}

func (e *fakeExporter) RemoveTaskArtifact(description string) {
	e.removedTasks = append(e.removedTasks, description)
}

func (e *fakeExporter) RemoveFolderArtifact(name string) {
	e.removedFolders = append(e.removedFolders, name)
}

func (e *fakeExporter) RemoveAllArtifacts() {
	e.removedAll = true
}

func newTestTracker(t *testing.T) (*Tracker, *fakePersister, *fakeExporter) {
	t.Helper()
	p := &fakePersister{}
	e := &fakeExporter{}
	tr, err := New(p, e)
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	return tr, p, e
}

// setClock pins the tracker to a simulated instant.
func setClock(tr *Tracker, now time.Time) {
	tr.now = func() time.Time { return now }
}

// ============================================================
// Startup
// ============================================================

func TestNewLoadsSnapshots(t *testing.T) {
	task := NewTask("carried over", "Work")
	p := &fakePersister{
		tasks:   []*Task{task},
		folders: []string{"Work", "Admin"},
		styles:  map[string]FolderStyle{"Work": {Name: "Work"}, "Admin": {Name: "Admin"}},
	}
	tr, err := New(p, &fakeExporter{})
	if err != nil {
		t.Fatal(err)
	}
	if got := tr.ListFolders(); !reflect.DeepEqual(got, []string{"Work", "Admin"}) {
		t.Fatalf("ListFolders = %v, persisted order must be kept", got)
	}
	if _, ok := tr.Task(task.ID); !ok {
		t.Fatal("loaded task missing")
	}
	if tr.SelectedFolder() != "Work" {
		t.Fatalf("selection = %q, want first folder", tr.SelectedFolder())
	}
}

func TestNewSurfacesLoadFailure(t *testing.T) {
	p := &fakePersister{loadErr: errors.New("disk is toast")}
	tr, err := New(p, &fakeExporter{})
	if err == nil {
		t.Fatal("load failure must be reported, not swallowed")
	}
	if tr == nil {
		t.Fatal("tracker should still come up empty")
	}
	if len(tr.Tasks()) != 0 {
		t.Fatal("expected empty task set after failed load")
	}
}

// ============================================================
// Folder commands
// ============================================================

func TestCreateFolderSelectsFirst(t *testing.T) {
	tr, p, _ := newTestTracker(t)
	if err := tr.CreateFolder("Work"); err != nil {
		t.Fatal(err)
	}
	if tr.SelectedFolder() != "Work" {
		t.Fatalf("selection = %q, want Work", tr.SelectedFolder())
	}
	tr.CreateFolder("Admin")
	if tr.SelectedFolder() != "Work" {
		t.Fatal("second folder must not steal the selection")
	}
	if !reflect.DeepEqual(p.folders, []string{"Admin", "Work"}) {
		t.Fatalf("persisted folders = %v", p.folders)
	}
	if p.styles["Admin"].Name != "Admin" {
		t.Fatal("styles snapshot not persisted")
	}
}

func TestCreateFolderValidationDoesNotSave(t *testing.T) {
	tr, p, _ := newTestTracker(t)
	tr.CreateFolder("Work")
	saves := p.folderSaves
	if err := tr.CreateFolder("Work"); !errors.Is(err, ErrDuplicateFolder) {
		t.Fatalf("duplicate = %v, want ErrDuplicateFolder", err)
	}
	if p.folderSaves != saves {
		t.Fatal("rejected command must not persist")
	}
}

func TestDeleteFolderCascades(t *testing.T) {
	tr, p, e := newTestTracker(t)
	tr.CreateFolder("Work")
	tr.CreateFolder("Home")
	tr.SelectFolder("Work")

	tr.CreateTaskIn("one", "Work")
	tr.CreateTaskIn("two", "Work")
	tr.CreateTaskIn("three", "Work")
	keep, _ := tr.CreateTaskIn("keep", "Home")

	if err := tr.DeleteFolder("Work"); err != nil {
		t.Fatal(err)
	}

	for _, task := range tr.Tasks() {
		if task.Folder == "Work" {
			t.Fatal("no task may still reference the deleted folder")
		}
	}
	if _, ok := tr.Task(keep.ID); !ok {
		t.Fatal("tasks in other folders must survive")
	}
	if got := tr.ListFolders(); !reflect.DeepEqual(got, []string{"Home"}) {
		t.Fatalf("ListFolders = %v, want [Home]", got)
	}
	if tr.SelectedFolder() != "Home" {
		t.Fatalf("selection = %q, want fallback to first folder", tr.SelectedFolder())
	}
	if len(e.removedTasks) != 3 {
		t.Fatalf("removed %d task artifacts, want 3", len(e.removedTasks))
	}
	if !reflect.DeepEqual(e.removedFolders, []string{"Work"}) {
		t.Fatalf("removed folder artifacts = %v", e.removedFolders)
	}
	// Both snapshots must reflect the cascade.
	if len(p.tasks) != 1 {
		t.Fatalf("persisted tasks = %d, want 1", len(p.tasks))
	}
	if !reflect.DeepEqual(p.folders, []string{"Home"}) {
		t.Fatalf("persisted folders = %v", p.folders)
	}
}

func TestDeleteLastFolderClearsSelection(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	tr.CreateFolder("Only")
	tr.DeleteFolder("Only")
	if tr.SelectedFolder() != "" {
		t.Fatalf("selection = %q, want none", tr.SelectedFolder())
	}
}

func TestClearFolderKeepsFolder(t *testing.T) {
	tr, _, e := newTestTracker(t)
	tr.CreateFolder("Work")
	tr.CreateTaskIn("one", "Work")
	tr.CreateTaskIn("two", "Work")

	if err := tr.ClearFolder("Work"); err != nil {
		t.Fatal(err)
	}
	if len(tr.TasksInFolder("Work")) != 0 {
		t.Fatal("folder should be empty")
	}
	if got := tr.ListFolders(); !reflect.DeepEqual(got, []string{"Work"}) {
		t.Fatalf("folder must survive a clear: %v", got)
	}
	if len(e.removedTasks) != 2 {
		t.Fatalf("removed %d task artifacts, want 2", len(e.removedTasks))
	}

	if err := tr.ClearFolder("ghost"); !errors.Is(err, ErrFolderNotFound) {
		t.Fatalf("ClearFolder(ghost) = %v, want ErrFolderNotFound", err)
	}
}

func TestClearFoldersOrphansTasks(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	tr.CreateFolder("Work")
	task, _ := tr.CreateTaskIn("stays", "Work")

	if err := tr.ClearFolders(); err != nil {
		t.Fatal(err)
	}
	if len(tr.ListFolders()) != 0 {
		t.Fatal("folders should be gone")
	}
	if tr.SelectedFolder() != "" {
		t.Fatal("selection should be cleared")
	}
	got, _ := tr.Task(task.ID)
	if got.Folder != "Work" {
		t.Fatal("tasks keep their stale folder name")
	}
	// The orphan drops out of the statistics.
	if len(tr.Stats().CurrentTasks()) != 0 {
		t.Fatal("orphaned task must not count as current")
	}
}

// ============================================================
// Task commands
// ============================================================

func TestCreateTaskUsesSelectedFolder(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	tr.CreateFolder("Work")
	task, err := tr.CreateTask("write report")
	if err != nil {
		t.Fatal(err)
	}
	if task.Folder != "Work" {
		t.Fatalf("Folder = %q, want the selected folder", task.Folder)
	}
}

func TestStartPauseScenario(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	tr.CreateFolder("Work")
	task, _ := tr.CreateTask("Write report")

	setClock(tr, at(0))
	if err := tr.StartTask(task.ID); err != nil {
		t.Fatal(err)
	}
	setClock(tr, at(5))
	if err := tr.PauseTask(task.ID); err != nil {
		t.Fatal(err)
	}

	if task.TotalDuration < 5 {
		t.Fatalf("TotalDuration = %d, want >= 5", task.TotalDuration)
	}
	if !task.Paused {
		t.Fatal("task should be paused")
	}
	if task.StartTime != nil {
		t.Fatal("StartTime should be cleared")
	}
}

func TestDeleteTaskRemovesArtifact(t *testing.T) {
	tr, p, e := newTestTracker(t)
	task, _ := tr.CreateTask("scratch notes")
	if err := tr.DeleteTask(task.ID); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(e.removedTasks, []string{"scratch notes"}) {
		t.Fatalf("removed artifacts = %v", e.removedTasks)
	}
	if len(p.tasks) != 0 {
		t.Fatal("persisted snapshot should be empty")
	}
}

func TestClearAll(t *testing.T) {
	tr, p, e := newTestTracker(t)
	tr.CreateTask("one")
	tr.CreateTask("two")
	if err := tr.ClearAll(); err != nil {
		t.Fatal(err)
	}
	if len(tr.Tasks()) != 0 || len(p.tasks) != 0 {
		t.Fatal("all tasks should be gone, in memory and persisted")
	}
	if !e.removedAll {
		t.Fatal("export artifacts should have been swept")
	}
}

func TestMoveTaskToUnknownFolderAllowed(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	task, _ := tr.CreateTask("drifting")
	if err := tr.MoveTaskToFolder(task.ID, "NotARealFolder"); err != nil {
		t.Fatalf("moves are not validated against the registry: %v", err)
	}
}

func TestSaveFailureReportedButStateKept(t *testing.T) {
	tr, p, _ := newTestTracker(t)
	p.saveErr = errors.New("disk full")
	task, err := tr.CreateTask("still here")
	if err == nil {
		t.Fatal("save failure must be reported")
	}
	if task == nil {
		t.Fatal("the created task is returned even when persisting failed")
	}
	if _, ok := tr.Task(task.ID); !ok {
		t.Fatal("in-memory mutation is kept on save failure")
	}
}

// ============================================================
// Queries
// ============================================================

func TestSelectFolderValidates(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	tr.CreateFolder("Work")
	if err := tr.SelectFolder("ghost"); !errors.Is(err, ErrFolderNotFound) {
		t.Fatalf("SelectFolder(ghost) = %v, want ErrFolderNotFound", err)
	}
	if err := tr.SelectFolder(""); err != nil {
		t.Fatalf("clearing the selection: %v", err)
	}
}

func TestReorderFolderPersists(t *testing.T) {
	tr, p, _ := newTestTracker(t)
	tr.CreateFolder("A")
	tr.CreateFolder("B")
	if err := tr.ReorderFolder("B", 0); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p.folders, []string{"B", "A"}) {
		t.Fatalf("persisted order = %v, want [B A]", p.folders)
	}
}

func TestExportCommands(t *testing.T) {
	tr, _, e := newTestTracker(t)
	tr.CreateFolder("Work")
	task, _ := tr.CreateTaskIn("report", "Work")

	if _, err := tr.ExportAll(); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.ExportAllJSON(); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.ExportFolder("Work"); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.ExportTask(task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.ExportTask("ghost"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("ExportTask(ghost) = %v, want ErrTaskNotFound", err)
	}
	want := []string{"all", "json", "folder:Work", "task:report"}
	if !reflect.DeepEqual(e.exports, want) {
		t.Fatalf("exports = %v, want %v", e.exports, want)
	}
}
