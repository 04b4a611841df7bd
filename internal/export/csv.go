package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkarslan/worktimer/internal/tracker"
)

// AllTasksFile is the fixed filename of the export-all report.
const AllTasksFile = "work_timer_export.csv"

var csvHeader = []string{"Task", "Project", "Duration (HH:MM:SS)", "Status"}

// Exporter writes CSV reports into a single directory and cleans up the
// artifacts commands leave behind. Filenames are derived from sanitized
// descriptions; collision handling is not race-safe, which is fine for a
// single-process tool.
type Exporter struct {
	dir string
}

func New(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Dir returns the export directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// ExportAll writes every task to the fixed report file and returns its name.
func (e *Exporter) ExportAll(tasks []*tracker.Task, now time.Time) (string, error) {
	if err := e.write(AllTasksFile, tasks, now); err != nil {
		return "", err
	}
	return AllTasksFile, nil
}

// ExportFolder writes the tasks whose folder matches name exactly.
func (e *Exporter) ExportFolder(name string, tasks []*tracker.Task, now time.Time) (string, error) {
	filename := folderFile(name)
	var matched []*tracker.Task
	for _, t := range tasks {
		if t.Folder == name {
			matched = append(matched, t)
		}
	}
	if err := e.write(filename, matched, now); err != nil {
		return "", err
	}
	return filename, nil
}

// ExportTask writes a single-task report. When the sanitized description
// collides with an existing file, _1, _2, ... suffixes are tried until a
// free name is found.
func (e *Exporter) ExportTask(t *tracker.Task, now time.Time) (string, error) {
	filename := e.uniqueFilename(t.Description)
	if err := e.write(filename, []*tracker.Task{t}, now); err != nil {
		return "", err
	}
	return filename, nil
}

func (e *Exporter) write(filename string, tasks []*tracker.Task, now time.Time) error {
	f, err := os.Create(filepath.Join(e.dir, filename))
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range tasks {
		project := t.Folder
		if project == "" {
			project = tracker.Uncategorized
		}
		row := []string{
			t.Description,
			project,
			tracker.FormatDuration(t.CurrentDuration(now)),
			t.Status().String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func (e *Exporter) uniqueFilename(description string) string {
	sanitized := Filename(description)
	filename := sanitized + ".csv"
	for counter := 1; e.exists(filename); counter++ {
		filename = fmt.Sprintf("%s_%d.csv", sanitized, counter)
	}
	return filename
}

func (e *Exporter) exists(filename string) bool {
	_, err := os.Stat(filepath.Join(e.dir, filename))
	return err == nil
}

// RemoveTaskArtifact deletes a task's base export file, ignoring failures.
// Suffixed collision files are left alone, matching how deletion has always
// behaved.
func (e *Exporter) RemoveTaskArtifact(description string) {
	os.Remove(filepath.Join(e.dir, Filename(description)+".csv"))
}

// RemoveFolderArtifact deletes a folder's export file, ignoring failures.
func (e *Exporter) RemoveFolderArtifact(name string) {
	os.Remove(filepath.Join(e.dir, folderFile(name)))
}

// RemoveAllArtifacts deletes every .csv file in the export directory,
// including the export-all report. Best effort.
func (e *Exporter) RemoveAllArtifacts() {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".csv") {
			os.Remove(filepath.Join(e.dir, entry.Name()))
		}
	}
	os.Remove(filepath.Join(e.dir, AllTasksJSONFile))
}

func folderFile(name string) string {
	return "folder_" + Filename(name) + ".csv"
}
