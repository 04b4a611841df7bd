package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mkarslan/worktimer/internal/tracker"
)

// AllTasksJSONFile is the fixed filename of the JSON export.
const AllTasksJSONFile = "work_timer_export.json"

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Tasks      []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Project     string `json:"project"`
	DurationSec int64  `json:"duration_seconds"`
	Duration    string `json:"duration"`
	Status      string `json:"status"`
}

// ExportAllJSON writes every task to the fixed JSON report and returns its
// name. Same row content as the CSV report, machine-readable.
func (e *Exporter) ExportAllJSON(tasks []*tracker.Task, now time.Time) (string, error) {
	out := jsonExport{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Count:      len(tasks),
	}

	for _, t := range tasks {
		project := t.Folder
		if project == "" {
			project = tracker.Uncategorized
		}
		out.Tasks = append(out.Tasks, jsonTask{
			ID:          t.ID,
			Description: t.Description,
			Project:     project,
			DurationSec: t.CurrentDuration(now),
			Duration:    tracker.FormatDuration(t.CurrentDuration(now)),
			Status:      t.Status().String(),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(filepath.Join(e.dir, AllTasksJSONFile), data, 0o644); err != nil {
		return "", fmt.Errorf("write json file: %w", err)
	}
	return AllTasksJSONFile, nil
}
