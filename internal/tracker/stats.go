package tracker

import (
	"sort"
	"time"
)

// FolderDuration is a per-folder total used by reports and charts.
type FolderDuration struct {
	Folder  string
	Seconds int64
}

// Stats answers read-only questions over the task and folder collections.
// "Current" tasks are those that are uncategorized or whose folder still
// exists; tasks orphaned by direct folder edits are excluded.
type Stats struct {
	tasks   *TaskStore
	folders *FolderRegistry
}

func NewStats(tasks *TaskStore, folders *FolderRegistry) *Stats {
	return &Stats{tasks: tasks, folders: folders}
}

// CurrentTasks returns the tasks counted by the summary figures.
func (s *Stats) CurrentTasks() []*Task {
	var out []*Task
	for _, t := range s.tasks.All() {
		if t.Folder == "" || s.folders.Contains(t.Folder) {
			out = append(out, t)
		}
	}
	return out
}

// TotalTracked sums the live duration of every current task.
func (s *Stats) TotalTracked(now time.Time) int64 {
	var total int64
	for _, t := range s.CurrentTasks() {
		total += t.CurrentDuration(now)
	}
	return total
}

// RunningCount reports how many current tasks are actively running.
func (s *Stats) RunningCount() int {
	count := 0
	for _, t := range s.CurrentTasks() {
		if t.Status() == StatusRunning {
			count++
		}
	}
	return count
}

// CompletedCount reports how many current tasks are completed.
func (s *Stats) CompletedCount() int {
	count := 0
	for _, t := range s.CurrentTasks() {
		if t.Status() == StatusCompleted {
			count++
		}
	}
	return count
}

// AverageDuration is the integer mean over current tasks, zero when empty.
func (s *Stats) AverageDuration(now time.Time) int64 {
	current := s.CurrentTasks()
	if len(current) == 0 {
		return 0
	}
	var total int64
	for _, t := range current {
		total += t.CurrentDuration(now)
	}
	return total / int64(len(current))
}

// FolderDurations totals live durations per folder across all tasks, with
// folderless tasks grouped under Uncategorized. Sorted by duration descending,
// ties broken by name so the result is deterministic.
func (s *Stats) FolderDurations(now time.Time) []FolderDuration {
	totals := make(map[string]int64)
	for _, t := range s.tasks.All() {
		folder := t.Folder
		if folder == "" {
			folder = Uncategorized
		}
		totals[folder] += t.CurrentDuration(now)
	}

	out := make([]FolderDuration, 0, len(totals))
	for folder, secs := range totals {
		out = append(out, FolderDuration{Folder: folder, Seconds: secs})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Seconds != out[j].Seconds {
			return out[i].Seconds > out[j].Seconds
		}
		return out[i].Folder < out[j].Folder
	})
	return out
}

// ProjectNames returns the distinct folder names referenced by tasks, sorted.
// When no task names a folder it returns just "Default".
func (s *Stats) ProjectNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range s.tasks.All() {
		if t.Folder == "" || seen[t.Folder] {
			continue
		}
		seen[t.Folder] = true
		names = append(names, t.Folder)
	}
	if len(names) == 0 {
		return []string{"Default"}
	}
	sort.Strings(names)
	return names
}
