package tracker

import (
	"sort"
	"strings"
	"time"
)

// TaskStore owns the in-memory task collection, keyed by id. It performs no
// folder validation: a task may name a folder that no longer exists, and the
// statistics layer filters such orphans out.
type TaskStore struct {
	tasks map[string]*Task
}

func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]*Task)}
}

// Add creates a task in the given folder (empty means uncategorized).
func (s *TaskStore) Add(description, folder string) (*Task, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}
	t := NewTask(description, folder)
	s.tasks[t.ID] = t
	return t, nil
}

// Insert places an existing task into the store, used when loading snapshots.
func (s *TaskStore) Insert(t *Task) {
	s.tasks[t.ID] = t
}

func (s *TaskStore) Get(id string) (*Task, bool) {
	t, ok := s.tasks[id]
	return t, ok
}

// Delete removes the task and returns it so the caller can clean up any
// export artifact it left behind.
func (s *TaskStore) Delete(id string) (*Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	delete(s.tasks, id)
	return t, nil
}

func (s *TaskStore) MoveToFolder(id, folder string) error {
	t, ok := s.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	t.Folder = folder
	return nil
}

// ApplyAction dispatches a timer transition to the task.
func (s *TaskStore) ApplyAction(id string, action Action, now time.Time) error {
	t, ok := s.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	t.Apply(action, now)
	return nil
}

func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// All returns every task ordered by description, then id, so reports and
// exports are stable across runs.
func (s *TaskStore) All() []*Task {
	out := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sortTasks(out)
	return out
}

// InFolder returns the tasks whose folder matches name exactly.
func (s *TaskStore) InFolder(name string) []*Task {
	var out []*Task
	for _, t := range s.tasks {
		if t.Folder == name {
			out = append(out, t)
		}
	}
	sortTasks(out)
	return out
}

// Uncategorized returns the tasks that carry no folder.
func (s *TaskStore) Uncategorized() []*Task {
	return s.InFolder("")
}

// RemoveInFolder deletes every task whose folder matches name and returns the
// removed tasks for artifact cleanup.
func (s *TaskStore) RemoveInFolder(name string) []*Task {
	removed := s.InFolder(name)
	for _, t := range removed {
		delete(s.tasks, t.ID)
	}
	return removed
}

// Clear deletes every task and returns them.
func (s *TaskStore) Clear() []*Task {
	removed := s.All()
	s.tasks = make(map[string]*Task)
	return removed
}

// TasksByFolder groups task ids by folder name, with folderless tasks under
// Uncategorized. Ids within a group follow the All ordering.
func (s *TaskStore) TasksByFolder() map[string][]string {
	groups := make(map[string][]string)
	for _, t := range s.All() {
		folder := t.Folder
		if folder == "" {
			folder = Uncategorized
		}
		groups[folder] = append(groups[folder], t.ID)
	}
	return groups
}

func sortTasks(tasks []*Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Description != tasks[j].Description {
			return tasks[i].Description < tasks[j].Description
		}
		return tasks[i].ID < tasks[j].ID
	})
}
