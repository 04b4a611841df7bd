package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Uncategorized is the grouping label for tasks that carry no folder.
const Uncategorized = "Uncategorized"

// Status classifies a task's timer state. It is derived from the persisted
// fields rather than stored, so a loaded snapshot can never disagree with it.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "Running"
	case StatusPaused:
		return "Paused"
	case StatusCompleted:
		return "Completed"
	default:
		return "Stopped"
	}
}

// Action is a timer command dispatched to a task.
type Action int

const (
	ActionStart Action = iota
	ActionPause
	ActionResume
	ActionToggleComplete
)

// Task is a trackable unit of work. TotalDuration accumulates whole seconds
// across runs; StartTime is set iff the task is currently running, and Paused
// is set iff it is paused. At most one of the two holds at a time.
type Task struct {
	ID            string
	Description   string
	Folder        string // empty = uncategorized; not validated against the registry
	TotalDuration int64  // seconds
	StartTime     *time.Time
	Paused        bool
}

func NewTask(description, folder string) *Task {
	return &Task{
		ID:          uuid.NewString(),
		Description: description,
		Folder:      folder,
	}
}

func (t *Task) Status() Status {
	switch {
	case t.StartTime != nil:
		return StatusRunning
	case t.Paused:
		return StatusPaused
	case t.TotalDuration > 0:
		return StatusCompleted
	default:
		return StatusIdle
	}
}

// Start begins timing. Valid only from Idle; a paused task must be resumed
// instead. Reports whether the transition applied.
func (t *Task) Start(now time.Time) bool {
	if t.Status() != StatusIdle {
		return false
	}
	start := now
	t.StartTime = &start
	return true
}

// Pause stops the clock and banks the elapsed seconds. Valid only from Running.
func (t *Task) Pause(now time.Time) bool {
	if t.Status() != StatusRunning {
		return false
	}
	t.TotalDuration += elapsedSeconds(*t.StartTime, now)
	t.StartTime = nil
	t.Paused = true
	return true
}

// Resume restarts the clock. Valid only from Paused.
func (t *Task) Resume(now time.Time) bool {
	if t.Status() != StatusPaused {
		return false
	}
	start := now
	t.StartTime = &start
	t.Paused = false
	return true
}

// ToggleComplete flips completion. A completed task becomes paused again; a
// running task is paused first and then marked complete; an idle or paused
// task is marked complete directly (which leaves it idle when no time was
// ever banked, since completion is derived from TotalDuration).
func (t *Task) ToggleComplete(now time.Time) {
	switch t.Status() {
	case StatusCompleted:
		t.Paused = true
	case StatusRunning:
		t.Pause(now)
		t.Paused = false
	case StatusIdle, StatusPaused:
		t.Paused = false
	}
}

// Apply dispatches a timer action. Invalid transitions are no-ops.
func (t *Task) Apply(action Action, now time.Time) {
	switch action {
	case ActionStart:
		t.Start(now)
	case ActionPause:
		t.Pause(now)
	case ActionResume:
		t.Resume(now)
	case ActionToggleComplete:
		t.ToggleComplete(now)
	}
}

// CurrentDuration returns the accumulated seconds, including the live run if
// the task is running. Never negative, even if the wall clock stepped back.
func (t *Task) CurrentDuration(now time.Time) int64 {
	d := t.TotalDuration
	if t.StartTime != nil {
		d += elapsedSeconds(*t.StartTime, now)
	}
	return d
}

func elapsedSeconds(start, now time.Time) int64 {
	secs := int64(now.Sub(start).Seconds())
	if secs < 0 {
		return 0
	}
	return secs
}

// FormatDuration renders seconds as HH:MM:SS. Hours are unbounded.
func FormatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
