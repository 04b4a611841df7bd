package tracker

import (
	"testing"
	"time"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// at returns the simulated clock advanced by secs.
func at(secs int) time.Time {
	return base.Add(time.Duration(secs) * time.Second)
}

// ============================================================
// Status derivation
// ============================================================

func TestStatusDerivation(t *testing.T) {
	start := at(0)
	cases := []struct {
		name string
		task Task
		want Status
	}{
		{"idle", Task{}, StatusIdle},
		{"running", Task{StartTime: &start}, StatusRunning},
		{"paused", Task{Paused: true}, StatusPaused},
		{"paused with time banked", Task{TotalDuration: 10, Paused: true}, StatusPaused},
		{"completed", Task{TotalDuration: 10}, StatusCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.task.Status(); got != tc.want {
				t.Fatalf("Status() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStatusStrings(t *testing.T) {
	cases := map[Status]string{
		StatusIdle:      "Stopped",
		StatusRunning:   "Running",
		StatusPaused:    "Paused",
		StatusCompleted: "Completed",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", status, got, want)
		}
	}
}

// ============================================================
// Transitions
// ============================================================

func TestStartFromIdle(t *testing.T) {
	task := NewTask("write report", "Work")
	if !task.Start(at(0)) {
		t.Fatal("Start from Idle should apply")
	}
	if task.Status() != StatusRunning {
		t.Fatalf("expected Running, got %v", task.Status())
	}
	if !task.StartTime.Equal(at(0)) {
		t.Fatalf("StartTime = %v, want %v", task.StartTime, at(0))
	}
}

func TestStartNoOpOutsideIdle(t *testing.T) {
	running := NewTask("a", "")
	running.Start(at(0))
	if running.Start(at(5)) {
		t.Fatal("Start on a running task should be a no-op")
	}
	if !running.StartTime.Equal(at(0)) {
		t.Fatal("second Start must not reset StartTime")
	}

	paused := Task{Paused: true}
	if paused.Start(at(0)) {
		t.Fatal("Start on a paused task should be a no-op; resume is the only path")
	}

	completed := Task{TotalDuration: 30}
	if completed.Start(at(0)) {
		t.Fatal("Start on a completed task should be a no-op")
	}
}

func TestPauseBanksElapsedSeconds(t *testing.T) {
	task := NewTask("write report", "Work")
	task.Start(at(0))
	if !task.Pause(at(5)) {
		t.Fatal("Pause from Running should apply")
	}
	if task.TotalDuration < 5 {
		t.Fatalf("TotalDuration = %d, want >= 5", task.TotalDuration)
	}
	if !task.Paused {
		t.Fatal("Paused should be set")
	}
	if task.StartTime != nil {
		t.Fatal("StartTime should be cleared")
	}
}

func TestPauseNoOpUnlessRunning(t *testing.T) {
	idle := Task{}
	if idle.Pause(at(0)) {
		t.Fatal("Pause on Idle should be a no-op")
	}
	paused := Task{Paused: true, TotalDuration: 3}
	if paused.Pause(at(0)) {
		t.Fatal("Pause on Paused should be a no-op")
	}
	if paused.TotalDuration != 3 {
		t.Fatal("no-op Pause must not touch TotalDuration")
	}
}

func TestResumeOnlyFromPaused(t *testing.T) {
	task := NewTask("a", "")
	task.Start(at(0))
	task.Pause(at(4))
	if !task.Resume(at(10)) {
		t.Fatal("Resume from Paused should apply")
	}
	if task.Status() != StatusRunning {
		t.Fatalf("expected Running, got %v", task.Status())
	}

	idle := Task{}
	if idle.Resume(at(0)) {
		t.Fatal("Resume on Idle should be a no-op")
	}
	completed := Task{TotalDuration: 5}
	if completed.Resume(at(0)) {
		t.Fatal("Resume on Completed should be a no-op")
	}
}

func TestPauseResumeNoDrift(t *testing.T) {
	task := NewTask("a", "")
	task.Start(at(0))
	task.Pause(at(10))
	banked := task.TotalDuration
	task.Resume(at(10))
	task.Pause(at(10))
	if task.TotalDuration != banked {
		t.Fatalf("pause/resume at the same instant drifted: %d -> %d", banked, task.TotalDuration)
	}
}

// ============================================================
// Toggle complete
// ============================================================

func TestToggleCompleteFromRunning(t *testing.T) {
	task := NewTask("a", "")
	task.Start(at(0))
	task.ToggleComplete(at(7))
	if task.Status() != StatusCompleted {
		t.Fatalf("expected Completed, got %v", task.Status())
	}
	if task.TotalDuration < 7 {
		t.Fatalf("TotalDuration = %d, want >= 7", task.TotalDuration)
	}
}

func TestToggleCompleteFromPaused(t *testing.T) {
	task := Task{TotalDuration: 12, Paused: true}
	task.ToggleComplete(at(0))
	if task.Status() != StatusCompleted {
		t.Fatalf("expected Completed, got %v", task.Status())
	}
	if task.TotalDuration != 12 {
		t.Fatal("toggle must not alter TotalDuration")
	}
}

func TestToggleCompleteBackToPaused(t *testing.T) {
	task := Task{TotalDuration: 12}
	if task.Status() != StatusCompleted {
		t.Fatal("precondition: task should be Completed")
	}
	task.ToggleComplete(at(0))
	if task.Status() != StatusPaused {
		t.Fatalf("expected Paused after un-completing, got %v", task.Status())
	}
	if task.TotalDuration != 12 {
		t.Fatal("un-completing must not alter TotalDuration")
	}
}

func TestToggleCompleteOnIdleStaysIdle(t *testing.T) {
	// With no time banked there is nothing to complete; completion is
	// derived from TotalDuration.
	task := Task{}
	task.ToggleComplete(at(0))
	if task.Status() != StatusIdle {
		t.Fatalf("expected Idle, got %v", task.Status())
	}
}

// ============================================================
// Duration accounting
// ============================================================

func TestCurrentDurationMonotonicWhileRunning(t *testing.T) {
	task := NewTask("a", "")
	task.Start(at(0))

	prev := int64(-1)
	for secs := 0; secs <= 10; secs += 2 {
		d := task.CurrentDuration(at(secs))
		if d < prev {
			t.Fatalf("duration decreased: %d -> %d at +%ds", prev, d, secs)
		}
		prev = d
	}
	if prev != 10 {
		t.Fatalf("duration after 10s = %d, want 10", prev)
	}
}

func TestCurrentDurationConstantWhenNotRunning(t *testing.T) {
	cases := []Task{
		{},
		{TotalDuration: 42, Paused: true},
		{TotalDuration: 42},
	}
	for _, task := range cases {
		first := task.CurrentDuration(at(0))
		later := task.CurrentDuration(at(3600))
		if first != later {
			t.Fatalf("%v task duration changed over time: %d -> %d", task.Status(), first, later)
		}
	}
}

func TestCurrentDurationNeverNegative(t *testing.T) {
	task := NewTask("a", "")
	task.Start(at(100))
	// Wall clock stepped backwards.
	if d := task.CurrentDuration(at(50)); d != 0 {
		t.Fatalf("duration with clock behind start = %d, want 0", d)
	}
	task.Pause(at(50))
	if task.TotalDuration != 0 {
		t.Fatalf("pause with clock behind start banked %d, want 0", task.TotalDuration)
	}
}

// ============================================================
// Formatting
// ============================================================

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3661, "01:01:01"},
		{86400, "24:00:00"},
		{360000, "100:00:00"}, // hours are not mod 24
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.secs); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.secs, got, tc.want)
		}
	}
}
