package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mkarslan/worktimer/internal/tracker"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTasks viewState = iota
	viewStats
)

var viewNames = []string{"Tasks", "Statistics"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// --- Helpers ---

func formatSeconds(secs int64) string {
	return tracker.FormatDuration(secs)
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: err.Error(), isError: true} }
}
