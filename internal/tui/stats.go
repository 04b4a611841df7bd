package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkarslan/worktimer/internal/tracker"
)

// statsModel renders the read-only statistics view: summary figures plus a
// bar chart of per-folder durations.
type statsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	durations []tracker.FolderDuration
	chart     barchart.Model
}

func newStatsModel(tr *tracker.Tracker) statsModel {
	return statsModel{
		tracker: tr,
		chart:   barchart.New(60, 12),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type statsDataMsg struct {
	durations []tracker.FolderDuration
}

func (s statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return statsDataMsg{durations: s.tracker.FolderDurations()}
	}
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		s.durations = msg.durations
		s.buildChart()
		return s, nil
	case tickMsg:
		return s, s.refresh()
	}
	return s, nil
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if s.height > 30 {
		chartHeight = 16
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, fd := range s.durations {
		hours := float64(fd.Seconds) / 3600.0
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if fd.Folder == tracker.Uncategorized {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: fd.Folder,
			Values: []barchart.BarValue{
				{Name: fd.Folder, Value: hours, Style: style},
			},
		})
	}

	if len(bars) == 0 {
		return
	}
	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) view() string {
	w := s.width - 4
	st := s.tracker.Stats()
	current := st.CurrentTasks()

	var rows []string
	rows = append(rows, titleStyle.Render("Statistics"))
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  Total Time Tracked:     %s", highlightStyle.Render(formatSeconds(s.tracker.TotalTracked()))))
	rows = append(rows, fmt.Sprintf("  Currently Running:      %d", st.RunningCount()))
	rows = append(rows, fmt.Sprintf("  Average Task Duration:  %s", formatSeconds(s.tracker.AverageDuration())))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  Folders: %d  Tasks: %d  Completed: %d",
		len(s.tracker.ListFolders()), len(current), st.CompletedCount())))

	if len(s.durations) > 0 {
		rows = append(rows, "")
		rows = append(rows, titleStyle.Render("Time per Folder (hours)"))
		rows = append(rows, s.chart.View())
		rows = append(rows, s.renderDurationTable(w))
	} else {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  No tracked time yet"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (s statsModel) renderDurationTable(w int) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-24s %12s", "Folder", "Duration")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", max(0, min(w-6, 38)))))
	for _, fd := range s.durations {
		rows = append(rows, fmt.Sprintf("  %-24s %12s", fd.Folder, formatSeconds(fd.Seconds)))
	}
	return strings.Join(rows, "\n")
}
