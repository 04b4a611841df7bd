package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mkarslan/worktimer/internal/export"
	"github.com/mkarslan/worktimer/internal/store"
	"github.com/mkarslan/worktimer/internal/tracker"
	"github.com/mkarslan/worktimer/internal/tui"
)

func main() {
	defaultDB, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	dbPath := flag.String("db", defaultDB, "path to the snapshot database")
	exportDir := flag.String("export-dir", ".", "directory CSV reports are written to")
	flag.Parse()

	s, err := store.New(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	tr, err := tracker.New(s, export.New(*exportDir))
	if err != nil {
		// A corrupt snapshot starts the session empty rather than crashing,
		// but never silently.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	app := tui.NewApp(tr)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
