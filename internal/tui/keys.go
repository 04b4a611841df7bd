package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start        key.Binding
	Pause        key.Binding
	Complete     key.Binding
	New          key.Binding
	NewFolder    key.Binding
	Delete       key.Binding
	DeleteFolder key.Binding
	ClearFolder  key.Binding
	ClearAll     key.Binding
	ClearFolders key.Binding
	Move         key.Binding
	Export       key.Binding
	MoveLeft     key.Binding
	MoveRight    key.Binding
	Tab1         key.Binding
	Tab2         key.Binding
	Tab          key.Binding
	Help         key.Binding
	Enter        key.Binding
	Back         key.Binding
	Up           key.Binding
	Down         key.Binding
	Quit         key.Binding
}

var keys = keyMap{
	Start: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start"),
	),
	Pause: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pause/resume"),
	),
	Complete: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "toggle complete"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new task"),
	),
	NewFolder: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "new folder"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete task"),
	),
	DeleteFolder: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "delete folder"),
	),
	ClearFolder: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear folder"),
	),
	ClearAll: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "clear all tasks"),
	),
	ClearFolders: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "clear folders"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move to folder"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	MoveLeft: key.NewBinding(
		key.WithKeys("<"),
		key.WithHelp("<", "move folder up"),
	),
	MoveRight: key.NewBinding(
		key.WithKeys(">"),
		key.WithHelp(">", "move folder down"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "tasks"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "statistics"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Complete, k.New, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Complete},
		{k.New, k.NewFolder, k.Delete, k.DeleteFolder},
		{k.ClearFolder, k.ClearAll, k.ClearFolders, k.Move, k.Export},
		{k.MoveLeft, k.MoveRight, k.Tab1, k.Tab2},
		{k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}
