package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down    key.Binding
	Pane        key.Binding
	Select      key.Binding
	Add         key.Binding
	Edit        key.Binding
	NewLine     key.Binding
	Toggle      key.Binding
	Delete      key.Binding
	Duplicate   key.Binding
	Yank        key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Search      key.Binding
	Back        key.Binding
	Menu        key.Binding
	Export      key.Binding
	Jump        key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
	MenuCopy    key.Binding
	MenuRename  key.Binding
	MenuDelete  key.Binding
	MenuPin     key.Binding
	ConfirmYes  key.Binding
	ConfirmNo   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Pane:       key.NewBinding(key.WithKeys("tab", "left", "right"), key.WithHelp("tab", "switch pane")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open date")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		NewLine:    key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "new line")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle done")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Duplicate:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "duplicate")),
		Yank:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy text")),
		MoveUp:     key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
		MoveDown:   key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "exit search")),
		Menu:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "date menu")),
		Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Jump:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "jump to date")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		MenuCopy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy date")),
		MenuRename: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		MenuDelete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete date")),
		MenuPin:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin/unpin")),
		ConfirmYes: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		ConfirmNo:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
	}
}

// ShortHelp is shown in the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Search, k.Menu, k.Help, k.Quit}
}

// FullHelp is shown in the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Pane, k.Select, k.Jump, k.Refresh},
		{k.Add, k.Edit, k.NewLine, k.Toggle, k.Delete, k.Duplicate, k.Yank, k.MoveUp, k.MoveDown},
		{k.Search, k.Back, k.Menu, k.Export, k.Help, k.Quit},
		{k.MenuCopy, k.MenuRename, k.MenuDelete, k.MenuPin},
	}
}
