package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
)

// newEditor returns the multi-line prompt used to add and edit todos. Plain
// enter is handled by the model as commit; newline inserts a line break.
func newEditor(placeholder string, width int, newline key.Binding) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(width)
	ta.SetHeight(4)
	ta.KeyMap.InsertNewline = newline
	ta.Cursor.SetMode(cursor.CursorStatic)
	return ta
}

// oneLine flattens multi-line content for single-row display only.
func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ↵ ")
}
