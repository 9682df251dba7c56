package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/ramanasai/daytodo/internal/view"
)

// jumper is a text input that fuzzy-matches sidebar dates by label or key.
type jumper struct {
	input          textinput.Model
	items          []view.SidebarItem
	matches        []view.SidebarItem
	selected       int
	maxSuggestions int
}

func newInput(placeholder string, width int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Width = width
	in.CharLimit = 500
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func newJumper(maxSuggestions int) jumper {
	return jumper{
		input:          newInput("date, alias or key…", 40),
		maxSuggestions: maxSuggestions,
	}
}

// Reset loads the candidate dates and clears the query.
func (j jumper) Reset(items []view.SidebarItem) jumper {
	j.items = items
	j.input.SetValue("")
	j.input.Focus()
	j.selected = 0
	j.matches = rankDates(items, "", j.maxSuggestions)
	return j
}

func (j jumper) Update(msg tea.KeyMsg) jumper {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		if len(j.matches) > 0 {
			j.selected = (j.selected + 1) % len(j.matches)
		}
		return j
	case tea.KeyShiftTab, tea.KeyUp:
		if len(j.matches) > 0 {
			j.selected = (j.selected - 1 + len(j.matches)) % len(j.matches)
		}
		return j
	}
	old := j.input.Value()
	j.input, _ = j.input.Update(msg)
	if j.input.Value() != old {
		j.matches = rankDates(j.items, j.input.Value(), j.maxSuggestions)
		j.selected = 0
	}
	return j
}

// Choice returns the highlighted date.
func (j jumper) Choice() (view.SidebarItem, bool) {
	if j.selected < 0 || j.selected >= len(j.matches) {
		return view.SidebarItem{}, false
	}
	return j.matches[j.selected], true
}

// rankDates orders items by fuzzy distance to query over "label key".
// An empty query keeps sidebar order.
func rankDates(items []view.SidebarItem, query string, limit int) []view.SidebarItem {
	query = strings.TrimSpace(query)
	if query == "" {
		if len(items) > limit {
			return items[:limit]
		}
		return items
	}
	targets := make([]string, len(items))
	for i, it := range items {
		targets[i] = it.Label + " " + it.Key
	}
	ranks := fuzzy.RankFindFold(query, targets)
	sort.Stable(ranks)
	out := make([]view.SidebarItem, 0, min(len(ranks), limit))
	for _, r := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, items[r.OriginalIndex])
	}
	return out
}

func (j jumper) View(t Theme) string {
	var b strings.Builder
	b.WriteString(j.input.View())
	for i, it := range j.matches {
		b.WriteString("\n")
		line := "  " + it.Label
		if it.Label != it.Key {
			line += " " + t.Dim.Render(it.Key)
		}
		if i == j.selected {
			line = t.Active.Render("▶ ") + t.Active.Render(it.Label)
			if it.Label != it.Key {
				line += " " + t.Dim.Render(it.Key)
			}
		}
		b.WriteString(line)
	}
	return b.String()
}
