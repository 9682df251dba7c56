// Package view turns application state and fetched data into a
// renderer-neutral page description. It performs no I/O.
package view

import (
	"fmt"

	"github.com/ramanasai/daytodo/internal/api"
	"github.com/ramanasai/daytodo/internal/dateutil"
	"github.com/ramanasai/daytodo/internal/directory"
	"github.com/ramanasai/daytodo/internal/search"
)

const (
	EmptyList    = "No todos yet. Press a to add one."
	EmptySearch  = "No matching todos."
	FallbackNote = "Server unreachable, showing recent days."
)

// Row is one todo line.
type Row struct {
	ID        int64
	Date      string
	Content   string
	Completed bool
	Order     int
	// Stamp is "done HH:MM" or "created HH:MM".
	Stamp string
	// Origin is the display name of the todo's date, set for search rows.
	Origin   string
	Segments []search.Segment
}

// SidebarItem is one date in the sidebar.
type SidebarItem struct {
	Key    string
	Label  string
	Count  int
	Active bool
	Pinned bool
}

// Page is everything a renderer needs for one frame.
type Page struct {
	Title     string
	Sidebar   []SidebarItem
	Rows      []Row
	Empty     string
	Searching bool
	Query     string
	Fallback  bool
	// Warning carries a non-fatal load problem for the status line.
	Warning string
}

// Data is the fetched input for Build.
type Data struct {
	Listing directory.Listing
	// Title is the display name of the current selection.
	Title  string
	Todos  []api.Todo
	Search *search.Result
}

func stamp(t api.Todo, f dateutil.Formatter) string {
	if t.Completed && t.CompletedAt != nil {
		return "done " + f.Clock(*t.CompletedAt)
	}
	if t.Completed {
		return "done"
	}
	return "created " + f.Clock(t.CreatedAt)
}

// Rows converts a date's todos, most recent first.
func Rows(todos []api.Todo, f dateutil.Formatter) []Row {
	rows := make([]Row, 0, len(todos))
	for i := len(todos) - 1; i >= 0; i-- {
		t := todos[i]
		rows = append(rows, Row{
			ID:        t.ID,
			Date:      t.Date,
			Content:   t.Content,
			Completed: t.Completed,
			Order:     t.Order,
			Stamp:     stamp(t, f),
		})
	}
	return rows
}

// SearchRows converts search matches, annotating each with its origin date.
// names maps a key to its display name; nil uses the formatter.
func SearchRows(res search.Result, f dateutil.Formatter, names func(string) string) []Row {
	if names == nil {
		names = f.Display
	}
	rows := make([]Row, 0, len(res.Matches))
	for _, m := range res.Matches {
		t := m.Todo
		rows = append(rows, Row{
			ID:        t.ID,
			Date:      m.Date,
			Content:   t.Content,
			Completed: t.Completed,
			Order:     t.Order,
			Stamp:     stamp(t, f),
			Origin:    names(m.Date),
			Segments:  search.Highlight(t.Content, res.Query),
		})
	}
	return rows
}

// Sidebar marks the active and pinned entries of a listing.
func Sidebar(l directory.Listing, current string) []SidebarItem {
	items := make([]SidebarItem, 0, len(l.Entries))
	for _, e := range l.Entries {
		items = append(items, SidebarItem{
			Key:    e.Key,
			Label:  e.Display,
			Count:  e.Count,
			Active: e.Key == current,
			Pinned: e.Pinned,
		})
	}
	return items
}

// Build assembles the page for the current selection, or for the search
// session when d.Search is set.
func Build(current string, d Data, f dateutil.Formatter) Page {
	p := Page{
		Sidebar:  Sidebar(d.Listing, current),
		Fallback: d.Listing.Fallback,
	}
	if d.Listing.Fallback {
		p.Warning = FallbackNote
	} else if d.Listing.Err != nil {
		p.Warning = api.Message(d.Listing.Err)
	}

	if d.Search != nil {
		names := func(k string) string {
			if e, ok := d.Listing.Find(k); ok {
				return e.Display
			}
			return f.Display(k)
		}
		p.Searching = true
		p.Query = d.Search.Query
		p.Rows = SearchRows(*d.Search, f, names)
		p.Title = fmt.Sprintf("Search: %q (%d)", d.Search.Query, len(p.Rows))
		if len(p.Rows) == 0 {
			p.Empty = EmptySearch
		}
		return p
	}

	title := d.Title
	if title == "" {
		title = f.Display(current)
	}
	p.Title = title + " Todo"
	p.Rows = Rows(d.Todos, f)
	if len(p.Rows) == 0 {
		p.Empty = EmptyList
	}
	return p
}
