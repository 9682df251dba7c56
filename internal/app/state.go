// Package app holds the application state and the service that performs
// user actions against the todo API.
package app

import (
	"strings"

	"github.com/ramanasai/daytodo/internal/search"
)

// Session is an active search. It is never persisted.
type Session struct {
	Query string
}

// State is the shell-owned selection and search mode.
type State struct {
	Current string
	Search  *Session
}

// NewState selects today.
func NewState(today string) State {
	return State{Current: today}
}

// Searching reports whether a search session is active.
func (s State) Searching() bool { return s.Search != nil }

// Select switches to key and leaves search mode.
func (s State) Select(key string) State {
	return State{Current: key}
}

// EnterSearch starts a session for query. Blank queries are rejected.
func (s State) EnterSearch(query string) (State, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return s, search.ErrEmptyQuery
	}
	return State{Current: s.Current, Search: &Session{Query: q}}, nil
}

// ExitSearch restores the current selection's view.
func (s State) ExitSearch() State {
	return State{Current: s.Current}
}

// AfterDateDeleted moves the selection to today when the deleted key was
// selected.
func (s State) AfterDateDeleted(deleted, today string) State {
	if deleted != s.Current {
		return s
	}
	return State{Current: today, Search: s.Search}
}
