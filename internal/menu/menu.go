// Package menu implements the per-date context menu: a two-state machine
// and the copy, rename, delete and pin actions it dispatches.
package menu

// State is the visibility of the menu.
type State int

const (
	Hidden State = iota
	Shown
)

func (s State) String() string {
	if s == Shown {
		return "shown"
	}
	return "hidden"
}

// Menu tracks which date the menu was opened for.
type Menu struct {
	state  State
	target string
	// X and Y are where the menu was opened, in cells.
	X, Y int
}

// Open shows the menu for key.
func (m *Menu) Open(key string) { m.OpenAt(key, 0, 0) }

// OpenAt shows the menu for key anchored at x, y.
func (m *Menu) OpenAt(key string, x, y int) {
	m.state = Shown
	m.target = key
	m.X, m.Y = x, y
}

// Dismiss hides the menu and forgets its target.
func (m *Menu) Dismiss() {
	m.state = Hidden
	m.target = ""
	m.X, m.Y = 0, 0
}

// State returns the current state.
func (m *Menu) State() State { return m.state }

// Visible reports whether the menu is shown.
func (m *Menu) Visible() bool { return m.state == Shown }

// Target returns the key the menu was opened for.
func (m *Menu) Target() (string, bool) {
	if m.state != Shown {
		return "", false
	}
	return m.target, true
}
