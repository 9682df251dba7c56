// Package ui is the Bubble Tea front end: a dates pane, a todos pane, the
// per-date menu and the input prompts.
package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/ramanasai/daytodo/internal/api"
	"github.com/ramanasai/daytodo/internal/app"
	"github.com/ramanasai/daytodo/internal/menu"
	"github.com/ramanasai/daytodo/internal/notify"
	"github.com/ramanasai/daytodo/internal/schedule"
	"github.com/ramanasai/daytodo/internal/search"
	"github.com/ramanasai/daytodo/internal/view"
)

type focusPane int
type mode int

const (
	focusTodos focusPane = iota
	focusDates
)

const (
	modeNormal mode = iota
	modeAdd
	modeEdit
	modeSearch
	modeMenu
	modeRename
	modeConfirmDelete
	modeJump
	modeHelp
)

const (
	defaultNoticeTTL = 4 * time.Second
	// rows above the first sidebar item: top bar, border, pane title
	sidebarTop = 3
)

// Options configures the TUI.
type Options struct {
	Logger    *log.Logger
	Theme     string
	Notifier  notify.Notifier
	NoticeTTL time.Duration
}

type Model struct {
	svc      *app.Service
	logger   *log.Logger
	notifier notify.Notifier
	theme    Theme
	keys     keyMap
	help     help.Model

	state  app.State
	today  string
	page   view.Page
	loaded bool

	focus      focusPane
	mode       mode
	dateCursor int
	todoCursor int

	menu           menu.Menu
	input          textinput.Model
	editor         textarea.Model
	jump           jumper
	editRow        view.Row
	pendingKey     string
	pendingDisplay string

	notice    string
	noticeErr bool
	noticeSeq int
	noticeTTL time.Duration

	width, height int
}

// New returns the initial model with today selected.
func New(svc *app.Service, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.NoticeTTL <= 0 {
		opts.NoticeTTL = defaultNoticeTTL
	}
	today := svc.Today()
	return Model{
		svc:       svc,
		logger:    opts.Logger,
		notifier:  opts.Notifier,
		theme:     ThemeByName(opts.Theme),
		keys:      defaultKeys(),
		help:      help.New(),
		state:     app.NewState(today),
		today:     today,
		jump:      newJumper(8),
		noticeTTL: opts.NoticeTTL,
	}
}

// Run starts the program and blocks until the user quits.
func Run(svc *app.Service, opts Options) error {
	p := tea.NewProgram(New(svc, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.midnightCmd())
}

// ---------- messages & commands ----------

type pageMsg struct {
	page view.Page
	err  error
}

type actionMsg struct {
	out menu.Outcome
	err error
	// deleted is the date key removed by a menu delete.
	deleted     string
	cursorDelta int
}

type noticeExpiredMsg struct{ seq int }
type midnightMsg struct{}

func (m Model) loadCmd() tea.Cmd {
	svc, st := m.svc, m.state
	return func() tea.Msg {
		page, err := svc.Page(context.Background(), st)
		return pageMsg{page: page, err: err}
	}
}

func run(fn func(ctx context.Context) actionMsg) tea.Cmd {
	return func() tea.Msg { return fn(context.Background()) }
}

func (m Model) midnightCmd() tea.Cmd {
	next := schedule.NextMidnight(time.Now(), m.svc.Formatter().Location)
	return tea.Tick(time.Until(next), func(time.Time) tea.Msg { return midnightMsg{} })
}

func (m *Model) setNotice(msg string, isErr bool) tea.Cmd {
	m.noticeSeq++
	m.notice, m.noticeErr = msg, isErr
	if isErr {
		m.logger.Warn("action failed", "msg", msg)
	}
	seq := m.noticeSeq
	cmds := []tea.Cmd{tea.Tick(m.noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })}
	if m.notifier.Enabled {
		n, logger := m.notifier, m.logger
		cmds = append(cmds, func() tea.Msg {
			if err := n.Send(msg, isErr); err != nil {
				logger.Debug("desktop notification failed", "err", err)
			}
			return nil
		})
	}
	return tea.Batch(cmds...)
}

func errText(err error) string {
	switch {
	case errors.Is(err, app.ErrEmptyContent):
		return "Todo text cannot be empty"
	case errors.Is(err, menu.ErrBlankAlias):
		return "Name cannot be blank"
	case errors.Is(err, search.ErrEmptyQuery):
		return "Enter a search term"
	}
	return api.Message(err)
}

// ---------- Update ----------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case pageMsg:
		if msg.err != nil {
			return m, m.setNotice(errText(msg.err), true)
		}
		m.page = msg.page
		m.loaded = true
		if m.focus != focusDates {
			m.dateCursor = m.activeIndex()
		}
		m.dateCursor = clamp(m.dateCursor, len(m.page.Sidebar))
		m.todoCursor = clamp(m.todoCursor, len(m.page.Rows))
		return m, nil

	case actionMsg:
		var cmds []tea.Cmd
		if msg.err != nil {
			cmds = append(cmds, m.setNotice(errText(msg.err), true))
		} else {
			if msg.out.Notice != "" {
				cmds = append(cmds, m.setNotice(msg.out.Notice, false))
			}
			m.todoCursor += msg.cursorDelta
		}
		switch {
		case msg.deleted != "":
			m.state = m.state.AfterDateDeleted(msg.deleted, m.svc.Today())
		case msg.out.Select != "":
			m.state = m.state.Select(msg.out.Select)
			m.todoCursor = 0
		}
		if msg.out.Refresh || msg.out.Select != "" {
			cmds = append(cmds, m.loadCmd())
		}
		return m, tea.Batch(cmds...)

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice, m.noticeErr = "", false
		}
		return m, nil

	case midnightMsg:
		today := m.svc.Today()
		if m.state.Current == m.today && !m.state.Searching() {
			m.state = m.state.Select(today)
		}
		m.today = today
		return m, tea.Batch(m.loadCmd(), m.midnightCmd())

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit, modeSearch, modeRename:
			return m.updateInput(msg)
		case modeMenu:
			return m.updateMenu(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modeJump:
			return m.updateJump(msg)
		case modeHelp:
			m.mode = modeNormal
			return m, nil
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	idx := msg.Y - sidebarTop
	onDate := msg.X < m.sidebarWidth() && idx >= 0 && idx < len(m.page.Sidebar)

	switch msg.Button {
	case tea.MouseButtonRight:
		if m.mode != modeNormal && m.mode != modeMenu {
			return m, nil
		}
		if !onDate {
			m.menu.Dismiss()
			m.mode = modeNormal
			return m, nil
		}
		m.dateCursor = idx
		return m.openMenu(m.page.Sidebar[idx].Key, msg.X, msg.Y)
	case tea.MouseButtonLeft:
		if m.mode == modeMenu {
			m.menu.Dismiss()
			m.mode = modeNormal
			return m, nil
		}
		if m.mode == modeNormal && onDate {
			m.focus = focusDates
			m.dateCursor = idx
			return m.selectDate(m.page.Sidebar[idx].Key)
		}
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.mode = modeHelp
		return m, nil
	case key.Matches(msg, k.Pane):
		if m.focus == focusDates {
			m.focus = focusTodos
		} else {
			m.focus = focusDates
		}
		return m, nil
	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, k.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, k.Search):
		m.mode = modeSearch
		m.input = newInput("search all dates…", 50)
		if m.state.Searching() {
			m.input.SetValue(m.state.Search.Query)
		}
		m.input.Focus()
		return m, nil
	case key.Matches(msg, k.Back):
		if m.state.Searching() {
			m.state = m.state.ExitSearch()
			m.todoCursor = 0
			return m, m.loadCmd()
		}
		return m, nil
	case key.Matches(msg, k.Menu):
		return m.openMenu(m.menuTarget(), 0, 0)
	case key.Matches(msg, k.Jump):
		m.mode = modeJump
		m.jump = m.jump.Reset(m.page.Sidebar)
		return m, nil
	case key.Matches(msg, k.Refresh):
		return m, m.loadCmd()
	case key.Matches(msg, k.Export):
		svc, date := m.svc, m.state.Current
		return m, run(func(context.Context) actionMsg {
			if err := svc.Export(date); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{out: menu.Outcome{Notice: "Opened export of " + date}}
		})
	case key.Matches(msg, k.Add):
		m.mode = modeAdd
		m.editor = newEditor("what needs doing?", 50, m.keys.NewLine)
		m.editor.Focus()
		return m, nil
	}

	if m.focus == focusDates {
		if key.Matches(msg, k.Select) && m.dateCursor < len(m.page.Sidebar) {
			return m.selectDate(m.page.Sidebar[m.dateCursor].Key)
		}
		return m, nil
	}

	row, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	svc := m.svc
	switch {
	case key.Matches(msg, k.Toggle):
		return m, run(func(ctx context.Context) actionMsg {
			if _, err := svc.ToggleComplete(ctx, row.ID, row.Date); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{out: menu.Outcome{Refresh: true}}
		})
	case key.Matches(msg, k.Edit):
		m.mode = modeEdit
		m.editRow = row
		m.editor = newEditor("", 50, m.keys.NewLine)
		m.editor.SetValue(row.Content)
		m.editor.Focus()
		return m, nil
	case key.Matches(msg, k.Delete):
		return m, run(func(ctx context.Context) actionMsg {
			if err := svc.Delete(ctx, row.ID, row.Date); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{out: menu.Outcome{Notice: "Todo deleted", Refresh: true}}
		})
	case key.Matches(msg, k.Duplicate):
		return m, run(func(ctx context.Context) actionMsg {
			if _, err := svc.Duplicate(ctx, row.ID, row.Date); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{out: menu.Outcome{Notice: "Todo duplicated", Refresh: true}}
		})
	case key.Matches(msg, k.Yank):
		return m, run(func(context.Context) actionMsg {
			if err := svc.CopyText(row.Content); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{out: menu.Outcome{Notice: "Copied to clipboard"}}
		})
	case key.Matches(msg, k.MoveUp), key.Matches(msg, k.MoveDown):
		if m.state.Searching() {
			return m, m.setNotice("Reordering is not available in search results", true)
		}
		// rows are shown newest first, so up on screen is later in server order
		delta, cursor := 1, -1
		if key.Matches(msg, k.MoveDown) {
			delta, cursor = -1, 1
		}
		return m, run(func(ctx context.Context) actionMsg {
			moved, err := svc.Shift(ctx, row.ID, row.Date, delta)
			if err != nil || !moved {
				return actionMsg{err: err}
			}
			return actionMsg{out: menu.Outcome{Refresh: true}, cursorDelta: cursor}
		})
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	multiline := m.mode == modeAdd || m.mode == modeEdit
	switch {
	case msg.Type == tea.KeyEsc:
		wasEdit := m.mode == modeEdit
		m.mode = modeNormal
		m.input.Blur()
		m.editor.Blur()
		if wasEdit {
			return m, m.loadCmd()
		}
		return m, nil
	case msg.Type == tea.KeyEnter && !msg.Alt:
		return m.commitInput()
	}
	var cmd tea.Cmd
	if multiline {
		m.editor, cmd = m.editor.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) commitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	if m.mode == modeAdd || m.mode == modeEdit {
		value = m.editor.Value()
	}
	current := m.mode
	m.mode = modeNormal
	m.input.Blur()
	m.editor.Blur()
	svc := m.svc

	switch current {
	case modeAdd:
		date := m.state.Current
		return m, run(func(ctx context.Context) actionMsg {
			if _, err := svc.Add(ctx, date, value); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{out: menu.Outcome{Refresh: true}}
		})
	case modeEdit:
		row := m.editRow
		return m, run(func(ctx context.Context) actionMsg {
			if _, err := svc.Edit(ctx, row.ID, row.Date, value); err != nil {
				return actionMsg{err: err, out: menu.Outcome{Refresh: true}}
			}
			return actionMsg{out: menu.Outcome{Refresh: true}}
		})
	case modeSearch:
		st, err := m.state.EnterSearch(value)
		if err != nil {
			return m, m.setNotice(errText(err), true)
		}
		m.state = st
		m.focus = focusTodos
		m.todoCursor = 0
		return m, m.loadCmd()
	case modeRename:
		k := m.pendingKey
		return m, run(func(ctx context.Context) actionMsg {
			out, err := svc.Menu.Rename(ctx, k, value)
			return actionMsg{out: out, err: err}
		})
	}
	return m, nil
}

func (m Model) openMenu(key string, x, y int) (tea.Model, tea.Cmd) {
	if key == "" {
		return m, nil
	}
	m.menu.OpenAt(key, x, y)
	m.mode = modeMenu
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	target, ok := m.menu.Target()
	m.menu.Dismiss()
	m.mode = modeNormal
	if !ok {
		return m, nil
	}
	display := m.displayOf(target)
	svc := m.svc

	switch {
	case key.Matches(msg, k.MenuCopy):
		return m, run(func(ctx context.Context) actionMsg {
			out, err := svc.Menu.Copy(ctx, target, display)
			return actionMsg{out: out, err: err}
		})
	case key.Matches(msg, k.MenuRename):
		m.mode = modeRename
		m.pendingKey, m.pendingDisplay = target, display
		m.input = newInput("new name", 40)
		m.input.SetValue(display)
		m.input.Focus()
		return m, nil
	case key.Matches(msg, k.MenuDelete):
		m.mode = modeConfirmDelete
		m.pendingKey, m.pendingDisplay = target, display
		return m, nil
	case key.Matches(msg, k.MenuPin):
		return m, run(func(context.Context) actionMsg {
			out, err := svc.Menu.TogglePin(target, display)
			return actionMsg{out: out, err: err}
		})
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirmed := key.Matches(msg, m.keys.ConfirmYes)
	if !confirmed && !key.Matches(msg, m.keys.ConfirmNo) {
		return m, nil
	}
	m.mode = modeNormal
	if !confirmed {
		return m, nil
	}
	svc := m.svc
	target, display, current := m.pendingKey, m.pendingDisplay, m.state.Current
	return m, run(func(ctx context.Context) actionMsg {
		out, err := svc.Menu.Delete(ctx, target, display, true, current, svc.Today())
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{out: out, deleted: target}
	})
}

func (m Model) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		return m, nil
	case tea.KeyEnter:
		m.mode = modeNormal
		if it, ok := m.jump.Choice(); ok {
			return m.selectDate(it.Key)
		}
		return m, nil
	}
	m.jump = m.jump.Update(msg)
	return m, nil
}

func (m Model) selectDate(key string) (tea.Model, tea.Cmd) {
	m.state = m.state.Select(key)
	m.todoCursor = 0
	return m, m.loadCmd()
}

// ---------- helpers ----------

func (m *Model) moveCursor(delta int) {
	if m.focus == focusDates {
		m.dateCursor = clamp(m.dateCursor+delta, len(m.page.Sidebar))
		return
	}
	m.todoCursor = clamp(m.todoCursor+delta, len(m.page.Rows))
}

func (m Model) currentRow() (view.Row, bool) {
	if m.todoCursor < 0 || m.todoCursor >= len(m.page.Rows) {
		return view.Row{}, false
	}
	return m.page.Rows[m.todoCursor], true
}

func (m Model) menuTarget() string {
	if m.focus == focusDates && m.dateCursor < len(m.page.Sidebar) {
		return m.page.Sidebar[m.dateCursor].Key
	}
	return m.state.Current
}

func (m Model) activeIndex() int {
	for i, it := range m.page.Sidebar {
		if it.Active {
			return i
		}
	}
	return 0
}

func (m Model) displayOf(key string) string {
	for _, it := range m.page.Sidebar {
		if it.Key == key {
			return it.Label
		}
	}
	return m.svc.Formatter().Display(key)
}

func (m Model) pinned(key string) bool {
	for _, it := range m.page.Sidebar {
		if it.Key == key {
			return it.Pinned
		}
	}
	return false
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
