package ui

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/ramanasai/daytodo/internal/api"
	"github.com/ramanasai/daytodo/internal/app"
	"github.com/ramanasai/daytodo/internal/dateutil"
	"github.com/ramanasai/daytodo/internal/fakeserver"
)

var now = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *fakeserver.Server) {
	t.Helper()
	fake := fakeserver.New()
	fake.Now = func() time.Time { return now }
	ts := httptest.NewServer(fake.Handler())
	t.Cleanup(ts.Close)
	client, err := api.New(ts.URL + "/api")
	if err != nil {
		t.Fatal(err)
	}
	f := dateutil.DefaultFormatter()
	f.Location = time.UTC
	logger := log.New(io.Discard)
	svc := app.NewService(client, nil, app.Options{
		Formatter: f,
		Logger:    logger,
		Now:       func() time.Time { return now },
		Clipboard: func(string) error { return nil },
		OpenURL:   func(string) error { return nil },
	})
	m := New(svc, Options{Logger: logger, NoticeTTL: time.Millisecond})
	m = step(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, fake
}

// step feeds msg to the model and runs every resulting command to
// completion. Notice expiry is dropped so notices stay inspectable.
func step(m Model, msg tea.Msg) Model {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		tm, cmd := m.Update(next)
		m = tm.(Model)
		queue = append(queue, collect(cmd)...)
	}
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil, noticeExpiredMsg, tea.QuitMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func load(m Model) Model {
	return step(m, collect(m.loadCmd())[0])
}

func keys(m Model, ks ...string) Model {
	for _, k := range ks {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m = step(m, msg)
	}
	return m
}

func TestAddThroughPrompt(t *testing.T) {
	m, fake := newTestModel(t)
	m = load(m)
	if m.page.Title != "Mar 10 Todo" {
		t.Fatalf("title = %q", m.page.Title)
	}

	m = keys(m, "a")
	if m.mode != modeAdd {
		t.Fatalf("mode = %d", m.mode)
	}
	m = keys(m, "buy milk", "enter")
	if m.mode != modeNormal {
		t.Fatalf("mode = %d", m.mode)
	}
	if len(m.page.Rows) != 1 || m.page.Rows[0].Content != "buy milk" {
		t.Fatalf("rows = %+v", m.page.Rows)
	}
	if n := fake.Requests("POST /todos"); n != 1 {
		t.Errorf("POST /todos = %d", n)
	}
}

func TestEditKeepsMultilineContent(t *testing.T) {
	m, fake := newTestModel(t)
	fake.Seed("2024-03-10", "line one\nline two")
	m = load(m)

	m = keys(m, "e")
	if m.mode != modeEdit {
		t.Fatalf("mode = %d", m.mode)
	}
	if got := m.editor.Value(); got != "line one\nline two" {
		t.Fatalf("editor = %q", got)
	}
	m = keys(m, "enter")
	if n := fake.Requests("PUT /todos"); n != 1 {
		t.Fatalf("PUT requests = %d", n)
	}
	if got := m.page.Rows[0].Content; got != "line one\nline two" {
		t.Errorf("content = %q", got)
	}
}

func TestAddWithNewline(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(m)

	m = keys(m, "a", "one")
	m = step(m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	if m.mode != modeAdd {
		t.Fatalf("alt+enter left the prompt, mode = %d", m.mode)
	}
	m = keys(m, "two", "enter")
	if len(m.page.Rows) != 1 || m.page.Rows[0].Content != "one\ntwo" {
		t.Fatalf("rows = %+v", m.page.Rows)
	}
	if strings.Contains(m.View(), "one\ntwo") {
		t.Error("row rendered across lines")
	}
}

func TestBlankAddShowsNotice(t *testing.T) {
	m, fake := newTestModel(t)
	m = load(m)
	m = keys(m, "a", "enter")
	if !m.noticeErr || m.notice != "Todo text cannot be empty" {
		t.Fatalf("notice = %q (err=%v)", m.notice, m.noticeErr)
	}
	if n := fake.Requests("POST /todos"); n != 0 {
		t.Errorf("POST /todos = %d", n)
	}
}

func TestToggleSelectedRow(t *testing.T) {
	m, fake := newTestModel(t)
	fake.Seed("2024-03-10", "a")
	m = load(m)
	m = keys(m, " ")
	if !m.page.Rows[0].Completed {
		t.Fatalf("row not completed: %+v", m.page.Rows[0])
	}
}

func TestMoveDownFollowsCursor(t *testing.T) {
	m, fake := newTestModel(t)
	fake.Seed("2024-03-10", "a", "b", "c")
	m = load(m)
	// newest first: c b a
	m = keys(m, "J")
	got := []string{m.page.Rows[0].Content, m.page.Rows[1].Content, m.page.Rows[2].Content}
	if got[0] != "b" || got[1] != "c" || got[2] != "a" {
		t.Fatalf("rows = %v", got)
	}
	if m.todoCursor != 1 {
		t.Errorf("cursor = %d", m.todoCursor)
	}

	// already last on screen
	m = keys(m, "J", "J")
	if n := fake.Requests("POST /todos/move"); n != 2 {
		t.Errorf("move requests = %d", n)
	}
}

func TestSearchAndExit(t *testing.T) {
	m, fake := newTestModel(t)
	fake.Seed("2024-03-10", "buy milk", "walk")
	fake.Seed("2024-03-08", "more MILK")
	m = load(m)

	m = keys(m, "/", "milk", "enter")
	if !m.page.Searching || len(m.page.Rows) != 2 {
		t.Fatalf("page = %+v", m.page)
	}
	if m.page.Rows[0].Origin == "" {
		t.Errorf("search row without origin: %+v", m.page.Rows[0])
	}

	m = keys(m, "esc")
	if m.page.Searching || m.state.Searching() {
		t.Fatal("still searching")
	}
	if len(m.page.Rows) != 2 {
		t.Errorf("rows = %d", len(m.page.Rows))
	}
}

func TestDeleteCurrentDateFromMenu(t *testing.T) {
	m, fake := newTestModel(t)
	fake.Seed("2024-03-08", "x")
	m = load(m)

	// sidebar: Mar 10, Mar 8
	m = keys(m, "tab", "j", "enter")
	if m.state.Current != "2024-03-08" {
		t.Fatalf("current = %q", m.state.Current)
	}
	m = keys(m, "m", "d")
	if m.mode != modeConfirmDelete {
		t.Fatalf("mode = %d", m.mode)
	}
	m = keys(m, "y")
	if m.state.Current != "2024-03-10" {
		t.Errorf("current = %q", m.state.Current)
	}
	if m.notice != `Deleted all todos of "Mar 8"` {
		t.Errorf("notice = %q", m.notice)
	}
	for _, it := range m.page.Sidebar {
		if it.Key == "2024-03-08" {
			t.Errorf("deleted date still listed")
		}
	}
}

func TestDeleteDateCancelled(t *testing.T) {
	m, fake := newTestModel(t)
	fake.Seed("2024-03-10", "x")
	m = load(m)
	m = keys(m, "m", "d", "n")
	if m.mode != modeNormal {
		t.Fatalf("mode = %d", m.mode)
	}
	if n := fake.Requests("DELETE /todos/date/2024-03-10"); n != 0 {
		t.Errorf("delete requests = %d", n)
	}
}

func TestPinFromMenu(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(m)
	m = keys(m, "m", "p")
	if m.notice != `Pinned "Mar 10"` {
		t.Fatalf("notice = %q", m.notice)
	}
	if !m.page.Sidebar[0].Pinned {
		t.Errorf("sidebar = %+v", m.page.Sidebar)
	}
}

func TestRenameFromMenu(t *testing.T) {
	m, fake := newTestModel(t)
	fake.Seed("2024-03-10", "x")
	m = load(m)
	m = keys(m, "m", "r")
	if m.mode != modeRename {
		t.Fatalf("mode = %d", m.mode)
	}
	m.input.SetValue("")
	m = keys(m, "Launch day", "enter")
	if m.page.Sidebar[0].Label != "Launch day" {
		t.Errorf("sidebar = %+v", m.page.Sidebar)
	}
}

func TestRightClickOpensMenu(t *testing.T) {
	m, fake := newTestModel(t)
	fake.Seed("2024-03-08", "x")
	m = load(m)

	m = step(m, tea.MouseMsg{X: 2, Y: sidebarTop + 1, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	if m.mode != modeMenu {
		t.Fatalf("mode = %d", m.mode)
	}
	if key, ok := m.menu.Target(); !ok || key != "2024-03-08" {
		t.Fatalf("target = %q %v", key, ok)
	}

	m = step(m, tea.MouseMsg{X: 80, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if m.mode != modeNormal || m.menu.Visible() {
		t.Fatal("menu not dismissed")
	}
}

func TestJumpSelectsDate(t *testing.T) {
	m, fake := newTestModel(t)
	fake.Seed("2024-03-01", "x")
	fake.SeedAlias("2024-03-01", "Sprint start")
	m = load(m)

	m = keys(m, "g", "sprint", "enter")
	if m.state.Current != "2024-03-01" {
		t.Fatalf("current = %q", m.state.Current)
	}
	if m.page.Title != "Sprint start Todo" {
		t.Errorf("title = %q", m.page.Title)
	}
}

func TestMidnightRollsToday(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(m)
	m.today = "2024-03-09"
	m.state = app.NewState("2024-03-09")

	tm, _ := m.Update(midnightMsg{})
	m = tm.(Model)
	if m.state.Current != "2024-03-10" || m.today != "2024-03-10" {
		t.Errorf("state = %+v today = %q", m.state, m.today)
	}
}

func TestViewRendersPanes(t *testing.T) {
	m, fake := newTestModel(t)
	fake.Seed("2024-03-10", "write tests")
	m = load(m)
	out := m.View()
	for _, want := range []string{"Dates", "Mar 10 Todo", "write tests"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
