package app_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ramanasai/daytodo/internal/api"
	"github.com/ramanasai/daytodo/internal/app"
	"github.com/ramanasai/daytodo/internal/dateutil"
	"github.com/ramanasai/daytodo/internal/fakeserver"
)

var now = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type harness struct {
	fake    *fakeserver.Server
	svc     *app.Service
	clipped string
	opened  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{fake: fakeserver.New()}
	h.fake.Now = func() time.Time { return now }
	ts := httptest.NewServer(h.fake.Handler())
	t.Cleanup(ts.Close)
	client, err := api.New(ts.URL + "/api")
	if err != nil {
		t.Fatal(err)
	}
	f := dateutil.DefaultFormatter()
	f.Location = time.UTC
	h.svc = app.NewService(client, nil, app.Options{
		Formatter: f,
		Logger:    log.New(io.Discard),
		Now:       func() time.Time { return now },
		Clipboard: func(s string) error { h.clipped = s; return nil },
		OpenURL:   func(u string) error { h.opened = u; return nil },
	})
	return h
}

func TestInitialPageSelectsToday(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	st := app.NewState(h.svc.Today())

	p, err := h.svc.Page(ctx, st)
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "Mar 10 Todo" {
		t.Errorf("title = %q", p.Title)
	}
	if len(p.Sidebar) != 1 || !p.Sidebar[0].Active {
		t.Errorf("sidebar = %+v", p.Sidebar)
	}
}

func TestAddRejectsBlank(t *testing.T) {
	h := newHarness(t)
	if _, err := h.svc.Add(context.Background(), "2024-03-10", " \t "); !errors.Is(err, app.ErrEmptyContent) {
		t.Fatalf("err = %v", err)
	}
	if n := h.fake.Requests("POST /todos"); n != 0 {
		t.Fatalf("requests = %d", n)
	}
}

func TestAddToggleEditDuplicateDelete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	date := "2024-03-10"

	td, err := h.svc.Add(ctx, date, "  write report ")
	if err != nil || td.Content != "write report" {
		t.Fatalf("Add = %+v, %v", td, err)
	}
	td, err = h.svc.ToggleComplete(ctx, td.ID, date)
	if err != nil || !td.Completed {
		t.Fatalf("toggle on = %+v, %v", td, err)
	}
	td, err = h.svc.ToggleComplete(ctx, td.ID, date)
	if err != nil || td.Completed {
		t.Fatalf("toggle off = %+v, %v", td, err)
	}
	if _, err := h.svc.Edit(ctx, td.ID, date, ""); !errors.Is(err, app.ErrEmptyContent) {
		t.Fatalf("blank edit err = %v", err)
	}
	if td, err = h.svc.Edit(ctx, td.ID, date, "send report"); err != nil || td.Content != "send report" {
		t.Fatalf("Edit = %+v, %v", td, err)
	}
	dup, err := h.svc.Duplicate(ctx, td.ID, date)
	if err != nil || dup.Content != "send report" || dup.ID == td.ID {
		t.Fatalf("Duplicate = %+v, %v", dup, err)
	}
	if err := h.svc.Delete(ctx, td.ID, date); err != nil {
		t.Fatal(err)
	}

	p, err := h.svc.Page(ctx, app.NewState(date))
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Rows) != 1 || p.Rows[0].ID != dup.ID {
		t.Fatalf("rows = %+v", p.Rows)
	}
}

func TestMoveOutOfRangeSendsNothing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	ids := h.fake.Seed("2024-03-10", "a", "b", "c")

	for _, order := range []int{-1, 3, 10} {
		moved, err := h.svc.Move(ctx, ids[0], "2024-03-10", order)
		if err != nil || moved {
			t.Fatalf("Move(%d) = %v, %v", order, moved, err)
		}
	}
	if n := h.fake.Requests("POST /todos/move"); n != 0 {
		t.Fatalf("move requests = %d", n)
	}

	moved, err := h.svc.Move(ctx, ids[0], "2024-03-10", 2)
	if err != nil || !moved {
		t.Fatalf("Move(2) = %v, %v", moved, err)
	}
	todos, _ := h.svc.API.ListTodos(ctx, "2024-03-10")
	var got []string
	for _, td := range todos {
		got = append(got, td.Content)
	}
	if strings.Join(got, ",") != "b,c,a" {
		t.Fatalf("order = %v", got)
	}

	if moved, _ := h.svc.Shift(ctx, ids[0], "2024-03-10", 1); moved {
		t.Fatal("shift past the end should be a no-op")
	}
}

func TestDeletingCurrentDateFallsBackToToday(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.fake.Seed("2024-01-01", "old")
	st := app.NewState(h.svc.Today()).Select("2024-01-01")

	out, err := h.svc.Menu.Delete(ctx, "2024-01-01", "Jan 1", true, st.Current, h.svc.Today())
	if err != nil {
		t.Fatal(err)
	}
	if out.Select != "" {
		st = st.Select(out.Select)
	}
	if st.Current != "2024-03-10" {
		t.Fatalf("current = %q", st.Current)
	}
}

func TestSearchPage(t *testing.T) {
	h := newHarness(t)
	h.fake.Seed("2024-01-01", "buy milk")
	h.fake.Seed("2024-01-02", "walk dog")

	st, err := app.NewState(h.svc.Today()).EnterSearch("milk")
	if err != nil {
		t.Fatal(err)
	}
	p, err := h.svc.Page(context.Background(), st)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Rows) != 1 || p.Rows[0].Date != "2024-01-01" {
		t.Fatalf("rows = %+v", p.Rows)
	}
	var marked []string
	for _, s := range p.Rows[0].Segments {
		if s.Match {
			marked = append(marked, s.Text)
		}
	}
	if len(marked) != 1 || marked[0] != "milk" {
		t.Fatalf("highlighted = %v", marked)
	}
}

func TestCopyTextAndExport(t *testing.T) {
	h := newHarness(t)
	if err := h.svc.CopyText("hello"); err != nil || h.clipped != "hello" {
		t.Fatalf("clipboard = %q, %v", h.clipped, err)
	}
	if err := h.svc.Export("2024-03-10"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(h.opened, "/api/todos/export/2024-03-10") {
		t.Fatalf("opened %q", h.opened)
	}
}
