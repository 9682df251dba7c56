package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ramanasai/daytodo/internal/api"
	"github.com/ramanasai/daytodo/internal/fakeserver"
)

func newTestClient(t *testing.T) (*api.Client, *fakeserver.Server) {
	t.Helper()
	fake := fakeserver.New()
	ts := httptest.NewServer(fake.Handler())
	t.Cleanup(ts.Close)
	c, err := api.New(ts.URL + "/api")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, fake
}

func TestListTodosOnlyReturnsThatDate(t *testing.T) {
	c, fake := newTestClient(t)
	fake.Seed("2024-01-01", "buy milk", "call mom")
	fake.Seed("2024-01-02", "walk dog")
	ctx := context.Background()

	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		todos, err := c.ListTodos(ctx, date)
		if err != nil {
			t.Fatalf("ListTodos(%s): %v", date, err)
		}
		if todos == nil {
			t.Fatalf("ListTodos(%s) returned nil slice", date)
		}
		for _, td := range todos {
			if td.Date != date {
				t.Errorf("ListTodos(%s) returned todo from %s", date, td.Date)
			}
		}
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateTodo(ctx, "write report", "2024-02-01")
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if created.Completed || created.Content != "write report" {
		t.Fatalf("unexpected created todo: %+v", created)
	}

	done := true
	updated, err := c.UpdateTodo(ctx, created.ID, api.TodoUpdate{Date: "2024-02-01", Completed: &done})
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if !updated.Completed || updated.CompletedAt == nil {
		t.Fatalf("completion not applied: %+v", updated)
	}

	if err := c.DeleteTodo(ctx, created.ID, "2024-02-01"); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
	_, err = c.GetTodo(ctx, created.ID, "2024-02-01")
	if !api.IsNotFound(err) {
		t.Fatalf("GetTodo after delete: want not found, got %v", err)
	}
}

func TestCopyDatePreservesContentAndCompletion(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()
	ids := fake.Seed("2024-01-01", "a", "b", "c")
	done := true
	if _, err := c.UpdateTodo(ctx, ids[1], api.TodoUpdate{Date: "2024-01-01", Completed: &done}); err != nil {
		t.Fatal(err)
	}

	src, _ := c.ListTodos(ctx, "2024-01-01")
	if _, err := c.CopyDate(ctx, "2024-01-01", "copy-20240101-1"); err != nil {
		t.Fatalf("CopyDate: %v", err)
	}
	dst, err := c.ListTodos(ctx, "copy-20240101-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(dst) != len(src) {
		t.Fatalf("copied %d todos, want %d", len(dst), len(src))
	}
	for i := range src {
		if dst[i].Content != src[i].Content || dst[i].Completed != src[i].Completed {
			t.Errorf("todo %d: got (%q,%v) want (%q,%v)", i, dst[i].Content, dst[i].Completed, src[i].Content, src[i].Completed)
		}
	}
}

func TestAliasRoundTrip(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	if _, err := c.SetAlias(ctx, "2024-05-01", "Trip"); err != nil {
		t.Fatalf("SetAlias: %v", err)
	}
	aliases, err := c.Aliases(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if aliases["2024-05-01"] != "Trip" {
		t.Fatalf("alias = %q, want Trip", aliases["2024-05-01"])
	}

	if _, err := c.SetAlias(ctx, "2024-05-01", "Holiday"); err != nil {
		t.Fatal(err)
	}
	aliases, _ = c.Aliases(ctx)
	if len(aliases) != 1 || aliases["2024-05-01"] != "Holiday" {
		t.Fatalf("overwrite should replace, got %v", aliases)
	}

	if _, err := c.DeleteAlias(ctx, "2024-05-01"); err != nil {
		t.Fatal(err)
	}
	aliases, _ = c.Aliases(ctx)
	if len(aliases) != 0 {
		t.Fatalf("aliases after delete = %v", aliases)
	}
}

func TestNon2xxBecomesError(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.SetAlias(context.Background(), "not a date", "x")
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *api.Error, got %T %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Message, "Invalid date format") {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestErrorPayloadWith2xxIsFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":"target exists"}`))
	}))
	defer ts.Close()
	c, _ := api.New(ts.URL)

	_, err := c.CopyDate(context.Background(), "2024-01-01", "2024-01-02")
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *api.Error, got %v", err)
	}
	if apiErr.Message != "target exists" || apiErr.StatusCode != http.StatusOK {
		t.Errorf("got %+v", apiErr)
	}
}

func TestTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c, _ := api.New(url)
	_, err := c.Counts(context.Background())
	if !api.IsTransport(err) {
		t.Fatalf("want transport error, got %v", err)
	}
	if !strings.HasPrefix(api.Message(err), "server unreachable") {
		t.Errorf("Message = %q", api.Message(err))
	}
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()
	c, _ := api.New(ts.URL, api.WithUserAgent("daytodo-test"))
	if _, err := c.Counts(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
	if got.Get("User-Agent") != "daytodo-test" {
		t.Errorf("User-Agent = %q", got.Get("User-Agent"))
	}
}

func TestMoveAndCopy(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()
	ids := fake.Seed("2024-03-03", "first", "second", "third")

	if err := c.MoveTodo(ctx, ids[0], 2); err != nil {
		t.Fatalf("MoveTodo: %v", err)
	}
	todos, _ := c.ListTodos(ctx, "2024-03-03")
	if todos[2].ID != ids[0] {
		t.Fatalf("moved todo at %v", todos)
	}

	dup, err := c.CopyTodo(ctx, ids[1], "2024-03-03")
	if err != nil {
		t.Fatal(err)
	}
	if dup.Content != "second" || dup.ID == ids[1] {
		t.Fatalf("bad duplicate %+v", dup)
	}
}

func TestExport(t *testing.T) {
	c, fake := newTestClient(t)
	fake.Seed("2024-06-07", "pack bags")
	dl, err := c.Export(context.Background(), "2024-06-07")
	if err != nil {
		t.Fatal(err)
	}
	if dl.Filename != "06.07-todo.md" {
		t.Errorf("filename = %q", dl.Filename)
	}
	if !strings.Contains(string(dl.Body), "- [ ] pack bags") {
		t.Errorf("body = %q", dl.Body)
	}
	if !strings.HasSuffix(c.ExportURL("2024-06-07"), "/api/todos/export/2024-06-07") {
		t.Errorf("ExportURL = %q", c.ExportURL("2024-06-07"))
	}
}

func TestDeleteDateRemovesAlias(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()
	fake.Seed("2024-01-09", "x", "y")
	fake.SeedAlias("2024-01-09", "Ninth")

	res, err := c.DeleteDate(ctx, "2024-01-09")
	if err != nil {
		t.Fatal(err)
	}
	if res.Count != 2 {
		t.Errorf("count = %d", res.Count)
	}
	counts, _ := c.Counts(ctx)
	if _, ok := counts["2024-01-09"]; ok {
		t.Error("date still present in counts")
	}
	aliases, _ := c.Aliases(ctx)
	if _, ok := aliases["2024-01-09"]; ok {
		t.Error("alias survived date delete")
	}
}
