package fakeserver_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ramanasai/daytodo/internal/api"
	"github.com/ramanasai/daytodo/internal/fakeserver"
)

func newClient(t *testing.T) (*api.Client, *fakeserver.Server) {
	t.Helper()
	fake := fakeserver.New()
	fake.Now = func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }
	ts := httptest.NewServer(fake.Handler())
	t.Cleanup(ts.Close)
	c, err := api.New(ts.URL + "/api")
	if err != nil {
		t.Fatal(err)
	}
	return c, fake
}

func TestCreateAppendsOrder(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()
	for _, s := range []string{"a", "b", "c"} {
		if _, err := c.CreateTodo(ctx, s, "2024-03-10"); err != nil {
			t.Fatal(err)
		}
	}
	todos, err := c.ListTodos(ctx, "2024-03-10")
	if err != nil {
		t.Fatal(err)
	}
	for i, td := range todos {
		if td.Order != i+1 {
			t.Errorf("todo %q order = %d, want %d", td.Content, td.Order, i+1)
		}
	}
}

func TestCopyDateKeepsCompletion(t *testing.T) {
	c, fake := newClient(t)
	ctx := context.Background()
	ids := fake.Seed("2024-03-10", "a", "b")
	if _, err := c.UpdateTodo(ctx, ids[0], api.TodoUpdate{Date: "2024-03-10", Completed: ptr(true)}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.CopyDate(ctx, "2024-03-10", "copy-20240310-1"); err != nil {
		t.Fatal(err)
	}
	todos, err := c.ListTodos(ctx, "copy-20240310-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(todos) != 2 || !todos[0].Completed || todos[1].Completed {
		t.Fatalf("copied = %+v", todos)
	}
}

func TestCopyEmptyDateCreatesPartition(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()
	if _, err := c.CopyDate(ctx, "2024-01-01", "copy-x"); err != nil {
		t.Fatal(err)
	}
	counts, err := c.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := counts["copy-x"]; !ok || n != 0 {
		t.Errorf("counts = %v", counts)
	}
}

func TestAliasValidation(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()
	tests := []struct {
		date    string
		wantErr bool
	}{
		{"2024-03-10", false},
		{"copy-20240310-5", false},
		{"someday", true},
	}
	for _, tt := range tests {
		_, err := c.SetAlias(ctx, tt.date, "name")
		if (err != nil) != tt.wantErr {
			t.Errorf("SetAlias(%q) err = %v", tt.date, err)
		}
	}
}

func TestDeleteDateDropsAlias(t *testing.T) {
	c, fake := newClient(t)
	ctx := context.Background()
	fake.Seed("2024-03-08", "x")
	fake.SeedAlias("2024-03-08", "Retro")
	if _, err := c.DeleteDate(ctx, "2024-03-08"); err != nil {
		t.Fatal(err)
	}
	aliases, err := c.Aliases(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := aliases["2024-03-08"]; ok {
		t.Errorf("alias survived: %v", aliases)
	}
}

func TestExportMarkdown(t *testing.T) {
	c, fake := newClient(t)
	ctx := context.Background()
	fake.Seed("2024-03-10", "write report")
	dl, err := c.Export(ctx, "2024-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if dl.Filename != "03.10-todo.md" {
		t.Errorf("filename = %q", dl.Filename)
	}
	body := string(dl.Body)
	if !strings.Contains(body, "## Pending") || !strings.Contains(body, "- [ ] write report") {
		t.Errorf("body = %q", body)
	}
}

func TestFailAndRequests(t *testing.T) {
	c, fake := newClient(t)
	ctx := context.Background()
	fake.Fail("GET /date-aliases", 500)
	if _, err := c.Aliases(ctx); err == nil {
		t.Fatal("expected error")
	}
	fake.Fail("GET /date-aliases", 0)
	if _, err := c.Aliases(ctx); err != nil {
		t.Fatal(err)
	}
	if n := fake.Requests("GET /date-aliases"); n != 2 {
		t.Errorf("requests = %d", n)
	}
}

func ptr[T any](v T) *T { return &v }
