package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ramanasai/daytodo/internal/search"
	"github.com/ramanasai/daytodo/internal/view"
)

func plainRenderer(f Format) *Renderer {
	return NewRenderer(&Config{Format: f, Width: 80, ShowID: true})
}

var page = view.Page{
	Title: "Jan 1 Todo",
	Rows: []view.Row{
		{ID: 2, Date: "2024-01-01", Content: "send, report", Completed: true, Stamp: "done 18:00"},
		{ID: 1, Date: "2024-01-01", Content: "write report", Stamp: "created 09:00"},
	},
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatDefault {
		t.Errorf("empty = %q, %v", f, err)
	}
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("JSON = %q, %v", f, err)
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("expected error")
	}
}

func TestRenderPageFormats(t *testing.T) {
	out, err := plainRenderer(FormatQuiet).RenderPage(page, nil)
	if err != nil || out != "send, report\nwrite report\n" {
		t.Errorf("quiet = %q, %v", out, err)
	}

	out, _ = plainRenderer(FormatCSV).RenderPage(page, nil)
	if !strings.Contains(out, `2,2024-01-01,"send, report",true,0,done 18:00`) {
		t.Errorf("csv = %q", out)
	}

	out, _ = plainRenderer(FormatJSON).RenderPage(page, nil)
	var decoded struct {
		Title string `json:"title"`
		Total int    `json:"total"`
		Todos []struct {
			ID int64 `json:"id"`
		} `json:"todos"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Title != "Jan 1 Todo" || decoded.Total != 2 || decoded.Todos[0].ID != 2 {
		t.Errorf("json = %+v", decoded)
	}

	out, _ = plainRenderer(FormatDefault).RenderPage(page, nil)
	if !strings.Contains(out, "2 todos") || !strings.Contains(out, "[x]") || !strings.Contains(out, "created 09:00") {
		t.Errorf("default = %q", out)
	}
}

func TestRenderPageEmptyAndSearch(t *testing.T) {
	out, _ := plainRenderer(FormatDefault).RenderPage(view.Page{Title: "x", Empty: view.EmptyList}, nil)
	if !strings.Contains(out, view.EmptyList) {
		t.Errorf("empty = %q", out)
	}

	sp := view.Page{Title: `Search: "milk" (1)`, Rows: []view.Row{{
		ID: 1, Content: "buy milk", Origin: "Jan 1",
		Segments: []search.Segment{{Text: "buy "}, {Text: "milk", Match: true}},
	}}}
	out, _ = plainRenderer(FormatCompact).RenderPage(sp, nil)
	if out != "[ ] buy milk (Jan 1)\n" {
		t.Errorf("compact = %q", out)
	}
}

func TestPagination(t *testing.T) {
	p := NewPagination(5, 2, 3)
	if got := Slice([]int{1, 2, 3, 4, 5}, p); len(got) != 1 || got[0] != 5 {
		t.Errorf("last page = %v", got)
	}
	if p.FormatSummary() != "Showing 5-5 of 5 results (page 3 of 3)" {
		t.Errorf("summary = %q", p.FormatSummary())
	}
	if p.FormatNavigation() != "use --page 2 for previous" {
		t.Errorf("nav = %q", p.FormatNavigation())
	}
	all := NewPagination(3, 0, 1)
	if all.TotalPages != 1 || len(Slice([]int{1, 2, 3}, all)) != 3 {
		t.Errorf("unpaged = %+v", all)
	}
	if NewPagination(0, 10, 1).FormatSummary() != "No results" {
		t.Error("empty summary")
	}
	if got := NewPagination(1, 10, 1).FormatSummary(); got != "Showing 1-1 of 1 result" {
		t.Errorf("singular summary = %q", got)
	}
}

func TestRenderDates(t *testing.T) {
	items := []view.SidebarItem{
		{Key: "2024-01-01", Label: "Launch", Count: 1200, Pinned: true},
		{Key: "2024-03-10", Label: "Mar 10", Active: true},
	}
	out, _ := plainRenderer(FormatDefault).RenderDates(items, "")
	if !strings.Contains(out, "★ Launch 2024-01-01  1,200") || !strings.Contains(out, "2 dates") {
		t.Errorf("default = %q", out)
	}
	out, _ = plainRenderer(FormatQuiet).RenderDates(items, "")
	if out != "2024-01-01\n2024-03-10\n" {
		t.Errorf("quiet = %q", out)
	}
}
