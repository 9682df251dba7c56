// Package output renders pages and date listings for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/ramanasai/daytodo/internal/view"
)

// Format represents different output formats
type Format string

const (
	FormatDefault Format = "default"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatCompact Format = "compact"
	FormatQuiet   Format = "quiet"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatDefault, nil
	case FormatDefault, FormatTable, FormatJSON, FormatCSV, FormatCompact, FormatQuiet:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want default, table, json, csv, compact or quiet)", s)
}

// Config contains configuration for output rendering
type Config struct {
	Format Format
	Width  int
	ShowID bool
	Color  bool
}

// DefaultConfig returns a default render configuration
func DefaultConfig() *Config {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}
	return &Config{
		Format: FormatDefault,
		Width:  width,
		ShowID: true,
		Color:  true,
	}
}

// Renderer handles output formatting
type Renderer struct {
	config *Config
	styles *Styles
}

// Styles contains lipgloss styles for different elements
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	ID        lipgloss.Style
	Done      lipgloss.Style
	Origin    lipgloss.Style
	Pinned    lipgloss.Style
	Active    lipgloss.Style
	Text      lipgloss.Style
	Highlight lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
}

// NewRenderer creates a new renderer with the given config
func NewRenderer(config *Config) *Renderer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Renderer{config: config, styles: initStyles(config.Color)}
}

func initStyles(color bool) *Styles {
	plain := lipgloss.NewStyle()
	if !color {
		bold := plain.Bold(true)
		return &Styles{
			Title: bold, Separator: plain, Meta: plain, ID: plain, Done: plain,
			Origin: plain, Pinned: plain, Active: bold, Text: plain,
			Highlight: bold, Success: plain, Error: plain, Warning: plain,
		}
	}
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Meta:      lipgloss.NewStyle().Faint(true),
		ID:        lipgloss.NewStyle().Faint(true),
		Done:      lipgloss.NewStyle().Strikethrough(true).Faint(true),
		Origin:    lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")),
		Pinned:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		Active:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Text:      lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")),
	}
}

// Success styles a confirmation line.
func (r *Renderer) Success(msg string) string { return r.styles.Success.Render(msg) }

// Warning styles a warning line.
func (r *Renderer) Warning(msg string) string { return r.styles.Warning.Render(msg) }

func (r *Renderer) separator() string {
	return r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120)))
}

type jsonRow struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
	Stamp     string `json:"stamp,omitempty"`
	Origin    string `json:"origin,omitempty"`
}

type jsonPage struct {
	Title      string    `json:"title"`
	Query      string    `json:"query,omitempty"`
	Todos      []jsonRow `json:"todos"`
	Total      int       `json:"total"`
	Page       int       `json:"page,omitempty"`
	TotalPages int       `json:"total_pages,omitempty"`
	Warning    string    `json:"warning,omitempty"`
}

// RenderPage renders the rows of p. pg selects the rows to show; nil shows
// all of them.
func (r *Renderer) RenderPage(p view.Page, pg *Pagination) (string, error) {
	rows := Slice(p.Rows, pg)
	switch r.config.Format {
	case FormatJSON:
		out := jsonPage{Title: p.Title, Query: p.Query, Total: len(p.Rows), Warning: p.Warning, Todos: make([]jsonRow, 0, len(rows))}
		if pg != nil {
			out.Page, out.TotalPages = pg.Current, pg.TotalPages
		}
		for _, row := range rows {
			out.Todos = append(out.Todos, jsonRow{row.ID, row.Date, row.Content, row.Completed, row.Order, row.Stamp, row.Origin})
		}
		return marshal(out)
	case FormatCSV:
		var b strings.Builder
		b.WriteString("id,date,content,completed,order,stamp\n")
		for _, row := range rows {
			fmt.Fprintf(&b, "%d,%s,%s,%t,%d,%s\n", row.ID, escapeCSV(row.Date), escapeCSV(row.Content), row.Completed, row.Order, escapeCSV(row.Stamp))
		}
		return b.String(), nil
	case FormatTable:
		var b strings.Builder
		b.WriteString("ID\tDone\tDate\tStamp\tContent\n")
		b.WriteString(strings.Repeat("-", r.config.Width))
		b.WriteString("\n")
		for _, row := range rows {
			done := " "
			if row.Completed {
				done = "x"
			}
			fmt.Fprintf(&b, "%d\t%s\t%s\t%s\t%s\n", row.ID, done, row.Date, row.Stamp, truncate(row.Content, 60))
		}
		return b.String(), nil
	case FormatCompact:
		var b strings.Builder
		for _, row := range rows {
			line := fmt.Sprintf("%s %s", checkbox(row.Completed), truncate(row.Content, 80))
			if row.Origin != "" {
				line += " " + r.styles.Origin.Render("("+row.Origin+")")
			}
			b.WriteString(line + "\n")
		}
		return b.String(), nil
	case FormatQuiet:
		var b strings.Builder
		for _, row := range rows {
			b.WriteString(row.Content + "\n")
		}
		return b.String(), nil
	}
	return r.renderPageDefault(p, rows, pg), nil
}

func (r *Renderer) renderPageDefault(p view.Page, rows []view.Row, pg *Pagination) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(p.Title))
	b.WriteString("  ")
	b.WriteString(r.styles.Meta.Render(english.Plural(len(p.Rows), "todo", "")))
	b.WriteString("\n")
	if p.Warning != "" {
		b.WriteString(r.styles.Warning.Render(p.Warning) + "\n")
	}
	b.WriteString(r.separator() + "\n")

	if len(rows) == 0 && p.Empty != "" {
		b.WriteString(r.styles.Meta.Render(p.Empty) + "\n")
	}
	for _, row := range rows {
		b.WriteString(r.renderRow(row))
	}

	if pg != nil && pg.TotalPages > 1 {
		b.WriteString(r.separator() + "\n")
		b.WriteString(r.styles.Meta.Render(pg.FormatSummary()) + "\n")
		if nav := pg.FormatNavigation(); nav != "" {
			b.WriteString(r.styles.Meta.Render(nav) + "\n")
		}
	}
	return b.String()
}

func (r *Renderer) renderRow(row view.Row) string {
	var parts []string
	if r.config.ShowID {
		parts = append(parts, r.styles.ID.Render(fmt.Sprintf("[%d]", row.ID)))
	}
	parts = append(parts, checkbox(row.Completed))

	text := row.Content
	if len(row.Segments) > 0 {
		var hb strings.Builder
		for _, s := range row.Segments {
			if s.Match {
				hb.WriteString(r.styles.Highlight.Render(s.Text))
			} else {
				hb.WriteString(s.Text)
			}
		}
		text = hb.String()
	} else if row.Completed {
		text = r.styles.Done.Render(text)
	}
	parts = append(parts, text)

	meta := row.Stamp
	if row.Origin != "" {
		meta = r.styles.Origin.Render(row.Origin) + " " + r.styles.Meta.Render(meta)
	} else {
		meta = r.styles.Meta.Render(meta)
	}
	parts = append(parts, meta)
	return strings.Join(parts, "  ") + "\n"
}

type jsonDate struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Pinned bool   `json:"pinned"`
	Active bool   `json:"active,omitempty"`
}

// RenderDates renders the sidebar listing.
func (r *Renderer) RenderDates(items []view.SidebarItem, warning string) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		out := make([]jsonDate, 0, len(items))
		for _, it := range items {
			out = append(out, jsonDate{it.Key, it.Label, it.Count, it.Pinned, it.Active})
		}
		return marshal(out)
	case FormatCSV:
		var b strings.Builder
		b.WriteString("key,label,count,pinned\n")
		for _, it := range items {
			fmt.Fprintf(&b, "%s,%s,%d,%t\n", escapeCSV(it.Key), escapeCSV(it.Label), it.Count, it.Pinned)
		}
		return b.String(), nil
	case FormatTable:
		var b strings.Builder
		b.WriteString("Key\tLabel\tCount\tPinned\n")
		for _, it := range items {
			pin := ""
			if it.Pinned {
				pin = "yes"
			}
			fmt.Fprintf(&b, "%s\t%s\t%d\t%s\n", it.Key, it.Label, it.Count, pin)
		}
		return b.String(), nil
	case FormatQuiet:
		var b strings.Builder
		for _, it := range items {
			b.WriteString(it.Key + "\n")
		}
		return b.String(), nil
	case FormatCompact:
		var b strings.Builder
		for _, it := range items {
			fmt.Fprintf(&b, "%s %s %d\n", it.Key, it.Label, it.Count)
		}
		return b.String(), nil
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Dates"))
	b.WriteString("  ")
	b.WriteString(r.styles.Meta.Render(english.Plural(len(items), "date", "")))
	b.WriteString("\n")
	if warning != "" {
		b.WriteString(r.styles.Warning.Render(warning) + "\n")
	}
	b.WriteString(r.separator() + "\n")
	for _, it := range items {
		marker := "  "
		if it.Pinned {
			marker = r.styles.Pinned.Render("★ ")
		}
		label := it.Label
		if it.Active {
			label = r.styles.Active.Render(label)
		}
		count := r.styles.Meta.Render(humanize.Comma(int64(it.Count)))
		key := ""
		if it.Key != it.Label {
			key = " " + r.styles.ID.Render(it.Key)
		}
		fmt.Fprintf(&b, "%s%s%s  %s\n", marker, label, key, count)
	}
	return b.String(), nil
}

func marshal(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		s = strings.ReplaceAll(s, "\"", "\"\"")
		return "\"" + s + "\""
	}
	return s
}
