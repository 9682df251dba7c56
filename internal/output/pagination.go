package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize/english"
)

// Pagination contains pagination metadata
type Pagination struct {
	Total      int
	PerPage    int
	Current    int
	Offset     int
	TotalPages int
}

// NewPagination creates pagination info. perPage <= 0 puts everything on
// one page.
func NewPagination(total, perPage, current int) *Pagination {
	if perPage <= 0 {
		perPage = max(total, 1)
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	return &Pagination{
		Total:      total,
		PerPage:    perPage,
		Current:    current,
		Offset:     (current - 1) * perPage,
		TotalPages: totalPages,
	}
}

// Slice returns the items on the current page.
func Slice[T any](items []T, p *Pagination) []T {
	if p == nil {
		return items
	}
	start, end := p.Offset, p.Offset+p.PerPage
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// GetRange returns the range of items on the current page (1-indexed)
func (p *Pagination) GetRange() (start, end int) {
	start = p.Offset + 1
	end = p.Offset + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return start, end
}

// HasNext returns true if there's a next page
func (p *Pagination) HasNext() bool {
	return p.Current < p.TotalPages
}

// HasPrev returns true if there's a previous page
func (p *Pagination) HasPrev() bool {
	return p.Current > 1
}

// FormatSummary returns a human-readable summary
func (p *Pagination) FormatSummary() string {
	if p.Total == 0 {
		return "No results"
	}

	start, end := p.GetRange()
	if p.TotalPages == 1 {
		return fmt.Sprintf("Showing %d-%d of %s", start, end, english.Plural(p.Total, "result", ""))
	}
	return fmt.Sprintf("Showing %d-%d of %s (page %d of %d)",
		start, end, english.Plural(p.Total, "result", ""), p.Current, p.TotalPages)
}

// FormatNavigation returns navigation hints for CLI
func (p *Pagination) FormatNavigation() string {
	if p.TotalPages <= 1 {
		return ""
	}

	var hints []string
	if p.HasPrev() {
		hints = append(hints, fmt.Sprintf("use --page %d for previous", p.Current-1))
	}
	if p.HasNext() {
		hints = append(hints, fmt.Sprintf("use --page %d for next", p.Current+1))
	}

	return strings.Join(hints, ", ")
}
