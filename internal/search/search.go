// Package search finds todos across every date partition.
package search

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ramanasai/daytodo/internal/api"
	"github.com/ramanasai/daytodo/internal/directory"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel per-date fetches.
const DefaultConcurrency = 8

// ErrEmptyQuery is returned for blank queries before any request is made.
var ErrEmptyQuery = errors.New("search query is empty")

// Source is the part of the API the coordinator reads.
type Source interface {
	Counts(ctx context.Context) (map[string]int, error)
	ListTodos(ctx context.Context, date string) ([]api.Todo, error)
}

// Match is a todo that matched, with its origin date.
type Match struct {
	Date string
	Todo api.Todo
}

// Result holds the matches of one search.
type Result struct {
	Query   string
	Matches []Match
}

// Coordinator runs searches.
type Coordinator struct {
	src         Source
	concurrency int
	logger      *log.Logger
}

// New returns a Coordinator. concurrency <= 0 uses DefaultConcurrency.
func New(src Source, concurrency int, logger *log.Logger) *Coordinator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{src: src, concurrency: concurrency, logger: logger}
}

// Search aggregates every partition and filters it by query.
func (c *Coordinator) Search(ctx context.Context, query string) (Result, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Result{}, ErrEmptyQuery
	}
	all, err := c.Aggregate(ctx)
	if err != nil {
		return Result{}, err
	}
	matches := Filter(all, q)
	c.logger.Debug("search", "query", q, "scanned", len(all), "matches", len(matches))
	return Result{Query: q, Matches: matches}, nil
}

// Aggregate fetches every date's todos. Dates are visited in directory
// order and each date keeps server order. Any failed fetch fails the whole
// aggregation.
func (c *Coordinator) Aggregate(ctx context.Context) ([]Match, error) {
	counts, err := c.src.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: load dates: %w", err)
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	keys = directory.Order(keys, nil)

	lists := make([][]api.Todo, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, k := range keys {
		g.Go(func() error {
			todos, err := c.src.ListTodos(gctx, k)
			if err != nil {
				return fmt.Errorf("search: load %s: %w", k, err)
			}
			lists[i] = todos
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Match
	for i, k := range keys {
		for _, t := range lists[i] {
			out = append(out, Match{Date: k, Todo: t})
		}
	}
	return out, nil
}

// Filter keeps items whose content contains query, ignoring case. The query
// is matched literally.
func Filter(items []Match, query string) []Match {
	re := pattern(query)
	if re == nil {
		return nil
	}
	out := make([]Match, 0)
	for _, m := range items {
		if re.MatchString(m.Todo.Content) {
			out = append(out, m)
		}
	}
	return out
}

// Segment is a run of content, marked when it matched the query.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits content into alternating plain and matched runs. The
// original casing is kept.
func Highlight(content, query string) []Segment {
	re := pattern(query)
	if re == nil || content == "" {
		return []Segment{{Text: content}}
	}
	var segs []Segment
	pos := 0
	for _, loc := range re.FindAllStringIndex(content, -1) {
		if loc[0] > pos {
			segs = append(segs, Segment{Text: content[pos:loc[0]]})
		}
		segs = append(segs, Segment{Text: content[loc[0]:loc[1]], Match: true})
		pos = loc[1]
	}
	if pos < len(content) {
		segs = append(segs, Segment{Text: content[pos:]})
	}
	return segs
}

func pattern(query string) *regexp.Regexp {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(q))
}
