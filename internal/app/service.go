package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/pkg/browser"
	"github.com/ramanasai/daytodo/internal/api"
	"github.com/ramanasai/daytodo/internal/dateutil"
	"github.com/ramanasai/daytodo/internal/directory"
	"github.com/ramanasai/daytodo/internal/menu"
	"github.com/ramanasai/daytodo/internal/prefs"
	"github.com/ramanasai/daytodo/internal/search"
	"github.com/ramanasai/daytodo/internal/view"
)

// ErrEmptyContent is returned for blank todo text before any request.
var ErrEmptyContent = errors.New("todo content is empty")

// Options configures a Service.
type Options struct {
	Formatter         dateutil.Formatter
	FallbackDays      int
	CopyStrategy      directory.Strategy
	MaxProbe          int
	SearchConcurrency int
	Logger            *log.Logger
	Now               func() time.Time

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error
	// OpenURL opens a URL in the user's browser.
	OpenURL func(string) error
}

// Service performs every user action. Mutations return once the server
// has confirmed them; callers re-render by calling Page.
type Service struct {
	API    *api.Client
	Dir    *directory.Directory
	Search *search.Coordinator
	Menu   *menu.Controller
	Pins   *prefs.PinnedSet
	Keys   *directory.KeyGenerator

	fmt       dateutil.Formatter
	logger    *log.Logger
	now       func() time.Time
	clipboard func(string) error
	openURL   func(string) error
}

// NewService wires the components around client and pins. A nil pins
// keeps pins in memory only.
func NewService(client *api.Client, pins *prefs.PinnedSet, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Formatter.DateLayout == "" {
		opts.Formatter = dateutil.DefaultFormatter()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.OpenURL == nil {
		opts.OpenURL = browser.OpenURL
	}
	if opts.CopyStrategy == "" {
		opts.CopyStrategy = directory.StrategyToken
	}

	if pins == nil {
		pins = prefs.LoadPinned(context.Background(), nil, opts.Logger)
	}
	keys := directory.NewKeyGenerator(opts.CopyStrategy, opts.MaxProbe, client, opts.Formatter.Location)
	keys.SetClock(opts.Now)

	return &Service{
		API: client,
		Dir: directory.New(client, pins, directory.Options{
			Formatter:    opts.Formatter,
			FallbackDays: opts.FallbackDays,
			Logger:       opts.Logger,
			Now:          opts.Now,
		}),
		Search:    search.New(client, opts.SearchConcurrency, opts.Logger),
		Menu:      menu.NewController(client, keys, pins, opts.Logger),
		Pins:      pins,
		Keys:      keys,
		fmt:       opts.Formatter,
		logger:    opts.Logger,
		now:       opts.Now,
		clipboard: opts.Clipboard,
		openURL:   opts.OpenURL,
	}
}

// Formatter returns the display formatter.
func (s *Service) Formatter() dateutil.Formatter { return s.fmt }

// Today returns today's key.
func (s *Service) Today() string { return s.Dir.Today() }

// Page fetches everything needed to draw st. On error the caller should
// keep showing what it had.
func (s *Service) Page(ctx context.Context, st State) (view.Page, error) {
	listing := s.Dir.Build(ctx)
	data := view.Data{Listing: listing}

	if st.Searching() {
		res, err := s.Search.Search(ctx, st.Search.Query)
		if err != nil {
			return view.Page{}, err
		}
		data.Search = &res
		return view.Build(st.Current, data, s.fmt), nil
	}

	todos, err := s.API.ListTodos(ctx, st.Current)
	if err != nil {
		return view.Page{}, fmt.Errorf("load %s: %w", st.Current, err)
	}
	data.Todos = todos
	if e, ok := listing.Find(st.Current); ok {
		data.Title = e.Display
	} else {
		data.Title = s.Dir.DisplayName(ctx, st.Current)
	}
	return view.Build(st.Current, data, s.fmt), nil
}

// Add creates a todo under date.
func (s *Service) Add(ctx context.Context, date, content string) (api.Todo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return api.Todo{}, ErrEmptyContent
	}
	t, err := s.API.CreateTodo(ctx, content, date)
	if err != nil {
		return api.Todo{}, fmt.Errorf("add todo: %w", err)
	}
	s.logger.Debug("todo added", "id", t.ID, "date", date)
	return t, nil
}

// ToggleComplete reads the todo and writes back the negated completion.
// Another client writing in between is overwritten.
func (s *Service) ToggleComplete(ctx context.Context, id int64, date string) (api.Todo, error) {
	cur, err := s.API.GetTodo(ctx, id, date)
	if err != nil {
		return api.Todo{}, fmt.Errorf("toggle #%d: %w", id, err)
	}
	done := !cur.Completed
	t, err := s.API.UpdateTodo(ctx, id, api.TodoUpdate{Date: date, Completed: &done})
	if err != nil {
		return api.Todo{}, fmt.Errorf("toggle #%d: %w", id, err)
	}
	return t, nil
}

// Edit replaces a todo's content.
func (s *Service) Edit(ctx context.Context, id int64, date, content string) (api.Todo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return api.Todo{}, ErrEmptyContent
	}
	t, err := s.API.UpdateTodo(ctx, id, api.TodoUpdate{Date: date, Content: &content})
	if err != nil {
		return api.Todo{}, fmt.Errorf("edit #%d: %w", id, err)
	}
	return t, nil
}

// Delete removes one todo.
func (s *Service) Delete(ctx context.Context, id int64, date string) error {
	if err := s.API.DeleteTodo(ctx, id, date); err != nil {
		return fmt.Errorf("delete #%d: %w", id, err)
	}
	return nil
}

// Duplicate copies one todo within its date.
func (s *Service) Duplicate(ctx context.Context, id int64, date string) (api.Todo, error) {
	t, err := s.API.CopyTodo(ctx, id, date)
	if err != nil {
		return api.Todo{}, fmt.Errorf("duplicate #%d: %w", id, err)
	}
	return t, nil
}

// Move puts a todo at newOrder (zero-based, server order). The list is
// fetched first; an out-of-range position sends nothing and reports false.
func (s *Service) Move(ctx context.Context, id int64, date string, newOrder int) (bool, error) {
	todos, err := s.API.ListTodos(ctx, date)
	if err != nil {
		return false, fmt.Errorf("move #%d: %w", id, err)
	}
	return s.moveIn(ctx, id, todos, newOrder)
}

// Shift moves a todo by delta places in server order.
func (s *Service) Shift(ctx context.Context, id int64, date string, delta int) (bool, error) {
	todos, err := s.API.ListTodos(ctx, date)
	if err != nil {
		return false, fmt.Errorf("move #%d: %w", id, err)
	}
	for i, t := range todos {
		if t.ID == id {
			return s.moveIn(ctx, id, todos, i+delta)
		}
	}
	return false, fmt.Errorf("move #%d: not in %s", id, date)
}

func (s *Service) moveIn(ctx context.Context, id int64, todos []api.Todo, newOrder int) (bool, error) {
	if newOrder < 0 || newOrder >= len(todos) {
		return false, nil
	}
	if err := s.API.MoveTodo(ctx, id, newOrder); err != nil {
		return false, fmt.Errorf("move #%d: %w", id, err)
	}
	return true, nil
}

// CopyText puts content on the clipboard.
func (s *Service) CopyText(content string) error {
	if err := s.clipboard(content); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// Export opens the date's export in the browser.
func (s *Service) Export(date string) error {
	u := s.API.ExportURL(date)
	if err := s.openURL(u); err != nil {
		return fmt.Errorf("open %s: %w", u, err)
	}
	return nil
}
