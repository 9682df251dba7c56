package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ramanasai/daytodo/internal/api"
)

var (
	// ErrBlankAlias is returned by Rename for empty input.
	ErrBlankAlias = errors.New("name must not be blank")
	// ErrNoTarget is returned by Dispatch when the menu is hidden.
	ErrNoTarget = errors.New("menu has no target date")
)

// API is the part of the API client the controller uses.
type API interface {
	CopyDate(ctx context.Context, src, dst string) (api.Result, error)
	SetAlias(ctx context.Context, date, alias string) (api.Result, error)
	DeleteDate(ctx context.Context, date string) (api.Result, error)
}

// KeySource synthesizes copy targets.
type KeySource interface {
	Next(ctx context.Context) (string, error)
}

// Pins is the mutable pinned set.
type Pins interface {
	Toggle(key string) bool
	LastErr() error
}

// Outcome tells the shell what to do after an action.
type Outcome struct {
	Notice string
	// Select is the key to switch to, if any.
	Select  string
	Refresh bool
}

// Controller performs menu actions.
type Controller struct {
	api    API
	keys   KeySource
	pins   Pins
	logger *log.Logger
}

// NewController wires a controller.
func NewController(a API, keys KeySource, pins Pins, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{api: a, keys: keys, pins: pins, logger: logger}
}

// Copy duplicates the partition key under a fresh key and labels the copy
// display+"-copy". A failed copy leaves no alias behind.
func (c *Controller) Copy(ctx context.Context, key, display string) (Outcome, error) {
	dst, err := c.keys.Next(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("copy %s: %w", key, err)
	}
	if _, err := c.api.CopyDate(ctx, key, dst); err != nil {
		return Outcome{}, fmt.Errorf("copy %s: %w", key, err)
	}
	name := display + "-copy"
	if _, err := c.api.SetAlias(ctx, dst, name); err != nil {
		return Outcome{Refresh: true}, fmt.Errorf("name copy %s: %w", dst, err)
	}
	c.logger.Info("date copied", "from", key, "to", dst, "alias", name)
	return Outcome{
		Notice:  fmt.Sprintf("Copied %q as %q", display, name),
		Select:  dst,
		Refresh: true,
	}, nil
}

// Rename sets the alias of key to the trimmed input.
func (c *Controller) Rename(ctx context.Context, key, input string) (Outcome, error) {
	name := strings.TrimSpace(input)
	if name == "" {
		return Outcome{}, ErrBlankAlias
	}
	if _, err := c.api.SetAlias(ctx, key, name); err != nil {
		return Outcome{}, fmt.Errorf("rename %s: %w", key, err)
	}
	c.logger.Info("date renamed", "key", key, "alias", name)
	return Outcome{Notice: fmt.Sprintf("Renamed to %q", name), Refresh: true}, nil
}

// Delete removes every todo of key once confirmed. Deleting the current
// selection moves the selection to today.
func (c *Controller) Delete(ctx context.Context, key, display string, confirmed bool, current, today string) (Outcome, error) {
	if !confirmed {
		return Outcome{}, nil
	}
	if _, err := c.api.DeleteDate(ctx, key); err != nil {
		return Outcome{}, fmt.Errorf("delete %s: %w", key, err)
	}
	c.logger.Info("date deleted", "key", key)
	out := Outcome{Notice: fmt.Sprintf("Deleted all todos of %q", display), Refresh: true}
	if key == current {
		out.Select = today
	}
	return out, nil
}

// TogglePin flips the pinned state of key.
func (c *Controller) TogglePin(key, display string) (Outcome, error) {
	pinned := c.pins.Toggle(key)
	notice := fmt.Sprintf("Unpinned %q", display)
	if pinned {
		notice = fmt.Sprintf("Pinned %q", display)
	}
	out := Outcome{Notice: notice, Refresh: true}
	if err := c.pins.LastErr(); err != nil {
		return out, fmt.Errorf("save pins: %w", err)
	}
	return out, nil
}

// Action is a menu entry.
type Action int

const (
	ActionCopy Action = iota
	ActionRename
	ActionDelete
	ActionPin
)

// Request carries the inputs of one dispatched action.
type Request struct {
	Action Action
	// Display is the target's current display name.
	Display   string
	Input     string
	Confirmed bool
	Current   string
	Today     string
}

// Dispatch runs req against the menu's target. The menu is hidden
// afterwards whatever the result.
func (c *Controller) Dispatch(ctx context.Context, m *Menu, req Request) (Outcome, error) {
	defer m.Dismiss()
	key, ok := m.Target()
	if !ok {
		return Outcome{}, ErrNoTarget
	}
	switch req.Action {
	case ActionCopy:
		return c.Copy(ctx, key, req.Display)
	case ActionRename:
		return c.Rename(ctx, key, req.Input)
	case ActionDelete:
		return c.Delete(ctx, key, req.Display, req.Confirmed, req.Current, req.Today)
	case ActionPin:
		return c.TogglePin(key, req.Display)
	}
	return Outcome{}, fmt.Errorf("unknown menu action %d", req.Action)
}
