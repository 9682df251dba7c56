package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ListTodos returns the todos of one date in server order.
func (c *Client) ListTodos(ctx context.Context, date string) ([]Todo, error) {
	var todos []Todo
	if err := c.call(ctx, http.MethodGet, todosPath, dateQuery(date), nil, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []Todo{}
	}
	return todos, nil
}

// GetTodo fetches a single todo.
func (c *Client) GetTodo(ctx context.Context, id int64, date string) (Todo, error) {
	var t Todo
	err := c.call(ctx, http.MethodGet, todoPath(id), dateQuery(date), nil, &t)
	return t, err
}

// CreateTodo appends a todo to date. Callers validate content.
func (c *Client) CreateTodo(ctx context.Context, content, date string) (Todo, error) {
	var t Todo
	err := c.call(ctx, http.MethodPost, todosPath, nil, createRequest{Content: content, Date: date}, &t)
	return t, err
}

// UpdateTodo applies a partial update.
func (c *Client) UpdateTodo(ctx context.Context, id int64, upd TodoUpdate) (Todo, error) {
	var t Todo
	err := c.call(ctx, http.MethodPut, todoPath(id), nil, upd, &t)
	return t, err
}

// DeleteTodo removes one todo.
func (c *Client) DeleteTodo(ctx context.Context, id int64, date string) error {
	return c.call(ctx, http.MethodDelete, todoPath(id), dateQuery(date), nil, nil)
}

// CopyTodo duplicates a todo within its date.
func (c *Client) CopyTodo(ctx context.Context, id int64, date string) (Todo, error) {
	var t Todo
	err := c.call(ctx, http.MethodPost, todoPath(id)+"/copy", dateQuery(date), nil, &t)
	return t, err
}

// MoveTodo repositions a todo within its date. Callers bound-check order.
func (c *Client) MoveTodo(ctx context.Context, id int64, order int) error {
	return c.call(ctx, http.MethodPost, todosPath+"/move", nil, moveRequest{ID: id, Order: order}, nil)
}

// DeleteDate removes every todo under date (and its alias).
func (c *Client) DeleteDate(ctx context.Context, date string) (Result, error) {
	var r Result
	err := c.call(ctx, http.MethodDelete, todosPath+"/date/"+url.PathEscape(date), nil, nil, &r)
	return r, err
}

// CopyDate duplicates every todo of src into dst.
func (c *Client) CopyDate(ctx context.Context, src, dst string) (Result, error) {
	var r Result
	err := c.call(ctx, http.MethodPost, todosPath+"/copy-date", nil, copyDateRequest{SourceDate: src, TargetDate: dst}, &r)
	return r, err
}

// Counts returns the number of todos per date key.
func (c *Client) Counts(ctx context.Context) (map[string]int, error) {
	counts := map[string]int{}
	if err := c.call(ctx, http.MethodGet, todosPath+"/counts", nil, nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// ExportURL is the address of the export download for date.
func (c *Client) ExportURL(date string) string {
	return c.endpoint(exportPath(date), nil)
}

// Export downloads the exported file of one date.
func (c *Client) Export(ctx context.Context, date string) (Download, error) {
	resp, raw, err := c.do(ctx, http.MethodGet, exportPath(date), nil, nil)
	if err != nil {
		return Download{}, err
	}
	name := filenameFrom(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = strings.ReplaceAll(date, "/", "_") + "-todo.md"
	}
	return Download{
		Filename:    name,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        raw,
	}, nil
}

func todoPath(id int64) string {
	return fmt.Sprintf("%s/%d", todosPath, id)
}

func exportPath(date string) string {
	return todosPath + "/export/" + url.PathEscape(date)
}
