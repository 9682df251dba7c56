package api

import (
	"time"

	"github.com/ramanasai/daytodo/internal/dateutil"
)

// Todo is a single task as returned by the todo service.
type Todo struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Content     string  `json:"content"`
	Completed   bool    `json:"completed"`
	Order       int     `json:"order"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
}

// Created returns the parsed creation time, if the server sent one.
func (t Todo) Created() (time.Time, bool) {
	return dateutil.ParseTimestamp(t.CreatedAt)
}

// Finished returns the parsed completion time, if any.
func (t Todo) Finished() (time.Time, bool) {
	if t.CompletedAt == nil {
		return time.Time{}, false
	}
	return dateutil.ParseTimestamp(*t.CompletedAt)
}

// TodoUpdate is a partial update. Date is always sent because the service
// locates todos by their date partition.
type TodoUpdate struct {
	Date      string  `json:"date"`
	Content   *string `json:"content,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Result is the {message, count} acknowledgement returned by bulk and alias
// endpoints.
type Result struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// Download is an exported date file.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

type createRequest struct {
	Content string `json:"content"`
	Date    string `json:"date"`
}

type moveRequest struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}

type copyDateRequest struct {
	SourceDate string `json:"source_date"`
	TargetDate string `json:"target_date"`
}

type aliasRequest struct {
	Date  string `json:"date"`
	Alias string `json:"alias"`
}

// errorPayload picks the error field out of any JSON object response.
type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
