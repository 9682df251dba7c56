// Package fakeserver is an in-memory implementation of the todo service's
// HTTP API. It backs the package tests and the dev-server command.
package fakeserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const timestampLayout = "2006-01-02T15:04:05.000000"

type todo struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Content     string  `json:"content"`
	Completed   bool    `json:"completed"`
	Order       int     `json:"order"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
}

// Server keeps every partition in memory.
type Server struct {
	mu         sync.Mutex
	partitions map[string][]*todo
	aliases    map[string]string
	nextID     int64
	failures   map[string]int
	requests   map[string]int

	// Now is the clock used for timestamps.
	Now func() time.Time
}

// New returns an empty server.
func New() *Server {
	return &Server{
		partitions: map[string][]*todo{},
		aliases:    map[string]string{},
		failures:   map[string]int{},
		requests:   map[string]int{},
		Now:        time.Now,
	}
}

// Handler returns the API routes mounted under /api.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.track)

	r.Route("/api", func(r chi.Router) {
		r.Get("/todos", s.handleList)
		r.Post("/todos", s.handleCreate)
		r.Get("/todos/counts", s.handleCounts)
		r.Post("/todos/move", s.handleMove)
		r.Post("/todos/copy-date", s.handleCopyDate)
		r.Delete("/todos/date/{date}", s.handleDeleteDate)
		r.Get("/todos/export/{date}", s.handleExport)
		r.Get("/todos/{id}", s.handleGet)
		r.Put("/todos/{id}", s.handleUpdate)
		r.Delete("/todos/{id}", s.handleDelete)
		r.Post("/todos/{id}/copy", s.handleCopy)

		r.Get("/date-aliases", s.handleAliases)
		r.Post("/date-aliases", s.handleSetAlias)
		r.Delete("/date-aliases/{date}", s.handleDeleteAlias)
	})
	return r
}

// Fail makes every request whose "METHOD /path" starts with route answer
// with status. Status 0 clears the failure.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, route)
		return
	}
	s.failures[route] = status
}

// Requests returns how many requests matched the "METHOD /path" prefix.
func (s *Server) Requests(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, v := range s.requests {
		if strings.HasPrefix(k, route) {
			n += v
		}
	}
	return n
}

// Seed appends todos with the given contents to date and returns their ids.
func (s *Server) Seed(date string, contents ...string) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(contents))
	for _, c := range contents {
		ids = append(ids, s.add(date, c).ID)
	}
	return ids
}

// SeedAlias sets an alias without validation.
func (s *Server) SeedAlias(date, alias string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aliases[date] = alias
}

func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
		s.mu.Lock()
		s.requests[key]++
		status := 0
		for route, st := range s.failures {
			if strings.HasPrefix(key, route) {
				status = st
				break
			}
		}
		s.mu.Unlock()
		if status != 0 {
			writeError(w, status, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// add must be called with s.mu held.
func (s *Server) add(date, content string) *todo {
	maxOrder := 0
	for _, t := range s.partitions[date] {
		if t.Order > maxOrder {
			maxOrder = t.Order
		}
	}
	s.nextID++
	t := &todo{
		ID:        s.nextID,
		Date:      date,
		Content:   content,
		Order:     maxOrder + 1,
		CreatedAt: s.Now().Format(timestampLayout),
	}
	s.partitions[date] = append(s.partitions[date], t)
	return t
}

// sorted returns a partition ordered by (order, id).
func (s *Server) sorted(date string) []*todo {
	list := append([]*todo(nil), s.partitions[date]...)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Order != list[j].Order {
			return list[i].Order < list[j].Order
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func (s *Server) find(date string, id int64) *todo {
	for _, t := range s.partitions[date] {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = s.Now().Format("2006-01-02")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]todo, 0, len(s.partitions[date]))
	for _, t := range s.sorted(date) {
		out = append(out, *t)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
		Date    string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Content == "" {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if body.Date == "" {
		body.Date = s.Now().Format("2006-01-02")
	}
	writeJSON(w, http.StatusCreated, *s.add(body.Date, body.Content))
}

func (s *Server) handleCounts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[string]int{}
	for date, list := range s.partitions {
		counts[date] = len(list)
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "Date parameter is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.find(date, id)
	if t == nil {
		writeError(w, http.StatusNotFound, "Todo not found")
		return
	}
	writeJSON(w, http.StatusOK, *t)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var body struct {
		Date      string  `json:"date"`
		Content   *string `json:"content"`
		Completed *bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Date == "" {
		writeError(w, http.StatusBadRequest, "Date parameter is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.find(body.Date, id)
	if t == nil {
		writeError(w, http.StatusNotFound, "Todo not found or update failed")
		return
	}
	if body.Content != nil {
		t.Content = *body.Content
	}
	if body.Completed != nil {
		t.Completed = *body.Completed
		if t.Completed {
			ts := s.Now().Format(timestampLayout)
			t.CompletedAt = &ts
		} else {
			t.CompletedAt = nil
		}
	}
	writeJSON(w, http.StatusOK, *t)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "Date parameter is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.partitions[date]
	for i, t := range list {
		if t.ID == id {
			s.partitions[date] = append(list[:i:i], list[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Todo not found")
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "Date parameter is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	orig := s.find(date, id)
	if orig == nil {
		writeError(w, http.StatusNotFound, "Todo not found")
		return
	}
	writeJSON(w, http.StatusCreated, *s.add(date, orig.Content))
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID    int64 `json:"id"`
		Order int   `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for date := range s.partitions {
		list := s.sorted(date)
		from := -1
		for i, t := range list {
			if t.ID == body.ID {
				from = i
				break
			}
		}
		if from < 0 {
			continue
		}
		if body.Order < 0 || body.Order >= len(list) {
			writeError(w, http.StatusBadRequest, "order out of range")
			return
		}
		moved := list[from]
		list = append(list[:from], list[from+1:]...)
		list = append(list[:body.Order], append([]*todo{moved}, list[body.Order:]...)...)
		for i, t := range list {
			t.Order = i + 1
		}
		s.partitions[date] = list
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeError(w, http.StatusNotFound, "Todo not found")
}

func (s *Server) handleDeleteDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.partitions[date])
	delete(s.partitions, date)
	delete(s.aliases, date)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("deleted %d todos", n),
		"count":   n,
	})
}

func (s *Server) handleCopyDate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SourceDate string `json:"source_date"`
		TargetDate string `json:"target_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.SourceDate == "" || body.TargetDate == "" {
		writeError(w, http.StatusBadRequest, "Source date and target date are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.sorted(body.SourceDate)
	if _, ok := s.partitions[body.TargetDate]; !ok {
		s.partitions[body.TargetDate] = []*todo{}
	}
	for _, t := range src {
		c := s.add(body.TargetDate, t.Content)
		if t.Completed {
			c.Completed = true
			ts := s.Now().Format(timestampLayout)
			c.CompletedAt = &ts
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("copied %d todos", len(src)),
		"count":   len(src),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	s.mu.Lock()
	list := s.sorted(date)
	s.mu.Unlock()

	label := day.Format("01.02")
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Todo\n\n", label)
	if len(list) == 0 {
		b.WriteString("No tasks\n")
	} else {
		var pending, done []*todo
		for _, t := range list {
			if t.Completed {
				done = append(done, t)
			} else {
				pending = append(pending, t)
			}
		}
		if len(pending) > 0 {
			b.WriteString("## Pending\n\n")
			for _, t := range pending {
				fmt.Fprintf(&b, "- [ ] %s\n", t.Content)
			}
			b.WriteString("\n")
		}
		if len(done) > 0 {
			b.WriteString("## Done\n\n")
			for _, t := range done {
				fmt.Fprintf(&b, "- [x] %s\n", t.Content)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "---\nTotal: %d, done: %d\n", len(list), len(done))
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", label+"-todo.md"))
	_, _ = w.Write([]byte(b.String()))
}

func (s *Server) handleAliases(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.aliases))
	for k, v := range s.aliases {
		out[k] = v
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSetAlias(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date  string `json:"date"`
		Alias string `json:"alias"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Date == "" || body.Alias == "" {
		writeError(w, http.StatusBadRequest, "Date and alias are required")
		return
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil && !strings.HasPrefix(body.Date, "copy-") {
		writeError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD or copy-* format")
		return
	}
	s.mu.Lock()
	s.aliases[body.Date] = body.Alias
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Date alias updated successfully"})
}

func (s *Server) handleDeleteAlias(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.aliases[date]; !ok {
		writeError(w, http.StatusNotFound, "Date alias not found")
		return
	}
	delete(s.aliases, date)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Date alias deleted successfully"})
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Todo not found")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
