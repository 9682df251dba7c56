// Package dateutil converts between date keys, server timestamps and the
// strings shown to the user.
package dateutil

import (
	"strings"
	"time"
)

// KeyLayout is the layout of calendar date keys ("YYYY-MM-DD").
const KeyLayout = "2006-01-02"

// Today returns today's key in loc.
func Today(loc *time.Location) string {
	return Key(time.Now(), loc)
}

// Key formats t as a date key in loc.
func Key(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(KeyLayout)
}

// ParseKey parses a calendar key. Synthetic keys (e.g. "copy-20240101-17000")
// report false.
func ParseKey(key string) (time.Time, bool) {
	t, err := time.Parse(KeyLayout, strings.TrimSpace(key))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsCalendarKey reports whether key is a real YYYY-MM-DD date.
func IsCalendarKey(key string) bool {
	_, ok := ParseKey(key)
	return ok
}

// Formatter renders keys and timestamps for display.
type Formatter struct {
	DateLayout string
	TimeLayout string
	Location   *time.Location
}

// DefaultFormatter returns the formatter used when nothing is configured.
func DefaultFormatter() Formatter {
	return Formatter{DateLayout: "Jan 2", TimeLayout: "15:04", Location: time.Local}
}

// Display returns the display form of a key. Non-calendar keys are returned
// unchanged.
func (f Formatter) Display(key string) string {
	t, ok := ParseKey(key)
	if !ok {
		return key
	}
	layout := f.DateLayout
	if layout == "" {
		layout = "Jan 2"
	}
	return t.Format(layout)
}

// Clock formats a server timestamp as a wall-clock time. Empty or unparseable
// input yields "".
func (f Formatter) Clock(ts string) string {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return ""
	}
	layout := f.TimeLayout
	if layout == "" {
		layout = "15:04"
	}
	return t.Format(layout)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses the timestamp formats emitted by the todo service.
// Timestamps without a zone are taken as local wall-clock time.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
