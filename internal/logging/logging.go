// Package logging builds the charmbracelet/log logger from configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ramanasai/daytodo/internal/config"
)

// Options holds logger settings.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions logs info and above as text.
func DefaultOptions() Options {
	return Options{
		Level:     log.InfoLevel,
		Formatter: log.TextFormatter,
		Prefix:    "daytodo",
	}
}

// ParseFormatter maps "text", "json" and "logfmt" to a formatter.
func ParseFormatter(s string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	}
	return log.TextFormatter, fmt.Errorf("unknown log format %q", s)
}

// FromConfig converts the log section into Options.
func FromConfig(c config.LogConfig) (Options, error) {
	opts := DefaultOptions()
	if c.Level != "" {
		lvl, err := log.ParseLevel(c.Level)
		if err != nil {
			return opts, fmt.Errorf("log level: %w", err)
		}
		opts.Level = lvl
	}
	f, err := ParseFormatter(c.Format)
	if err != nil {
		return opts, err
	}
	opts.Formatter = f
	return opts, nil
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// DefaultFile is ~/.local/share/daytodo/daytodo.log.
func DefaultFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "daytodo", "daytodo.log"), nil
}

// OpenFile returns a timestamped logger appending to path (DefaultFile
// when empty). The TUI owns the terminal, so it logs here instead of
// stderr. Close the returned file when done.
func OpenFile(path string, opts Options) (*log.Logger, *os.File, error) {
	if path == "" {
		p, err := DefaultFile()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	opts.ReportTimestamp = true
	return New(f, opts), f, nil
}
