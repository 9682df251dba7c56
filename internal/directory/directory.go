// Package directory builds the sidebar of date partitions.
package directory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ramanasai/daytodo/internal/dateutil"
)

// DefaultFallbackDays is today plus the seven days before it.
const DefaultFallbackDays = 8

// Source is the part of the API the directory reads.
type Source interface {
	Counts(ctx context.Context) (map[string]int, error)
	Aliases(ctx context.Context) (map[string]string, error)
}

// Pins reports pinned keys.
type Pins interface {
	Has(key string) bool
}

// Entry is one sidebar item.
type Entry struct {
	Key     string
	Display string
	Alias   string
	Count   int
	Pinned  bool
}

// Listing is the result of Build.
type Listing struct {
	Entries []Entry
	// Fallback is set when counts could not be fetched and Entries is the
	// synthesized recent-days list.
	Fallback bool
	// Err is the fetch error behind Fallback, or an alias fetch failure.
	Err error

	Counts  map[string]int
	Aliases map[string]string
}

// Keys returns the entry keys in listing order.
func (l Listing) Keys() []string {
	out := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		out[i] = e.Key
	}
	return out
}

// Find returns the entry for key.
func (l Listing) Find(key string) (Entry, bool) {
	for _, e := range l.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Options configures a Directory.
type Options struct {
	Formatter    dateutil.Formatter
	FallbackDays int
	Logger       *log.Logger
	Now          func() time.Time
}

// Directory assembles listings from a Source and the pinned set.
type Directory struct {
	src  Source
	pins Pins
	opts Options
}

// New returns a Directory. A nil pins means nothing is pinned.
func New(src Source, pins Pins, opts Options) *Directory {
	if opts.FallbackDays <= 0 {
		opts.FallbackDays = DefaultFallbackDays
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Formatter.DateLayout == "" {
		opts.Formatter = dateutil.DefaultFormatter()
	}
	return &Directory{src: src, pins: pins, opts: opts}
}

// Formatter returns the formatter used for display names.
func (d *Directory) Formatter() dateutil.Formatter { return d.opts.Formatter }

// Today returns today's key in the configured location.
func (d *Directory) Today() string {
	return dateutil.Key(d.opts.Now(), d.opts.Formatter.Location)
}

func (d *Directory) isPinned(key string) bool {
	return d.pins != nil && d.pins.Has(key)
}

// Build fetches counts and aliases and returns the ordered sidebar.
func (d *Directory) Build(ctx context.Context) Listing {
	counts, err := d.src.Counts(ctx)
	if err != nil {
		d.opts.Logger.Warn("date counts unavailable, using recent days", "err", err)
		return d.fallback(fmt.Errorf("load dates: %w", err))
	}

	l := Listing{Counts: counts}
	aliases, aerr := d.src.Aliases(ctx)
	if aerr != nil {
		d.opts.Logger.Warn("date aliases unavailable", "err", aerr)
		l.Err = fmt.Errorf("load aliases: %w", aerr)
		aliases = map[string]string{}
	}
	l.Aliases = aliases

	// a date is listed when it has todos, an alias, or is today
	seen := make(map[string]bool, len(counts)+len(aliases)+1)
	keys := make([]string, 0, len(counts)+len(aliases)+1)
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range counts {
		add(k)
	}
	for k := range aliases {
		add(k)
	}
	add(d.Today())
	keys = Order(keys, d.isPinned)

	l.Entries = make([]Entry, 0, len(keys))
	for _, k := range keys {
		l.Entries = append(l.Entries, Entry{
			Key:     k,
			Display: d.name(k, aliases),
			Alias:   aliases[k],
			Count:   counts[k],
			Pinned:  d.isPinned(k),
		})
	}
	return l
}

func (d *Directory) fallback(cause error) Listing {
	now := d.opts.Now()
	l := Listing{Fallback: true, Err: cause}
	for i := 0; i < d.opts.FallbackDays; i++ {
		k := dateutil.Key(now.AddDate(0, 0, -i), d.opts.Formatter.Location)
		l.Entries = append(l.Entries, Entry{Key: k, Display: d.opts.Formatter.Display(k)})
	}
	return l
}

func (d *Directory) name(key string, aliases map[string]string) string {
	if a := aliases[key]; a != "" {
		return a
	}
	return d.opts.Formatter.Display(key)
}

// DisplayName resolves a single key: its alias when set, else the formatted
// date. Alias fetch failures fall back to the formatted date.
func (d *Directory) DisplayName(ctx context.Context, key string) string {
	aliases, err := d.src.Aliases(ctx)
	if err != nil {
		d.opts.Logger.Debug("alias lookup failed", "key", key, "err", err)
		return d.opts.Formatter.Display(key)
	}
	return d.name(key, aliases)
}

// Order returns keys with pinned ones first. Within each group calendar
// dates come first, newest first, followed by other keys in descending
// lexical order.
func Order(keys []string, isPinned func(string) bool) []string {
	out := append([]string(nil), keys...)
	pinned := func(k string) bool { return isPinned != nil && isPinned(k) }
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if pa, pb := pinned(a), pinned(b); pa != pb {
			return pa
		}
		ca, cb := dateutil.IsCalendarKey(a), dateutil.IsCalendarKey(b)
		if ca != cb {
			return ca
		}
		return a > b
	})
	return out
}
