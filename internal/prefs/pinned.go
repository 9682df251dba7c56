package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// PinnedKey is the preference key holding the pinned dates as a JSON array.
const PinnedKey = "pinnedDates"

// Backend is what PinnedSet persists through. *Store implements it.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// PinnedSet is the set of date keys pinned to the top of the sidebar.
// Members are never validated against the server; pins on deleted dates
// just linger.
type PinnedSet struct {
	mu      sync.RWMutex
	keys    map[string]struct{}
	backend Backend
	logger  *log.Logger
	lastErr error
}

// LoadPinned reads the pinned set from backend. A missing or corrupt value
// yields an empty set; corruption is logged.
func LoadPinned(ctx context.Context, backend Backend, logger *log.Logger) *PinnedSet {
	if logger == nil {
		logger = log.Default()
	}
	p := &PinnedSet{keys: map[string]struct{}{}, backend: backend, logger: logger}
	if backend == nil {
		return p
	}
	raw, err := backend.Get(ctx, PinnedKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("load pinned dates", "err", err)
		}
		return p
	}
	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		logger.Warn("pinned dates corrupt, starting empty", "err", err)
		return p
	}
	for _, k := range keys {
		p.keys[k] = struct{}{}
	}
	return p
}

// Has reports whether key is pinned.
func (p *PinnedSet) Has(key string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.keys[key]
	return ok
}

// Keys returns the pinned keys sorted.
func (p *PinnedSet) Keys() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.keys))
	for k := range p.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Snapshot returns a copy usable off the event loop.
func (p *PinnedSet) Snapshot() map[string]bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]bool, len(p.keys))
	for k := range p.keys {
		out[k] = true
	}
	return out
}

// Toggle flips membership of key and returns the new state.
func (p *PinnedSet) Toggle(key string) bool {
	p.mu.Lock()
	_, pinned := p.keys[key]
	if pinned {
		delete(p.keys, key)
	} else {
		p.keys[key] = struct{}{}
	}
	p.mu.Unlock()
	p.save()
	return !pinned
}

// Pin adds key.
func (p *PinnedSet) Pin(key string) {
	p.mu.Lock()
	p.keys[key] = struct{}{}
	p.mu.Unlock()
	p.save()
}

// Unpin removes key.
func (p *PinnedSet) Unpin(key string) {
	p.mu.Lock()
	delete(p.keys, key)
	p.mu.Unlock()
	p.save()
}

// LastErr is the error of the most recent write, if it failed.
func (p *PinnedSet) LastErr() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// save writes the set through. Failures are logged and kept in lastErr; the
// in-memory state stays as mutated.
func (p *PinnedSet) save() {
	if p.backend == nil {
		return
	}
	raw, err := json.Marshal(p.Keys())
	if err == nil {
		err = p.backend.Put(context.Background(), PinnedKey, string(raw))
	}
	if err != nil {
		p.logger.Error("save pinned dates", "err", err)
	}
	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()
}
