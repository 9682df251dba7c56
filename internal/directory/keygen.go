package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ramanasai/daytodo/internal/dateutil"
)

// Strategy selects how copy targets are named.
type Strategy string

const (
	// StrategyToken names copies "copy-YYYYMMDD-<unix millis>".
	StrategyToken Strategy = "token"
	// StrategyProbe picks the first unused calendar day after today.
	StrategyProbe Strategy = "probe"

	DefaultMaxProbe = 366
	tokenPrefix     = "copy-"
)

// ErrNoFreeKey is returned when probing finds no unused day.
var ErrNoFreeKey = errors.New("no free date within probe range")

// ParseStrategy validates a configured strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyToken:
		return StrategyToken, nil
	case StrategyProbe:
		return StrategyProbe, nil
	}
	return "", fmt.Errorf("unknown copy strategy %q (want token or probe)", s)
}

// KeyGenerator synthesizes keys that do not collide with existing
// partitions.
type KeyGenerator struct {
	strategy Strategy
	maxProbe int
	src      Source
	loc      *time.Location
	now      func() time.Time

	mu   sync.Mutex
	last int64
}

// NewKeyGenerator returns a generator. src is only consulted by the probe
// strategy.
func NewKeyGenerator(strategy Strategy, maxProbe int, src Source, loc *time.Location) *KeyGenerator {
	if maxProbe <= 0 {
		maxProbe = DefaultMaxProbe
	}
	if loc == nil {
		loc = time.Local
	}
	return &KeyGenerator{strategy: strategy, maxProbe: maxProbe, src: src, loc: loc, now: time.Now}
}

// SetClock replaces the clock.
func (g *KeyGenerator) SetClock(now func() time.Time) { g.now = now }

// Strategy returns the configured strategy.
func (g *KeyGenerator) Strategy() Strategy { return g.strategy }

// Next returns a fresh key.
func (g *KeyGenerator) Next(ctx context.Context) (string, error) {
	if g.strategy == StrategyProbe {
		return g.probe(ctx)
	}
	return g.token(), nil
}

func (g *KeyGenerator) token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return fmt.Sprintf("%s%s-%d", tokenPrefix, now.In(g.loc).Format("20060102"), ms)
}

func (g *KeyGenerator) probe(ctx context.Context) (string, error) {
	counts, err := g.src.Counts(ctx)
	if err != nil {
		return "", fmt.Errorf("probe counts: %w", err)
	}
	aliases, err := g.src.Aliases(ctx)
	if err != nil {
		return "", fmt.Errorf("probe aliases: %w", err)
	}
	day := g.now().In(g.loc)
	for i := 1; i <= g.maxProbe; i++ {
		k := dateutil.Key(day.AddDate(0, 0, i), g.loc)
		_, used := counts[k]
		_, named := aliases[k]
		if !used && !named {
			return k, nil
		}
	}
	return "", ErrNoFreeKey
}
