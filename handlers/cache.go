package handlers

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/padraicbc/canape/db"
	"github.com/padraicbc/canape/scoring"
)

// seasonCache memoises computed seasons per filter. Writes touching a season
// drop every entry of that season.
type seasonCache struct {
	m *xsync.MapOf[db.Filter, *scoring.Season]
	// gen changes on every invalidation; results computed across a change
	// are returned but not stored.
	gen atomic.Uint64
	// stored runs right after an entry is written; tests use it.
	stored func()
}

func newSeasonCache() *seasonCache {
	return &seasonCache{m: xsync.NewMapOf[db.Filter, *scoring.Season]()}
}

func (c *seasonCache) get(f db.Filter, compute func() (*scoring.Season, error)) (*scoring.Season, error) {
	if s, ok := c.m.Load(f); ok {
		return s, nil
	}
	return c.refresh(f, compute)
}

// refresh recomputes f and replaces any cached entry.
func (c *seasonCache) refresh(f db.Filter, compute func() (*scoring.Season, error)) (*scoring.Season, error) {
	gen := c.gen.Load()
	s, err := compute()
	if err != nil {
		return nil, err
	}
	c.m.Store(f, s)
	if c.stored != nil {
		c.stored()
	}
	// An invalidation since the load may have missed the entry written above.
	if c.gen.Load() != gen {
		c.m.Compute(f, func(cur *scoring.Season, loaded bool) (*scoring.Season, bool) {
			return cur, !loaded || cur == s
		})
	}
	return s, nil
}

func (c *seasonCache) invalidate(season string) {
	c.gen.Add(1)
	c.m.Range(func(f db.Filter, _ *scoring.Season) bool {
		if f.Season == season {
			c.m.Delete(f)
		}
		return true
	})
}

func (c *seasonCache) size() int {
	return c.m.Size()
}
