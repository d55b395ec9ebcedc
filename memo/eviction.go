package memo

import (
	"fmt"

	"go.uber.org/zap"
)

// Eviction reports the entry count of a cache before and after a sweep.
type Eviction struct {
	Before int
	After  int
}

func (e Eviction) Evicted() int { return e.Before - e.After }

func (e Eviction) String() string {
	return fmt.Sprintf("Before: %d\nEvicted: %d\nAfter: %d\n", e.Before, e.Evicted(), e.After)
}

// Evict ages every entry by one sweep and drops those older than MaxAge.
//
// Only hits reset an entry's age, so an entry that is not hit survives
// MaxAge sweeps and is removed on the next one.
func (c *Cache) Evict() Eviction {
	before := len(c.entries)
	for digest, e := range c.entries {
		e.age++
		if e.age > c.maxAge {
			delete(c.entries, digest)
		}
	}
	ev := Eviction{Before: before, After: len(c.entries)}

	c.stats.Sweeps++
	c.stats.Evicted += uint64(ev.Evicted())
	c.logger.Debug("cache sweep",
		zap.Int("before", ev.Before),
		zap.Int("evicted", ev.Evicted()),
		zap.Int("after", ev.After),
	)
	return ev
}
