package memo

import (
	"go.uber.org/zap"
)

// DefaultMaxAge is the number of sweeps an entry survives without being hit.
const DefaultMaxAge = 5

// Config configures a Cache.
type Config struct {
	MaxAge int         // default: DefaultMaxAge
	Logger *zap.Logger // default: no-op
}

// NewConfig normalizes a cache configuration.
func NewConfig(maxAge int, logger *zap.Logger) Config {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return Config{
		MaxAge: maxAge,
		Logger: logger,
	}
}

// Option adjusts the Config of a new Cache.
type Option func(*Config)

func WithMaxAge(maxAge int) Option {
	return func(c *Config) { c.MaxAge = maxAge }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// Stats are cumulative counters of a Cache.
type Stats struct {
	Hits       uint64
	Misses     uint64
	Mismatches uint64 // digest found, entry rejected by type or constraint
	Evicted    uint64
	Sweeps     uint64
}

// entry holds one type-erased *payload and its age in sweeps.
type entry struct {
	data any
	age  int
}

// Cache maps digests to memoized results.
//
// this is safe only in single goroutine – NEVER share across goroutines
type Cache struct {
	entries map[uint64]*entry
	maxAge  int
	logger  *zap.Logger
	stats   Stats
}

func NewCache(opts ...Option) *Cache {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewCacheFrom(cfg)
}

func NewCacheFrom(cfg Config) *Cache {
	cfg = NewConfig(cfg.MaxAge, cfg.Logger)
	return &Cache{
		entries: make(map[uint64]*entry),
		maxAge:  cfg.MaxAge,
		logger:  cfg.Logger,
	}
}

// Len returns the number of live entries.
func (c *Cache) Len() int { return len(c.entries) }

func (c *Cache) MaxAge() int { return c.maxAge }

func (c *Cache) Stats() Stats { return c.stats }

// get returns the entry for digest without touching its age.
func (c *Cache) get(digest uint64) (*entry, bool) {
	e, ok := c.entries[digest]
	return e, ok
}

// insert creates or overwrites the entry for digest with age 0.
func (c *Cache) insert(digest uint64, data any) {
	c.entries[digest] = &entry{data: data}
}

func (c *Cache) hit(e *entry) {
	e.age = 0
	c.stats.Hits++
}

func (c *Cache) mismatch(digest uint64) {
	c.stats.Mismatches++
	c.logger.Debug("cached entry rejected, recomputing",
		zap.Uint64("digest", digest),
	)
}
