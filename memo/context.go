package memo

import (
	"context"
	"errors"

	"github.com/on-the-ground/memo_ive_go/internal/helper"
	"go.uber.org/zap"
)

var ErrNoCache = errors.New("no memo cache registered for this context")

type cacheKey struct{}

// WithCache scopes a fresh cache to the returned context.
//
// The returned context must stay on the goroutine that created it; the cache
// it carries is not synchronized. Call the teardown function when the unit of
// work ends and continue with the context it returns.
//
// Usage:
//
//	ctx, end := memo.WithCache(ctx, memo.WithMaxAge(3))
//	defer end()
func WithCache(ctx context.Context, opts ...Option) (context.Context, func() context.Context) {
	cache := NewCache(opts...)
	ctxWith := context.WithValue(ctx, cacheKey{}, cache)
	cache.logger.Debug("created memo cache", zap.Int("max_age", cache.maxAge))

	return ctxWith, func() context.Context {
		s := cache.Stats()
		cache.logger.Debug("released memo cache",
			zap.Int("entries", cache.Len()),
			zap.Uint64("hits", s.Hits),
			zap.Uint64("misses", s.Misses),
			zap.Uint64("mismatches", s.Mismatches),
		)
		return ctx
	}
}

// FromContext returns the cache installed by the nearest WithCache.
func FromContext(ctx context.Context) (*Cache, error) {
	c, ok := helper.GetTypedValueOf2[*Cache](func() (any, bool) {
		v := ctx.Value(cacheKey{})
		return v, v != nil
	})
	if !ok {
		return nil, ErrNoCache
	}
	return c, nil
}

// MustFromContext is the panic-on-failure variant of FromContext.
func MustFromContext(ctx context.Context) *Cache {
	c, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return c
}

// MemoizedCtx is Memoized on the context's cache. Panics without one.
func MemoizedCtx[I Trackable[C], C, O any](ctx context.Context, input I, f func(I) (O, C)) O {
	return Memoized(MustFromContext(ctx), input, f)
}

// MemoizedRefCtx is MemoizedRef on the context's cache. Panics without one.
func MemoizedRefCtx[I Trackable[C], C, O, R any](ctx context.Context, input I, f func(I) (O, C), g func(*O) R) R {
	return MemoizedRef(MustFromContext(ctx), input, f, g)
}

// EvictCtx sweeps the context's cache.
func EvictCtx(ctx context.Context) (Eviction, error) {
	c, err := FromContext(ctx)
	if err != nil {
		return Eviction{}, err
	}
	return c.Evict(), nil
}
