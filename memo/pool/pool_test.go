package pool_test

import (
	"context"
	"sync"
	"testing"

	"github.com/on-the-ground/memo_ive_go/memo"
	"github.com/on-the-ground/memo_ive_go/memo/pool"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type job struct {
	Key string
	N   int
}

func (j job) PartitionKey() string { return j.Key }

func square(n memo.Exact[int]) (int, memo.Unit) { return n.Value * n.Value, memo.Unit{} }

type collector struct {
	mu      sync.Mutex
	results map[string][]int
}

func (c *collector) handle(_ context.Context, cache *memo.Cache, msg job) {
	v := memo.Memoized(cache, memo.Exactly(msg.N), square)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[msg.Key] = append(c.results[msg.Key], v)
}

func newCollector() *collector {
	return &collector{results: map[string][]int{}}
}

func counter(t *testing.T, r metrics.Registry, name string) int64 {
	t.Helper()
	c, ok := r.Get(name).(metrics.Counter)
	require.True(t, ok, "counter %s not registered", name)
	return c.Count()
}

func TestPool_SameKeySharesWorkerCache(t *testing.T) {
	ctx := context.Background()
	col := newCollector()
	p := pool.New(ctx, pool.NewConfig(4, 4), col.handle)
	defer p.Close()

	for range 3 {
		require.NoError(t, p.Submit(ctx, job{Key: "a", N: 3}))
	}
	// Evict is queued behind the jobs, so it doubles as a barrier
	reports, err := p.Evict(ctx)
	require.NoError(t, err)
	assert.Len(t, reports, 4)

	assert.Equal(t, []int{9, 9, 9}, col.results["a"])
	assert.Equal(t, int64(2), counter(t, p.Metrics(), pool.MetricHits))
	assert.Equal(t, int64(1), counter(t, p.Metrics(), pool.MetricMisses))
}

func TestPool_EvictSweepsEveryWorker(t *testing.T) {
	ctx := context.Background()
	col := newCollector()
	registry := metrics.NewRegistry()
	p := pool.New(ctx, pool.NewConfig(8, 3), col.handle,
		pool.WithRegistry(registry),
		pool.WithCacheOptions(memo.WithMaxAge(1)),
	)
	defer p.Close()

	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for i, k := range keys {
		require.NoError(t, p.Submit(ctx, job{Key: k, N: i}))
	}

	total := func(reports []memo.Eviction) (before, after int) {
		for _, r := range reports {
			before += r.Before
			after += r.After
		}
		return
	}

	reports, err := p.Evict(ctx)
	require.NoError(t, err)
	before, after := total(reports)
	assert.Equal(t, len(keys), before)
	assert.Equal(t, len(keys), after)

	reports, err = p.Evict(ctx)
	require.NoError(t, err)
	_, after = total(reports)
	assert.Equal(t, 0, after)
	assert.Equal(t, int64(len(keys)), counter(t, registry, pool.MetricEvicted))
}

func TestPool_RecoversFromHandlerPanic(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.InfoLevel)
	handled := make(chan int, 1)
	p := pool.New(ctx, pool.NewConfig(1, 1), func(_ context.Context, _ *memo.Cache, msg job) {
		if msg.N < 0 {
			panic("negative")
		}
		handled <- msg.N
	}, pool.WithLogger(zap.New(core)))
	defer p.Close()

	require.NoError(t, p.Submit(ctx, job{Key: "x", N: -1}))
	require.NoError(t, p.Submit(ctx, job{Key: "x", N: 1}))
	assert.Equal(t, 1, <-handled)
	assert.Equal(t, 1, logs.FilterMessage("panic in memo pool handler").Len())
}

func TestPool_ClosedPoolRejectsWork(t *testing.T) {
	ctx := context.Background()
	p := pool.New(ctx, pool.NewConfig(1, 2), newCollector().handle)
	p.Close()
	p.Close()

	assert.ErrorIs(t, p.Submit(ctx, job{Key: "a"}), pool.ErrClosed)
	_, err := p.Evict(ctx)
	assert.ErrorIs(t, err, pool.ErrClosed)
}

func TestPool_ParentCancelStopsWorkers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := pool.New(ctx, pool.NewConfig(1, 1), newCollector().handle)
	cancel()
	p.Close()

	assert.ErrorIs(t, p.Submit(context.Background(), job{Key: "a"}), pool.ErrClosed)
}

func TestNewConfig_Defaults(t *testing.T) {
	assert.Equal(t, pool.Config{BufferSize: 1, NumWorkers: 1}, pool.NewConfig(0, -1))
	assert.Equal(t, pool.Config{BufferSize: 4, NumWorkers: 2}, pool.NewConfig(4, 2))

	p := pool.New(context.Background(), pool.Config{}, newCollector().handle)
	defer p.Close()
	assert.Equal(t, 1, p.NumWorkers())
}
