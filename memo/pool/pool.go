package pool

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/on-the-ground/memo_ive_go/memo"
	metrics "github.com/rcrowley/go-metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrClosed = errors.New("pool closed")

// Counter names published in the pool registry.
const (
	MetricHits       = "memo.hits"
	MetricMisses     = "memo.misses"
	MetricMismatches = "memo.mismatches"
	MetricEvicted    = "memo.evicted"
)

// Handler processes one message with the cache of the worker it was routed to.
type Handler[T Partitionable] func(ctx context.Context, cache *memo.Cache, msg T)

// request is either a message or, when evict is set, a sweep of the
// worker's cache.
type request[T Partitionable] struct {
	msg   T
	evict chan<- memo.Eviction
}

// worker is one execution context: a goroutine, its queue and its cache.
type worker[T Partitionable] struct {
	id    string
	ch    chan request[T]
	cache *memo.Cache
	seen  memo.Stats
}

// Pool fans messages out to workers by partition key. Each worker owns a
// private memo.Cache that only its goroutine touches.
type Pool[T Partitionable] struct {
	ctx      context.Context
	cancel   context.CancelFunc
	workers  []*worker[T]
	handleFn Handler[T]
	wg       sync.WaitGroup
	once     sync.Once
	logger   *zap.Logger
	registry metrics.Registry

	hits       metrics.Counter
	misses     metrics.Counter
	mismatches metrics.Counter
	evicted    metrics.Counter
}

// New starts cfg.NumWorkers workers. They stop when ctx is done or Close is
// called.
func New[T Partitionable](
	ctx context.Context,
	cfg Config,
	handleFn Handler[T],
	opts ...Option,
) *Pool[T] {
	cfg = NewConfig(cfg.BufferSize, cfg.NumWorkers)
	o := newOptions(opts)
	ctx, cancel := context.WithCancel(ctx)

	p := &Pool[T]{
		ctx:        ctx,
		cancel:     cancel,
		workers:    make([]*worker[T], cfg.NumWorkers),
		handleFn:   handleFn,
		logger:     o.logger,
		registry:   o.registry,
		hits:       metrics.GetOrRegisterCounter(MetricHits, o.registry),
		misses:     metrics.GetOrRegisterCounter(MetricMisses, o.registry),
		mismatches: metrics.GetOrRegisterCounter(MetricMismatches, o.registry),
		evicted:    metrics.GetOrRegisterCounter(MetricEvicted, o.registry),
	}

	ready := sync.WaitGroup{}
	for i := range p.workers {
		id := uuid.New().String()
		cacheOpts := append([]memo.Option{memo.WithLogger(o.logger.With(zap.String("worker", id)))}, o.cacheOpts...)
		w := &worker[T]{
			id:    id,
			ch:    make(chan request[T], cfg.BufferSize),
			cache: memo.NewCache(cacheOpts...),
		}
		p.workers[i] = w

		p.wg.Add(1)
		ready.Add(1)
		go func() {
			defer p.wg.Done()
			ready.Done()
			for {
				select {
				case req := <-w.ch:
					p.serve(w, req)
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	ready.Wait()

	p.logger.Info("started memo pool",
		zap.Int("workers", cfg.NumWorkers),
		zap.Int("buffer_size", cfg.BufferSize),
	)
	return p
}

func (p *Pool[T]) NumWorkers() int { return len(p.workers) }

// Metrics returns the registry holding the pool counters.
func (p *Pool[T]) Metrics() metrics.Registry { return p.registry }

// Submit queues msg on the worker owning its partition key.
func (p *Pool[T]) Submit(ctx context.Context, msg T) error {
	w := p.workers[indexOf(msg.PartitionKey(), len(p.workers))]
	return p.send(ctx, w, request[T]{msg: msg})
}

// Evict sweeps every worker's cache on that worker's goroutine and returns
// one report per worker. Messages submitted before Evict are handled before
// the sweep.
func (p *Pool[T]) Evict(ctx context.Context) ([]memo.Eviction, error) {
	reports := make([]memo.Eviction, len(p.workers))
	g, ctx := errgroup.WithContext(ctx)
	for i, w := range p.workers {
		g.Go(func() error {
			reply := make(chan memo.Eviction, 1)
			if err := p.send(ctx, w, request[T]{evict: reply}); err != nil {
				return err
			}
			select {
			case reports[i] = <-reply:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			case <-p.ctx.Done():
				return ErrClosed
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Close stops the workers and waits for them. Queued messages that were not
// picked up yet are dropped. Close is idempotent.
func (p *Pool[T]) Close() {
	p.once.Do(func() {
		p.cancel()
		p.wg.Wait()
		p.logger.Info("closed memo pool",
			zap.Int64("hits", p.hits.Count()),
			zap.Int64("misses", p.misses.Count()),
			zap.Int64("evicted", p.evicted.Count()),
		)
	})
}

func (p *Pool[T]) send(ctx context.Context, w *worker[T], req request[T]) error {
	select {
	case <-p.ctx.Done():
		return ErrClosed
	default:
	}
	select {
	case w.ch <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrClosed
	}
}

func (p *Pool[T]) serve(w *worker[T], req request[T]) {
	if req.evict != nil {
		ev := w.cache.Evict()
		p.record(w)
		req.evict <- ev
		return
	}

	defer p.record(w)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic in memo pool handler",
				zap.String("worker", w.id),
				zap.Any("error", r),
			)
		}
	}()
	p.handleFn(p.ctx, w.cache, req.msg)
}

// record publishes what the worker's cache counted since the last call.
func (p *Pool[T]) record(w *worker[T]) {
	s := w.cache.Stats()
	p.hits.Inc(int64(s.Hits - w.seen.Hits))
	p.misses.Inc(int64(s.Misses - w.seen.Misses))
	p.mismatches.Inc(int64(s.Mismatches - w.seen.Mismatches))
	p.evicted.Inc(int64(s.Evicted - w.seen.Evicted))
	w.seen = s
}
