package pool

import (
	"github.com/on-the-ground/memo_ive_go/memo"
	metrics "github.com/rcrowley/go-metrics"
	"go.uber.org/zap"
)

// Config sizes a Pool.
type Config struct {
	BufferSize int // default: 1
	NumWorkers int // default: 1
}

func NewConfig(bufferSize int, numWorkers int) Config {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return Config{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}

// Partitionable routes a message to a worker. Messages with the same
// partition key always reach the same worker, and so the same cache.
type Partitionable interface {
	PartitionKey() string
}

type options struct {
	logger    *zap.Logger
	registry  metrics.Registry
	cacheOpts []memo.Option
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRegistry publishes the pool counters into registry instead of a
// private one.
func WithRegistry(registry metrics.Registry) Option {
	return func(o *options) { o.registry = registry }
}

// WithCacheOptions configures the cache of every worker.
func WithCacheOptions(opts ...memo.Option) Option {
	return func(o *options) { o.cacheOpts = append(o.cacheOpts, opts...) }
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.registry == nil {
		o.registry = metrics.NewRegistry()
	}
	return o
}
