package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/on-the-ground/memo_ive_go/internal/wrap"
	"github.com/on-the-ground/memo_ive_go/memo"
	"github.com/on-the-ground/memo_ive_go/memo/pool"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const stdinName = "-"

type source struct {
	name string
	text string
}

// layoutJob lays out one source at one width.
type layoutJob struct {
	source
	width int
}

// PartitionKey keeps every width of a source on the same worker cache.
func (j layoutJob) PartitionKey() string { return j.name }

type layoutKey struct {
	name  string
	width int
}

type layouts struct {
	mu   sync.Mutex
	docs map[layoutKey]wrap.Document
}

func (l *layouts) handle(_ context.Context, cache *memo.Cache, job layoutJob) {
	doc := wrap.Lay(cache, job.text, job.width)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.docs[layoutKey{name: job.name, width: job.width}] = doc
}

func (l *layouts) get(name string, width int) wrap.Document {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.docs[layoutKey{name: name, width: width}]
}

func (c *CLI) run(cmd *cobra.Command, files []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := c.newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	sources, err := readSources(ctx, files, cmd.InOrStdin())
	if err != nil {
		return err
	}

	results := &layouts{docs: map[layoutKey]wrap.Document{}}
	p := pool.New(ctx, pool.NewConfig(cfg.BufferSize, cfg.Workers), results.handle,
		pool.WithLogger(logger),
		pool.WithCacheOptions(memo.WithMaxAge(cfg.MaxAge)),
	)
	defer p.Close()

	for pass := 1; pass <= cfg.Passes; pass++ {
		for _, width := range cfg.Widths {
			for _, src := range sources {
				if err := p.Submit(ctx, layoutJob{source: src, width: width}); err != nil {
					return fmt.Errorf("failed to submit %s at width %d: %w", src.name, width, err)
				}
			}
		}
		reports, err := p.Evict(ctx)
		if err != nil {
			return fmt.Errorf("failed to evict after pass %d: %w", pass, err)
		}
		total := memo.Eviction{}
		for _, r := range reports {
			total.Before += r.Before
			total.After += r.After
		}
		fmt.Fprintf(out, "pass %d: evicted %d of %d entries, %d kept\n", pass, total.Evicted(), total.Before, total.After)
	}

	printLayouts(out, sources, cfg.Widths, results)
	printMetrics(out, p.Metrics())

	if c.flags.print {
		last := cfg.Widths[len(cfg.Widths)-1]
		for _, src := range sources {
			fmt.Fprintf(out, "\n== %s @%d ==\n%s\n", src.name, last, results.get(src.name, last))
		}
	}
	logger.Debug("memowrap finished", zap.Int("sources", len(sources)), zap.Ints("widths", cfg.Widths))
	return nil
}

// readSources loads every file concurrently, or stdin when no file is given.
func readSources(ctx context.Context, files []string, stdin io.Reader) ([]source, error) {
	if len(files) == 0 {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []source{{name: stdinName, text: string(raw)}}, nil
	}

	sources := make([]source, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(name) //nolint:gosec // paths come from the command line
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
			sources[i] = source{name: name, text: string(raw)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

func printLayouts(out io.Writer, sources []source, widths []int, results *layouts) {
	sorted := append([]int(nil), widths...)
	sort.Ints(sorted)
	for _, src := range sources {
		for _, w := range sorted {
			doc := results.get(src.name, w)
			fmt.Fprintf(out, "%s\twidth=%d\tparagraphs=%d\tlines=%d\n", src.name, w, len(doc.Paragraphs), doc.NumLines())
		}
	}
}

func printMetrics(out io.Writer, registry metrics.Registry) {
	count := func(name string) int64 {
		if c, ok := registry.Get(name).(metrics.Counter); ok {
			return c.Count()
		}
		return 0
	}
	fmt.Fprintf(out, "hits=%d misses=%d mismatches=%d evicted=%d\n",
		count(pool.MetricHits),
		count(pool.MetricMisses),
		count(pool.MetricMismatches),
		count(pool.MetricEvicted),
	)
}
