package brew

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/DjordjeVuckovic/elastictea/pkg/tea"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

// Brewery is the worker pool a pot brews on.
type Brewery struct {
	workers int
	logger  *slog.Logger
}

type BreweryOption func(*Brewery)

// WithBreweryLogger sets the logger used for brew lifecycle messages.
func WithBreweryLogger(logger *slog.Logger) BreweryOption {
	return func(b *Brewery) {
		b.logger = logger
	}
}

// NewBrewery creates a brewery running at most workers batches at a time.
func NewBrewery(workers int, opts ...BreweryOption) *Brewery {
	if workers <= 0 {
		workers = defaultWorkers
	}
	b := &Brewery{
		workers: workers,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Brewery) Workers() int {
	return b.workers
}

// order is one brew in progress on the brewery.
type order struct {
	ctx     context.Context
	group   *errgroup.Group
	recipe  []*Stage
	logger  *slog.Logger
	batches atomic.Int64
	records atomic.Int64
	dropped atomic.Int64
}

func (b *Brewery) open(ctx context.Context, recipe []*Stage) *order {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	return &order{
		ctx:    gctx,
		group:  g,
		recipe: recipe,
		logger: b.logger,
	}
}

// Submit queues the batch on the brewery. It blocks while all workers are busy.
func (o *order) Submit(batch tea.Batch) {
	if err := o.ctx.Err(); err != nil {
		o.dropped.Add(int64(len(batch)))
		o.logger.Warn("Brew is stopping, batch not processed", "records", len(batch), "error", err)
		return
	}
	o.group.Go(func() error {
		return o.makeTea(batch)
	})
}

func (o *order) makeTea(batch tea.Batch) error {
	for _, stage := range o.recipe {
		out, err := stage.Computation(o.ctx, batch, stage.Params)
		if err != nil {
			o.logger.Error("Stage failed", "stage", stage.Name, "kind", stage.Kind.String(), "error", err)
			return &StageError{Stage: stage.Name, Kind: stage.Kind, Err: err}
		}
		batch = out
	}
	o.batches.Add(1)
	o.records.Add(int64(len(batch)))
	return nil
}

func (o *order) wait() error {
	return o.group.Wait()
}
