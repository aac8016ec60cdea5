package brew

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/elastictea/pkg/apperr"
)

// StageError tags an error with the stage that produced it.
type StageError struct {
	Stage string
	Kind  Kind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage %q: %v", e.Kind, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Stats summarises one brew.
type Stats struct {
	Batches  int64
	Records  int64
	Dropped  int64
	Duration time.Duration
}

// Pot assembles sources and the recipe every submitted batch runs through.
type Pot struct {
	sources []*Fill
	recipe  []*Stage
}

func NewPot() *Pot {
	return &Pot{}
}

func (p *Pot) AddSource(f *Fill) *Pot {
	p.sources = append(p.sources, f)
	return p
}

// AddIngredient appends a steep or pour stage to the recipe.
func (p *Pot) AddIngredient(s *Stage) *Pot {
	p.recipe = append(p.recipe, s)
	return p
}

func (p *Pot) Sources() []*Fill {
	out := make([]*Fill, len(p.sources))
	copy(out, p.sources)
	return out
}

func (p *Pot) Ingredients() []*Stage {
	out := make([]*Stage, len(p.recipe))
	copy(out, p.recipe)
	return out
}

func (p *Pot) validate() error {
	if len(p.sources) == 0 {
		return apperr.NewConfiguration("", "pot has no sources")
	}
	for _, f := range p.sources {
		if f == nil || f.Computation == nil {
			return apperr.NewConfiguration("", "source without computation")
		}
	}
	for _, s := range p.recipe {
		if s == nil || s.Computation == nil {
			return apperr.NewConfiguration("", "stage without computation")
		}
	}
	return nil
}

// Brew runs every source in order on the brewery. Batches submitted by a
// source flow through the recipe on the brewery's workers. Brew returns once
// all sources finished and every submitted batch was processed. A failing
// source stops the remaining sources.
func (p *Pot) Brew(ctx context.Context, b *Brewery) (*Stats, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	o := b.open(ctx, p.recipe)

	b.logger.Info("Starting brew",
		"sources", len(p.sources),
		"stages", len(p.recipe),
		"workers", b.workers,
	)

	var fillErr error
	for _, f := range p.sources {
		if err := f.Computation(o.ctx, f.Params, o); err != nil {
			b.logger.Error("Source failed", "source", f.Name, "error", err)
			fillErr = &StageError{Stage: f.Name, Kind: KindFill, Err: err}
			break
		}
	}

	waitErr := o.wait()

	stats := &Stats{
		Batches:  o.batches.Load(),
		Records:  o.records.Load(),
		Dropped:  o.dropped.Load(),
		Duration: time.Since(start),
	}

	err := errors.Join(fillErr, waitErr)
	b.logger.Info("Brew completed",
		"batches", stats.Batches,
		"records", stats.Records,
		"dropped", stats.Dropped,
		"duration", stats.Duration,
		"error", err,
	)

	return stats, err
}
