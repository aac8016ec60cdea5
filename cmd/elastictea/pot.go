package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/elastictea/internal/recipe"
	"github.com/DjordjeVuckovic/elastictea/pkg/brew"
	"github.com/DjordjeVuckovic/elastictea/pkg/elastictea"
	"github.com/DjordjeVuckovic/elastictea/pkg/es"
	"github.com/DjordjeVuckovic/elastictea/pkg/tea"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"gopkg.in/cheggaaa/pb.v2"
)

// document is any JSON object. Records keep the _id they were read with, so
// pouring them again overwrites instead of duplicating.
type document map[string]any

type cluster interface {
	es.Searcher
	es.Bulker
	EnsureIndex(ctx context.Context, index string, mappings *types.TypeMapping) error
	Count(ctx context.Context, index string, query json.RawMessage) (int64, error)
}

func buildPot(ctx context.Context, c cluster, r *recipe.Recipe, opts ...elastictea.Option) (*brew.Pot, error) {
	pot := brew.NewPot()

	for _, f := range r.Fills {
		query, err := f.QueryJSON()
		if err != nil {
			return nil, err
		}
		arg, err := elastictea.NewFillEsArg(f.Index, f.BatchSize, query, c, elastictea.WithMaxResultWindow(f.MaxResultWindow))
		if err != nil {
			return nil, fmt.Errorf("fill %q: %w", f.Name, err)
		}
		pot.AddSource(elastictea.NewFill[document](f.Name, "elasticsearch", arg, opts...))
	}

	for _, p := range r.Pours {
		if p.EnsureIndex {
			if err := c.EnsureIndex(ctx, p.Index, nil); err != nil {
				return nil, fmt.Errorf("pour %q: %w", p.Name, err)
			}
		}
		arg, err := elastictea.NewPourEsArg(p.Index, c)
		if err != nil {
			return nil, fmt.Errorf("pour %q: %w", p.Name, err)
		}
		pot.AddIngredient(elastictea.NewPour[document](p.Name, arg, opts...))
	}

	return pot, nil
}

// expectedRecords is what the fills of r can read at most, used to size the
// progress bar. A fill only reads whole batches inside its result window.
func expectedRecords(ctx context.Context, c cluster, r *recipe.Recipe) (int64, error) {
	var total int64
	for _, f := range r.Fills {
		query, err := f.QueryJSON()
		if err != nil {
			return 0, err
		}
		n, err := c.Count(ctx, f.Index, query)
		if err != nil {
			return 0, err
		}
		total += min(n, int64(f.MaxResultWindow/f.BatchSize*f.BatchSize))
	}
	return total, nil
}

func progressStage(bar *pb.ProgressBar) *brew.Stage {
	return brew.Steep("progress", func(ctx context.Context, batch tea.Batch) (tea.Batch, error) {
		bar.Add(len(batch))
		return batch, nil
	})
}

func withProgress(ctx context.Context, c cluster, r *recipe.Recipe, pot *brew.Pot) *pb.ProgressBar {
	total, err := expectedRecords(ctx, c, r)
	if err != nil {
		slog.Warn("Failed to count documents, progress is disabled", "error", err)
		return nil
	}
	bar := pb.StartNew(int(total))
	pot.AddIngredient(progressStage(bar))
	return bar
}
