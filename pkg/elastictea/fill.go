package elastictea

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/elastictea/pkg/apperr"
	"github.com/DjordjeVuckovic/elastictea/pkg/brew"
	"github.com/DjordjeVuckovic/elastictea/pkg/es"
	"github.com/DjordjeVuckovic/elastictea/pkg/pagination"
	"github.com/DjordjeVuckovic/elastictea/pkg/tea"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// State is the position of an extraction run in its pagination loop.
type State int

const (
	StateIdle State = iota
	StateFetchingPage
	StateSubmitting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetchingPage:
		return "fetching_page"
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RunStats is the outcome of one extraction run. Cursor is the offset of the
// window the run stopped at: the empty page, or the first window that would
// cross the result window ceiling.
type RunStats struct {
	RunID     string
	State     State
	Cursor    int
	Pages     int
	Batches   int
	Documents int
}

// Extractor pages through an index and submits the hits as batches of *T.
type Extractor[T any] struct {
	name string
	args *FillEsArg
	opts options
}

// NewExtractor binds an extraction of args decoding hits into T.
func NewExtractor[T any](name string, args *FillEsArg, opts ...Option) *Extractor[T] {
	return &Extractor[T]{
		name: name,
		args: args,
		opts: buildOptions(opts),
	}
}

// NewFill builds a source stage reading documents of type T.
func NewFill[T any](name, source string, args *FillEsArg, opts ...Option) *brew.Fill {
	return brew.DefineSource(name, source, func(ctx context.Context, params brew.Argument, pot brew.Submitter) error {
		arg, err := brew.ArgAs[*FillEsArg](name, params)
		if err != nil {
			return err
		}
		_, err = NewExtractor[T](name, arg, opts...).Run(ctx, pot)
		return err
	}, args)
}

// Run executes one extraction from offset zero. Every page is submitted
// before the next one is requested; the first failed page ends the run.
func (e *Extractor[T]) Run(ctx context.Context, pot brew.Submitter) (RunStats, error) {
	stats := RunStats{RunID: uuid.NewString(), State: StateIdle}

	if e.args == nil {
		stats.State = StateFailed
		return stats, apperr.NewConfiguration(e.name, "fill_es_arg is required to run this stage")
	}
	if pot == nil {
		stats.State = StateFailed
		return stats, apperr.NewConfiguration(e.name, "a pot to submit batches to is required")
	}

	logger := e.opts.logger.With("stage", e.name, "index", e.args.index, "run_id", stats.RunID)
	ceiling := e.args.maxResultWindow
	window := pagination.NewOffsetRequest(e.args.batchSize)

	for {
		if !window.Fits(ceiling) {
			logger.Warn("Stopping extraction at result window ceiling",
				"cursor", window.From,
				"batch_size", window.Size,
				"max_result_window", ceiling)
			break
		}

		stats.State = StateFetchingPage
		stats.Cursor = window.From

		batch, err := e.fetch(ctx, window)
		if err != nil {
			stats.State = StateFailed
			logger.Error("Extraction failed", "cursor", window.From, "error", err)
			return stats, err
		}
		stats.Pages++

		if len(batch) == 0 {
			break
		}

		stats.State = StateSubmitting
		pot.Submit(batch)
		stats.Batches++
		stats.Documents += len(batch)
		logger.Debug("Submitted page", "cursor", window.From, "documents", len(batch))

		window = window.Next()
		stats.Cursor = window.From
	}

	stats.State = StateDone
	logger.Info("Extraction finished",
		"pages", stats.Pages,
		"batches", stats.Batches,
		"documents", stats.Documents,
		"cursor", stats.Cursor)
	return stats, nil
}

func (e *Extractor[T]) fetch(ctx context.Context, window pagination.OffsetRequest) (tea.Batch, error) {
	page, err := e.args.client.Search(ctx, e.args.index, es.SearchRequest{
		From:  window.From,
		Size:  window.Size,
		Query: e.args.query,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page at offset %d: %w", window.From, err)
	}
	e.opts.recorder.PageFetched(e.args.index, len(page.Hits))

	batch := make(tea.Batch, 0, len(page.Hits))
	for i, hit := range page.Hits {
		doc := new(T)
		if err := json.Unmarshal(hit.Source, doc); err != nil {
			return nil, fmt.Errorf("failed to decode hit %d (id %q) at offset %d: %w", i, hit.ID, window.From, err)
		}
		batch = append(batch, tea.WithID(hit.ID, doc))
	}
	return batch, nil
}
