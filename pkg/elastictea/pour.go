package elastictea

import (
	"context"

	"github.com/DjordjeVuckovic/elastictea/pkg/apperr"
	"github.com/DjordjeVuckovic/elastictea/pkg/brew"
	"github.com/DjordjeVuckovic/elastictea/pkg/es"
	"github.com/DjordjeVuckovic/elastictea/pkg/tea"
	"github.com/goccy/go-json"
)

// Identifier is implemented by documents that choose their own _id.
type Identifier interface {
	DocumentID() string
}

// Loader writes batches of *T to an index.
type Loader[T any] struct {
	name string
	args *PourEsArg
	opts options
}

// NewLoader binds a bulk load of T records into the index of args.
func NewLoader[T any](name string, args *PourEsArg, opts ...Option) *Loader[T] {
	return &Loader[T]{
		name: name,
		args: args,
		opts: buildOptions(opts),
	}
}

// NewPour builds a pour stage writing documents of type T.
func NewPour[T any](name string, args *PourEsArg, opts ...Option) *brew.Stage {
	return brew.DefineStage(brew.KindPour, name, func(ctx context.Context, batch tea.Batch, params brew.Argument) (tea.Batch, error) {
		arg, err := brew.ArgAs[*PourEsArg](name, params)
		if err != nil {
			return batch, err
		}
		return NewLoader[T](name, arg, opts...).Load(ctx, batch)
	}, args)
}

// Load sends the batch as one bulk request and returns it unchanged. Backend
// failures are logged, never returned; the error result only reports a
// loader that was wired with the wrong argument or the wrong record type.
func (l *Loader[T]) Load(ctx context.Context, batch tea.Batch) (tea.Batch, error) {
	if l.args == nil {
		return batch, apperr.NewConfiguration(l.name, "pour_es_arg is required to run this stage")
	}

	docs, err := tea.Collect[T](batch)
	if err != nil {
		return batch, err
	}
	if len(docs) == 0 {
		return batch, nil
	}

	logger := l.opts.logger.With("stage", l.name, "index", l.args.index)

	items := make([]es.BulkItem, 0, len(docs))
	for i, doc := range docs {
		body, err := json.Marshal(doc)
		if err != nil {
			logger.Error("Failed to encode document, skipping bulk request", "position", i, "error", err)
			return batch, nil
		}
		items = append(items, es.BulkItem{ID: documentID(batch[i], doc), Document: body})
	}

	res, err := l.args.client.Bulk(ctx, l.args.index, items)
	if err != nil {
		l.opts.recorder.BulkRejected(l.args.index)
		logger.Error("Bulk request failed", "documents", len(items), "error", err)
		return batch, nil
	}

	failed := res.Failed()
	l.opts.recorder.BulkSent(l.args.index, len(items), len(failed))

	for _, item := range failed {
		id := item.ID
		if id == "" && item.Position < len(items) {
			id = items[item.Position].ID
		}
		logger.Error("Failed to index document",
			"position", item.Position,
			"id", id,
			"status", item.Status,
			"type", item.Type,
			"reason", item.Reason)
	}

	if len(failed) > 0 {
		logger.Warn("Bulk request completed with failures",
			"documents", len(items),
			"failed", len(failed),
			"took_ms", res.Took)
		return batch, nil
	}

	logger.Info("Bulk indexed documents", "documents", len(items), "took_ms", res.Took)
	return batch, nil
}

func documentID[T any](record tea.Tea, doc *T) string {
	if ident, ok := any(doc).(Identifier); ok {
		if id := ident.DocumentID(); id != "" {
			return id
		}
	}
	return record.ID()
}
