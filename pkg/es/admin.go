package es

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/elastictea/pkg/apperr"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// Ping reports whether the cluster answers at all.
func (c *Client) Ping(ctx context.Context) error {
	ok, err := c.typed.Ping().Do(ctx)
	if err != nil {
		return wrapTyped("ping", err)
	}
	if !ok {
		return &apperr.BackendRejection{Op: "ping", Reason: "cluster did not answer ping"}
	}
	return nil
}

// EnsureIndex creates the index with the given mappings unless it already
// exists. A nil mapping lets the backend infer one from the first documents.
func (c *Client) EnsureIndex(ctx context.Context, index string, mappings *types.TypeMapping) error {
	exists, err := c.typed.Indices.Exists(index).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", wrapTyped("indices.exists", err))
	}

	if exists {
		slog.Info("Index already exists", "index", index)
		return nil
	}

	create := c.typed.Indices.Create(index)
	if mappings != nil {
		create = create.Mappings(mappings)
	}

	res, err := create.Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", wrapTyped("indices.create", err))
	}

	if !res.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", index)
	return nil
}

// Refresh makes every document written so far visible to search.
func (c *Client) Refresh(ctx context.Context, index string) error {
	if _, err := c.typed.Indices.Refresh().Index(index).Do(ctx); err != nil {
		return fmt.Errorf("failed to refresh index: %w", wrapTyped("indices.refresh", err))
	}
	return nil
}

// Count returns how many documents match query. A nil query counts the whole index.
func (c *Client) Count(ctx context.Context, index string, query json.RawMessage) (int64, error) {
	req := c.typed.Count().Index(index)
	if len(query) > 0 {
		body, err := json.Marshal(struct {
			Query json.RawMessage `json:"query"`
		}{Query: query})
		if err != nil {
			return 0, fmt.Errorf("failed to encode count body: %w", err)
		}
		req = req.Raw(bytes.NewReader(body))
	}

	res, err := req.Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", wrapTyped("count", err))
	}

	return res.Count, nil
}

func wrapTyped(op string, err error) error {
	var esErr *types.ElasticsearchError
	if !errors.As(err, &esErr) {
		return &apperr.TransportError{Op: op, Err: err}
	}

	rejection := &apperr.BackendRejection{
		Op:     op,
		Status: esErr.Status,
		Type:   esErr.ErrorCause.Type,
	}
	if esErr.ErrorCause.Reason != nil {
		rejection.Reason = *esErr.ErrorCause.Reason
	}
	return rejection
}
