package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/DjordjeVuckovic/elastictea/pkg/apperr"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/bulk"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// BulkItem is one index action. An empty ID lets the backend assign one.
type BulkItem struct {
	ID       string
	Document json.RawMessage
}

type BulkItemResult struct {
	ID     string
	Index  string
	Status int
	Error  *apperr.BulkItemError
}

type BulkResponse struct {
	Took   int64
	Errors bool
	Items  []BulkItemResult
}

// Failed returns the item errors in request order.
func (r *BulkResponse) Failed() []*apperr.BulkItemError {
	var failed []*apperr.BulkItemError
	for _, item := range r.Items {
		if item.Error != nil {
			failed = append(failed, item.Error)
		}
	}
	return failed
}

type Bulker interface {
	Bulk(ctx context.Context, index string, items []BulkItem) (*BulkResponse, error)
}

// Bulk sends every item as one bulk request, one action line and one document
// line per item, in order.
func (c *Client) Bulk(ctx context.Context, index string, items []BulkItem) (*BulkResponse, error) {
	if len(items) == 0 {
		return &BulkResponse{}, nil
	}

	req := c.typed.Bulk().Index(index)
	var doc bytes.Buffer
	for i, item := range items {
		doc.Reset()
		// documents must fit on a single line
		if err := json.Compact(&doc, item.Document); err != nil {
			return nil, fmt.Errorf("failed to encode bulk document %d: %w", i, err)
		}

		op := types.IndexOperation{}
		if item.ID != "" {
			id := item.ID
			op.Id_ = &id
		}
		if err := req.IndexOp(op, json.RawMessage(doc.Bytes())); err != nil {
			return nil, fmt.Errorf("failed to encode bulk action %d: %w", i, err)
		}
	}

	res, err := req.Perform(ctx)
	if err != nil {
		return nil, &apperr.TransportError{Op: "bulk", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeRejection("bulk", res)
	}

	resp := bulk.NewResponse()
	if err := json.NewDecoder(res.Body).Decode(resp); err != nil {
		return nil, fmt.Errorf("failed to decode bulk response: %w", err)
	}

	out := &BulkResponse{
		Took:   resp.Took,
		Errors: resp.Errors,
		Items:  make([]BulkItemResult, 0, len(resp.Items)),
	}
	for pos, entry := range resp.Items {
		for _, item := range entry {
			out.Items = append(out.Items, itemResult(pos, item))
		}
	}

	return out, nil
}

func itemResult(pos int, item types.ResponseItem) BulkItemResult {
	result := BulkItemResult{Index: item.Index_, Status: item.Status}
	if item.Id_ != nil {
		result.ID = *item.Id_
	}
	if item.Error == nil {
		return result
	}

	result.Error = &apperr.BulkItemError{
		Position: pos,
		ID:       result.ID,
		Status:   item.Status,
		Type:     item.Error.Type,
	}
	if item.Error.Reason != nil {
		result.Error.Reason = *item.Error.Reason
	}
	return result
}
