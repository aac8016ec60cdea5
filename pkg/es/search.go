package es

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/DjordjeVuckovic/elastictea/pkg/apperr"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// SearchRequest is one windowed search: {"from":From,"size":Size,"query":Query}.
type SearchRequest struct {
	From  int             `json:"from"`
	Size  int             `json:"size"`
	Query json.RawMessage `json:"query,omitempty"`
}

type Hit struct {
	ID     string
	Index  string
	Source json.RawMessage
}

// SearchPage holds the hits of one window in backend response order.
type SearchPage struct {
	Total int64
	Hits  []Hit
}

type Searcher interface {
	Search(ctx context.Context, index string, req SearchRequest) (*SearchPage, error)
}

func (c *Client) Search(ctx context.Context, index string, req SearchRequest) (*SearchPage, error) {
	s := c.typed.Search().
		Index(index).
		From(req.From).
		Size(req.Size)

	if len(req.Query) > 0 {
		var query types.Query
		if err := json.Unmarshal(req.Query, &query); err != nil {
			return nil, fmt.Errorf("failed to decode search query: %w", err)
		}
		s = s.Query(&query)
	}

	res, err := s.Perform(ctx)
	if err != nil {
		return nil, &apperr.TransportError{Op: "search", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeRejection("search", res)
	}

	resp := search.NewResponse()
	if err := json.NewDecoder(res.Body).Decode(resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	page := &SearchPage{Hits: make([]Hit, 0, len(resp.Hits.Hits))}
	if resp.Hits.Total != nil {
		page.Total = resp.Hits.Total.Value
	}
	for _, h := range resp.Hits.Hits {
		hit := Hit{Index: h.Index_, Source: h.Source_}
		if h.Id_ != nil {
			hit.ID = *h.Id_
		}
		page.Hits = append(page.Hits, hit)
	}

	return page, nil
}

// MatchAll is the predicate selecting every document.
func MatchAll() json.RawMessage {
	return json.RawMessage(`{"match_all":{}}`)
}

// QueryFrom encodes any query value, typically a *types.Query, into a raw predicate.
func QueryFrom(query any) (json.RawMessage, error) {
	if query == nil {
		return nil, nil
	}
	if raw, ok := query.(json.RawMessage); ok {
		return raw, nil
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	return b, nil
}

type errorResponse struct {
	Error  json.RawMessage `json:"error"`
	Status int             `json:"status"`
}

// decodeRejection reads a non-2xx answer. Structured error bodies decode into
// types.ErrorCause; anything else is kept verbatim as the reason.
func decodeRejection(op string, res *http.Response) error {
	rejection := &apperr.BackendRejection{Op: op, Status: res.StatusCode}

	raw, err := io.ReadAll(res.Body)
	if err != nil || len(raw) == 0 {
		rejection.Reason = res.Status
		return rejection
	}

	var er errorResponse
	if err := json.Unmarshal(raw, &er); err != nil || len(er.Error) == 0 {
		rejection.Reason = string(raw)
		return rejection
	}

	var msg string
	if err := json.Unmarshal(er.Error, &msg); err == nil {
		rejection.Reason = msg
		return rejection
	}

	var cause types.ErrorCause
	if err := json.Unmarshal(er.Error, &cause); err == nil {
		rejection.Type = cause.Type
		if cause.Reason != nil {
			rejection.Reason = *cause.Reason
		}
		return rejection
	}

	rejection.Reason = string(er.Error)
	return rejection
}
