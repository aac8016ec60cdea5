package elastictea

import (
	"encoding/json"
	"strings"

	"github.com/DjordjeVuckovic/elastictea/pkg/apperr"
	"github.com/DjordjeVuckovic/elastictea/pkg/es"
	"github.com/DjordjeVuckovic/elastictea/pkg/pagination"
)

// FillEsArg describes what a fill reads: which index, how many hits per
// page, and which documents.
type FillEsArg struct {
	index           string
	batchSize       int
	query           json.RawMessage
	client          es.Searcher
	maxResultWindow int
}

type FillArgOption func(*FillEsArg)

// WithMaxResultWindow overrides the from+size ceiling of the target index.
func WithMaxResultWindow(n int) FillArgOption {
	return func(a *FillEsArg) {
		a.maxResultWindow = n
	}
}

// NewFillEsArg validates and freezes the extraction parameters. A nil query
// selects every document.
func NewFillEsArg(index string, batchSize int, query json.RawMessage, client es.Searcher, opts ...FillArgOption) (*FillEsArg, error) {
	a := &FillEsArg{
		index:           strings.TrimSpace(index),
		batchSize:       batchSize,
		client:          client,
		maxResultWindow: pagination.MaxResultWindow,
	}
	if len(query) > 0 {
		a.query = append(json.RawMessage(nil), query...)
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.index == "" {
		return nil, apperr.NewConfiguration("fill_es_arg", "index is required")
	}
	if a.client == nil {
		return nil, apperr.NewConfiguration("fill_es_arg", "elasticsearch client is required")
	}
	if err := pagination.NewOffsetRequest(a.batchSize).Validate(a.maxResultWindow); err != nil {
		return nil, apperr.NewConfigurationWrap("fill_es_arg", "invalid batch size", err)
	}
	if a.query != nil && !json.Valid(a.query) {
		return nil, apperr.NewConfiguration("fill_es_arg", "query is not valid JSON")
	}

	return a, nil
}

func (a *FillEsArg) Index() string {
	return a.index
}

func (a *FillEsArg) BatchSize() int {
	return a.batchSize
}

func (a *FillEsArg) MaxResultWindow() int {
	return a.maxResultWindow
}

// Query returns a copy of the predicate, or nil when every document matches.
func (a *FillEsArg) Query() json.RawMessage {
	if a.query == nil {
		return nil
	}
	return append(json.RawMessage(nil), a.query...)
}

func (a *FillEsArg) Client() es.Searcher {
	return a.client
}

// PourEsArg describes where a pour writes.
type PourEsArg struct {
	index  string
	client es.Bulker
}

func NewPourEsArg(index string, client es.Bulker) (*PourEsArg, error) {
	index = strings.TrimSpace(index)
	if index == "" {
		return nil, apperr.NewConfiguration("pour_es_arg", "index is required")
	}
	if client == nil {
		return nil, apperr.NewConfiguration("pour_es_arg", "elasticsearch client is required")
	}
	return &PourEsArg{index: index, client: client}, nil
}

func (a *PourEsArg) Index() string {
	return a.index
}

func (a *PourEsArg) Client() es.Bulker {
	return a.client
}
