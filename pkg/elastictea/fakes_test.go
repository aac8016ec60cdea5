package elastictea

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/DjordjeVuckovic/elastictea/pkg/es"
	"github.com/DjordjeVuckovic/elastictea/pkg/tea"
)

type article struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

type keyed struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (k *keyed) DocumentID() string {
	return k.Key
}

// fakeSearcher serves a fixed result set with from/size semantics.
type fakeSearcher struct {
	mu       sync.Mutex
	docs     []es.Hit
	failAt   int
	err      error
	requests []es.SearchRequest
}

func newFakeSearcher(n int) *fakeSearcher {
	docs := make([]es.Hit, 0, n)
	for i := 0; i < n; i++ {
		src, _ := json.Marshal(article{Title: fmt.Sprintf("article-%d", i), Year: 2000 + i})
		docs = append(docs, es.Hit{ID: fmt.Sprintf("id-%d", i), Index: "articles", Source: src})
	}
	return &fakeSearcher{docs: docs, failAt: -1}
}

func (f *fakeSearcher) Search(ctx context.Context, index string, req es.SearchRequest) (*es.SearchPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)

	if f.failAt >= 0 && req.From == f.failAt {
		return nil, f.err
	}

	page := &es.SearchPage{Total: int64(len(f.docs))}
	if req.From >= len(f.docs) {
		return page, nil
	}
	end := min(req.From+req.Size, len(f.docs))
	page.Hits = append(page.Hits, f.docs[req.From:end]...)
	return page, nil
}

func (f *fakeSearcher) calls() []es.SearchRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]es.SearchRequest(nil), f.requests...)
}

type bulkCall struct {
	Index string
	Items []es.BulkItem
}

// fakeBulker records every bulk call and answers with respond.
type fakeBulker struct {
	mu      sync.Mutex
	calls   []bulkCall
	respond func(items []es.BulkItem) (*es.BulkResponse, error)
}

func (f *fakeBulker) Bulk(ctx context.Context, index string, items []es.BulkItem) (*es.BulkResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, bulkCall{Index: index, Items: items})
	f.mu.Unlock()

	if f.respond != nil {
		return f.respond(items)
	}
	res := &es.BulkResponse{Items: make([]es.BulkItemResult, 0, len(items))}
	for _, item := range items {
		res.Items = append(res.Items, es.BulkItemResult{ID: item.ID, Index: index, Status: 201})
	}
	return res, nil
}

func (f *fakeBulker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// memIndex is an index that can be written with Bulk and read with Search.
type memIndex struct {
	mu   sync.Mutex
	seq  int
	hits []es.Hit
}

func (m *memIndex) Bulk(ctx context.Context, index string, items []es.BulkItem) (*es.BulkResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := &es.BulkResponse{}
	for _, item := range items {
		id := item.ID
		if id == "" {
			m.seq++
			id = fmt.Sprintf("gen-%d", m.seq)
		}
		m.hits = append(m.hits, es.Hit{ID: id, Index: index, Source: append(json.RawMessage(nil), item.Document...)})
		res.Items = append(res.Items, es.BulkItemResult{ID: id, Index: index, Status: 201})
	}
	return res, nil
}

func (m *memIndex) Search(ctx context.Context, index string, req es.SearchRequest) (*es.SearchPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	page := &es.SearchPage{Total: int64(len(m.hits))}
	if req.From >= len(m.hits) {
		return page, nil
	}
	end := min(req.From+req.Size, len(m.hits))
	page.Hits = append(page.Hits, m.hits[req.From:end]...)
	return page, nil
}

// collector is a Submitter that keeps every batch in submission order.
type collector struct {
	mu      sync.Mutex
	batches []tea.Batch
}

func (c *collector) Submit(batch tea.Batch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, batch)
}

func (c *collector) sizes() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	sizes := make([]int, 0, len(c.batches))
	for _, b := range c.batches {
		sizes = append(sizes, len(b))
	}
	return sizes
}

type countingRecorder struct {
	mu       sync.Mutex
	pages    int
	hits     int
	bulks    int
	items    int
	failed   int
	rejected int
}

func (r *countingRecorder) PageFetched(index string, hits int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages++
	r.hits += hits
}

func (r *countingRecorder) BulkSent(index string, items, failed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bulks++
	r.items += items
	r.failed += failed
}

func (r *countingRecorder) BulkRejected(index string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
}
