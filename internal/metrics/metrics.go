// Package metrics exposes connector counters to Prometheus.
package metrics

import (
	"strconv"

	"github.com/DjordjeVuckovic/elastictea/pkg/elastictea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Connector counts pages read and bulk requests written per index. It
// satisfies elastictea.Recorder.
type Connector struct {
	pages        *prometheus.CounterVec
	documentsIn  *prometheus.CounterVec
	bulkRequests *prometheus.CounterVec
	documentsOut *prometheus.CounterVec
}

var _ elastictea.Recorder = (*Connector)(nil)

// NewConnector registers the connector counters on reg.
func NewConnector(reg prometheus.Registerer) *Connector {
	factory := promauto.With(reg)

	return &Connector{
		pages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "elastictea_pages_fetched_total",
				Help: "Search windows fetched by fills",
			},
			[]string{"index"},
		),
		documentsIn: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "elastictea_documents_extracted_total",
				Help: "Documents extracted by fills",
			},
			[]string{"index"},
		),
		bulkRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "elastictea_bulk_requests_total",
				Help: "Bulk requests sent by pours, by outcome",
			},
			[]string{"index", "outcome"},
		),
		documentsOut: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "elastictea_documents_loaded_total",
				Help: "Documents sent by pours, by item status",
			},
			[]string{"index", "status"},
		),
	}
}

func (c *Connector) PageFetched(index string, hits int) {
	c.pages.WithLabelValues(index).Inc()
	c.documentsIn.WithLabelValues(index).Add(float64(hits))
}

func (c *Connector) BulkSent(index string, items, failed int) {
	outcome := "ok"
	if failed > 0 {
		outcome = "partial"
	}
	c.bulkRequests.WithLabelValues(index, outcome).Inc()
	c.documentsOut.WithLabelValues(index, "indexed").Add(float64(items - failed))
	if failed > 0 {
		c.documentsOut.WithLabelValues(index, "failed").Add(float64(failed))
	}
}

func (c *Connector) BulkRejected(index string) {
	c.bulkRequests.WithLabelValues(index, "rejected").Inc()
}

// Brew mirrors the totals of finished brews.
type Brew struct {
	batches *prometheus.CounterVec
	records *prometheus.CounterVec
	runs    *prometheus.CounterVec
}

func NewBrew(reg prometheus.Registerer) *Brew {
	factory := promauto.With(reg)

	return &Brew{
		batches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "elastictea_brew_batches_total",
			Help: "Batches processed by finished brews",
		}, []string{"recipe"}),
		records: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "elastictea_brew_records_total",
			Help: "Records processed by finished brews",
		}, []string{"recipe"}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "elastictea_brew_runs_total",
			Help: "Finished brews, by result",
		}, []string{"recipe", "success"}),
	}
}

func (b *Brew) Finished(recipe string, batches, records int64, err error) {
	b.batches.WithLabelValues(recipe).Add(float64(batches))
	b.records.WithLabelValues(recipe).Add(float64(records))
	b.runs.WithLabelValues(recipe, strconv.FormatBool(err == nil)).Inc()
}
