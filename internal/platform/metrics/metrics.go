// Package metrics exposes catalog and lending activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/library-console/internal/ports"
)

const namespace = "library"

// Recorder implements ports.LendingMetrics on a dedicated Prometheus registry.
type Recorder struct {
	registry         *prometheus.Registry
	booksAdded       prometheus.Counter
	stockInitialized prometheus.Counter
	copiesSeeded     prometheus.Counter
	borrows          *prometheus.CounterVec
	returns          *prometheus.CounterVec
}

var _ ports.LendingMetrics = (*Recorder)(nil)

// NewRecorder creates a recorder with its own registry, including the Go
// runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		booksAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "books_added_total",
			Help:      "Book records appended to the catalog.",
		}),
		stockInitialized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_initialized_total",
			Help:      "Stock counters set for a title.",
		}),
		copiesSeeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_copies_seeded_total",
			Help:      "Sum of quantities passed to stock initialization.",
		}),
		borrows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "borrows_total",
			Help:      "Borrow attempts by outcome.",
		}, []string{"outcome"}),
		returns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "returns_total",
			Help:      "Return attempts by outcome.",
		}, []string{"outcome"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.booksAdded,
		r.stockInitialized,
		r.copiesSeeded,
		r.borrows,
		r.returns,
	)

	return r
}

// BookAdded implements ports.LendingMetrics.
func (r *Recorder) BookAdded() {
	r.booksAdded.Inc()
}

// StockInitialized implements ports.LendingMetrics.
// Negative quantities are counted as initializations but add no copies.
func (r *Recorder) StockInitialized(quantity int) {
	r.stockInitialized.Inc()
	if quantity > 0 {
		r.copiesSeeded.Add(float64(quantity))
	}
}

// BorrowRecorded implements ports.LendingMetrics.
func (r *Recorder) BorrowRecorded(outcome string) {
	r.borrows.WithLabelValues(outcome).Inc()
}

// ReturnRecorded implements ports.LendingMetrics.
func (r *Recorder) ReturnRecorded(outcome string) {
	r.returns.WithLabelValues(outcome).Inc()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
