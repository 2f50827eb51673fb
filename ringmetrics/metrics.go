// Package ringmetrics exports ring buffer activity as Prometheus metrics.
package ringmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	ringbuffer "github.com/jonoton/go-fifo"
)

// Metrics implements ringbuffer.Observer.
type Metrics struct {
	inserts   prometheus.Counter
	removals  prometheus.Counter
	evictions *prometheus.CounterVec
	length    prometheus.Gauge
	capacity  prometheus.Gauge
}

var _ ringbuffer.Observer = (*Metrics)(nil)

// New registers the ring buffer metrics under namespace with registerer.
// A nil registerer falls back to prometheus.DefaultRegisterer.
func New(registerer prometheus.Registerer, namespace string) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &Metrics{
		inserts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inserts_total",
			Help:      "Total number of elements put into the ring buffer",
		}),
		removals: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "removals_total",
			Help:      "Total number of elements read out of the ring buffer",
		}),
		evictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evictions_total",
				Help:      "Total number of elements dropped without being read",
			},
			[]string{"reason"},
		),
		length: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "length",
			Help:      "Current number of held elements",
		}),
		capacity: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "capacity",
			Help:      "Current capacity of the ring buffer",
		}),
	}
}

// ObserveInsert adds n to the inserts counter.
func (m *Metrics) ObserveInsert(n int) {
	m.inserts.Add(float64(n))
}

// ObserveRemove adds n to the removals counter.
func (m *Metrics) ObserveRemove(n int) {
	m.removals.Add(float64(n))
}

// ObserveEviction adds n to the evictions counter labelled with reason.
func (m *Metrics) ObserveEviction(reason ringbuffer.EvictionReason, n int) {
	m.evictions.WithLabelValues(string(reason)).Add(float64(n))
}

// ObserveState sets the length and capacity gauges.
func (m *Metrics) ObserveState(length, capacity int) {
	m.length.Set(float64(length))
	m.capacity.Set(float64(capacity))
}
