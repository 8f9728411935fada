package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. Collectors are
// registered on the default registry via promauto; construct once.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	OrdersCreatedTotal   prometheus.Counter
	OrdersDeletedTotal   prometheus.Counter
	RevenueCacheHits     prometheus.Counter
	RevenueCacheMisses   prometheus.Counter
	JournalEntriesQueued prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests by method and status code",
		}, []string{"method", "status"}),
		OrdersCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_created_total",
			Help: "Total number of orders created",
		}),
		OrdersDeletedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_deleted_total",
			Help: "Total number of orders deleted",
		}),
		RevenueCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_revenue_cache_hits_total",
			Help: "Total number of revenue report cache hits",
		}),
		RevenueCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_revenue_cache_misses_total",
			Help: "Total number of revenue report cache misses",
		}),
		JournalEntriesQueued: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_journal_entries_queued",
			Help: "Current number of order events waiting in the local journal",
		}),
	}
}

func (m *Metrics) ObserveRequest(method, status string) {
	m.HTTPRequestsTotal.WithLabelValues(method, status).Inc()
}

func (m *Metrics) SetJournalQueued(count int) {
	m.JournalEntriesQueued.Set(float64(count))
}

// The following methods satisfy usecase.WorkflowMetrics.

func (m *Metrics) OrderCreated() { m.OrdersCreatedTotal.Inc() }

func (m *Metrics) OrderDeleted() { m.OrdersDeletedTotal.Inc() }

func (m *Metrics) RevenueCacheHit() { m.RevenueCacheHits.Inc() }

func (m *Metrics) RevenueCacheMiss() { m.RevenueCacheMisses.Inc() }
