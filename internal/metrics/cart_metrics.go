package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics содержит метрики операций хранилища корзины.
type CartMetrics struct {
	// Счётчики операций и их сбоев по имени операции.
	ops        *prometheus.CounterVec
	opFailures *prometheus.CounterVec

	// Гистограмма длительности полного цикла refresh.
	refreshDuration prometheus.Histogram

	// Gauge текущего числа позиций в корзине.
	items prometheus.Gauge

	// Счётчик вытесненных записей кеша метаданных.
	cacheEvictions prometheus.Counter
}

// Имена операций хранилища для метки operation.
const (
	CartOpAdd     = "add"
	CartOpSetQty  = "set_quantity"
	CartOpRemove  = "remove"
	CartOpRefresh = "refresh"
)

// NewCartMetrics создаёт метрики корзины с регистрацией в default registerer.
func NewCartMetrics() *CartMetrics {
	return newCartMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newCartMetricsWithRegisterer(registerer prometheus.Registerer) *CartMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CartMetrics{
		ops: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_operations_total",
			Help: "Total number of cart store operations",
		}, []string{"operation"}),
		opFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_operation_failures_total",
			Help: "Total number of failed cart store operations",
		}, []string{"operation"}),
		refreshDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_cart_refresh_duration_seconds",
			Help:    "Duration of full cart refresh cycles in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		items: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "storefront_cart_items",
			Help: "Number of lines currently held in the cart store",
		}),
		cacheEvictions: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_metadata_evictions_total",
			Help: "Total number of metadata cache entries evicted after refresh",
		}),
	}
}

// RecordOp фиксирует запуск операции хранилища.
func (m *CartMetrics) RecordOp(operation string) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(operation).Inc()
}

// RecordOpFailure фиксирует сбой операции хранилища.
func (m *CartMetrics) RecordOpFailure(operation string) {
	if m == nil {
		return
	}
	m.opFailures.WithLabelValues(operation).Inc()
}

// RecordRefreshDuration фиксирует длительность полного refresh.
func (m *CartMetrics) RecordRefreshDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.refreshDuration.Observe(d.Seconds())
}

// SetItemCount выставляет текущее число позиций корзины.
func (m *CartMetrics) SetItemCount(n int) {
	if m == nil {
		return
	}
	m.items.Set(float64(n))
}

// RecordCacheEvictions фиксирует число вытесненных записей кеша.
func (m *CartMetrics) RecordCacheEvictions(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.cacheEvictions.Add(float64(n))
}
