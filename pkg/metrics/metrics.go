package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	bookingOutcomes     *prometheus.CounterVec
	storeOpDuration     *prometheus.HistogramVec
	storeRetries        *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в указанном registerer
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookingOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_outcomes_total",
			Help:        "Reservation operations by result",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),
		storeOpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "blob_store_operation_duration_seconds",
			Help:        "Blob store operation duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"operation", "result"}),
		storeRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "blob_store_retries_total",
			Help:        "Blob store operation retries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.bookingOutcomes,
		m.storeOpDuration,
		m.storeRetries,
	)

	return m
}

// ObserveHTTPRequest фиксирует один HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncReservationOutcome фиксирует результат операции бронирования/отмены
func (m *Metrics) IncReservationOutcome(operation, result string) {
	if m == nil {
		return
	}
	m.bookingOutcomes.WithLabelValues(operation, result).Inc()
}

// ObserveStoreOperation фиксирует длительность операции с хранилищем
func (m *Metrics) ObserveStoreOperation(operation, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeOpDuration.WithLabelValues(operation, result).Observe(duration.Seconds())
}

// IncStoreRetry фиксирует повторную попытку операции с хранилищем
func (m *Metrics) IncStoreRetry(operation string) {
	if m == nil {
		return
	}
	m.storeRetries.WithLabelValues(operation).Inc()
}
