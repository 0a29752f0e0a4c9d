package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ReservationsTotal   *prometheus.CounterVec
	TablesAllocated     prometheus.Histogram
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "http_requests_total",
				Help:      "Количество HTTP запросов по методу, пути и статусу.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "http_request_duration_seconds",
				Help:      "Длительность HTTP запросов в секундах.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ReservationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "reservations_total",
				Help:      "Количество запросов на бронирование по результату.",
			},
			[]string{"result"},
		),
		TablesAllocated: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "tables_allocated_per_booking",
				Help:      "Количество столов, выделенных на одно бронирование.",
				Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 10},
			},
		),
	}

	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReservationsTotal,
		m.TablesAllocated,
	)

	return m
}

// Результаты бронирования для метрики ReservationsTotal
const (
	ResultSuccess      = "success"
	ResultConflict     = "conflict"
	ResultOutsideHours = "outside_hours"
	ResultNoCapacity   = "no_capacity"
	ResultError        = "error"
)

// IncReservation инкрементирует счетчик бронирований с указанным результатом
func (m *Metrics) IncReservation(result string) {
	m.ReservationsTotal.WithLabelValues(result).Inc()
}

// ObserveTablesAllocated записывает количество столов в успешном бронировании
func (m *Metrics) ObserveTablesAllocated(n int) {
	m.TablesAllocated.Observe(float64(n))
}
