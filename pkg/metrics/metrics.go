// Package metrics Prometheus метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge

	BookingOperations *prometheus.CounterVec
	SlotOperations    *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном регистре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: labels,
		}, []string{"operation", "status"}),

		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		BookingOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_operations_total",
			Help:        "Booking lifecycle operations by outcome",
			ConstLabels: labels,
		}, []string{"operation", "outcome"}),

		SlotOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_operations_total",
			Help:        "Slot reserve/release attempts by outcome",
			ConstLabels: labels,
		}, []string{"operation", "outcome"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.BookingOperations,
		m.SlotOperations,
	)

	return m
}

// RecordBooking увеличивает счетчик операций с бронированием. Безопасен для nil.
func (m *Metrics) RecordBooking(operation, outcome string) {
	if m == nil {
		return
	}
	m.BookingOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordSlot увеличивает счетчик операций со слотами. Безопасен для nil.
func (m *Metrics) RecordSlot(operation, outcome string) {
	if m == nil {
		return
	}
	m.SlotOperations.WithLabelValues(operation, outcome).Inc()
}
