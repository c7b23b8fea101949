package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collectors of the service.
// All Observe* methods are nil-safe so components can run with metrics disabled.
type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	dbQueries      *prometheus.HistogramVec
	dbOpenConns    *prometheus.GaugeVec
	slotRuns       *prometheus.CounterVec
	freeSlots      prometheus.Histogram
	rateRefreshes  *prometheus.CounterVec
	rateAge        prometheus.Gauge
	notifications  *prometheus.CounterVec
	bookingOutcome *prometheus.CounterVec
	activeSessions prometheus.Gauge
}

// New registers collectors in the default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer registers collectors in reg
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		dbOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
		slotRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_computations_total",
			Help:        "Free slot computations by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		freeSlots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "availability_free_slots",
			Help:        "Number of free hourly slots per computation",
			ConstLabels: constLabels,
			Buckets:     prometheus.LinearBuckets(0, 2, 13),
		}),
		rateRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "exchange_rate_refresh_total",
			Help:        "Exchange rate refresh attempts by source and outcome",
			ConstLabels: constLabels,
		}, []string{"source", "outcome"}),
		rateAge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "exchange_rate_table_timestamp_seconds",
			Help:        "Unix time the current exchange rate table was fetched",
			ConstLabels: constLabels,
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "User-facing notifications by severity",
			ConstLabels: constLabels,
		}, []string{"severity"}),
		bookingOutcome: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_submissions_total",
			Help:        "Booking submissions by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "booking_sessions_active",
			Help:        "Open booking form sessions",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.dbQueries,
		m.dbOpenConns,
		m.slotRuns,
		m.freeSlots,
		m.rateRefreshes,
		m.rateAge,
		m.notifications,
		m.bookingOutcome,
		m.activeSessions,
	)

	return m
}

func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueries.WithLabelValues(operation, status).Observe(duration.Seconds())
}

func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbOpenConns.WithLabelValues("open").Set(float64(open))
	m.dbOpenConns.WithLabelValues("in_use").Set(float64(inUse))
	m.dbOpenConns.WithLabelValues("idle").Set(float64(idle))
}

func (m *Metrics) ObserveSlotComputation(outcome string, freeSlots int) {
	if m == nil {
		return
	}
	m.slotRuns.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		m.freeSlots.Observe(float64(freeSlots))
	}
}

func (m *Metrics) ObserveRateRefresh(source, outcome string) {
	if m == nil {
		return
	}
	m.rateRefreshes.WithLabelValues(source, outcome).Inc()
}

func (m *Metrics) SetRateTableTimestamp(t time.Time) {
	if m == nil {
		return
	}
	m.rateAge.Set(float64(t.Unix()))
}

func (m *Metrics) ObserveNotification(severity string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(severity).Inc()
}

func (m *Metrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingOutcome.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}
