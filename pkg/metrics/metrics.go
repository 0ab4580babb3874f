package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbQueryErrors     *prometheus.CounterVec
	dbOpenConnections *prometheus.GaugeVec

	slotsEvaluated      *prometheus.CounterVec
	boardingChecks      *prometheus.CounterVec
	cacheRequests       *prometheus.CounterVec
	auditRecordFailures *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"service", "method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),
		dbQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query latency.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"service", "operation"},
		),
		dbQueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_query_errors_total",
				Help: "Total number of failed database queries.",
			},
			[]string{"service", "operation"},
		),
		dbOpenConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_connections",
				Help: "Database connection pool state.",
			},
			[]string{"service", "state"},
		),
		slotsEvaluated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "availability_slots_evaluated_total",
				Help: "Candidate slots evaluated by the slot engine.",
			},
			[]string{"service", "service_type", "bookable"},
		),
		boardingChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "availability_boarding_checks_total",
				Help: "Boarding range checks by overall verdict.",
			},
			[]string{"service", "bookable"},
		),
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "availability_cache_requests_total",
				Help: "Snapshot cache lookups by result.",
			},
			[]string{"service", "kind", "result"},
		),
		auditRecordFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "availability_audit_record_failures_total",
				Help: "Audit entries that could not be persisted.",
			},
			[]string{"service", "action"},
		),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbOpenConnections,
		m.slotsEvaluated,
		m.boardingChecks,
		m.cacheRequests,
		m.auditRecordFailures,
	)

	return m
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.dbOpenConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.dbOpenConnections.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}

// ObserveSlots фиксирует результат расчёта слотов на день
func (m *Metrics) ObserveSlots(serviceType string, bookable, total int) {
	if m == nil {
		return
	}
	m.slotsEvaluated.WithLabelValues(m.serviceName, serviceType, "true").Add(float64(bookable))
	m.slotsEvaluated.WithLabelValues(m.serviceName, serviceType, "false").Add(float64(total - bookable))
}

// ObserveBoardingCheck фиксирует результат проверки диапазона передержки
func (m *Metrics) ObserveBoardingCheck(bookable bool) {
	if m == nil {
		return
	}
	m.boardingChecks.WithLabelValues(m.serviceName, strconv.FormatBool(bookable)).Inc()
}

// ObserveCache фиксирует обращение к кэшу (result: hit, miss, error)
func (m *Metrics) ObserveCache(kind, result string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(m.serviceName, kind, result).Inc()
}

// IncAuditFailure фиксирует неудачную запись в журнал аудита
func (m *Metrics) IncAuditFailure(action string) {
	if m == nil {
		return
	}
	m.auditRecordFailures.WithLabelValues(m.serviceName, action).Inc()
}
