package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Auth metrics
	LoginsTotal  *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec

	// Note and entitlement metrics
	NotesCreated    *prometheus.CounterVec
	NotesDeleted    *prometheus.CounterVec
	LimitRejections *prometheus.CounterVec
	AccessDenied    *prometheus.CounterVec
	TenantUpgrades  *prometheus.CounterVec
}

// NewMetrics creates the metrics on a private registry so several instances
// (tests, multiple servers) never collide on registration.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),

		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "notes_http_request_duration_seconds",
				Help:    "Duration of HTTP request processing",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		LoginsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_logins_total",
				Help: "Successful logins",
			},
			[]string{"tenant"},
		),

		AuthFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_auth_failures_total",
				Help: "Rejected logins and token authentications",
			},
			[]string{"reason"},
		),

		NotesCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_created_total",
				Help: "Notes created",
			},
			[]string{"tenant"},
		),

		NotesDeleted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_deleted_total",
				Help: "Notes deleted",
			},
			[]string{"tenant"},
		),

		LimitRejections: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_limit_rejections_total",
				Help: "Note creations refused by the plan limit",
			},
			[]string{"tenant", "plan"},
		),

		AccessDenied: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_access_denied_total",
				Help: "Cross-tenant or role checks that denied an operation",
			},
			[]string{"tenant", "operation"},
		),

		TenantUpgrades: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_tenant_upgrades_total",
				Help: "Tenants moved to the pro plan",
			},
			[]string{"tenant"},
		),
	}
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) Login(tenant string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(tenant).Inc()
}

func (m *Metrics) AuthFailure(reason string) {
	if m == nil {
		return
	}
	m.AuthFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) NoteCreated(tenant string) {
	if m == nil {
		return
	}
	m.NotesCreated.WithLabelValues(tenant).Inc()
}

func (m *Metrics) NoteDeleted(tenant string) {
	if m == nil {
		return
	}
	m.NotesDeleted.WithLabelValues(tenant).Inc()
}

func (m *Metrics) LimitRejected(tenant, plan string) {
	if m == nil {
		return
	}
	m.LimitRejections.WithLabelValues(tenant, plan).Inc()
}

func (m *Metrics) Denied(tenant, operation string) {
	if m == nil {
		return
	}
	m.AccessDenied.WithLabelValues(tenant, operation).Inc()
}

func (m *Metrics) Upgraded(tenant string) {
	if m == nil {
		return
	}
	m.TenantUpgrades.WithLabelValues(tenant).Inc()
}
