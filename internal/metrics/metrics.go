package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector reúne as métricas do serviço. Um *Collector nil é válido e não registra nada.
type Collector struct {
	service string

	appointmentsCreated  prometheus.Counter
	appointmentConflicts prometheus.Counter
	statusTransitions    *prometheus.CounterVec
	ledgerEntries        *prometheus.CounterVec
	lowStockAlerts       prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New(service string, reg prometheus.Registerer) *Collector {
	c := &Collector{
		service: service,
		appointmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "appointments_created_total",
			Help: "Total number of appointments created",
		}),
		appointmentConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "appointment_conflicts_total",
			Help: "Booking requests rejected because the slot was taken",
		}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appointment_status_transitions_total",
			Help: "Appointment status transitions",
		}, []string{"from", "to"}),
		ledgerEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_ledger_entries_total",
			Help: "Inventory ledger rows appended",
		}, []string{"type"}),
		lowStockAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "low_stock_alerts_total",
			Help: "Products that crossed the low stock threshold",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path", "status"}),
	}

	reg.MustRegister(
		c.appointmentsCreated,
		c.appointmentConflicts,
		c.statusTransitions,
		c.ledgerEntries,
		c.lowStockAlerts,
		c.httpRequests,
		c.httpDuration,
	)
	return c
}

func (c *Collector) AppointmentCreated() {
	if c == nil {
		return
	}
	c.appointmentsCreated.Inc()
}

func (c *Collector) AppointmentConflict() {
	if c == nil {
		return
	}
	c.appointmentConflicts.Inc()
}

func (c *Collector) StatusTransition(from, to string) {
	if c == nil {
		return
	}
	c.statusTransitions.WithLabelValues(from, to).Inc()
}

func (c *Collector) LedgerEntry(kind string) {
	if c == nil {
		return
	}
	c.ledgerEntries.WithLabelValues(kind).Inc()
}

func (c *Collector) LowStockAlert() {
	if c == nil {
		return
	}
	c.lowStockAlerts.Inc()
}

// Middleware mede as requisições HTTP pela rota registrada (não pela URL crua).
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		if c == nil {
			return
		}
		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(ctx.Writer.Status())
		method := ctx.Request.Method

		c.httpRequests.WithLabelValues(c.service, method, path, status).Inc()
		c.httpDuration.WithLabelValues(c.service, method, path, status).Observe(time.Since(start).Seconds())
	}
}
