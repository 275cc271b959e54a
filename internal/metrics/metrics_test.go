package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.AppointmentCreated()
		c.AppointmentConflict()
		c.StatusTransition("PENDING", "COMPLETED")
		c.LedgerEntry("EXIT")
		c.LowStockAlert()
	})
}

func TestCollectorCounts(t *testing.T) {
	c := New("test", prometheus.NewRegistry())

	c.AppointmentCreated()
	c.AppointmentCreated()
	c.StatusTransition("PENDING", "COMPLETED")
	c.LedgerEntry("EXIT")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.appointmentsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.statusTransitions.WithLabelValues("PENDING", "COMPLETED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ledgerEntries.WithLabelValues("EXIT")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.lowStockAlerts))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New("test", prometheus.NewRegistry())

	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/items/:id", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("test", "GET", "/items/:id", "204")))
}
