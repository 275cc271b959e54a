package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-scheduler/internal/middleware"
	"github.com/BruksfildServices01/studio-scheduler/internal/timezone"
)

// --------------------------------------------------
// Parâmetros de rota
// --------------------------------------------------

func paramID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func currentUserID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

// --------------------------------------------------
// Datas
// --------------------------------------------------

// parseScheduledAt aceita scheduled_at (RFC3339) ou o par date + time no fuso da agenda.
func parseScheduledAt(loc *time.Location, scheduledAt, date, clock string) (time.Time, error) {
	if scheduledAt != "" {
		return timezone.ParseDateTime(loc, scheduledAt)
	}
	return timezone.ParseDateTime(loc, date+" "+clock)
}
