package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/studio-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler atende a página de reservas: sem usuário logado.
type PublicHandler struct {
	availability *appointment.GetAvailability
	create       *appointment.CreateAppointment
	loc          *time.Location
}

func NewPublicHandler(
	availability *appointment.GetAvailability,
	create *appointment.CreateAppointment,
	loc *time.Location,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		create:       create,
		loc:          loc,
	}
}

type PublicCreateAppointmentRequest struct {
	ServiceIDs    string `json:"service_ids" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	ScheduledAt   string `json:"scheduled_at"`
	Date          string `json:"date"` // YYYY-MM-DD
	Time          string `json:"time"` // HH:mm
	Notes         string `json:"notes"`
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	businessID, ok := paramID(c, "businessId")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_params", "Data obrigatória.")
		return
	}

	grid, err := h.availability.Execute(c.Request.Context(), businessID, date)
	if err != nil {
		httperr.Respond(c, err, "availability_failed")
		return
	}

	httpresp.OK(c, grid)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (anônimo)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	businessID, ok := paramID(c, "businessId")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in, err := CreateAppointmentRequest{
		BusinessID:    businessID,
		ServiceIDs:    req.ServiceIDs,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		ScheduledAt:   req.ScheduledAt,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	}.toInput(h.loc)
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_appointment")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, ap)
}
