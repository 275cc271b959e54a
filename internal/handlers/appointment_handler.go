package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/studio-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *appointment.CreateAppointment
	updateStatus *appointment.UpdateStatus
	remove       *appointment.DeleteAppointment
	list         *appointment.ListAppointments
	revenue      *appointment.Revenue
	loc          *time.Location
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	updateStatus *appointment.UpdateStatus,
	remove *appointment.DeleteAppointment,
	list *appointment.ListAppointments,
	revenue *appointment.Revenue,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		updateStatus: updateStatus,
		remove:       remove,
		list:         list,
		revenue:      revenue,
		loc:          loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BusinessID uint `json:"business_id" binding:"required"`

	// "1,2,3"
	ServiceIDs string `json:"service_ids" binding:"required"`

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	ScheduledAt string `json:"scheduled_at"` // RFC3339
	Date        string `json:"date"`         // YYYY-MM-DD
	Time        string `json:"time"`         // HH:mm
	Notes       string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// toInput valida o que o handler consegue validar sozinho; o resto é do caso de uso.
func (r CreateAppointmentRequest) toInput(loc *time.Location) (appointment.CreateInput, error) {
	if r.CustomerEmail != "" && !validators.IsEmailValid(r.CustomerEmail) {
		return appointment.CreateInput{}, httperr.ErrBusiness("invalid_email")
	}

	at, err := parseScheduledAt(loc, r.ScheduledAt, r.Date, r.Time)
	if err != nil {
		return appointment.CreateInput{}, domain.ErrInvalidDate
	}

	return appointment.CreateInput{
		BusinessID:    r.BusinessID,
		ServiceIDs:    r.ServiceIDs,
		CustomerName:  strings.TrimSpace(r.CustomerName),
		CustomerEmail: strings.TrimSpace(r.CustomerEmail),
		CustomerPhone: strings.TrimSpace(r.CustomerPhone),
		ScheduledAt:   at,
		Notes:         r.Notes,
	}, nil
}

// ======================================================
// CREATE (equipe)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in, err := req.toInput(h.loc)
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_appointment")
		return
	}

	userID := currentUserID(c)
	in.ActingUserID = &userID

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST (lista ou grade do dia)
// ======================================================

func (h *AppointmentHandler) ListByCompany(c *gin.Context) {
	businessID, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	res, err := h.list.Execute(c.Request.Context(), appointment.ListInput{
		BusinessID: businessID,
		UserID:     currentUserID(c),
		StartDate:  c.Query("startDate"),
		EndDate:    c.Query("endDate"),
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_appointments")
		return
	}

	if res.Grid != nil {
		httpresp.OK(c, res.Grid)
		return
	}
	httpresp.List(c, res.Appointments)
}

// ======================================================
// REVENUE
// ======================================================

func (h *AppointmentHandler) Revenue(c *gin.Context) {
	businessID, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	total, err := h.revenue.Execute(c.Request.Context(), appointment.RevenueInput{
		BusinessID: businessID,
		UserID:     currentUserID(c),
		StartDate:  c.Query("startDate"),
		EndDate:    c.Query("endDate"),
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_sum_revenue")
		return
	}

	httpresp.OK(c, gin.H{"total": total})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), appointment.UpdateStatusInput{
		AppointmentID: id,
		UserID:        currentUserID(c),
		Status:        req.Status,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_status")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id, currentUserID(c)); err != nil {
		httperr.Respond(c, err, "failed_to_delete_appointment")
		return
	}

	httpresp.NoContent(c)
}
