package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
	"github.com/BruksfildServices01/studio-scheduler/internal/usecase/appointment"
)

type OperatingHoursHandler struct {
	uc *appointment.OperatingHours
}

func NewOperatingHoursHandler(uc *appointment.OperatingHours) *OperatingHoursHandler {
	return &OperatingHoursHandler{uc: uc}
}

type OperatingHoursUpdateRequest struct {
	SlotInterval string                `json:"slot_interval"`
	Weekly       []models.WeekdayHours `json:"weekly" binding:"required"`
	Blocks       []models.AgendaBlock  `json:"blocks"`
}

func (h *OperatingHoursHandler) Get(c *gin.Context) {
	businessID, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	oh, err := h.uc.Get(c.Request.Context(), businessID, currentUserID(c))
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_operating_hours")
		return
	}
	if oh == nil {
		httperr.NotFound(c, "operating_hours_not_found", "Horários ainda não configurados.")
		return
	}

	httpresp.OK(c, oh)
}

func (h *OperatingHoursHandler) Update(c *gin.Context) {
	businessID, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var req OperatingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	oh, err := h.uc.Update(c.Request.Context(), appointment.OperatingHoursInput{
		BusinessID:   businessID,
		UserID:       currentUserID(c),
		SlotInterval: req.SlotInterval,
		Weekly:       req.Weekly,
		Blocks:       req.Blocks,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_save_operating_hours")
		return
	}

	httpresp.OK(c, oh)
}
