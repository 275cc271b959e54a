package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
	"github.com/BruksfildServices01/studio-scheduler/internal/timezone"
)

type OwnerLookup interface {
	GetBusinessOwner(ctx context.Context, businessID uint) (*models.User, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store  audit.Store
	owners OwnerLookup
	loc    *time.Location
}

func NewAuditLogsHandler(store audit.Store, owners OwnerLookup, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{store: store, owners: owners, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	businessID, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	owner, err := h.owners.GetBusinessOwner(c.Request.Context(), businessID)
	if err != nil {
		httperr.Respond(c, err, "audit_list_failed")
		return
	}
	if owner.ID != currentUserID(c) {
		httperr.Respond(c, domain.ErrNotOwner, "audit_list_failed")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------
	f := audit.Filter{
		BusinessID: businessID,
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
		Page:       page,
		Limit:      limit,
	}

	if s := c.Query("from"); s != "" {
		if from, err := timezone.ParseDate(h.loc, s); err == nil {
			f.From = &from
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err := timezone.ParseDate(h.loc, s); err == nil {
			end := to.AddDate(0, 0, 1)
			f.To = &end
		}
	}

	f.Normalize()

	logs, total, err := h.store.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, logs, f.Page, f.Limit, total)
}
