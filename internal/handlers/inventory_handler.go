package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/studio-scheduler/internal/usecase/inventory"
)

// ======================================================
// HANDLER
// ======================================================

type InventoryHandler struct {
	items *inventory.Items
}

func NewInventoryHandler(items *inventory.Items) *InventoryHandler {
	return &InventoryHandler{items: items}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateItemRequest struct {
	Name             string           `json:"name" binding:"required"`
	Unit             string           `json:"unit" binding:"required"`
	SecondaryUnit    string           `json:"secondary_unit"`
	ConversionFactor *decimal.Decimal `json:"conversion_factor"`
	CurrentQuantity  decimal.Decimal  `json:"current_quantity"`
	MinQuantity      decimal.Decimal  `json:"min_quantity"`
}

// UpdateItemRequest: campos ausentes ficam como estão.
type UpdateItemRequest struct {
	Name             *string          `json:"name"`
	Unit             *string          `json:"unit"`
	SecondaryUnit    *string          `json:"secondary_unit"`
	ConversionFactor *decimal.Decimal `json:"conversion_factor"`
	MinQuantity      *decimal.Decimal `json:"min_quantity"`
}

type MovementRequest struct {
	Type     string          `json:"type" binding:"required"` // ENTRY | EXIT
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Reason   string          `json:"reason"`
}

func (h *InventoryHandler) ids(c *gin.Context, withItem bool) (businessID, itemID uint, ok bool) {
	businessID, ok = paramID(c, "id")
	if !ok {
		return 0, 0, false
	}
	if withItem {
		itemID, ok = paramID(c, "itemId")
	}
	return businessID, itemID, ok
}

// ======================================================
// ITEMS
// ======================================================

func (h *InventoryHandler) List(c *gin.Context) {
	businessID, _, ok := h.ids(c, false)
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	items, err := h.items.List(c.Request.Context(), businessID, currentUserID(c))
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_inventory")
		return
	}

	httpresp.List(c, items)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	businessID, _, ok := h.ids(c, false)
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	item, err := h.items.Create(c.Request.Context(), inventory.CreateItemInput{
		BusinessID:       businessID,
		UserID:           currentUserID(c),
		Name:             req.Name,
		Unit:             req.Unit,
		SecondaryUnit:    req.SecondaryUnit,
		ConversionFactor: req.ConversionFactor,
		CurrentQuantity:  req.CurrentQuantity,
		MinQuantity:      req.MinQuantity,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_inventory")
		return
	}

	httpresp.Created(c, item)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	businessID, itemID, ok := h.ids(c, true)
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	item, err := h.items.Update(c.Request.Context(), inventory.UpdateItemInput{
		BusinessID:       businessID,
		UserID:           currentUserID(c),
		ItemID:           itemID,
		Name:             req.Name,
		Unit:             req.Unit,
		SecondaryUnit:    req.SecondaryUnit,
		ConversionFactor: req.ConversionFactor,
		MinQuantity:      req.MinQuantity,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_inventory")
		return
	}

	httpresp.OK(c, item)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	businessID, itemID, ok := h.ids(c, true)
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := h.items.Delete(c.Request.Context(), businessID, currentUserID(c), itemID); err != nil {
		httperr.Respond(c, err, "failed_to_delete_inventory")
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// RAZÃO
// ======================================================

func (h *InventoryHandler) RegisterMovement(c *gin.Context) {
	businessID, itemID, ok := h.ids(c, true)
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	item, err := h.items.RegisterMovement(c.Request.Context(), inventory.MovementInput{
		BusinessID: businessID,
		UserID:     currentUserID(c),
		ItemID:     itemID,
		Type:       req.Type,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		Reason:     req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_register_movement")
		return
	}

	httpresp.OK(c, item)
}

func (h *InventoryHandler) ListLogs(c *gin.Context) {
	businessID, itemID, ok := h.ids(c, true)
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	logs, err := h.items.ListLogs(c.Request.Context(), businessID, currentUserID(c), itemID, limit)
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_inventory_logs")
		return
	}

	httpresp.List(c, logs)
}
