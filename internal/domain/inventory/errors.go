package inventory

import "github.com/BruksfildServices01/studio-scheduler/internal/httperr"

var (
	ErrItemNotFound      = httperr.ErrNotFound("inventory_not_found")
	ErrInvalidMovement   = httperr.ErrBusiness("invalid_movement")
	ErrInsufficientStock = httperr.ErrBusiness("insufficient_stock")
	ErrReservedReason    = httperr.ErrBusiness("reserved_reason")
)

var (
	ErrBusinessNotFound = httperr.ErrNotFound("business_not_found")
	ErrNotOwner         = httperr.ErrForbidden("not_business_owner")
)
