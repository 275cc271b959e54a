package appointment

import "github.com/BruksfildServices01/studio-scheduler/internal/httperr"

var (
	ErrBusinessNotFound    = httperr.ErrNotFound("business_not_found")
	ErrServiceNotFound     = httperr.ErrNotFound("service_not_found")
	ErrAppointmentNotFound = httperr.ErrNotFound("appointment_not_found")

	ErrNotOwner = httperr.ErrForbidden("not_business_owner")

	ErrInvalidDate     = httperr.ErrBusiness("invalid_date_or_time")
	ErrInvalidStatus   = httperr.ErrBusiness("invalid_status")
	ErrNoServices      = httperr.ErrBusiness("no_services")
	ErrClosedDay       = httperr.ErrBusiness("closed_day")
	ErrOutsideHours    = httperr.ErrBusiness("outside_working_hours")
	ErrInvalidCalendar = httperr.ErrBusiness("invalid_operating_hours")

	ErrSlotOccupied = httperr.ErrConflict("slot_occupied")
)
