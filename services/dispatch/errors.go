package dispatch

import (
	"errors"

	"github.com/piresc/antar/internal/utils"
)

// Errors surfaced by the dispatch core. All of them are recoverable by the caller.
var (
	ErrInvalidCoordinate   = utils.ErrInvalidCoordinate
	ErrNoDriverAvailable   = errors.New("no driver available")
	ErrDriverLocationStale = errors.New("driver location is stale")
	ErrAssignmentConflict  = errors.New("assignment conflict")

	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderExists         = errors.New("order already exists")
	ErrOrderNotAssignable  = errors.New("order is not assignable")
	ErrOrderNotInTransit   = errors.New("order is not in transit")
	ErrDriverNotFound      = errors.New("driver not found")
	ErrDriverBusy          = errors.New("driver is on a delivery")
	ErrInvalidAvailability = errors.New("invalid availability")
	ErrInvalidDriver       = errors.New("invalid driver profile")
)
