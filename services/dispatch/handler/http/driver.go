package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/antar/internal/pkg/middleware"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/internal/utils"
)

// LocationRequest is a position report from the driver app
type LocationRequest struct {
	Latitude  float64   `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64   `json:"longitude" validate:"gte=-180,lte=180"`
	Timestamp time.Time `json:"timestamp"`
}

// AvailabilityRequest toggles the calling driver on or off shift
type AvailabilityRequest struct {
	Availability models.DriverAvailability `json:"availability" validate:"required,oneof=available offline"`
}

// UpsertDriverRequest registers or refreshes a driver profile
type UpsertDriverRequest struct {
	ID           string                    `json:"id" validate:"required"`
	Name         string                    `json:"name"`
	VehicleType  string                    `json:"vehicle_type"`
	Location     *models.Location          `json:"location"`
	Availability models.DriverAvailability `json:"availability" validate:"omitempty,oneof=available offline"`
	Rating       float64                   `json:"rating" validate:"gte=0,lte=5"`
	OnTimeRate   float64                   `json:"on_time_rate" validate:"gte=0,lte=100"`
}

// ReleaseRequest frees a driver from a finished order
type ReleaseRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// UpdateLocation records the authenticated driver's position
func (h *DispatchHandler) UpdateLocation(c echo.Context) error {
	var req LocationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event := models.DriverLocationEvent{
		DriverID: middleware.DriverID(c),
		Location: models.Location{Latitude: req.Latitude, Longitude: req.Longitude, Timestamp: req.Timestamp},
	}
	if err := h.dispatchUC.UpdateDriverLocation(c.Request().Context(), event); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetAvailability switches the authenticated driver between available and offline
func (h *DispatchHandler) SetAvailability(c echo.Context) error {
	var req AvailabilityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event := models.DriverAvailabilityEvent{
		DriverID:     middleware.DriverID(c),
		Availability: req.Availability,
	}
	if err := h.dispatchUC.SetDriverAvailability(c.Request().Context(), event); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpsertDriver creates or updates a driver profile
func (h *DispatchHandler) UpsertDriver(c echo.Context) error {
	var req UpsertDriverRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	driver := &models.Driver{
		ID:           req.ID,
		Name:         req.Name,
		VehicleType:  req.VehicleType,
		Availability: req.Availability,
		Rating:       req.Rating,
		OnTimeRate:   req.OnTimeRate,
	}
	if req.Location != nil {
		driver.Location = *req.Location
		driver.LocationUpdatedAt = req.Location.Timestamp
		if driver.LocationUpdatedAt.IsZero() {
			driver.LocationUpdatedAt = time.Now()
		}
	}

	if err := h.dispatchUC.UpsertDriver(c.Request().Context(), driver); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Driver saved", driver)
}

// ReleaseDriver clears a driver's assignment once the order is closed
func (h *DispatchHandler) ReleaseDriver(c echo.Context) error {
	driverID := c.Param("driverID")

	var req ReleaseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	middleware.SetDriverID(c, driverID)
	middleware.SetOrderID(c, req.OrderID)

	if err := h.dispatchUC.ReleaseDriver(c.Request().Context(), driverID, req.OrderID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
