package usecase

import (
	"context"
	"fmt"

	"github.com/piresc/antar/internal/pkg/logger"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/internal/utils"
	"github.com/piresc/antar/services/dispatch"
)

// CreateOrder registers an order for dispatch
func (uc *DispatchUC) CreateOrder(ctx context.Context, order *models.Order) error {
	if err := utils.ValidateLocation(order.RestaurantLocation); err != nil {
		return err
	}
	if err := utils.ValidateLocation(order.Destination); err != nil {
		return err
	}

	if order.Priority == "" {
		order.Priority = models.PriorityNormal
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = uc.now()
	}

	if err := uc.orderRepo.CreateOrder(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// UpsertDriver stores a driver profile pushed by the driver service.
// Dispatch-owned state (availability, current order) is left to the directory.
func (uc *DispatchUC) UpsertDriver(ctx context.Context, driver *models.Driver) error {
	if driver.Rating < 0 || driver.Rating > 5 {
		return fmt.Errorf("%w: rating %v must be within [0,5]", dispatch.ErrInvalidDriver, driver.Rating)
	}
	if driver.OnTimeRate < 0 || driver.OnTimeRate > 100 {
		return fmt.Errorf("%w: on-time rate %v must be within [0,100]", dispatch.ErrInvalidDriver, driver.OnTimeRate)
	}
	if !driver.LocationUpdatedAt.IsZero() {
		if err := utils.ValidateLocation(driver.Location); err != nil {
			return err
		}
		// a future stamp would shadow every later location report
		if now := uc.now(); driver.LocationUpdatedAt.After(now) {
			driver.LocationUpdatedAt = now
		}
		driver.Geohash = utils.EncodeLocation(driver.Location, uc.cfg.GeohashPrecision)
	}

	if err := uc.driverDir.UpsertDriver(ctx, driver); err != nil {
		return fmt.Errorf("failed to upsert driver: %w", err)
	}
	return nil
}

// UpdateDriverLocation records a position report from the location feed
func (uc *DispatchUC) UpdateDriverLocation(ctx context.Context, event models.DriverLocationEvent) error {
	if err := utils.ValidateLocation(event.Location); err != nil {
		return err
	}

	loc := event.Location
	now := uc.now()
	// reports stamped in the future would stay fresh forever
	if loc.Timestamp.IsZero() || loc.Timestamp.After(now) {
		loc.Timestamp = now
	}

	hash := utils.EncodeLocation(loc, uc.cfg.GeohashPrecision)
	if err := uc.driverDir.UpdateLocation(ctx, event.DriverID, loc, hash); err != nil {
		return fmt.Errorf("failed to update driver location: %w", err)
	}

	logger.DebugCtx(ctx, "Driver location updated",
		logger.String("driver_id", event.DriverID),
		logger.String("geohash", hash))
	return nil
}

// SetDriverAvailability toggles a driver between available and offline.
// Busy is only reachable through assignment.
func (uc *DispatchUC) SetDriverAvailability(ctx context.Context, event models.DriverAvailabilityEvent) error {
	switch event.Availability {
	case models.DriverAvailable, models.DriverOffline:
	default:
		return fmt.Errorf("%w: %q", dispatch.ErrInvalidAvailability, event.Availability)
	}

	if err := uc.driverDir.SetAvailability(ctx, event.DriverID, event.Availability); err != nil {
		return fmt.Errorf("failed to set driver availability: %w", err)
	}

	logger.InfoCtx(ctx, "Driver availability changed",
		logger.String("driver_id", event.DriverID),
		logger.String("availability", string(event.Availability)))
	return nil
}

// ReleaseDriver frees a driver once the order service closes the order
func (uc *DispatchUC) ReleaseDriver(ctx context.Context, driverID, orderID string) error {
	if err := uc.driverDir.ReleaseDriver(ctx, driverID, orderID); err != nil {
		return fmt.Errorf("failed to release driver: %w", err)
	}

	logger.InfoCtx(ctx, "Driver released",
		logger.String("driver_id", driverID),
		logger.String("order_id", orderID))
	return nil
}
