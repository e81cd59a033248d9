package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/internal/utils"
	"github.com/piresc/antar/services/dispatch"
)

// EtaParams are the speed model inputs of an estimate
type EtaParams struct {
	BaselineSpeedKmh float64
	RushFactor       float64
	RushWindows      []models.RushWindow
	Location         *time.Location
	FreshnessWindow  time.Duration
}

// EstimateEta predicts when the assigned driver reaches the order's destination
func (uc *DispatchUC) EstimateEta(ctx context.Context, orderID string) (*models.EtaResult, error) {
	order, err := uc.orderRepo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order.AssignedDriverID == nil || order.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: order %s is %s", dispatch.ErrOrderNotInTransit, order.ID, order.Status)
	}

	driver, err := uc.driverDir.GetDriver(ctx, *order.AssignedDriverID)
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	result, err := ComputeEta(driver, order.Destination, uc.now(), uc.etaParams())
	if err != nil {
		return nil, err
	}
	result.OrderID = order.ID
	return result, nil
}

func (uc *DispatchUC) etaParams() EtaParams {
	return EtaParams{
		BaselineSpeedKmh: uc.cfg.BaselineSpeedKmh,
		RushFactor:       uc.cfg.RushFactor,
		RushWindows:      uc.cfg.RushWindows,
		Location:         uc.tz,
		FreshnessWindow:  uc.cfg.FreshnessWindow,
	}
}

// ComputeEta is the deterministic core of EstimateEta for a fixed now
func ComputeEta(driver *models.Driver, destination models.Location, now time.Time, p EtaParams) (*models.EtaResult, error) {
	if err := utils.ValidateLocation(destination); err != nil {
		return nil, err
	}
	if !driver.IsFresh(now, p.FreshnessWindow) {
		return nil, fmt.Errorf("%w: driver %s last seen %s", dispatch.ErrDriverLocationStale, driver.ID, driver.LocationUpdatedAt.Format(time.RFC3339))
	}

	distance, err := utils.Distance(driver.Location, destination)
	if err != nil {
		return nil, err
	}

	rush := IsRushHour(now, p.RushWindows, p.Location)
	speed := p.BaselineSpeedKmh
	if rush {
		speed *= p.RushFactor
	}

	minutes := int(math.Ceil(distance / (speed / 60)))

	return &models.EtaResult{
		DriverID:            driver.ID,
		EtaTimestamp:        now.Add(time.Duration(minutes) * time.Minute),
		MinutesRemaining:    minutes,
		DistanceRemainingKm: distance,
		RushHour:            rush,
	}, nil
}

// IsRushHour reports whether the hour of now in loc falls inside any window
func IsRushHour(now time.Time, windows []models.RushWindow, loc *time.Location) bool {
	if loc != nil {
		now = now.In(loc)
	}
	hour := now.Hour()
	for _, w := range windows {
		if w.Contains(hour) {
			return true
		}
	}
	return false
}
