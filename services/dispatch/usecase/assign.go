package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/antar/internal/pkg/logger"
	"github.com/piresc/antar/internal/pkg/models"
	nrpkg "github.com/piresc/antar/internal/pkg/newrelic"
	"github.com/piresc/antar/internal/pkg/retry"
	"github.com/piresc/antar/internal/utils"
	"github.com/piresc/antar/services/dispatch"
)

// compensation must outlive a caller that already gave up
const releaseTimeout = 2 * time.Second

// AssignDriver picks the best eligible driver for an order and commits the assignment.
// Drivers lost to a concurrent assignment are excluded and selection is retried a bounded
// number of times before ErrNoDriverAvailable is reported.
func (uc *DispatchUC) AssignDriver(ctx context.Context, orderID string) (*models.AssignmentResult, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.AssignTimeout)
	defer cancel()

	excluded := make(map[string]struct{})
	var (
		result *models.AssignmentResult
		order  *models.Order
		driver *models.Driver
	)

	err := uc.retrier.Execute(ctx, func(ctx context.Context, attempt int) error {
		var err error
		order, err = uc.orderRepo.GetOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to get order: %w", err)
		}
		if !order.Assignable() {
			return fmt.Errorf("%w: order %s is %s", dispatch.ErrOrderNotAssignable, order.ID, order.Status)
		}

		var best models.AssignmentScore
		best, driver, err = uc.pickCandidate(ctx, order, excluded)
		if err != nil {
			return err
		}

		now := uc.now()
		if err := uc.driverDir.AssignOrder(ctx, best.DriverID, order.ID, now, uc.cfg.FreshnessWindow); err != nil {
			if errors.Is(err, dispatch.ErrAssignmentConflict) {
				excluded[best.DriverID] = struct{}{}
			}
			return err
		}

		if err := uc.orderRepo.MarkOutForDelivery(ctx, order.ID, best.DriverID); err != nil {
			uc.compensate(ctx, best.DriverID, order.ID)
			return err
		}

		result = &models.AssignmentResult{
			OrderID:    order.ID,
			DriverID:   best.DriverID,
			Score:      best.Score,
			DistanceKm: best.DistanceKm,
			Attempts:   attempt,
			AssignedAt: now,
		}
		return nil
	})

	if err != nil {
		var exhausted *retry.ExhaustedError
		if errors.As(err, &exhausted) {
			err = fmt.Errorf("%w: lost %d concurrent assignment races", dispatch.ErrNoDriverAvailable, exhausted.Attempts)
		}
		if errors.Is(err, dispatch.ErrNoDriverAvailable) {
			uc.publishFailed(ctx, orderID, err)
		}
		logger.WarnCtx(ctx, "Driver assignment failed",
			logger.String("order_id", orderID),
			logger.Err(err))
		return nil, err
	}

	logger.InfoCtx(ctx, "Driver assigned",
		logger.String("order_id", result.OrderID),
		logger.String("driver_id", result.DriverID),
		logger.Float64("score", result.Score),
		logger.Int("attempts", result.Attempts))

	uc.publishAssigned(ctx, result, order, driver)
	return result, nil
}

// pickCandidate builds the pool, scores it and returns the winner outside excluded
func (uc *DispatchUC) pickCandidate(ctx context.Context, order *models.Order, excluded map[string]struct{}) (models.AssignmentScore, *models.Driver, error) {
	now := uc.now()
	query := dispatch.DriverQuery{
		FreshnessWindow: uc.cfg.FreshnessWindow,
		Now:             now,
	}
	if uc.cfg.CandidateRadiusKm > 0 {
		restaurant := order.RestaurantLocation
		query.Near = &restaurant
		query.RadiusKm = uc.cfg.CandidateRadiusKm
	}

	endSegment := nrpkg.StartSegment(ctx, "dispatch.GetAvailableDrivers")
	drivers, err := uc.driverDir.GetAvailableDrivers(ctx, query)
	endSegment()
	if err != nil {
		return models.AssignmentScore{}, nil, fmt.Errorf("failed to get available drivers: %w", err)
	}

	pool := EligibleDrivers(drivers, now, uc.cfg.FreshnessWindow)
	byID := make(map[string]*models.Driver, len(pool))
	candidates := pool[:0]
	for _, d := range pool {
		if _, skip := excluded[d.ID]; !skip {
			candidates = append(candidates, d)
			byID[d.ID] = d
		}
	}

	best, err := SelectBest(ScoreDrivers(order, candidates, uc.cfg.Weights))
	if err != nil {
		return models.AssignmentScore{}, nil, fmt.Errorf("%w: %d eligible of %d reported", err, len(candidates), len(drivers))
	}
	return best, byID[best.DriverID], nil
}

func (uc *DispatchUC) compensate(ctx context.Context, driverID, orderID string) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	if err := uc.driverDir.ReleaseDriver(rctx, driverID, orderID); err != nil {
		logger.ErrorCtx(ctx, "Failed to release driver after order commit failure",
			logger.String("driver_id", driverID),
			logger.String("order_id", orderID),
			logger.Err(err))
	}
}

func (uc *DispatchUC) publishAssigned(ctx context.Context, result *models.AssignmentResult, order *models.Order, driver *models.Driver) {
	if uc.dispatchGW == nil {
		return
	}

	event := &models.OrderAssignedEvent{
		EventID:     uuid.New().String(),
		Assignment:  *result,
		Destination: order.Destination,
		Timestamp:   result.AssignedAt,
	}
	if driver != nil {
		event.DriverGeohash = utils.EncodeLocation(driver.Location, uc.cfg.GeohashPrecision)
	}

	if err := uc.dispatchGW.PublishOrderAssigned(ctx, event); err != nil {
		logger.ErrorCtx(ctx, "Failed to publish order assigned event",
			logger.String("order_id", result.OrderID),
			logger.Err(err))
	}
}

func (uc *DispatchUC) publishFailed(ctx context.Context, orderID string, cause error) {
	if uc.dispatchGW == nil {
		return
	}

	event := &models.DispatchFailedEvent{
		EventID:   uuid.New().String(),
		OrderID:   orderID,
		Reason:    cause.Error(),
		Timestamp: uc.now(),
	}
	if err := uc.dispatchGW.PublishDispatchFailed(context.WithoutCancel(ctx), event); err != nil {
		logger.ErrorCtx(ctx, "Failed to publish dispatch failed event",
			logger.String("order_id", orderID),
			logger.Err(err))
	}
}
