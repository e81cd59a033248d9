package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/piresc/antar/internal/pkg/logger"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/internal/utils"
)

// FeeDefaults is the policy applied when no zone contains the destination
type FeeDefaults struct {
	BaseFee          float64
	PerKmFee         float64
	EstimatedMinutes int
}

// ResolveFee computes the delivery fee and zone for an order at checkout time
func (uc *DispatchUC) ResolveFee(ctx context.Context, order *models.Order) (*models.FeeResult, error) {
	// validate before touching the catalog so bad input never reaches a collaborator
	if err := utils.ValidateLocation(order.RestaurantLocation); err != nil {
		return nil, err
	}
	if err := utils.ValidateLocation(order.Destination); err != nil {
		return nil, err
	}

	zones, err := uc.zoneCatalog.GetZonesForRestaurant(ctx, order.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load zones for restaurant %s: %w", order.RestaurantID, err)
	}

	result, err := ResolveZoneFee(order.RestaurantLocation, order.Destination, zones, uc.feeDefaults())
	if err != nil {
		return nil, err
	}

	zoneID := "default"
	if result.ZoneID != nil {
		zoneID = *result.ZoneID
	}
	logger.DebugCtx(ctx, "Resolved delivery fee",
		logger.String("order_id", order.ID),
		logger.String("zone_id", zoneID),
		logger.Float64("fee", result.Fee),
		logger.Float64("distance_km", result.DistanceKm))

	return result, nil
}

// ResolveOrderFee loads a stored order and resolves its fee
func (uc *DispatchUC) ResolveOrderFee(ctx context.Context, orderID string) (*models.FeeResult, error) {
	order, err := uc.orderRepo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return uc.ResolveFee(ctx, order)
}

func (uc *DispatchUC) feeDefaults() FeeDefaults {
	return FeeDefaults{
		BaseFee:          uc.cfg.DefaultBaseFee,
		PerKmFee:         uc.cfg.DefaultPerKmFee,
		EstimatedMinutes: uc.cfg.DefaultMinutes,
	}
}

// ResolveZoneFee picks the highest-priority zone containing destination, ties going to the
// first-defined zone, and prices the trip with it or with the defaults when no zone matches.
func ResolveZoneFee(restaurant, destination models.Location, zones []*models.DeliveryZone, defaults FeeDefaults) (*models.FeeResult, error) {
	distance, err := utils.Distance(restaurant, destination)
	if err != nil {
		return nil, err
	}

	zone := MatchZone(destination, zones)
	if zone == nil {
		return &models.FeeResult{
			Fee:              price(defaults.BaseFee, defaults.PerKmFee, distance),
			EstimatedMinutes: defaults.EstimatedMinutes,
			DistanceKm:       distance,
		}, nil
	}

	zoneID := zone.ID
	return &models.FeeResult{
		Fee:              price(zone.BaseFee, zone.PerKmFee, distance),
		ZoneID:           &zoneID,
		EstimatedMinutes: zone.EstimatedMinutes,
		DistanceKm:       distance,
	}, nil
}

// MatchZone returns the winning zone for point, or nil when no zone contains it
func MatchZone(point models.Location, zones []*models.DeliveryZone) *models.DeliveryZone {
	p := orb.Point{point.Longitude, point.Latitude}

	var best *models.DeliveryZone
	for _, z := range zones {
		if z == nil || !zoneContains(z, p) {
			continue
		}
		if best == nil ||
			z.Priority > best.Priority ||
			(z.Priority == best.Priority && z.DefinitionOrder < best.DefinitionOrder) ||
			(z.Priority == best.Priority && z.DefinitionOrder == best.DefinitionOrder && z.ID < best.ID) {
			best = z
		}
	}
	return best
}

func zoneContains(z *models.DeliveryZone, p orb.Point) bool {
	if len(z.Polygon) < 3 {
		return false
	}

	ring := make(orb.Ring, 0, len(z.Polygon)+1)
	for _, v := range z.Polygon {
		ring = append(ring, orb.Point{v.Longitude, v.Latitude})
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}

	return planar.PolygonContains(orb.Polygon{ring}, p)
}

// price never goes below zero and is rounded to cents
func price(base, perKm, distanceKm float64) float64 {
	fee := math.Max(base+perKm*distanceKm, 0)
	return math.Round(fee*100) / 100
}
