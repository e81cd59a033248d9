package repository

import (
	"context"

	"github.com/piresc/antar/internal/pkg/circuitbreaker"
	"github.com/piresc/antar/internal/pkg/logger"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/services/dispatch"
)

// BreakerCatalog guards a zone catalog with a circuit breaker.
// While the breaker is open, lookups are served by the fallback catalog when one is set.
type BreakerCatalog struct {
	primary  dispatch.ZoneCatalog
	fallback dispatch.ZoneCatalog
	breaker  *circuitbreaker.Breaker
}

// NewBreakerCatalog wraps primary; fallback may be nil
func NewBreakerCatalog(primary, fallback dispatch.ZoneCatalog, cfg circuitbreaker.Config, l *logger.ZapLogger) *BreakerCatalog {
	return &BreakerCatalog{
		primary:  primary,
		fallback: fallback,
		breaker:  circuitbreaker.New(cfg, l),
	}
}

// Breaker exposes the breaker for health reporting
func (c *BreakerCatalog) Breaker() *circuitbreaker.Breaker {
	return c.breaker
}

// GetZonesForRestaurant reads through the breaker
func (c *BreakerCatalog) GetZonesForRestaurant(ctx context.Context, restaurantID string) ([]*models.DeliveryZone, error) {
	var fallback func(context.Context) ([]*models.DeliveryZone, error)
	if c.fallback != nil {
		fallback = func(ctx context.Context) ([]*models.DeliveryZone, error) {
			return c.fallback.GetZonesForRestaurant(ctx, restaurantID)
		}
	}

	return circuitbreaker.Read(ctx, c.breaker,
		func(ctx context.Context) ([]*models.DeliveryZone, error) {
			return c.primary.GetZonesForRestaurant(ctx, restaurantID)
		},
		fallback)
}
