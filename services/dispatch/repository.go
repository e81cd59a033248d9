package dispatch

import (
	"context"
	"time"

	"github.com/piresc/antar/internal/pkg/models"
)

// DriverQuery narrows the candidate pool returned by the driver directory
type DriverQuery struct {
	FreshnessWindow time.Duration
	Now             time.Time
	// Near and RadiusKm enable a geo prefilter; a nil Near or zero radius disables it
	Near     *models.Location
	RadiusKm float64
}

// DriverDirectory holds driver dispatch state and guards per-driver mutations
type DriverDirectory interface {
	GetAvailableDrivers(ctx context.Context, query DriverQuery) ([]*models.Driver, error)
	GetDriver(ctx context.Context, driverID string) (*models.Driver, error)
	UpsertDriver(ctx context.Context, driver *models.Driver) error
	UpdateLocation(ctx context.Context, driverID string, location models.Location, geohash string) error
	SetAvailability(ctx context.Context, driverID string, availability models.DriverAvailability) error

	// AssignOrder re-validates eligibility under the driver's guard and marks the driver busy with the order.
	// It returns ErrAssignmentConflict when the driver or the order was taken concurrently.
	AssignOrder(ctx context.Context, driverID, orderID string, now time.Time, freshness time.Duration) error
	// ReleaseDriver frees a driver holding orderID; it is a no-op when the driver holds another order
	ReleaseDriver(ctx context.Context, driverID, orderID string) error
}

// ZoneCatalog supplies the delivery zones configured for a restaurant
type ZoneCatalog interface {
	GetZonesForRestaurant(ctx context.Context, restaurantID string) ([]*models.DeliveryZone, error)
}

// OrderRepo reads orders and applies the out-for-delivery transition
type OrderRepo interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	// MarkOutForDelivery sets the driver and status only while the order is still unassigned.
	// It returns ErrAssignmentConflict otherwise.
	MarkOutForDelivery(ctx context.Context, orderID, driverID string) error
}
