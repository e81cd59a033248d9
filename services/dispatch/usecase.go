package dispatch

import (
	"context"

	"github.com/piresc/antar/internal/pkg/models"
)

// DispatchUC is the fee, assignment and ETA business logic
type DispatchUC interface {
	ResolveFee(ctx context.Context, order *models.Order) (*models.FeeResult, error)
	ResolveOrderFee(ctx context.Context, orderID string) (*models.FeeResult, error)
	AssignDriver(ctx context.Context, orderID string) (*models.AssignmentResult, error)
	EstimateEta(ctx context.Context, orderID string) (*models.EtaResult, error)

	CreateOrder(ctx context.Context, order *models.Order) error
	UpsertDriver(ctx context.Context, driver *models.Driver) error
	UpdateDriverLocation(ctx context.Context, event models.DriverLocationEvent) error
	SetDriverAvailability(ctx context.Context, event models.DriverAvailabilityEvent) error
	ReleaseDriver(ctx context.Context, driverID, orderID string) error
}
