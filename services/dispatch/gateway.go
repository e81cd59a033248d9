package dispatch

import (
	"context"

	"github.com/piresc/antar/internal/pkg/models"
)

// DispatchGW publishes dispatch outcomes to downstream services
type DispatchGW interface {
	PublishOrderAssigned(ctx context.Context, event *models.OrderAssignedEvent) error
	PublishDispatchFailed(ctx context.Context, event *models.DispatchFailedEvent) error
}
