package gateway

import (
	"context"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/antar/internal/pkg/constants"
	"github.com/piresc/antar/internal/pkg/logger"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/services/dispatch"
)

// EventPublisher is satisfied by both the NATS client and the NSQ producer
type EventPublisher interface {
	PublishJSON(subject string, v interface{}) error
}

type dispatchGW struct {
	publisher EventPublisher
	broker    string
}

// NewDispatchGW creates a gateway that publishes dispatch outcomes through publisher.
// broker names the transport in logs and New Relic segments.
func NewDispatchGW(publisher EventPublisher, broker string) dispatch.DispatchGW {
	return &dispatchGW{
		publisher: publisher,
		broker:    broker,
	}
}

func (g *dispatchGW) publish(ctx context.Context, subject string, event interface{}) error {
	if txn := newrelic.FromContext(ctx); txn != nil {
		seg := newrelic.MessageProducerSegment{
			StartTime:       txn.StartSegmentNow(),
			Library:         g.broker,
			DestinationType: newrelic.MessageTopic,
			DestinationName: subject,
		}
		defer seg.End()
	}

	if err := g.publisher.PublishJSON(subject, event); err != nil {
		return fmt.Errorf("failed to publish %s via %s: %w", subject, g.broker, err)
	}

	logger.DebugCtx(ctx, "Published dispatch event",
		logger.String("subject", subject),
		logger.String("broker", g.broker))
	return nil
}

// PublishOrderAssigned announces a committed assignment
func (g *dispatchGW) PublishOrderAssigned(ctx context.Context, event *models.OrderAssignedEvent) error {
	return g.publish(ctx, constants.SubjectOrderAssigned, event)
}

// PublishDispatchFailed announces that no driver could be assigned
func (g *dispatchGW) PublishDispatchFailed(ctx context.Context, event *models.DispatchFailedEvent) error {
	return g.publish(ctx, constants.SubjectDispatchFailed, event)
}
