package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/antar/internal/pkg/constants"
	"github.com/piresc/antar/internal/pkg/logger"
	"github.com/piresc/antar/internal/pkg/models"
	natspkg "github.com/piresc/antar/internal/pkg/nats"
	"github.com/piresc/antar/internal/pkg/validation"
	"github.com/piresc/antar/services/dispatch"
)

// DispatchHandler consumes driver and order events for the dispatcher
type DispatchHandler struct {
	dispatchUC dispatch.DispatchUC
	natsClient *natspkg.Client
	nrApp      *newrelic.Application
	validator  *validation.Validator
	subs       []*nats.Subscription
}

// NewDispatchHandler creates a new dispatch NATS handler
func NewDispatchHandler(dispatchUC dispatch.DispatchUC, client *natspkg.Client, nrApp *newrelic.Application) *DispatchHandler {
	return &DispatchHandler{
		dispatchUC: dispatchUC,
		natsClient: client,
		nrApp:      nrApp,
		validator:  validation.New(),
		subs:       make([]*nats.Subscription, 0),
	}
}

// InitNATSConsumers subscribes every dispatcher consumer in the shared queue group
func (h *DispatchHandler) InitNATSConsumers() error {
	consumers := []struct {
		subject string
		handle  func(ctx context.Context, data []byte) error
	}{
		{constants.SubjectDriverLocation, h.handleDriverLocation},
		{constants.SubjectDriverAvailability, h.handleDriverAvailability},
		{constants.SubjectDispatchRequest, h.handleDispatchRequest},
		{constants.SubjectOrderClosed, h.handleOrderClosed},
	}

	for _, consumer := range consumers {
		consumer := consumer
		sub, err := h.natsClient.QueueSubscribe(consumer.subject, constants.QueueDispatcher, func(msg *nats.Msg) {
			h.run(msg.Subject, msg.Data, consumer.handle)
		})
		if err != nil {
			h.Close()
			return fmt.Errorf("failed to subscribe to %s: %w", consumer.subject, err)
		}
		h.subs = append(h.subs, sub)
	}

	logger.Info("NATS consumers initialized", logger.Int("subscriptions", len(h.subs)))
	return nil
}

// run runs a handler inside a New Relic background transaction
func (h *DispatchHandler) run(subject string, data []byte, handle func(context.Context, []byte) error) {
	txn := h.nrApp.StartTransaction("nats/" + subject)
	defer txn.End()
	ctx := newrelic.NewContext(context.Background(), txn)

	if err := handle(ctx, data); err != nil {
		txn.NoticeError(err)
		logger.ErrorCtx(ctx, "Error handling NATS message",
			logger.String("subject", subject),
			logger.Err(err))
	}
}

func (h *DispatchHandler) decode(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if err := h.validator.Struct(v); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}
	return nil
}

func (h *DispatchHandler) handleDriverLocation(ctx context.Context, data []byte) error {
	var event models.DriverLocationEvent
	if err := h.decode(data, &event); err != nil {
		return err
	}
	return h.dispatchUC.UpdateDriverLocation(ctx, event)
}

func (h *DispatchHandler) handleDriverAvailability(ctx context.Context, data []byte) error {
	var event models.DriverAvailabilityEvent
	if err := h.decode(data, &event); err != nil {
		return err
	}
	return h.dispatchUC.SetDriverAvailability(ctx, event)
}

func (h *DispatchHandler) handleDispatchRequest(ctx context.Context, data []byte) error {
	var event models.DispatchRequestEvent
	if err := h.decode(data, &event); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Received dispatch request", logger.String("order_id", event.OrderID))

	result, err := h.dispatchUC.AssignDriver(ctx, event.OrderID)
	if err != nil {
		// the use case has already published dispatch.failed
		if errors.Is(err, dispatch.ErrNoDriverAvailable) {
			logger.WarnCtx(ctx, "No driver available for order", logger.String("order_id", event.OrderID))
			return nil
		}
		return err
	}

	logger.InfoCtx(ctx, "Order assigned from dispatch request",
		logger.String("order_id", result.OrderID),
		logger.String("driver_id", result.DriverID),
		logger.Int("attempts", result.Attempts))
	return nil
}

func (h *DispatchHandler) handleOrderClosed(ctx context.Context, data []byte) error {
	var event models.OrderClosedEvent
	if err := h.decode(data, &event); err != nil {
		return err
	}
	return h.dispatchUC.ReleaseDriver(ctx, event.DriverID, event.OrderID)
}

// Close unsubscribes from all NATS subscriptions
func (h *DispatchHandler) Close() {
	for _, sub := range h.subs {
		if err := sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe", logger.String("subject", sub.Subject), logger.Err(err))
		}
	}
	h.subs = nil
}
