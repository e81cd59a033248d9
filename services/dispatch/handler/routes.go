package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/antar/internal/pkg/models"
	natspkg "github.com/piresc/antar/internal/pkg/nats"
	"github.com/piresc/antar/services/dispatch"
	httpHandler "github.com/piresc/antar/services/dispatch/handler/http"
	natsHandler "github.com/piresc/antar/services/dispatch/handler/nats"
)

// Handler combines the HTTP and NATS handlers of the dispatcher
type Handler struct {
	dispatchHTTP *httpHandler.DispatchHandler
	dispatchNATS *natsHandler.DispatchHandler
}

// NewHandler creates a new combined handler
func NewHandler(
	dispatchUC dispatch.DispatchUC,
	natsClient *natspkg.Client,
	nrApp *newrelic.Application,
	cfg *models.Config,
) *Handler {
	return &Handler{
		dispatchHTTP: httpHandler.NewDispatchHandler(dispatchUC, cfg),
		dispatchNATS: natsHandler.NewDispatchHandler(dispatchUC, natsClient, nrApp),
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo, mw httpHandler.RouteMiddlewares) {
	h.dispatchHTTP.RegisterRoutes(e, mw)
}

// InitNATSConsumers initializes all NATS consumers
func (h *Handler) InitNATSConsumers() error {
	return h.dispatchNATS.InitNATSConsumers()
}

// Close stops consuming NATS messages and ends open ETA streams
func (h *Handler) Close() {
	h.dispatchNATS.Close()
	h.dispatchHTTP.CloseStreams()
}
