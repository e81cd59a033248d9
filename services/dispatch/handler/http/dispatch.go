package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/antar/internal/pkg/circuitbreaker"
	"github.com/piresc/antar/internal/pkg/logger"
	"github.com/piresc/antar/internal/pkg/middleware"
	"github.com/piresc/antar/internal/pkg/models"
	wspkg "github.com/piresc/antar/internal/pkg/websocket"
	"github.com/piresc/antar/internal/utils"
	"github.com/piresc/antar/services/dispatch"
)

// DispatchHandler serves the fee, assignment and ETA endpoints
type DispatchHandler struct {
	dispatchUC     dispatch.DispatchUC
	assignTimeout  time.Duration
	streamInterval time.Duration
	streams        *wspkg.Manager
}

// NewDispatchHandler creates a new dispatch HTTP handler
func NewDispatchHandler(dispatchUC dispatch.DispatchUC, cfg *models.Config) *DispatchHandler {
	h := &DispatchHandler{
		dispatchUC:     dispatchUC,
		assignTimeout:  cfg.Dispatch.AssignTimeout,
		streamInterval: cfg.Dispatch.EtaStreamInterval,
		streams:        wspkg.NewManager(),
	}
	if h.assignTimeout <= 0 {
		h.assignTimeout = 5 * time.Second
	}
	if h.streamInterval <= 0 {
		h.streamInterval = 15 * time.Second
	}
	return h
}

// CloseStreams ends every open ETA stream
func (h *DispatchHandler) CloseStreams() {
	h.streams.CloseAll()
}

// QuoteFeeRequest prices a delivery before the order exists
type QuoteFeeRequest struct {
	RestaurantID       string          `json:"restaurant_id" validate:"required"`
	RestaurantLocation models.Location `json:"restaurant_location"`
	Destination        models.Location `json:"destination"`
}

// CreateOrderRequest registers an order so it can be assigned
type CreateOrderRequest struct {
	ID                 string               `json:"id" validate:"required"`
	RestaurantID       string               `json:"restaurant_id" validate:"required"`
	RestaurantLocation models.Location      `json:"restaurant_location"`
	Destination        models.Location      `json:"destination"`
	Priority           models.OrderPriority `json:"priority" validate:"omitempty,oneof=normal high urgent"`
}

// QuoteFee resolves the fee and zone for a restaurant and destination
func (h *DispatchHandler) QuoteFee(c echo.Context) error {
	var req QuoteFeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.dispatchUC.ResolveFee(c.Request().Context(), &models.Order{
		RestaurantID:       req.RestaurantID,
		RestaurantLocation: req.RestaurantLocation,
		Destination:        req.Destination,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Fee resolved", result)
}

// GetOrderFee resolves the fee of a stored order
func (h *DispatchHandler) GetOrderFee(c echo.Context) error {
	orderID := c.Param("orderID")
	middleware.SetOrderID(c, orderID)

	result, err := h.dispatchUC.ResolveOrderFee(c.Request().Context(), orderID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Fee resolved", result)
}

// CreateOrder stores a new pending order
func (h *DispatchHandler) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order := &models.Order{
		ID:                 req.ID,
		RestaurantID:       req.RestaurantID,
		RestaurantLocation: req.RestaurantLocation,
		Destination:        req.Destination,
		Priority:           req.Priority,
	}
	if err := h.dispatchUC.CreateOrder(c.Request().Context(), order); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, "Order created", order)
}

// AssignDriver picks and commits the best driver for an order
func (h *DispatchHandler) AssignDriver(c echo.Context) error {
	orderID := c.Param("orderID")
	middleware.SetOrderID(c, orderID)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.assignTimeout)
	defer cancel()

	result, err := h.dispatchUC.AssignDriver(ctx, orderID)
	if err != nil {
		return respondError(c, err)
	}

	middleware.SetDriverID(c, result.DriverID)
	return utils.SuccessResponse(c, http.StatusOK, "Driver assigned", result)
}

// GetEta returns the current ETA of an order in transit
func (h *DispatchHandler) GetEta(c echo.Context) error {
	orderID := c.Param("orderID")
	middleware.SetOrderID(c, orderID)

	result, err := h.dispatchUC.EstimateEta(c.Request().Context(), orderID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "ETA estimated", result)
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		msg := err.Error()
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if s, ok := httpErr.Message.(string); ok {
				msg = s
			}
		}
		return utils.BadRequestResponse(c, msg)
	}
	return nil
}

// statusFor maps dispatch errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, dispatch.ErrInvalidCoordinate),
		errors.Is(err, dispatch.ErrInvalidAvailability),
		errors.Is(err, dispatch.ErrInvalidDriver):
		return http.StatusBadRequest
	case errors.Is(err, dispatch.ErrOrderNotFound),
		errors.Is(err, dispatch.ErrDriverNotFound):
		return http.StatusNotFound
	case errors.Is(err, dispatch.ErrNoDriverAvailable),
		errors.Is(err, dispatch.ErrAssignmentConflict),
		errors.Is(err, dispatch.ErrOrderExists),
		errors.Is(err, dispatch.ErrOrderNotAssignable),
		errors.Is(err, dispatch.ErrDriverBusy):
		return http.StatusConflict
	case errors.Is(err, dispatch.ErrDriverLocationStale),
		errors.Is(err, dispatch.ErrOrderNotInTransit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		middleware.NoticeError(c, err)
		logger.ErrorCtx(c.Request().Context(), "Dispatch request failed",
			logger.String("path", c.Path()),
			logger.Err(err))
		return utils.ErrorResponseHandler(c, status, http.StatusText(status))
	}
	return utils.ErrorResponseHandler(c, status, err.Error())
}
