package http

import (
	"github.com/labstack/echo/v4"
)

// RouteMiddlewares are the auth layers applied to each route group
type RouteMiddlewares struct {
	Driver   echo.MiddlewareFunc // JWT for the driver app
	Internal echo.MiddlewareFunc // API key for other services
	Quote    []echo.MiddlewareFunc
}

func orPass(m echo.MiddlewareFunc) echo.MiddlewareFunc {
	if m != nil {
		return m
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
}

// RegisterRoutes registers the dispatch HTTP routes
func (h *DispatchHandler) RegisterRoutes(e *echo.Echo, mw RouteMiddlewares) {
	v1 := e.Group("/v1")
	v1.POST("/fees/quote", h.QuoteFee, mw.Quote...)

	orders := v1.Group("/orders")
	orders.GET("/:orderID/fee", h.GetOrderFee)
	orders.GET("/:orderID/eta", h.GetEta)
	orders.GET("/:orderID/eta/stream", h.StreamEta)

	drivers := v1.Group("/drivers/me", orPass(mw.Driver))
	drivers.PUT("/location", h.UpdateLocation)
	drivers.PUT("/availability", h.SetAvailability)

	internal := e.Group("/internal", orPass(mw.Internal))
	internal.POST("/orders", h.CreateOrder)
	internal.POST("/orders/:orderID/assign", h.AssignDriver)
	internal.PUT("/drivers", h.UpsertDriver)
	internal.POST("/drivers/:driverID/release", h.ReleaseDriver)
}
