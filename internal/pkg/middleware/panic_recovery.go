package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/antar/internal/pkg/logger"
)

// PanicRecoveryMiddleware turns a handler panic into a 500 and logs it with its stack
func PanicRecoveryMiddleware(l *logger.ZapLogger) echo.MiddlewareFunc {
	if l == nil {
		panic("PanicRecoveryMiddleware requires a logger")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					handlePanic(c, r, l)
					err = nil
				}
			}()
			return next(c)
		}
	}
}

func handlePanic(c echo.Context, r interface{}, l *logger.ZapLogger) {
	stack := string(debug.Stack())
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	panicType := fmt.Sprintf("%T", r)

	subject := "anonymous"
	if id := DriverID(c); id != "" {
		subject = "driver:" + id
	}

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.NoticeError(newrelic.Error{
			Message: fmt.Sprintf("panic recovered: %v", r),
			Class:   "PanicError",
			Attributes: map[string]interface{}{
				"panic.type":  panicType,
				"http.method": c.Request().Method,
				"http.path":   c.Request().URL.Path,
				"request_id":  requestID,
			},
		})
		txn.AddAttribute("panic.recovered", true)
	}

	l.WithNewRelicContext(txn).Error("Panic recovered during request processing",
		logger.Any("panic_value", r),
		logger.String("panic_type", panicType),
		logger.String("stack_trace", stack),
		logger.String("method", c.Request().Method),
		logger.String("path", c.Request().URL.Path),
		logger.String("client_ip", c.RealIP()),
		logger.String("subject", subject),
		logger.String("request_id", requestID),
	)

	if c.Response().Committed {
		return
	}
	if err := c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error":      "Internal Server Error",
		"message":    "An unexpected error occurred while processing your request",
		"request_id": requestID,
	}); err != nil {
		_ = c.String(http.StatusInternalServerError, "Internal Server Error")
	}
}
