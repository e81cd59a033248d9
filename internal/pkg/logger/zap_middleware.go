package logger

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ZapEchoMiddleware logs every request through the given logger.
// It runs after nrecho so the transaction is already in the request context.
func ZapEchoMiddleware(l *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())

			start := time.Now()
			path := c.Request().URL.Path
			if raw := c.Request().URL.RawQuery; raw != "" {
				path = path + "?" + raw
			}

			err := next(c)
			if err != nil {
				// let echo write the response so the logged status is final
				c.Error(err)
			}

			latency := time.Since(start)

			subject := "anonymous"
			if id := c.Get("driver_id"); id != nil {
				subject = fmt.Sprintf("driver:%v", id)
			} else if svc := c.Get("caller_service"); svc != nil {
				subject = fmt.Sprintf("service:%v", svc)
			}

			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			if txn != nil {
				txn.AddAttribute("subject", subject)
				txn.AddAttribute("request_id", requestID)
				if err != nil {
					txn.NoticeError(err)
				}
			}

			l.LogHTTPRequest(txn, c.Request().Method, path, c.RealIP(), subject, requestID, c.Response().Status, latency, err)
			return nil
		}
	}
}
