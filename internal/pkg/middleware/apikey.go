package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/antar/internal/pkg/constants"
	"github.com/piresc/antar/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyMiddleware authenticates internal callers by the X-API-Key header.
// hashes maps a caller name to the bcrypt hash of its key. When allowed is
// non-empty only those callers are accepted.
func APIKeyMiddleware(hashes map[string]string, allowed ...string) echo.MiddlewareFunc {
	permitted := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		permitted[name] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(constants.APIKeyHeader)
			if key == "" {
				return utils.UnauthorizedResponse(c, "Missing API key")
			}

			caller, ok := matchAPIKey(hashes, key)
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid API key")
			}

			if len(permitted) > 0 && !permitted[caller] {
				return utils.ErrorResponseHandler(c, http.StatusForbidden, "Service not allowed")
			}

			c.Set(constants.ContextCallerService, caller)
			AddAttribute(c, "caller.service", caller)
			return next(c)
		}
	}
}

func matchAPIKey(hashes map[string]string, key string) (string, bool) {
	for caller, hash := range hashes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil {
			return caller, true
		}
	}
	return "", false
}
