package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/piresc/antar/internal/pkg/constants"
	jwtpkg "github.com/piresc/antar/internal/pkg/jwt"
	"github.com/piresc/antar/internal/utils"
)

// JWTMiddleware validates the driver bearer token and stores the driver ID in the context
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			claims, err := jwtpkg.ValidateToken(parts[1], secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid or expired token")
			}

			c.Set(constants.ContextDriverID, claims.DriverID)
			SetDriverID(c, claims.DriverID)
			return next(c)
		}
	}
}

// DriverID returns the authenticated driver, or "" outside JWT-protected routes
func DriverID(c echo.Context) string {
	id, _ := c.Get(constants.ContextDriverID).(string)
	return id
}
