package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/piresc/antar/internal/pkg/models"
)

// ErrMissingDriverID is returned for a well-signed token that names no driver
var ErrMissingDriverID = errors.New("token has no driver_id claim")

// Claims are the claims carried by a driver app token
type Claims struct {
	DriverID string `json:"driver_id"`
	jwt.RegisteredClaims
}

// GenerateToken signs a driver token with the configured secret, issuer and lifetime
func GenerateToken(driverID string, cfg *models.Config) (string, int64, error) {
	expirationTime := time.Now().Add(time.Duration(cfg.JWT.Expiration) * time.Minute)

	claims := Claims{
		DriverID: driverID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.JWT.Issuer,
			Subject:   driverID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return "", 0, err
	}

	return tokenString, claims.ExpiresAt.Unix(), nil
}

// ValidateToken parses an HS256 token and returns its claims
func ValidateToken(tokenString string, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.DriverID == "" {
		return nil, ErrMissingDriverID
	}

	return claims, nil
}
