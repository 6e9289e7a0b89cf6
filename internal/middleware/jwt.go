// Package middleware carries the request guards shared by the route groups.
package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"blogapi/internal/apperr"
	"blogapi/internal/auth"
)

const claimsKey = "claims"

// RequireAuth verifies the bearer token and stashes the claims on the context.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := bearerClaims(c, secret)
			if err != nil {
				return err
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// OptionalAuth is RequireAuth for routes that also serve anonymous callers: a
// valid token attaches claims, no token passes through, a bad token is still
// rejected.
func OptionalAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			claims, err := bearerClaims(c, secret)
			if err != nil {
				return err
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the authenticated claims, or nil for anonymous requests.
func ClaimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	return claims
}

func bearerClaims(c echo.Context, secret []byte) (*auth.Claims, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return nil, apperr.New(apperr.ErrInvalidCredentials, "missing Authorization header")
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return nil, apperr.New(apperr.ErrInvalidCredentials, "invalid Authorization format")
	}
	claims, err := auth.ParseToken(header[len(prefix):], secret)
	if err != nil {
		return nil, apperr.New(apperr.ErrInvalidCredentials, "invalid or expired token")
	}
	return claims, nil
}
