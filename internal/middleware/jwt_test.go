package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapi/internal/apperr"
	"blogapi/internal/auth"
	"blogapi/internal/users"
)

var testSecret = []byte("secret")

func issueToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(&users.User{
		ID: "u1", Firstname: "Jane", Lastname: "Doe", Email: "jane@example.com",
	}, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func run(mw echo.MiddlewareFunc, header string) (*auth.Claims, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var seen *auth.Claims
	err := mw(func(c echo.Context) error {
		seen = ClaimsFrom(c)
		return nil
	})(c)
	return seen, err
}

func TestRequireAuth(t *testing.T) {
	mw := RequireAuth(testSecret)

	claims, err := run(mw, "Bearer "+issueToken(t))
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, "u1", claims.UserID)

	_, err = run(mw, "")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = run(mw, "Token abc")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = run(mw, "Bearer garbage")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestOptionalAuth(t *testing.T) {
	mw := OptionalAuth(testSecret)

	// Anonymous passes through with no claims.
	claims, err := run(mw, "")
	require.NoError(t, err)
	assert.Nil(t, claims)

	claims, err = run(mw, "Bearer "+issueToken(t))
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, "u1", claims.UserID)

	// A bad token is still rejected rather than downgraded to anonymous.
	_, err = run(mw, "Bearer garbage")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}
