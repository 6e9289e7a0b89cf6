package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapi/internal/users"
)

func testUser() *users.User {
	return &users.User{
		ID:        "user-1",
		Firstname: "Jane",
		Lastname:  "Doe",
		Email:     "jane@example.com",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")

	token, err := GenerateToken(testUser(), secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Jane Doe", claims.FullName())
	assert.Equal(t, "jane@example.com", claims.Email)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testUser(), []byte("secret"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other"))
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	secret := []byte("secret")
	token, err := GenerateToken(testUser(), secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", []byte("secret"))
	assert.Error(t, err)
}
