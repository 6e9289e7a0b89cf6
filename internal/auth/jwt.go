package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blogapi/internal/users"
)

// TokenValidity is how long an issued bearer token stays usable. Sessions are
// not stored server-side; signature and expiry are the whole check.
const TokenValidity = time.Hour

var errInvalidToken = errors.New("invalid token")

// Claims embeds the registered claims plus the identity fields handlers need
// without a user lookup.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
}

// FullName mirrors users.User.FullName for the token-derived identity.
func (c *Claims) FullName() string {
	return c.Firstname + " " + c.Lastname
}

// GenerateToken signs an HS256 token for the given user.
func GenerateToken(user *users.User, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID:    user.ID,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Email:     user.Email,
	})
	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the embedded claims.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}
