package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vie2206/levelup-backend/internal/models"
)

// TokenValidity is how long an issued session token stays usable.
const TokenValidity = 7 * 24 * time.Hour

// ErrInvalidToken is returned when a token fails signature or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the session claims embedded in a bearer token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// TokenIssuer mints and verifies stateless HS256 session tokens. Validity
// is entirely a function of the token, the secret and the clock; nothing
// is stored server-side and nothing can be revoked before expiry.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue signs a token for the user with a fixed 7-day expiry.
func (i *TokenIssuer) Issue(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenValidity)),
		},
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	return token.SignedString(i.secret)
}

// Verify parses and checks the token, returning its claims.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
