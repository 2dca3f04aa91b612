package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTokenIssuer = "storefront"

var ErrInvalidSessionToken = errors.New("invalid session token")

type SessionClaims struct {
	jwt.RegisteredClaims
}

func (c *SessionClaims) SessionID() string {
	return c.Subject
}

func GenerateSessionToken(secret, sessionID string, expiry time.Duration, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(expiry)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionTokenIssuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

func ValidateSessionToken(secret, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionTokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSessionToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidSessionToken
	}
	return claims, nil
}
