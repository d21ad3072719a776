// Package token issues and verifies the signed session tokens that
// carry a verified identity between requests. A token is
// self-contained: subject and expiry are embedded in the signed
// payload, and there is no server-side record to revoke or look up.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors distinguishing verification failures. Callers at
// the HTTP boundary collapse all of them into a single 401; the
// distinction exists for logging only.
var (
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

// Claims is the verified content of a session token.
type Claims struct {
	// Subject is the account identifier the token was issued for.
	Subject string
	// ExpiresAt is the absolute expiry, whole seconds since epoch.
	ExpiresAt time.Time
}

// Issue signs a token for subject, valid from now for ttl. Signing is
// HS256 and deterministic: identical inputs yield an identical token.
func Issue(subject string, now time.Time, ttl time.Duration, secret []byte) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature against secret and the embedded
// expiry against now (exactly: no clock-skew leeway). A token signed
// with a different secret fails the signature check before any claim
// is trusted.
func Verify(tokenString string, now time.Time, secret []byte) (Claims, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrSignatureInvalid
		default:
			return Claims{}, ErrMalformed
		}
	}
	return Claims{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}
