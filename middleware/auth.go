package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/authwindow/auth-service/internal/token"
)

// subjectKey is the gin context key under which the gate stores the
// verified token subject.
const subjectKey = "auth.subject"

// RequireAuth verifies the bearer token on every request before the
// downstream handler runs. Three outcomes:
//
//  1. No Authorization header → 401, request aborted.
//  2. Header present but the token fails verification (malformed,
//     wrong signature, expired) → 401. The failure reason is logged,
//     never sent to the client.
//  3. Verification succeeds → the subject claim is attached to the
//     context and the chain continues.
//
// The gate trusts the token alone and never consults the user
// directory: a subject whose account has since disappeared still
// passes here and is handled downstream. Intentional — tokens are
// self-contained and there is no revocation store.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header"})
			return
		}

		raw, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header"})
			return
		}

		claims, err := token.Verify(raw, time.Now(), secret)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("Token verification failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(subjectKey, claims.Subject)
		c.Next()
	}
}

// SubjectFromContext returns the verified subject stored by
// RequireAuth, or false when the request did not pass the gate.
func SubjectFromContext(c *gin.Context) (string, bool) {
	subject, ok := c.Get(subjectKey)
	if !ok {
		return "", false
	}
	s, ok := subject.(string)
	return s, ok && s != ""
}
