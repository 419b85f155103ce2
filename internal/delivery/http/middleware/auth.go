package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gin-gonic/gin"
)

// TokenVerifier resolves a bearer token to a user ID.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// RequireAuth rejects requests without a valid bearer token. On success it
// sets "user_id" and "token" on the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing or malformed authorization header",
			})
			return
		}

		userID, err := m.verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			status, message := http.StatusUnauthorized, "invalid token"
			switch {
			case errors.Is(err, domain.ErrTokenRevoked):
				message = "token revoked"
			case !errors.Is(err, domain.ErrInvalidToken):
				status, message = http.StatusInternalServerError, "failed to verify token"
				_ = c.Error(err)
			}
			c.AbortWithStatusJSON(status, gin.H{
				"error": message,
			})
			return
		}

		c.Set("user_id", userID)
		c.Set("token", token)
		c.Next()
	}
}

// OptionalAuth sets the identity when a valid token is present and lets the
// request through either way.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := extractToken(c); ok {
			if userID, err := m.verifier.VerifyToken(c.Request.Context(), token); err == nil {
				c.Set("user_id", userID)
				c.Set("token", token)
			}
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
