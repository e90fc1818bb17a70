package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/homsent/homsent-chef/backend/internal/service"
)

// ScopeIDKey is the gin context key holding the authenticated scope id.
const ScopeIDKey = "scope_id"

// TokenValidator is an interface for validating scope tokens
type TokenValidator interface {
	ValidateToken(token string) (*service.ScopeClaims, error)
}

// ScopeMiddleware creates a middleware that validates scope tokens
func ScopeMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(ScopeIDKey, claims.ScopeID)
		c.Next()
	}
}

// ScopeID returns the scope id stored by ScopeMiddleware.
func ScopeID(c *gin.Context) string {
	return c.GetString(ScopeIDKey)
}
