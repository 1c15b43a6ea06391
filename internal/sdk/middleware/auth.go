// Package middleware provides the Gin middleware chain for the service:
// request logging, CORS, token authentication and role gating.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rajputmansi7/fitness-store/internal/services/token"
)

const (
	bearerPrefix = "Bearer "
	claimsKey    = "claims"
)

var ErrNoClaims = errors.New("middleware: no claims in context")

// Authenticate extracts the bearer token, verifies it and stores the
// decoded claims in the request context. Requests without a token are
// rejected as distinct from requests with a bad or expired one.
func Authenticate(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}

		tokenString := strings.TrimPrefix(header, bearerPrefix)
		claims, err := tokens.Parse(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Claims returns the decoded claims set by Authenticate.
func Claims(c *gin.Context) (*token.Claims, error) {
	val, exists := c.Get(claimsKey)
	if !exists {
		return nil, ErrNoClaims
	}
	claims, ok := val.(*token.Claims)
	if !ok {
		return nil, ErrNoClaims
	}
	return claims, nil
}
