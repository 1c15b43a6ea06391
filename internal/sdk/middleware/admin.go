package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rajputmansi7/fitness-store/internal/services/token"
)

// RequireRole gates a route group on the role carried by the claims set
// by Authenticate. The check runs on every request; there is no session
// cache.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := Claims(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}

		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}

// RequireAdmin gates a route group on the administrator role.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(token.RoleAdmin)
}
