package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"warehouseManagement/models"
)

const ctxPrincipalKey = "auth.principal"

// RequireAuth validates the Bearer token on every request and stashes the
// resulting Principal on the gin context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := ParseFromHeader(c.GetHeader("Authorization"), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Missing or invalid access token",
				},
			})
			return
		}
		c.Set(ctxPrincipalKey, p)
		c.Next()
	}
}

// RequireRole gates a route group on an exact role match. The request is
// rejected before any handler runs, so gated data is never returned.
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Missing identity context",
				},
			})
			return
		}
		if p.Role != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "admin_only",
					"message": "Admin access only",
				},
			})
			return
		}
		c.Next()
	}
}

// PrincipalFromContext retrieves the principal stored by RequireAuth.
func PrincipalFromContext(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(ctxPrincipalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}
