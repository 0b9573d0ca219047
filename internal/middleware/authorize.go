package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/api/internal/api"
	"fittrack/api/internal/models"
)

// RequireRoles must run after RequireAuth.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		req := CurrentRequester(c)
		if !req.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Envelope[any]{Message: msgNoToken})
			return
		}

		if _, ok := roleSet[req.User.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, api.Envelope[any]{Message: "Insufficient permissions for this action."})
			return
		}

		c.Next()
	}
}
