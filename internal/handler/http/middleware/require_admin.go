package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/service"
)

// RequireAdmin gates a route group on the access gate. It must run after
// AuthMiddleware; an unresolved identity is a 401, a resolved identity
// without the admin role is a 403.
func RequireAdmin(authz service.Authorizer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := Identity(c)
		if identity == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "caller identity is required",
				"code":  "UNAUTHORIZED",
			})
			return
		}

		if !authz.IsAuthorizedAdmin(c.Request.Context(), identity) {
			logger.Warn("admin route denied",
				zap.String("identity", identity),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "admin role required",
				"code":  "FORBIDDEN",
			})
			return
		}

		c.Next()
	}
}
