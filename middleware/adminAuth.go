package middleware

import (
	"net/http"
	"strings"

	"pestcontrol/models"
	"pestcontrol/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthVerifier validates a bearer token and returns the admin it belongs to.
type AuthVerifier interface {
	Verify(token string) (*models.AdminClaims, error)
}

// Context keys set on authenticated admin requests.
const (
	ContextAdminID = "adminId"
	ContextEmail   = "email"
	ContextRole    = "role"
)

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": msg})
}

// AdminAuthMiddleware requires a valid admin bearer token.
func AdminAuthMiddleware(verifier AuthVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			zap.L().Warn("Admin token rejected", zap.String("ip", getClientIP(c)), zap.Error(err))
			abortUnauthorized(c, err.Error())
			return
		}
		if claims.Role != models.RoleAdmin {
			abortUnauthorized(c, "Unauthorized admin access")
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// AdminFromContext returns the principal set by AdminAuthMiddleware.
func AdminFromContext(c *gin.Context) (models.AdminClaims, bool) {
	id := c.GetString(ContextAdminID)
	if id == "" {
		return models.AdminClaims{}, false
	}
	return models.AdminClaims{AdminID: id, Email: c.GetString(ContextEmail), Role: c.GetString(ContextRole)}, true
}

var _ AuthVerifier = (*utils.JWTVerifier)(nil)
