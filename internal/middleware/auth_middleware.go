package middleware

import (
	"net/http"
	"strings"

	"geobike_backend/internal/access"
	"geobike_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key holding the *access.Session.
const SessionKey = "session"

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", err.Error()))
			return
		}

		c.Set(SessionKey, &access.Session{
			UserID:     claims.UserID,
			Email:      claims.Email,
			Role:       claims.Role,
			CustomerID: claims.CustomerID,
			StaffID:    claims.StaffID,
		})
		c.Next()
	}
}

// RoleAuthMiddleware admits sessions whose role is in allowedRoles. With no
// roles given, any authenticated session passes.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	var roles []string
	if len(allowedRoles) > 0 {
		roles = allowedRoles
	}
	return func(c *gin.Context) {
		decision := access.Evaluate(CurrentSession(c), roles)
		if decision.Allowed {
			c.Next()
			return
		}
		if decision.Redirect == access.RedirectLogin {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required", decision.Redirect))
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You do not have permission to access this resource", decision.Redirect))
	}
}

// CurrentSession returns the session stored by AuthMiddleware, or nil.
func CurrentSession(c *gin.Context) *access.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*access.Session)
	return session
}
