package middleware

import (
	"shop_backoffice/internal/access"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/services"
	"shop_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// currentUserKey is the gin context key holding the authenticated *models.User.
const currentUserKey = "currentUser"

// AuthMiddleware resolves the user from the bearer header or session cookie.
// Every failure is the same 401 so callers cannot tell why.
func AuthMiddleware(auth services.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.ResolveUser(c.Request.Context(), c.Request)
		if user == nil {
			utils.RespondUnauthorized(c)
			return
		}

		// Set user information in the context for downstream handlers
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RoleAuthMiddleware allows the request only when the user's role is in allowed.
// It must run after AuthMiddleware.
func RoleAuthMiddleware(allowed access.RoleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			utils.RespondUnauthorized(c)
			return
		}
		if !access.IsAllowed(user.Role, allowed) {
			utils.LogDebug("access denied", map[string]interface{}{
				"user_id": user.ID, "role": user.Role, "path": c.FullPath(),
			})
			utils.RespondForbidden(c)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// SetCurrentUser stores user as the authenticated user of c.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(currentUserKey, user)
}
