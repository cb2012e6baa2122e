package handlers

import (
	"net/http"

	"shop_backoffice/internal/access"
	"shop_backoffice/internal/middleware"
	"shop_backoffice/internal/services"
	"shop_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService  services.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the session
// cookie Secure and should be set in production.
func NewAuthHandler(as services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: as, secureCookie: secureCookie}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(services.AuthCookieName, value, maxAge, "/", "", h.secureCookie, true)
}

// Login handles user login and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, "Login", err)
		return
	}

	h.setSessionCookie(c, res.Token, int(utils.TokenTTL.Seconds()))
	c.JSON(http.StatusOK, res)
}

// Logout clears the session cookie and revokes the presented token. It
// succeeds without a session.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := services.TokenFromRequest(c.Request)
	h.setSessionCookie(c, "", -1)
	if token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			respondServiceError(c, "Logout", err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the current user with the client navigation rules for their role.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"landing":      access.LandingRoute(user.Role),
		"allowedPaths": access.AllowedPaths(user.Role),
	})
}

// UpdateProfile lets the current user change their own name, password and avatar.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.authService.UpdateProfile(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondServiceError(c, "UpdateProfile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
