package handlers

import (
	"net/http"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

const defaultUserPageLimit = 20

// UserHandler holds the user service.
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us services.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// ListUsers handles GET /users with role and search filters.
func (h *UserHandler) ListUsers(c *gin.Context) {
	p, ok := pagination(c, defaultUserPageLimit)
	if !ok {
		return
	}
	role, ok := enumQuery(c, "role", rolesAsStrings()...)
	if !ok {
		return
	}
	filters := models.UserFilters{Role: models.Role(role), Search: c.Query("search"), Page: p.Page, Limit: p.Limit}

	users, total, err := h.userService.ListUsers(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, "ListUsers", err)
		return
	}
	c.JSON(http.StatusOK, paginated("users", users, total, p))
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, "CreateUser", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// UpdateUser handles PUT /users/:id.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.UpdateUser(c.Request.Context(), actorID(c), id, req)
	if err != nil {
		respondServiceError(c, "UpdateUser", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeactivateUser handles DELETE /users/:id.
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.DeactivateUser(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondServiceError(c, "DeactivateUser", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deactivated", "user": user})
}

func rolesAsStrings() []string {
	out := make([]string, len(models.AllRoles))
	for i, r := range models.AllRoles {
		out[i] = string(r)
	}
	return out
}
