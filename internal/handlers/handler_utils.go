package handlers

import (
	"errors"
	"net/http"

	"shop_backoffice/internal/middleware"
	"shop_backoffice/internal/services"
	"shop_backoffice/pkg/utils"
	"shop_backoffice/pkg/validator"

	"github.com/gin-gonic/gin"
)

// notFoundMessages maps each service not-found sentinel to its client message.
var notFoundMessages = map[error]string{
	services.ErrUserNotFound:    "User not found",
	services.ErrProductNotFound: "Product not found",
	services.ErrOrderNotFound:   "Order not found",
	services.ErrChargeNotFound:  "Charge not found",
	services.ErrAdsCostNotFound: "Ads cost not found",
	services.ErrSalaryNotFound:  "Salary not found",
}

// toAPIError maps a service error to exactly one client error.
func toAPIError(err error) *utils.APIError {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return utils.NewAPIError(http.StatusBadRequest, utils.MsgValidationFailed, verr.Fields)
	}
	if errors.Is(err, services.ErrInvalidCredentials) {
		return utils.NewAPIError(http.StatusUnauthorized, "Invalid phone or password", nil)
	}
	for sentinel, msg := range notFoundMessages {
		if errors.Is(err, sentinel) {
			return utils.NewAPIError(http.StatusNotFound, msg, nil)
		}
	}
	return utils.NewAPIError(http.StatusInternalServerError, utils.MsgInternal, nil)
}

// respondServiceError logs unexpected failures and sends the mapped error.
func respondServiceError(c *gin.Context, op string, err error) {
	apiErr := toAPIError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		utils.LogError(err, op+": unexpected error")
	}
	utils.RespondWithError(c, apiErr)
}

// bindJSON binds and validates the request body, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.RespondValidationFailed(c, validator.FieldErrors(err))
		return false
	}
	return true
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := utils.ParseID(c.Param(name))
	if err != nil {
		utils.RespondValidationFailed(c, []utils.FieldError{{Field: name, Message: "must be a positive integer"}})
		return 0, false
	}
	return id, true
}

// pagination parses page and limit from the query string.
func pagination(c *gin.Context, defaultLimit int) (utils.Pagination, bool) {
	p, errs := utils.ParsePagination(c.Query("page"), c.Query("limit"), defaultLimit)
	if len(errs) > 0 {
		utils.RespondValidationFailed(c, errs)
		return p, false
	}
	return p, true
}

// paginated renders a list page under key.
func paginated(key string, list interface{}, total int, p utils.Pagination) gin.H {
	return gin.H{
		key:          list,
		"total":      total,
		"page":       p.Page,
		"limit":      p.Limit,
		"totalPages": utils.TotalPages(total, p.Limit),
	}
}

// actorID is the id of the authenticated caller.
func actorID(c *gin.Context) int64 {
	if u := middleware.CurrentUser(c); u != nil {
		return u.ID
	}
	return 0
}

// enumQuery validates an optional enum query parameter.
func enumQuery(c *gin.Context, name string, allowed ...string) (string, bool) {
	v := c.Query(name)
	if v == "" {
		return "", true
	}
	for _, a := range allowed {
		if v == a {
			return v, true
		}
	}
	utils.RespondValidationFailed(c, []utils.FieldError{{Field: name, Message: "is not a valid value"}})
	return "", false
}

// NoRoute answers unknown paths with the error envelope.
func NoRoute(c *gin.Context) {
	utils.RespondNotFound(c, "")
}

// NoMethod answers a known path called with the wrong method.
func NoMethod(c *gin.Context) {
	utils.RespondMethodNotAllowed(c)
}
