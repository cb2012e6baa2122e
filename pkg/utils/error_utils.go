package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldError reports one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is the single error envelope returned by every endpoint.
type APIError struct {
	StatusCode int          `json:"-"`
	Message    string       `json:"error"`
	Details    []FieldError `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError instance
func NewAPIError(statusCode int, message string, details []FieldError) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Details:    details,
	}
}

// Client facing messages. Authentication failures are deliberately uniform.
const (
	MsgValidationFailed = "Validation failed"
	MsgUnauthorized     = "Unauthorized"
	MsgForbidden        = "Forbidden"
	MsgNotFound         = "Not found"
	MsgMethodNotAllowed = "Method not allowed"
	MsgInternal         = "Internal server error"
)

// RespondWithError sends the error envelope and aborts the handler chain.
func RespondWithError(c *gin.Context, err *APIError) {
	c.AbortWithStatusJSON(err.StatusCode, err)
}

// RespondValidationFailed sends a 400 with field details.
func RespondValidationFailed(c *gin.Context, details []FieldError) {
	RespondWithError(c, NewAPIError(http.StatusBadRequest, MsgValidationFailed, details))
}

// RespondUnauthorized sends a 401.
func RespondUnauthorized(c *gin.Context) {
	RespondWithError(c, NewAPIError(http.StatusUnauthorized, MsgUnauthorized, nil))
}

// RespondForbidden sends a 403.
func RespondForbidden(c *gin.Context) {
	RespondWithError(c, NewAPIError(http.StatusForbidden, MsgForbidden, nil))
}

// RespondNotFound sends a 404 naming the missing resource.
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = MsgNotFound
	}
	RespondWithError(c, NewAPIError(http.StatusNotFound, message, nil))
}

// RespondMethodNotAllowed sends a 405.
func RespondMethodNotAllowed(c *gin.Context) {
	RespondWithError(c, NewAPIError(http.StatusMethodNotAllowed, MsgMethodNotAllowed, nil))
}

// RespondInternal sends a 500 without leaking the cause.
func RespondInternal(c *gin.Context) {
	RespondWithError(c, NewAPIError(http.StatusInternalServerError, MsgInternal, nil))
}
