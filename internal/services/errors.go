package services

import (
	"errors"
	"strings"
	"time"

	"shop_backoffice/pkg/utils"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrChargeNotFound     = errors.New("charge not found")
	ErrAdsCostNotFound    = errors.New("ads cost not found")
	ErrSalaryNotFound     = errors.New("salary not found")
)

// ValidationError carries the offending fields of a rejected request.
type ValidationError struct {
	Fields []utils.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []utils.FieldError{{Field: field, Message: message}}}
}

// errEmptyUpdate rejects a partial update that names no field.
var errEmptyUpdate = newValidationError("body", "at least one field must be provided")

// requireCustomLabel enforces the "Other needs a label" rule shared by
// product categories and charge types. It returns the label to store.
func requireCustomLabel(field string, isOther bool, label *string) (*string, *ValidationError) {
	label = utils.TrimPtr(label)
	if !isOther {
		return nil, nil
	}
	if label == nil {
		return nil, newValidationError(field, "is required when Other is selected")
	}
	return label, nil
}

// parseDate accepts a calendar date (2006-01-02) or a full RFC 3339 timestamp.
func parseDate(field, value string) (time.Time, *ValidationError) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, newValidationError(field, "must be a date (YYYY-MM-DD)")
}
