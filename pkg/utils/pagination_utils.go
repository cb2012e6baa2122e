package utils

import (
	"strconv"
	"strings"
)

// MaxPageLimit bounds every list endpoint.
const MaxPageLimit = 100

// Pagination holds validated page parameters.
type Pagination struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePagination validates raw page and limit query values.
// Empty values fall back to page 1 and defaultLimit.
func ParsePagination(pageStr, limitStr string, defaultLimit int) (Pagination, []FieldError) {
	p := Pagination{Page: 1, Limit: defaultLimit}
	var errs []FieldError

	if s := strings.TrimSpace(pageStr); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil || page < 1 {
			errs = append(errs, FieldError{Field: "page", Message: "must be an integer greater than or equal to 1"})
		} else {
			p.Page = page
		}
	}
	if s := strings.TrimSpace(limitStr); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 || limit > MaxPageLimit {
			errs = append(errs, FieldError{Field: "limit", Message: "must be an integer between 1 and " + strconv.Itoa(MaxPageLimit)})
		} else {
			p.Limit = limit
		}
	}
	return p, errs
}

// TotalPages is ceil(total/limit), zero when there are no rows.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
