package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned for non-positive or non-numeric identifiers.
var ErrInvalidID = errors.New("invalid identifier")

// Int64ToStr converts an int64 to its string representation.
func Int64ToStr(num int64) string {
	return strconv.FormatInt(num, 10)
}

// ParseID parses a positive int64 identifier from a path or query value.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
