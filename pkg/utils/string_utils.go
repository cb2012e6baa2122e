package utils

import "strings"

// NewNullString returns nil for blank input, otherwise a pointer to the trimmed value.
// Useful for optional columns that should be NULL when not provided.
func NewNullString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// TrimPtr trims the value behind p, mapping blank results to nil.
func TrimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	return NewNullString(*p)
}
