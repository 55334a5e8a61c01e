package scheduling

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports every offending field of a rejected request or
// config update. Nothing is applied when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError from a field→problem map.
func NewValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

// SlotConflictError means the requested slot was no longer available at
// commit time. The client should re-fetch slots and prompt re-selection.
type SlotConflictError struct {
	CompanyID string
	Date      string
	Time      string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot %s %s is no longer available for company %s", e.Date, e.Time, e.CompanyID)
}
