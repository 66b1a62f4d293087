// Package usecase holds one type per user intent. Each validates its input
// synchronously, stops at the first violated rule, and only then delegates to a repository.
package usecase

import (
	"errors"
	"fmt"
	"math"
)

// ValidationError reports the first rule an input violated
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err is a *ValidationError
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func required(field, label string) *ValidationError {
	return invalid(field, "%s is required", label)
}

// checkRange rejects values outside [lo, hi] as well as NaN and infinities
func checkRange(field, label string, v, lo, hi float64) *ValidationError {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < lo || v > hi {
		return invalid(field, "invalid %s value: must be between %s and %s", label, formatNumber(lo), formatNumber(hi))
	}
	return nil
}

func checkIntRange(field, label string, v, lo, hi int) *ValidationError {
	if v < lo || v > hi {
		return invalid(field, "invalid %s value: must be between %d and %d", label, lo, hi)
	}
	return nil
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// firstViolation returns the first non-nil violation
func firstViolation(checks ...*ValidationError) error {
	for _, c := range checks {
		if c != nil {
			return c
		}
	}
	return nil
}
