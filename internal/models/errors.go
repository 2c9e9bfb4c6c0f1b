package models

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-policy input on a single field.
// It carries a stable field name so transports can surface field-level messages.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return e.Field + ": " + e.Message
}

// validationErrorf builds a ValidationError with a formatted message.
func validationErrorf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError

	return errors.As(err, &ve)
}

// Sentinel errors for entity lookups.
var (
	ErrRequestNotFound = errors.New("lease request not found")
	ErrLeaseNotFound   = errors.New("lease not found")
	ErrHistoryNotFound = errors.New("lease request history not found")
)
